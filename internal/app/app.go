package app

import (
	"context"
	"fmt"
	"time"

	"github.com/DBacaj29/marquee/internal/config"
	"github.com/DBacaj29/marquee/internal/favorites"
	"github.com/DBacaj29/marquee/internal/ledger"
	"github.com/DBacaj29/marquee/internal/logger"
	"github.com/DBacaj29/marquee/internal/tmdb"
	"github.com/DBacaj29/marquee/internal/ui"
)

// Options configure the marquee application.
type Options struct {
	ConfigPath string
	DebounceMS int // overrides the config value when > 0
}

// Run boots the marquee TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.TMDBAPIKey == "" {
		return fmt.Errorf("no TMDB API key: set TMDB_API_KEY or tmdb.api_key in the config")
	}
	if opts.DebounceMS > 0 {
		cfg.DebounceMS = opts.DebounceMS
	}

	log := logger.New(cfg.LogPath, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	catalog, err := tmdb.NewClient(cfg.TMDBBaseURL, cfg.TMDBAPIKey)
	if err != nil {
		return fmt.Errorf("init catalog client: %w", err)
	}

	// The ledger is optional: without it, browsing works and trending is
	// simply absent.
	var recorder ledger.Recorder
	if cfg.LedgerConfigured() {
		client, err := ledger.NewClient(ledger.Options{
			Endpoint:     cfg.LedgerEndpoint,
			ProjectID:    cfg.LedgerProjectID,
			APIKey:       cfg.LedgerAPIKey,
			DatabaseID:   cfg.LedgerDatabaseID,
			CollectionID: cfg.LedgerCollectionID,
		})
		if err != nil {
			return fmt.Errorf("init ledger client: %w", err)
		}
		recorder = client
	} else {
		log.Info("ledger not configured, trending disabled")
	}

	favs := favorites.Load(cfg.FavoritesPath, log)

	log.Info("marquee starting",
		logger.Int("favorites", favs.Len()),
		logger.Int("debounce_ms", cfg.DebounceMS))

	return ui.Run(ui.Options{
		Context:   ctx,
		Catalog:   catalog,
		Ledger:    recorder,
		Favorites: favs,
		Log:       log,
		Debounce:  time.Duration(cfg.DebounceMS) * time.Millisecond,
		ThemeName: cfg.Theme,
	})
}
