package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything marquee needs to talk to its two backends and
// run the UI.
type Config struct {
	// Catalog (TMDB)
	TMDBAPIKey  string
	TMDBBaseURL string

	// Popularity ledger (hosted document collection). All fields must be set
	// for trending to be enabled; otherwise the ledger is skipped entirely.
	LedgerEndpoint     string
	LedgerProjectID    string
	LedgerAPIKey       string
	LedgerDatabaseID   string
	LedgerCollectionID string

	// UI
	DebounceMS int
	Theme      string

	// Local files
	FavoritesPath string
	LogPath       string
	LogLevel      string
}

const (
	defaultConfigPath    = "~/.config/marquee/config.toml"
	defaultTMDBBaseURL   = "https://api.themoviedb.org/3"
	defaultDebounceMS    = 500
	defaultTheme         = "Nightfox"
	defaultFavoritesPath = "~/.local/share/marquee/favorites.toml"
	defaultLogPath       = "~/.local/share/marquee/marquee.log"
	defaultLogLevel      = "info"
)

// LedgerConfigured reports whether every ledger field is present.
func (c Config) LedgerConfigured() bool {
	return c.LedgerEndpoint != "" &&
		c.LedgerProjectID != "" &&
		c.LedgerAPIKey != "" &&
		c.LedgerDatabaseID != "" &&
		c.LedgerCollectionID != ""
}

// Load locates and parses the marquee config, falling back to defaults when
// the file is missing. The TMDB key may also come from the TMDB_API_KEY
// environment variable, which takes precedence over the file.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			finalize(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		TMDB struct {
			APIKey  string `toml:"api_key"`
			BaseURL string `toml:"base_url"`
		} `toml:"tmdb"`
		Ledger struct {
			Endpoint     string `toml:"endpoint"`
			ProjectID    string `toml:"project_id"`
			APIKey       string `toml:"api_key"`
			DatabaseID   string `toml:"database_id"`
			CollectionID string `toml:"collection_id"`
		} `toml:"ledger"`
		UI struct {
			DebounceMS int    `toml:"debounce_ms"`
			Theme      string `toml:"theme"`
		} `toml:"ui"`
		FavoritesPath string `toml:"favorites_path"`
		LogPath       string `toml:"log_path"`
		LogLevel      string `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.TMDB.APIKey); v != "" {
		cfg.TMDBAPIKey = v
	}
	if v := strings.TrimSpace(raw.TMDB.BaseURL); v != "" {
		cfg.TMDBBaseURL = v
	}
	cfg.LedgerEndpoint = strings.TrimSpace(raw.Ledger.Endpoint)
	cfg.LedgerProjectID = strings.TrimSpace(raw.Ledger.ProjectID)
	cfg.LedgerAPIKey = strings.TrimSpace(raw.Ledger.APIKey)
	cfg.LedgerDatabaseID = strings.TrimSpace(raw.Ledger.DatabaseID)
	cfg.LedgerCollectionID = strings.TrimSpace(raw.Ledger.CollectionID)
	if raw.UI.DebounceMS > 0 {
		cfg.DebounceMS = raw.UI.DebounceMS
	}
	if v := strings.TrimSpace(raw.UI.Theme); v != "" {
		cfg.Theme = v
	}
	if v := strings.TrimSpace(raw.FavoritesPath); v != "" {
		cfg.FavoritesPath = v
	}
	if v := strings.TrimSpace(raw.LogPath); v != "" {
		cfg.LogPath = v
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = v
	}

	finalize(&cfg)

	return cfg, nil
}

func defaults() Config {
	return Config{
		TMDBBaseURL:   defaultTMDBBaseURL,
		DebounceMS:    defaultDebounceMS,
		Theme:         defaultTheme,
		FavoritesPath: defaultFavoritesPath,
		LogPath:       defaultLogPath,
		LogLevel:      defaultLogLevel,
	}
}

// finalize applies the environment override and expands local paths.
func finalize(cfg *Config) {
	if key := strings.TrimSpace(os.Getenv("TMDB_API_KEY")); key != "" {
		cfg.TMDBAPIKey = key
	}
	cfg.FavoritesPath = mustExpand(cfg.FavoritesPath)
	cfg.LogPath = mustExpand(cfg.LogPath)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
