// Package favorites keeps the user's saved movies, persisted as TOML under
// ~/.local/share/marquee/favorites.toml.
package favorites

import (
	"os"
	"path/filepath"
	"sync"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/DBacaj29/marquee/internal/logger"
	"github.com/DBacaj29/marquee/internal/tmdb"
)

// Record is a user-local copy of a catalog movie, frozen at the moment the
// user saved it.
type Record struct {
	ID               int     `toml:"id"`
	Title            string  `toml:"title"`
	PosterURL        string  `toml:"poster_url"`
	VoteAverage      float64 `toml:"vote_average"`
	ReleaseDate      string  `toml:"release_date"`
	OriginalLanguage string  `toml:"original_language"`
	GenreIDs         []int   `toml:"genre_ids"`
}

type fileFormat struct {
	Movies []Record `toml:"movies"`
}

// Store is the single owner of the favorites list. Every mutation persists
// the whole list back to disk before returning (write-through); persistence
// failures are logged and swallowed, never returned to callers. Components
// that render favorites register a Subscribe callback instead of polling.
type Store struct {
	mu      sync.RWMutex
	path    string
	records []Record
	subs    []func()
	log     logger.Logger
}

// Load reads the persisted favorites list. A missing or malformed file
// yields an empty store, never an error.
func Load(path string, log logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	s := &Store{path: path, log: log}

	bytes, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn("read favorites", logger.Error(err))
		}
		return s
	}

	var file fileFormat
	if err := toml.Unmarshal(bytes, &file); err != nil {
		log.Warn("favorites file malformed, starting empty", logger.Error(err))
		return s
	}
	s.records = file.Movies
	return s
}

// Save adds the movie unless an entry with its id already exists.
func (s *Store) Save(m tmdb.Movie) {
	s.mu.Lock()
	for _, r := range s.records {
		if r.ID == m.ID {
			s.mu.Unlock()
			return
		}
	}
	s.records = append(s.records, Record{
		ID:               m.ID,
		Title:            m.Title,
		PosterURL:        m.PosterURL(),
		VoteAverage:      m.VoteAverage,
		ReleaseDate:      m.ReleaseDate,
		OriginalLanguage: m.OriginalLanguage,
		GenreIDs:         append([]int(nil), m.GenreIDs...),
	})
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// Remove deletes the entry with the given id if present.
func (s *Store) Remove(id int) {
	s.mu.Lock()
	kept := s.records[:0]
	removed := false
	for _, r := range s.records {
		if r.ID == id {
			removed = true
			continue
		}
		kept = append(kept, r)
	}
	if !removed {
		s.mu.Unlock()
		return
	}
	s.records = kept
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// Toggle saves the movie when absent and removes it when present.
func (s *Store) Toggle(m tmdb.Movie) {
	if s.Contains(m.ID) {
		s.Remove(m.ID)
		return
	}
	s.Save(m)
}

// Contains reports whether a movie with the given id is saved.
func (s *Store) Contains(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if r.ID == id {
			return true
		}
	}
	return false
}

// List returns a copy of the saved records in insertion order.
func (s *Store) List() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.records) == 0 {
		return nil
	}
	dup := make([]Record, len(s.records))
	copy(dup, s.records)
	return dup
}

// Len returns the number of saved movies.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Subscribe registers fn to run after every successful mutation. Callbacks
// run on the mutating goroutine, outside the store lock.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Store) notify() {
	s.mu.RLock()
	subs := append(([]func())(nil), s.subs...)
	s.mu.RUnlock()
	for _, fn := range subs {
		fn()
	}
}

// persistLocked writes the whole list back to disk. Callers hold the lock.
func (s *Store) persistLocked() {
	if s.path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		s.log.Warn("create favorites dir", logger.Error(err))
		return
	}
	bytes, err := toml.Marshal(fileFormat{Movies: s.records})
	if err != nil {
		s.log.Warn("marshal favorites", logger.Error(err))
		return
	}
	if err := os.WriteFile(s.path, bytes, 0o644); err != nil {
		s.log.Warn("write favorites", logger.Error(err))
	}
}
