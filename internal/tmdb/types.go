package tmdb

import "strings"

const imageBaseURL = "https://image.tmdb.org/t/p/w500"

// Movie is one entry from the catalog's discover or search endpoints.
// Instances are immutable once fetched; the catalog owns them.
type Movie struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	PosterPath       string  `json:"poster_path"`
	VoteAverage      float64 `json:"vote_average"`
	ReleaseDate      string  `json:"release_date"`
	OriginalLanguage string  `json:"original_language"`
	GenreIDs         []int   `json:"genre_ids"`
}

// PosterURL returns the full poster URL at the w500 profile, or "" when the
// movie has no poster.
func (m Movie) PosterURL() string {
	if m.PosterPath == "" {
		return ""
	}
	return imageBaseURL + m.PosterPath
}

// Year returns the release year portion of ReleaseDate, or "" when absent.
func (m Movie) Year() string {
	if i := strings.IndexByte(m.ReleaseDate, '-'); i > 0 {
		return m.ReleaseDate[:i]
	}
	return m.ReleaseDate
}

// HasGenre reports whether the movie carries the given genre id.
func (m Movie) HasGenre(id int) bool {
	for _, g := range m.GenreIDs {
		if g == id {
			return true
		}
	}
	return false
}

// Genre is one entry of the catalog's genre vocabulary.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Page is one page of catalog results. An empty Results slice on a nil
// error means the catalog matched nothing; it is not a failure.
type Page struct {
	Results    []Movie `json:"results"`
	TotalPages int     `json:"total_pages"`
}

type genreListResponse struct {
	Genres []Genre `json:"genres"`
}
