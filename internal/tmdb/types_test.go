package tmdb

import "testing"

func TestMovie_PosterURL(t *testing.T) {
	m := Movie{PosterPath: "/abc123.jpg"}
	want := "https://image.tmdb.org/t/p/w500/abc123.jpg"
	if got := m.PosterURL(); got != want {
		t.Fatalf("PosterURL = %q, want %q", got, want)
	}

	if got := (Movie{}).PosterURL(); got != "" {
		t.Fatalf("PosterURL without path = %q, want empty", got)
	}
}

func TestMovie_Year(t *testing.T) {
	if got := (Movie{ReleaseDate: "2008-07-18"}).Year(); got != "2008" {
		t.Fatalf("Year = %q, want 2008", got)
	}
	if got := (Movie{}).Year(); got != "" {
		t.Fatalf("Year without date = %q, want empty", got)
	}
}

func TestMovie_HasGenre(t *testing.T) {
	m := Movie{GenreIDs: []int{28, 80}}
	if !m.HasGenre(80) {
		t.Fatalf("HasGenre(80) = false, want true")
	}
	if m.HasGenre(35) {
		t.Fatalf("HasGenre(35) = true, want false")
	}
}
