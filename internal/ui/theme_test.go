package ui

import "testing"

func TestGetTheme_UnknownFallsBack(t *testing.T) {
	theme := GetTheme("NotATheme")
	if theme.Name != "Nightfox" {
		t.Fatalf("fallback theme = %q, want Nightfox", theme.Name)
	}
}

func TestNextTheme_Cycles(t *testing.T) {
	seen := map[string]bool{}
	name := themeOrder[0]
	for range themeOrder {
		seen[name] = true
		name = NextTheme(name)
	}
	if name != themeOrder[0] {
		t.Fatalf("cycle did not wrap: ended at %q", name)
	}
	if len(seen) != len(themeOrder) {
		t.Fatalf("cycle visited %d themes, want %d", len(seen), len(themeOrder))
	}
}

func TestThemes_HaveStyles(t *testing.T) {
	for _, name := range themeOrder {
		theme := GetTheme(name)
		if theme.Text == "" || theme.Accent == "" || theme.Danger == "" {
			t.Fatalf("theme %q missing core colors", name)
		}
	}
}
