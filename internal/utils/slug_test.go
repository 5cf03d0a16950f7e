package utils

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"The Witcher 3: Wild Hunt", "the-witcher-3-wild-hunt"},
		// diacritics stripped
		{"Pokémon Légendes", "pokemon-legendes"},
		{"Süper Boss Guide", "super-boss-guide"},
		// punctuation runs collapse to one hyphen
		{"Dark   Souls!!! (Remastered)", "dark-souls-remastered"},
		// leading/trailing separators trimmed
		{"  --Elden Ring--  ", "elden-ring"},
		// nothing usable
		{"!!!", ""},
		{"", ""},
		// symbols that do not decompose are dropped
		{"FIFA 24 ⚽", "fifa-24"},
	}

	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Fatalf("Slugify(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}
}
