package model

import "strings"

// Genre is a musical style tag attachable to venues and artists.
type Genre string

const (
	GenreAlternative    Genre = "Alternative"
	GenreBlues          Genre = "Blues"
	GenreClassical      Genre = "Classical"
	GenreCountry        Genre = "Country"
	GenreElectronic     Genre = "Electronic"
	GenreFolk           Genre = "Folk"
	GenreFunk           Genre = "Funk"
	GenreHipHop         Genre = "Hip-Hop"
	GenreHeavyMetal     Genre = "Heavy Metal"
	GenreInstrumental   Genre = "Instrumental"
	GenreJazz           Genre = "Jazz"
	GenreMusicalTheatre Genre = "Musical Theatre"
	GenrePop            Genre = "Pop"
	GenrePunk           Genre = "Punk"
	GenreRnB            Genre = "R&B"
	GenreReggae         Genre = "Reggae"
	GenreRockNRoll      Genre = "Rock n Roll"
	GenreSoul           Genre = "Soul"
	GenreOther          Genre = "Other"
)

// Genres lists every accepted genre in display order.
var Genres = []Genre{
	GenreAlternative, GenreBlues, GenreClassical, GenreCountry, GenreElectronic,
	GenreFolk, GenreFunk, GenreHipHop, GenreHeavyMetal, GenreInstrumental,
	GenreJazz, GenreMusicalTheatre, GenrePop, GenrePunk, GenreRnB,
	GenreReggae, GenreRockNRoll, GenreSoul, GenreOther,
}

// ParseGenre returns the Genre matching s exactly.
func ParseGenre(s string) (Genre, bool) {
	for _, g := range Genres {
		if string(g) == s {
			return g, true
		}
	}
	return "", false
}

// JoinGenres encodes a genre set for the genres column.  Duplicates are
// dropped so the stored value is always a set.
func JoinGenres(gs []Genre) string {
	seen := make(map[Genre]bool, len(gs))
	parts := make([]string, 0, len(gs))
	for _, g := range gs {
		if seen[g] {
			continue
		}
		seen[g] = true
		parts = append(parts, string(g))
	}
	return strings.Join(parts, ",")
}

// SplitGenres decodes the genres column.  Empty input yields an empty,
// non-nil slice.
func SplitGenres(s string) []Genre {
	out := []Genre{}
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, Genre(p))
		}
	}
	return out
}
