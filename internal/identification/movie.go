package identification

import (
	"fmt"
	"strings"
	"time"

	"keepaudio/internal/identification/tmdb"
	"keepaudio/internal/language"
)

// Movie is a catalog record reduced to the fields used for matching and
// audio selection. Two movies are the same when their IDs match.
type Movie struct {
	ID                int64
	Title             string
	ReleaseYear       int
	HasReleaseYear    bool
	OriginalLanguage  string
	OriginalLanguage3 string
}

// NewMovie builds a Movie from a TMDB record. A malformed release date leaves
// the year absent.
func NewMovie(result tmdb.Result) Movie {
	movie := Movie{
		ID:    result.ID,
		Title: strings.TrimSpace(result.Title),
	}
	movie.ReleaseYear, movie.HasReleaseYear = parseReleaseYear(result.ReleaseDate)
	return movie.WithOriginalLanguage(result.OriginalLanguage)
}

// WithOriginalLanguage returns a copy carrying the given 2-letter language and
// its 3-letter equivalent from the language table.
func (m Movie) WithOriginalLanguage(code string) Movie {
	m.OriginalLanguage = strings.ToLower(strings.TrimSpace(code))
	m.OriginalLanguage3, _ = language.ISO3(m.OriginalLanguage)
	return m
}

// Equal reports whether both records describe the same catalog entry.
func (m Movie) Equal(other Movie) bool {
	return m.ID == other.ID
}

// Key identifies the movie for set membership.
func (m Movie) Key() int64 {
	return m.ID
}

// YearDistance returns |ReleaseYear - target|; false when the year is unknown.
func (m Movie) YearDistance(target int) (int, bool) {
	if !m.HasReleaseYear {
		return 0, false
	}
	diff := m.ReleaseYear - target
	if diff < 0 {
		diff = -diff
	}
	return diff, true
}

func (m Movie) String() string {
	if m.HasReleaseYear {
		return fmt.Sprintf("%s (%d) [tmdb:%d]", m.Title, m.ReleaseYear, m.ID)
	}
	return fmt.Sprintf("%s [tmdb:%d]", m.Title, m.ID)
}

func parseReleaseYear(date string) (int, bool) {
	parsed, err := time.Parse("2006-01-02", strings.TrimSpace(date))
	if err != nil {
		return 0, false
	}
	return parsed.Year(), true
}
