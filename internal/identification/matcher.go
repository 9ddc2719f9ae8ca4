package identification

import (
	"strconv"

	"keepaudio/internal/textutil"
)

// MatchesCriteria accepts a candidate when its title key equals the key of any
// path title, or when its release year equals any path year. Either condition
// alone is enough. Empty keys never match.
func MatchesCriteria(movie Movie, signals Signals) bool {
	if key := textutil.MatchKey(movie.Title); key != "" {
		for _, title := range signals.Titles {
			if textutil.MatchKey(title) == key {
				return true
			}
		}
	}
	if !movie.HasReleaseYear {
		return false
	}
	for _, year := range signals.Years {
		if value, err := strconv.Atoi(year); err == nil && value == movie.ReleaseYear {
			return true
		}
	}
	return false
}
