package identification

import (
	"slices"
	"strings"
	"testing"
)

func TestExtractSignals(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantYears  []string
		wantTitles []string
		wantQuery  []string
	}{
		{
			name:       "folder and stem with year",
			path:       "/movies/Parasite (2019)/Parasite.2019.1080p.mkv",
			wantYears:  []string{"2019"},
			wantTitles: []string{"Parasite", "Parasite 1080p"},
			wantQuery:  []string{"Parasite", "Parasite 1080p"},
		},
		{
			name:       "years kept in path order",
			path:       "/movies/2001 A Space Odyssey (1968)/2001.A.Space.Odyssey.1968.mkv",
			wantYears:  []string{"1968", "2001"},
			wantTitles: []string{"A Space Odyssey"},
			wantQuery:  []string{"A Space Odyssey"},
		},
		{
			name:       "resolution marker is not a year",
			path:       "/movies/Clip/Clip 2010p.mkv",
			wantYears:  nil,
			wantTitles: []string{"Clip", "Clip 2010p"},
			wantQuery:  []string{"Clip", "Clip 2010p"},
		},
		{
			name:       "longer digit runs are not years",
			path:       "/movies/Archive 20491/Archive.mkv",
			wantYears:  nil,
			wantTitles: []string{"Archive 20491", "Archive"},
			wantQuery:  []string{"Archive 20491", "Archive"},
		},
		{
			name:       "jargon-free variant is search-only",
			path:       "/downloads/incoming/Spirited.Away.2001.BluRay.x265.mkv",
			wantYears:  []string{"2001"},
			wantTitles: []string{"incoming", "Spirited Away BluRay x265"},
			wantQuery:  []string{"incoming", "Spirited Away BluRay x265", "Spirited Away"},
		},
		{
			name:       "adjacent years share a separator",
			path:       "/m/Movie 1999 2000/x.mkv",
			wantYears:  []string{"1999", "2000"},
			wantTitles: []string{"Movie", "x"},
			wantQuery:  []string{"Movie", "x"},
		},
		{
			name:       "bare file name",
			path:       "Heat.1995.mkv",
			wantYears:  []string{"1995"},
			wantTitles: []string{"Heat"},
			wantQuery:  []string{"Heat"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractSignals(tt.path)
			if !slices.Equal(got.Years, tt.wantYears) {
				t.Errorf("years = %v, want %v", got.Years, tt.wantYears)
			}
			if !slices.Equal(got.Titles, tt.wantTitles) {
				t.Errorf("titles = %q, want %q", got.Titles, tt.wantTitles)
			}
			if !slices.Equal(got.Queries, tt.wantQuery) {
				t.Errorf("queries = %q, want %q", got.Queries, tt.wantQuery)
			}
		})
	}
}

func TestExtractSignalsTitlesNeverContainYears(t *testing.T) {
	paths := []string{
		"/m/Heat 1995/Heat.1995.REMASTERED.mkv",
		"/m/1917 (2019)/1917.2019.mkv",
		"/m/Blade Runner 2049 (2017)/Blade_Runner_2049_2017.mkv",
		"/m/Movie 1999 2000/x.mkv",
		"/m/Film.2003-2004/Film.2003-2004.mkv",
	}
	for _, path := range paths {
		signals := ExtractSignals(path)
		for _, year := range signals.Years {
			for _, title := range signals.Titles {
				if strings.Contains(title, year) {
					t.Errorf("%s: title %q still contains year %s", path, title, year)
				}
			}
		}
		for _, title := range signals.Titles {
			if strings.TrimSpace(title) == "" {
				t.Errorf("%s: empty title candidate", path)
			}
		}
	}
}

func TestSignalsCacheKey(t *testing.T) {
	a := ExtractSignals("/movies/Parasite (2019)/Parasite.2019.mkv")
	b := ExtractSignals("/other/Parasite (2019)/Parasite.2019.mkv")
	if a.CacheKey() != b.CacheKey() {
		t.Fatalf("expected identical keys, got %q and %q", a.CacheKey(), b.CacheKey())
	}
	c := ExtractSignals("/movies/Parasite (1982)/Parasite.1982.mkv")
	if a.CacheKey() == c.CacheKey() {
		t.Fatal("expected different keys for different years")
	}
}
