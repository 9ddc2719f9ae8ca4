package identification

import (
	"path/filepath"
	"regexp"
	"strings"

	"keepaudio/internal/textutil"
)

// yearPattern finds 19xx/20xx runs that are not part of a longer number and
// not a resolution marker such as "2160p".
var yearPattern = regexp.MustCompile(`[^0-9](19\d{2}|20\d{2})([^0-9p]|$)`)

// Signals are the title and year hints recovered from a file path. Titles are
// the cleaned folder and stem candidates used for matching. Queries extends
// Titles with jargon-free variants and is only used to search the catalog.
type Signals struct {
	Years   []string
	Titles  []string
	Queries []string
}

// CacheKey returns a stable key describing these signals.
func (s Signals) CacheKey() string {
	return strings.Join(s.Titles, "|") + "#" + strings.Join(s.Years, ",")
}

// ExtractSignals pulls candidate years and titles out of the parent folder name
// and the file stem. Year digits are removed from the titles before cleaning.
func ExtractSignals(path string) Signals {
	fileName := filepath.Base(path)
	folderName := filepath.Base(filepath.Dir(path))
	if folderName == "." || folderName == string(filepath.Separator) {
		folderName = ""
	}
	stem := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	working := folderName + " " + stem

	var signals Signals
	for _, year := range findYears(working) {
		signals.Years = appendUnique(signals.Years, year)
		folderName = strings.ReplaceAll(folderName, year, "")
		stem = strings.ReplaceAll(stem, year, "")
	}

	var variants []string
	for _, raw := range []string{folderName, stem} {
		cleaned := textutil.CleanTitle(raw)
		if cleaned == "" {
			continue
		}
		signals.Titles = appendUnique(signals.Titles, cleaned)
		filtered := strings.Join(textutil.RemoveNonTitleWords(strings.Fields(cleaned)), " ")
		if filtered != "" && filtered != cleaned {
			variants = append(variants, filtered)
		}
	}
	signals.Queries = append([]string(nil), signals.Titles...)
	for _, variant := range variants {
		signals.Queries = appendUnique(signals.Queries, variant)
	}
	return signals
}

// findYears returns every year yearPattern matches in s. Each search resumes
// right after the year digits so the separator that ended one year can start
// the next, as in "1999 2000".
func findYears(s string) []string {
	var years []string
	for start := 0; start < len(s); {
		loc := yearPattern.FindStringSubmatchIndex(s[start:])
		if loc == nil {
			break
		}
		years = append(years, s[start+loc[2]:start+loc[3]])
		start += loc[3]
	}
	return years
}

func appendUnique(values []string, value string) []string {
	for _, existing := range values {
		if existing == value {
			return values
		}
	}
	return append(values, value)
}
