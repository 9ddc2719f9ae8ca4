package textutil

import (
	_ "embed"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// decorationPattern matches runs of underscores and characters that are not
// letters, marks, digits, whitespace or apostrophes.
var decorationPattern = regexp.MustCompile(`(?:_|[^\p{L}\p{M}\p{N}\s\p{Zs}'])+`)

// resolutionPattern matches tokens such as 720p, 1080p or 2160p60.
var resolutionPattern = regexp.MustCompile(`(?i)^\d{3,4}p`)

//go:embed nontitle_terms.txt
var nonTitleTermsData string

var (
	nonTitleOnce  sync.Once
	nonTitleTerms map[string]struct{}
)

func loadNonTitleTerms() map[string]struct{} {
	nonTitleOnce.Do(func() {
		nonTitleTerms = make(map[string]struct{})
		for _, line := range strings.Split(nonTitleTermsData, "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			nonTitleTerms[strings.ToLower(line)] = struct{}{}
		}
	})
	return nonTitleTerms
}

// CleanTitle replaces decoration (punctuation, underscores, symbols) with a
// single space and trims the result. Applying it twice yields the same value.
func CleanTitle(title string) string {
	return strings.TrimSpace(decorationPattern.ReplaceAllString(title, " "))
}

// RemoveNonTitleWords drops resolution markers and release/mediainfo jargon
// from an already tokenized title. Matching is case-insensitive.
func RemoveNonTitleWords(words []string) []string {
	terms := loadNonTitleTerms()
	out := make([]string, 0, len(words))
	for _, word := range words {
		lower := strings.ToLower(word)
		if resolutionPattern.MatchString(lower) {
			continue
		}
		if _, ok := terms[lower]; ok {
			continue
		}
		out = append(out, word)
	}
	return out
}

// IsNonTitleWord reports whether a single token is release jargon.
func IsNonTitleWord(word string) bool {
	return len(RemoveNonTitleWords([]string{word})) == 0
}

// MatchKey reduces a title to lower-case ASCII letters and digits after
// folding diacritics, so "Amélie" and "Amelie" compare equal.
func MatchKey(title string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), title)
	if err != nil {
		folded = title
	}
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		}
	}
	return b.String()
}
