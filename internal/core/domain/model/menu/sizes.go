package menu

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SizeKeyCandidates lists the keys a price table may use for size, most
// specific first: as given, lowercase, Capitalized, Title Case, UPPER, then the
// generic "regular"/"default" keys. Standard sizes try "regular" before
// "default"; anything else tries "default" first. Duplicates are dropped.
func SizeKeyCandidates(size string) []string {
	s := strings.TrimSpace(size)
	if s == "" {
		return []string{DefaultPriceKey, "regular"}
	}

	lower := strings.ToLower(s)
	candidates := []string{s, lower, capitalize(s), cases.Title(language.Und).String(s), strings.ToUpper(s)}
	switch lower {
	case "small", "medium", "large":
		candidates = append(candidates, "regular", DefaultPriceKey)
	default:
		candidates = append(candidates, DefaultPriceKey, "regular")
	}

	seen := make(map[string]struct{}, len(candidates))
	out := candidates[:0]
	for _, c := range candidates {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[n:])
}
