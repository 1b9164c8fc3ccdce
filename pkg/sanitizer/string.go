package sanitizer

import (
	"strings"
	"unicode"
)

func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}
	return result.String()
}

// NormalizeName trims and collapses whitespace, then upper-cases the leading
// rune of each word. The rest of the word keeps its case so names like
// "McDonald" survive.
func NormalizeName(name string) string {
	name = TrimAndNormalize(name)
	if name == "" {
		return ""
	}

	words := strings.Fields(name)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

func NormalizeNotes(notes string) string {
	return strings.TrimSpace(notes)
}

func NormalizeCountry(country string) string {
	country = TrimAndNormalize(country)
	if country == "" {
		return ""
	}

	words := strings.Fields(strings.ToLower(country))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// NormalizeNameForComparison reduces a name to a lowercase token stripped of
// anything but letters and digits, for duplicate detection.
func NormalizeNameForComparison(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(TrimAndNormalize(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
