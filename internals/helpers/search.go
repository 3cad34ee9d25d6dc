package helper

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeSearchTerm lowercases and strips diacritics so that name search
// matches regardless of accents in stored names.
func NormalizeSearchTerm(s string) string {
	decomposed := norm.NFD.String(strings.ToLower(strings.TrimSpace(s)))
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) { // combining marks
			continue
		}
		b.WriteRune(r)
	}
	return norm.NFC.String(b.String())
}
