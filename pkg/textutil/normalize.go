// Package textutil provides the text normalization, tokenization, and
// edit-distance similarity primitives used by the catalog matcher.
package textutil

import "strings"

// Normalize lower-cases s, collapses runs of whitespace to a single space,
// and trims the result. Idempotent.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// NormalizeForSearch is Normalize with every non-alphanumeric, non-space
// character replaced by a space first, so punctuation never merges tokens.
func NormalizeForSearch(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isAlnum(r) || r == ' ' {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return Normalize(b.String())
}

// Tokenize splits NormalizeForSearch(s) on non-alphanumeric runs and drops
// empty tokens.
func Tokenize(s string) []string {
	return strings.FieldsFunc(NormalizeForSearch(s), func(r rune) bool {
		return !isAlnum(r)
	})
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
