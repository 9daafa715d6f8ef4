package services

import (
	"strings"
	"unicode"
)

// Normalizer cleans raw message text for downstream analysis. It is
// script-agnostic: letters from any script survive, so multilingual
// messages are never stripped down to their Latin parts.
type Normalizer struct{}

// NewNormalizer creates a new Normalizer
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// allowedPunct is the fixed punctuation whitelist. The danda (U+0964) is
// the sentence terminator used by Devanagari and other Indic scripts.
var allowedPunct = map[rune]bool{
	'.': true, ',': true, '!': true, '?': true,
	'-': true, '\'': true, '"': true, '।': true,
}

// Normalize collapses whitespace runs to single spaces, drops characters
// outside the word/digit/punctuation whitelist and trims the result. It
// always returns a string, possibly empty.
func (n *Normalizer) Normalize(text string) string {
	collapsed := strings.Join(strings.Fields(text), " ")

	var b strings.Builder
	b.Grow(len(collapsed))
	for _, r := range collapsed {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune(r)
		case allowedPunct[r]:
			b.WriteRune(r)
		}
	}

	return strings.TrimSpace(b.String())
}
