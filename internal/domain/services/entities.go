package services

import "regexp"

// EntityExtractor pulls URLs and phone numbers out of the original,
// untranslated message text. Both extractions are pure and total.
type EntityExtractor struct {
	urlPattern      *regexp.Regexp
	shortURLPattern *regexp.Regexp
	phonePatterns   []*regexp.Regexp
}

// NewEntityExtractor creates a new EntityExtractor
func NewEntityExtractor() *EntityExtractor {
	return &EntityExtractor{
		// The $-_ range covers the URL-safe punctuation block, / and : included.
		urlPattern: regexp.MustCompile(`https?://(?:[a-zA-Z0-9]|[$-_@.&+]|[!*\(\),]|%[0-9a-fA-F]{2})+`),
		// Bare shortener paths without a scheme, e.g. bit.ly/xyz
		shortURLPattern: regexp.MustCompile(`(?i)(?:bit\.ly|tinyurl|goo\.gl|ow\.ly)/[a-zA-Z0-9]+`),
		phonePatterns: []*regexp.Regexp{
			regexp.MustCompile(`\+\d{1,3}[-\s]?\d{10}`), // E.164-like with country prefix
			regexp.MustCompile(`\d{10}`),                // bare 10-digit run
			regexp.MustCompile(`\d{5}[-\s]\d{5}`),       // split 5+5 groups
		},
	}
}

// ExtractURLs returns every URL match, scheme-qualified matches first, then
// bare shortener paths. Duplicates across the two patterns are kept: the
// rule tables are applied verbatim, without dedup.
func (e *EntityExtractor) ExtractURLs(text string) []string {
	urls := e.urlPattern.FindAllString(text, -1)
	short := e.shortURLPattern.FindAllString(text, -1)

	out := make([]string, 0, len(urls)+len(short))
	out = append(out, urls...)
	out = append(out, short...)
	return out
}

// ExtractPhoneNumbers returns every phone match from all three patterns in
// pattern-declaration order. Overlapping matches (a 10-digit run inside a
// prefixed number) are all returned; nothing is deduplicated.
func (e *EntityExtractor) ExtractPhoneNumbers(text string) []string {
	var phones []string
	for _, pattern := range e.phonePatterns {
		phones = append(phones, pattern.FindAllString(text, -1)...)
	}
	if phones == nil {
		phones = []string{}
	}
	return phones
}
