package services

import (
	"strings"
	"unicode"
)

// LanguageUnknown is the sentinel returned when detection has no confident
// signal (very short or symbol-only text). Detection never fails: callers
// always receive a code.
const LanguageUnknown = "unknown"

// LanguageIdentifier assigns a best-effort ISO-639-1-like code to cleaned
// text using a character script histogram plus shallow word statistics for
// Latin-script languages.
type LanguageIdentifier struct{}

// NewLanguageIdentifier creates a new LanguageIdentifier
func NewLanguageIdentifier() *LanguageIdentifier {
	return &LanguageIdentifier{}
}

// Detect returns the language code for the given text, or LanguageUnknown
// when there is not enough signal.
func (d *LanguageIdentifier) Detect(text string) string {
	counts := d.analyzeScript(text)

	total := 0
	maxCount := 0
	primary := ""
	for script, count := range counts {
		total += count
		if count > maxCount {
			maxCount = count
			primary = script
		}
	}

	// Fewer than three script-bearing characters is not enough to call.
	if total < 3 {
		return LanguageUnknown
	}

	return d.languageForScript(primary, text)
}

// analyzeScript counts characters by script type
func (d *LanguageIdentifier) analyzeScript(text string) map[string]int {
	counts := make(map[string]int)
	for _, r := range text {
		if script := scriptOf(r); script != "" {
			counts[script]++
		}
	}
	return counts
}

// scriptOf determines the script of a character
func scriptOf(r rune) string {
	switch {
	case r >= 0x0600 && r <= 0x06FF, r >= 0xFB50 && r <= 0xFDFF, r >= 0xFE70 && r <= 0xFEFF:
		return "arabic"
	case r >= 0x0900 && r <= 0x097F:
		return "devanagari"
	case r >= 0x0980 && r <= 0x09FF:
		return "bengali"
	case r >= 0x0A00 && r <= 0x0A7F:
		return "gurmukhi"
	case r >= 0x0A80 && r <= 0x0AFF:
		return "gujarati"
	case r >= 0x0B80 && r <= 0x0BFF:
		return "tamil"
	case r >= 0x0C00 && r <= 0x0C7F:
		return "telugu"
	case r >= 0x4E00 && r <= 0x9FFF:
		return "cjk"
	case r >= 0x3040 && r <= 0x30FF:
		return "kana"
	case r >= 0xAC00 && r <= 0xD7AF:
		return "hangul"
	case r >= 0x0400 && r <= 0x04FF:
		return "cyrillic"
	case r >= 0x0370 && r <= 0x03FF:
		return "greek"
	case r >= 0x0590 && r <= 0x05FF:
		return "hebrew"
	case r >= 0x0E00 && r <= 0x0E7F:
		return "thai"
	case unicode.IsLetter(r) && r < 0x0250:
		return "latin"
	default:
		return ""
	}
}

// languageForScript resolves a script to a specific language code
func (d *LanguageIdentifier) languageForScript(script, text string) string {
	switch script {
	case "arabic":
		return "ar"
	case "devanagari":
		return "hi"
	case "bengali":
		return "bn"
	case "gurmukhi":
		return "pa"
	case "gujarati":
		return "gu"
	case "tamil":
		return "ta"
	case "telugu":
		return "te"
	case "cjk":
		return "zh"
	case "kana":
		return "ja"
	case "hangul":
		return "ko"
	case "cyrillic":
		return "ru"
	case "greek":
		return "el"
	case "hebrew":
		return "he"
	case "thai":
		return "th"
	case "latin":
		return d.latinLanguage(text)
	default:
		return LanguageUnknown
	}
}

// latinLanguage picks the most likely Latin-script language from stopword
// hits, defaulting to English.
func (d *LanguageIdentifier) latinLanguage(text string) string {
	textLower := " " + strings.ToLower(text) + " "

	score := func(words []string) int {
		n := 0
		for _, w := range words {
			if strings.Contains(textLower, " "+w+" ") {
				n++
			}
		}
		return n
	}

	candidates := []struct {
		code  string
		words []string
	}{
		{"en", []string{"the", "be", "to", "of", "and", "that", "have", "it", "for", "you", "is", "your", "will"}},
		{"es", []string{"el", "la", "que", "los", "del", "las", "una", "por", "con", "para", "su"}},
		{"fr", []string{"le", "les", "des", "une", "est", "dans", "pour", "avec", "vous", "votre"}},
		{"de", []string{"der", "die", "das", "und", "ist", "ein", "eine", "nicht", "mit", "ihr", "sie"}},
		{"pt", []string{"que", "em", "do", "da", "com", "uma", "os", "as", "para", "seu"}},
		{"it", []string{"il", "di", "che", "la", "un", "una", "per", "non", "sono", "con"}},
	}

	best := "en"
	maxScore := 0
	for _, c := range candidates {
		if s := score(c.words); s > maxScore {
			maxScore = s
			best = c.code
		}
	}
	return best
}

// languageNames maps codes to human-readable names for the result schema.
var languageNames = map[string]string{
	"en": "English", "hi": "Hindi", "mr": "Marathi", "ta": "Tamil",
	"te": "Telugu", "bn": "Bengali", "gu": "Gujarati", "kn": "Kannada",
	"ml": "Malayalam", "pa": "Punjabi", "ur": "Urdu", "ne": "Nepali",
	"zh": "Chinese", "es": "Spanish", "fr": "French", "de": "German",
	"it": "Italian", "pt": "Portuguese", "ru": "Russian", "ja": "Japanese",
	"ko": "Korean", "ar": "Arabic", "th": "Thai", "el": "Greek",
	"he": "Hebrew", "fa": "Persian", "tr": "Turkish", "nl": "Dutch",
	LanguageUnknown: "Unknown",
}

// LanguageName converts a language code to a readable name
func LanguageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return strings.ToUpper(code)
}
