package search

import (
	"strings"
	"unicode"
)

// ProcessedQuery is the normalized form of a raw user query.
type ProcessedQuery struct {
	Original   string   `json:"original"`
	Normalized string   `json:"normalized"`
	Tokens     []string `json:"tokens"`
	Language   string   `json:"language"`
}

// Process normalizes a raw query and detects its language. An explicit locale
// wins over script detection.
func Process(query, locale string) ProcessedQuery {
	out := ProcessedQuery{Original: query}

	out.Language = strings.TrimSpace(locale)
	if out.Language == "" {
		out.Language = DetectLanguage(query)
	}

	out.Normalized = Normalize(query)
	out.Tokens = strings.Fields(out.Normalized)
	if out.Tokens == nil {
		out.Tokens = []string{}
	}
	return out
}

// Normalize trims, lowercases, replaces every rune that is not a Unicode
// letter, digit or whitespace with a space, and collapses runs of whitespace.
func Normalize(input string) string {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return ""
	}

	b := strings.Builder{}
	b.Grow(len(input))
	for _, r := range input {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteByte(' ')
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// DetectLanguage is a coarse script classifier: the first Hebrew or Arabic
// rune decides; Latin-only text is always "en".
func DetectLanguage(raw string) string {
	for _, r := range raw {
		if unicode.Is(unicode.Hebrew, r) {
			return "he"
		}
		if unicode.Is(unicode.Arabic, r) {
			return "ar"
		}
	}
	return "en"
}

// StripStopWords removes per-language stop-words from a token list. Unknown
// languages fall back to the English list.
func StripStopWords(tokens []string, language string) []string {
	words, ok := stopWords[language]
	if !ok {
		words = stopWords["en"]
	}
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, stop := words[t]; stop {
			continue
		}
		out = append(out, t)
	}
	return out
}
