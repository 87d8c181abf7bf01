package search

import "strings"

// synonymGroups are undirected: matching any member pulls in the whole group.
// Groups mix English, Hebrew and Arabic so a query in one language surfaces
// content tagged in another.
var synonymGroups = [][]string{
	{"hotel", "accommodation", "stay", "lodging", "resort", "מלון", "فندق"},
	{"restaurant", "dining", "eatery", "food", "מסעדה", "مطعم"},
	{"attraction", "sight", "landmark", "אטרקציה", "معلم"},
	{"beach", "seaside", "shore", "חוף", "شاطئ"},
	{"cheap", "budget", "affordable", "inexpensive", "זול", "رخيص"},
	{"luxury", "upscale", "premium", "five star", "יוקרה", "فاخر"},
	{"mall", "shopping center", "shopping centre", "קניון", "مول"},
	{"tour", "excursion", "trip", "סיור", "جولة"},
	{"kids", "children", "family friendly", "ילדים", "أطفال"},
	{"nightlife", "clubs", "bars", "חיי לילה", "سهرات"},
}

// termExpansions are directed: the key broadens into narrower or related
// terms, never the other way around. Keys may be multi-word phrases; those
// are matched by containment against the whole query.
var termExpansions = map[string][]string{
	"brunch":       {"breakfast", "friday brunch", "buffet"},
	"desert":       {"desert safari", "dune bashing", "camel ride"},
	"waterpark":    {"aquaventure", "wild wadi", "laguna"},
	"theme park":   {"img worlds", "motiongate", "legoland"},
	"arabic food":  {"lebanese", "emirati cuisine", "shawarma", "mezze"},
	"street food":  {"shawarma", "falafel", "karak"},
	"view":         {"rooftop", "observation deck", "skyline"},
	"romantic":     {"couples", "honeymoon", "fine dining"},
	"adventure":    {"skydiving", "dune bashing", "zipline"},
	"culture":      {"museum", "heritage", "old dubai"},
	"shopping":     {"mall", "souk", "outlet"},
	"spa":          {"massage", "wellness", "hammam"},
	"ספא":          {"massage", "wellness", "hammam"},
	"תרבות":        {"museum", "heritage", "old dubai"},
	"مغامرة":       {"skydiving", "dune bashing", "zipline"},
	"تسوق":         {"mall", "souk", "outlet"},
}

// Expansion is the weighted multiset of terms equivalent or related to a
// query. Expanded always contains every original token.
type Expansion struct {
	Original string   `json:"original"`
	Expanded []string `json:"expanded"`
	Language string   `json:"language"`
}

// Expand grows the query's token set with synonym-group members and directed
// expansions. Unknown languages degrade to identity expansion (original
// tokens only, via the same path).
func Expand(query, language string) Expansion {
	lowered := strings.ToLower(strings.TrimSpace(query))
	out := Expansion{Original: query, Language: language}
	if out.Language == "" {
		out.Language = DetectLanguage(query)
	}

	seen := make(map[string]struct{}, 16)
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out.Expanded = append(out.Expanded, s)
	}

	tokens := strings.Fields(lowered)
	for _, tok := range tokens {
		add(tok)
	}

	for _, tok := range tokens {
		for _, group := range synonymGroups {
			if !containsFold(group, tok) {
				continue
			}
			for _, member := range group {
				add(member)
			}
		}
		if exp, ok := termExpansions[tok]; ok {
			for _, e := range exp {
				add(e)
			}
		}
	}

	// Multi-word expansion keys match by containment against the whole query.
	for key, exp := range termExpansions {
		if !strings.Contains(key, " ") {
			continue
		}
		if strings.Contains(lowered, key) {
			for _, e := range exp {
				add(e)
			}
		}
	}

	if out.Expanded == nil {
		out.Expanded = []string{}
	}
	return out
}

// maxWeightedExpansion caps the low-weight terms in BuildExpandedQuery so the
// downstream full-text query stays bounded.
const maxWeightedExpansion = 10

// BuildExpandedQuery renders the expansion as a weighted boolean-OR tsquery
// expression: original tokens carry the A weight, at most ten expansion terms
// carry B.
func BuildExpandedQuery(query string) string {
	lowered := strings.ToLower(strings.TrimSpace(query))
	tokens := strings.Fields(lowered)
	if len(tokens) == 0 {
		return ""
	}

	original := make(map[string]struct{}, len(tokens))
	parts := make([]string, 0, len(tokens)+maxWeightedExpansion)
	for _, tok := range tokens {
		if _, ok := original[tok]; ok {
			continue
		}
		original[tok] = struct{}{}
		parts = append(parts, tsLexeme(tok)+":A")
	}

	extra := 0
	for _, term := range Expand(lowered, "").Expanded {
		if extra >= maxWeightedExpansion {
			break
		}
		if _, ok := original[term]; ok {
			continue
		}
		parts = append(parts, tsLexeme(term)+":B")
		extra++
	}

	return strings.Join(parts, " | ")
}

// RelatedTerms returns up to limit terms related to the input, excluding the
// input itself.
func RelatedTerms(term string, limit int) []string {
	term = strings.ToLower(strings.TrimSpace(term))
	out := []string{}
	if term == "" || limit <= 0 {
		return out
	}

	seen := map[string]struct{}{term: {}}
	add := func(s string) {
		if len(out) >= limit {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	for _, group := range synonymGroups {
		if !containsFold(group, term) {
			continue
		}
		for _, member := range group {
			add(member)
		}
	}
	if exp, ok := termExpansions[term]; ok {
		for _, e := range exp {
			add(e)
		}
	}
	return out
}

// tsLexeme quotes multi-word terms so they stay a single tsquery lexeme.
func tsLexeme(term string) string {
	if strings.Contains(term, " ") {
		return "'" + term + "'"
	}
	return term
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
