package search

import (
	"context"
	"regexp"
	"strings"
)

// RewrittenQuery is the end-to-end transformation of one raw query. The
// Transformations list exists for observability, not correctness.
type RewrittenQuery struct {
	Original        string   `json:"original"`
	Rewritten       string   `json:"rewritten"`
	ExpandedTerms   []string `json:"expandedTerms"`
	SpellCorrected  bool     `json:"spellCorrected"`
	DidYouMean      string   `json:"didYouMean,omitempty"`
	Language        string   `json:"language"`
	Transformations []string `json:"transformations"`
}

// Rewriter orchestrates the processor, spell checker and synonym expander.
// Stage order is fixed (normalize, spell-check, pattern simplification,
// expansion) and each stage consumes the previous stage's output.
type Rewriter struct {
	spell *SpellChecker
}

func NewRewriter(spell *SpellChecker) *Rewriter {
	return &Rewriter{spell: spell}
}

func (r *Rewriter) Rewrite(ctx context.Context, query, locale string) RewrittenQuery {
	out := RewrittenQuery{Original: query}

	processed := Process(query, locale)
	out.Language = processed.Language
	out.Transformations = append(out.Transformations, "normalized")
	current := processed.Normalized

	if r.spell != nil {
		checked := r.spell.Check(ctx, current)
		if checked.WasChanged {
			current = checked.Corrected
			out.SpellCorrected = true
			out.DidYouMean = checked.Corrected
			out.Transformations = append(out.Transformations, "spell_corrected")
		}
	}

	if simplified := handlePatterns(current); simplified != current {
		current = simplified
		out.Transformations = append(out.Transformations, "pattern_matched")
	}

	expansion := Expand(current, out.Language)
	out.ExpandedTerms = expansion.Expanded
	out.Transformations = append(out.Transformations, "expanded")

	out.Rewritten = current
	return out
}

var (
	nearPattern     = regexp.MustCompile(`\s+near\s+`)
	bestInDubai     = regexp.MustCompile(`best\s+(.+?)\s+in\s+dubai`)
	topNPattern     = regexp.MustCompile(`^top\s+\d+\s+`)
	stopWordPattern = regexp.MustCompile(`\b(?:the|a|an|in|at|on|for|to|of)\b`)
)

// handlePatterns applies fixed simplification rewrites in order. Stop-word
// stripping runs unconditionally after the earlier rewrites, including over
// prepositions inside proper nouns; that matches shipped behavior.
func handlePatterns(q string) string {
	q = nearPattern.ReplaceAllString(q, " ")
	q = bestInDubai.ReplaceAllString(q, "$1")
	q = topNPattern.ReplaceAllString(q, "")
	q = stopWordPattern.ReplaceAllString(q, " ")
	return strings.Join(strings.Fields(q), " ")
}

// GenerateAlternatives unions spell-check suggestions with per-word related
// term substitutions, stopping at limit.
func (r *Rewriter) GenerateAlternatives(ctx context.Context, query string, limit int) []string {
	out := []string{}
	if limit <= 0 {
		return out
	}

	normalized := Normalize(query)
	seen := map[string]struct{}{normalized: {}}
	add := func(s string) {
		if len(out) >= limit {
			return
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	if r.spell != nil {
		for _, s := range r.spell.Suggestions(ctx, normalized, 2) {
			add(s)
		}
	}

	words := strings.Fields(normalized)
	for i, w := range words {
		if len(out) >= limit {
			break
		}
		for _, related := range RelatedTerms(w, 2) {
			alt := make([]string, len(words))
			copy(alt, words)
			alt[i] = related
			add(strings.Join(alt, " "))
		}
	}

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
