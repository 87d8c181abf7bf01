package search

import (
	"context"
	"log"
	"math"
	"strings"
	"time"
)

// SpellCheckResult is the outcome of checking one query. It is request-scoped
// and never persisted.
type SpellCheckResult struct {
	Original    string   `json:"original"`
	Corrected   string   `json:"corrected"`
	Confidence  float64  `json:"confidence"`
	Suggestions []string `json:"suggestions"`
	WasChanged  bool     `json:"wasChanged"`
}

// MatchCache is the slice of the cache the spell checker needs. A nil cache
// or a failing one degrades to dictionary-only matching.
type MatchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// TermSimilarity is one trigram-similarity candidate from the index store.
type TermSimilarity struct {
	Term       string
	Similarity float64
}

// Vocabulary exposes the indexed content vocabulary for fuzzy lookups.
// TrigramSupported reports whether the store can serve SimilarTerms at all;
// absence is a normal code path, not an error.
type Vocabulary interface {
	SimilarTerms(ctx context.Context, word string, threshold float64) ([]TermSimilarity, error)
	TrigramSupported() bool
}

const (
	trigramThreshold = 0.30
	maxEditDistance  = 2
	fuzzyLenWindow   = 3
	// minFuzzyWordLen keeps short filler words ("up", "for") out of fuzzy
	// matching, where two edits could rewrite the entire word.
	minFuzzyWordLen = 4
)

type SpellChecker struct {
	cache  MatchCache
	vocab  Vocabulary
	ttl    time.Duration
	logger *log.Logger
}

func NewSpellChecker(cache MatchCache, vocab Vocabulary, ttl time.Duration, logger *log.Logger) *SpellChecker {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SpellChecker{cache: cache, vocab: vocab, ttl: ttl, logger: logger}
}

// Check corrects each word of the query against the typo map, the known-terms
// set and finally fuzzy matching. Confidence is a fixed 0.8 whenever anything
// changed; downstream consumers rely on that constant.
func (s *SpellChecker) Check(ctx context.Context, query string) SpellCheckResult {
	words := strings.Fields(strings.ToLower(query))
	baseline := strings.Join(words, " ")

	corrected := make([]string, 0, len(words))
	for _, w := range words {
		corrected = append(corrected, s.correctWord(ctx, w))
	}
	out := strings.Join(corrected, " ")

	res := SpellCheckResult{
		Original:   query,
		Corrected:  out,
		WasChanged: out != baseline,
		Confidence: 1.0,
	}
	if res.WasChanged {
		res.Confidence = 0.8
	}
	res.Suggestions = []string{}
	return res
}

// Suggestions returns the corrected query, plus the original when a
// correction happened, capped at limit.
func (s *SpellChecker) Suggestions(ctx context.Context, query string, limit int) []string {
	if limit <= 0 {
		return []string{}
	}
	res := s.Check(ctx, query)
	out := []string{res.Corrected}
	if res.WasChanged {
		out = append(out, strings.Join(strings.Fields(strings.ToLower(query)), " "))
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (s *SpellChecker) correctWord(ctx context.Context, word string) string {
	if fix, ok := typoCorrections[word]; ok {
		return fix
	}
	if _, ok := knownTerms[word]; ok {
		return word
	}
	if len([]rune(word)) < minFuzzyWordLen {
		return word
	}
	if best, dist, ok := s.fuzzyMatch(ctx, word); ok && dist <= maxEditDistance {
		return best
	}
	return word
}

type fuzzyHit struct {
	Term     string `json:"term"`
	Distance int    `json:"distance"`
}

// fuzzyMatch finds the closest candidate across the static dictionary and,
// when available, the trigram vocabulary of the index store. The best match
// per word is cached for the configured TTL.
func (s *SpellChecker) fuzzyMatch(ctx context.Context, word string) (string, int, bool) {
	cacheKey := "spell:word:" + word
	if s.cache != nil {
		var cached fuzzyHit
		hit, err := s.cache.GetJSON(ctx, cacheKey, &cached)
		if err == nil && hit && cached.Term != "" {
			return cached.Term, cached.Distance, true
		}
	}

	best := fuzzyHit{Distance: math.MaxInt}

	for _, term := range knownTermsList {
		for _, token := range strings.Fields(term) {
			if abs(len(token)-len(word)) > fuzzyLenWindow {
				continue
			}
			if d := LevenshteinDistance(word, token); d < best.Distance {
				best = fuzzyHit{Term: token, Distance: d}
			}
		}
	}

	if s.vocab != nil && s.vocab.TrigramSupported() {
		candidates, err := s.vocab.SimilarTerms(ctx, word, trigramThreshold)
		if err != nil {
			if s.logger != nil {
				s.logger.Printf("[SpellCheck] trigram lookup failed word=%q, dictionary only: %v", word, err)
			}
		} else {
			for _, c := range candidates {
				d := int(math.Round((1 - c.Similarity) * 5))
				if d < best.Distance {
					best = fuzzyHit{Term: c.Term, Distance: d}
				}
			}
		}
	}

	if best.Term == "" {
		return "", 0, false
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, cacheKey, best, s.ttl)
	}
	return best.Term, best.Distance, true
}

// LevenshteinDistance is the standard DP edit distance with unit costs.
func LevenshteinDistance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = minInt(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func minInt(vals ...int) int {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
