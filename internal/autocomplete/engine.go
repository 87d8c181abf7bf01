package autocomplete

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/KBRglobal/Traviapp-sub001/internal/repository"
	"github.com/KBRglobal/Traviapp-sub001/internal/search"
)

// Suggestion is one ranked autocomplete candidate served to clients.
type Suggestion struct {
	Text        string  `json:"text"`
	DisplayText string  `json:"displayText"`
	Type        string  `json:"type"`
	URL         string  `json:"url,omitempty"`
	Icon        string  `json:"icon,omitempty"`
	Score       float64 `json:"score"`
}

// SuggestOptions tunes one lookup. Zero values mean locale "en" and the
// default limit.
type SuggestOptions struct {
	Locale string
	Limit  int
}

// Cache is the slice of the cache layer the engine needs.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	InvalidateSuggestPrefixes(ctx context.Context) error
}

const (
	minPrefixLen = 2
	defaultLimit = 8
)

// Engine serves prefix suggestions from the precomputed suggestion table. It
// is the only writer of SuggestionRecords.
type Engine struct {
	suggestions repository.SuggestionRepository
	index       repository.IndexRepository
	cache       Cache
	ttl         time.Duration
	logger      *log.Logger
}

func NewEngine(suggestions repository.SuggestionRepository, index repository.IndexRepository, cache Cache, ttl time.Duration, logger *log.Logger) *Engine {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{suggestions: suggestions, index: index, cache: cache, ttl: ttl, logger: logger}
}

// Suggest returns ranked suggestions for a prefix. Prefixes shorter than two
// characters yield an empty result, never an error; store failures are logged
// and degrade to an empty result as well.
func (e *Engine) Suggest(ctx context.Context, prefix string, opts SuggestOptions) []Suggestion {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if len([]rune(prefix)) < minPrefixLen {
		return []Suggestion{}
	}

	locale := opts.Locale
	if locale == "" {
		locale = "en"
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	cacheKey := fmt.Sprintf("suggest:%s:%d:%s", locale, limit, prefix)
	if e.cache != nil {
		var cached []Suggestion
		if hit, err := e.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			return cached
		}
	}

	rows, err := e.suggestions.PrefixSearch(ctx, prefix, locale, limit)
	if err != nil {
		e.logger.Printf("[Autocomplete] prefix lookup failed prefix=%q err=%v", prefix, err)
		return []Suggestion{}
	}

	out := make([]Suggestion, 0, len(rows))
	for _, r := range rows {
		out = append(out, Suggestion{
			Text:        r.Term,
			DisplayText: r.DisplayText,
			Type:        r.Type,
			URL:         r.TargetURL,
			Icon:        r.Icon,
			Score:       float64(r.Weight) + float64(r.SearchCount)*0.1,
		})
	}

	if e.cache != nil {
		_ = e.cache.SetJSON(ctx, cacheKey, out, e.ttl)
	}
	return out
}

// categorySeeds and locationSeeds are re-registered on every rebuild with
// fixed elevated weights.
var categorySeeds = []string{"hotels", "attractions", "dining", "districts", "articles"}

const (
	categorySeedWeight = 80
	locationSeedWeight = 90
)

// RebuildIndex regenerates the suggestion table from the search index. Safe
// to re-run: upserts refresh metadata without resetting usage counters.
func (e *Engine) RebuildIndex(ctx context.Context) error {
	records, err := e.index.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list index records: %w", err)
	}

	for _, rec := range records {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		title := strings.ToLower(strings.TrimSpace(rec.Title))
		if err := e.AddTerm(ctx, repository.SuggestionRecord{
			Term:        title,
			DisplayText: rec.Title,
			Type:        repository.SuggestionContent,
			TargetURL:   "/content/" + rec.ContentID.String(),
			Weight:      rec.Popularity,
			Locale:      rec.Locale,
		}); err != nil {
			e.logger.Printf("[Autocomplete] rebuild title failed content=%s err=%v", rec.ContentID, err)
		}

		for _, term := range rec.SearchTerms {
			if len(term) < 3 {
				continue
			}
			if err := e.AddTerm(ctx, repository.SuggestionRecord{
				Term:        term,
				DisplayText: term,
				Type:        repository.SuggestionContent,
				TargetURL:   "/content/" + rec.ContentID.String(),
				Weight:      rec.Popularity / 2,
				Locale:      rec.Locale,
			}); err != nil {
				e.logger.Printf("[Autocomplete] rebuild term failed content=%s term=%q err=%v", rec.ContentID, term, err)
			}
		}
	}

	for _, cat := range categorySeeds {
		if err := e.AddTerm(ctx, repository.SuggestionRecord{
			Term:        cat,
			DisplayText: strings.ToUpper(cat[:1]) + cat[1:],
			Type:        repository.SuggestionCategory,
			TargetURL:   "/" + cat,
			Weight:      categorySeedWeight,
			Locale:      "en",
		}); err != nil {
			e.logger.Printf("[Autocomplete] rebuild category failed term=%q err=%v", cat, err)
		}
	}

	for _, loc := range search.GazetteerNames() {
		if err := e.AddTerm(ctx, repository.SuggestionRecord{
			Term:        loc,
			DisplayText: loc,
			Type:        repository.SuggestionLocation,
			Weight:      locationSeedWeight,
			Locale:      "en",
		}); err != nil {
			e.logger.Printf("[Autocomplete] rebuild location failed term=%q err=%v", loc, err)
		}
	}

	// Cached pages rank by the pre-rebuild weights; drop them now instead of
	// letting them ride out their TTL.
	if e.cache != nil {
		if err := e.cache.InvalidateSuggestPrefixes(ctx); err != nil {
			e.logger.Printf("[Autocomplete] cache invalidation after rebuild failed err=%v", err)
		}
	}

	return nil
}

// AddTerm upserts one suggestion row. Terms shorter than two characters are
// rejected by normalization, not stored.
func (e *Engine) AddTerm(ctx context.Context, rec repository.SuggestionRecord) error {
	rec.Term = strings.ToLower(strings.TrimSpace(rec.Term))
	if len([]rune(rec.Term)) < minPrefixLen {
		return nil
	}
	if rec.DisplayText == "" {
		rec.DisplayText = rec.Term
	}
	if rec.Locale == "" {
		rec.Locale = "en"
	}
	return e.suggestions.Upsert(ctx, rec)
}

// IncrementCount bumps a suggestion's usage counter. The increment happens
// in-place in the store, so concurrent callers never lose updates.
func (e *Engine) IncrementCount(ctx context.Context, term, locale string) error {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}
	if locale == "" {
		locale = "en"
	}
	return e.suggestions.IncrementSearchCount(ctx, term, locale)
}
