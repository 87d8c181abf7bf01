package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/KBRglobal/Traviapp-sub001/internal/autocomplete"
	"github.com/KBRglobal/Traviapp-sub001/internal/repository"
	"github.com/KBRglobal/Traviapp-sub001/internal/search"

	"github.com/google/uuid"
)

// SearchParams is one search request after HTTP parsing.
type SearchParams struct {
	Query  string
	Types  []string
	Locale string
	Limit  int
	Page   int
}

// SearchPage is one ranked result page.
type SearchPage struct {
	Query   string                 `json:"query"`
	Results []repository.SearchHit `json:"results"`
	Total   int                    `json:"total"`
	Page    int                    `json:"page"`
	Limit   int                    `json:"limit"`
	Rewrite search.RewrittenQuery  `json:"rewrite"`
	Intent  search.Intent          `json:"intent"`
}

// Analysis is the debug view of query understanding.
type Analysis struct {
	Query     string                `json:"query"`
	Processed search.ProcessedQuery `json:"processed"`
	Intent    search.Intent         `json:"intent"`
}

type SearchUsecase interface {
	Search(ctx context.Context, params SearchParams) (SearchPage, error)
	Analyze(ctx context.Context, query, locale string) Analysis
	Similar(ctx context.Context, contentID uuid.UUID, limit int) ([]repository.SimilarHit, error)
}

type Search struct {
	rewriter    *search.Rewriter
	index       repository.IndexRepository
	suggestions *autocomplete.Engine
	logger      *log.Logger
}

func NewSearchUsecase(rewriter *search.Rewriter, index repository.IndexRepository, suggestions *autocomplete.Engine, logger *log.Logger) *Search {
	if logger == nil {
		logger = log.Default()
	}
	return &Search{rewriter: rewriter, index: index, suggestions: suggestions, logger: logger}
}

// Search runs the full pipeline: rewrite, classify, execute the weighted
// term query, and record the query into suggestion usage.
func (u *Search) Search(ctx context.Context, params SearchParams) (SearchPage, error) {
	query := strings.TrimSpace(params.Query)
	if query == "" {
		return SearchPage{}, ErrInvalidInput
	}
	limit := params.Limit
	if limit == 0 {
		limit = 20
	}
	if limit < 0 || limit > 100 {
		return SearchPage{}, ErrInvalidInput
	}
	page := params.Page
	if page == 0 {
		page = 1
	}
	if page < 1 {
		return SearchPage{}, ErrInvalidInput
	}

	rewritten := u.rewriter.Rewrite(ctx, query, params.Locale)
	// Classification reads the raw query: the rewrite stages strip the stop
	// words and fillers the entity extractors anchor on ("up to", "for N").
	intent := search.Classify(query, params.Locale)

	types := params.Types
	if len(types) == 0 {
		types = intent.Filters.ContentTypes
	}

	expr := search.BuildExpandedQuery(rewritten.Rewritten)
	if expr == "" {
		return SearchPage{
			Query: query, Results: []repository.SearchHit{}, Total: 0,
			Page: page, Limit: limit, Rewrite: rewritten, Intent: intent,
		}, nil
	}

	hits, total, err := u.index.Search(ctx, repository.SearchParams{
		Expression:   expr,
		ContentTypes: types,
		Locale:       params.Locale,
		Limit:        limit,
		Offset:       (page - 1) * limit,
	})
	if err != nil {
		u.logger.Printf("[Search] query failed q=%q err=%v", query, err)
		return SearchPage{}, fmt.Errorf("%w: search execution", ErrInternal)
	}

	// Usage tracking is best-effort; a miss just means the term is not a
	// suggestion yet.
	if u.suggestions != nil {
		if err := u.suggestions.IncrementCount(ctx, rewritten.Rewritten, params.Locale); err != nil {
			u.logger.Printf("[Search] suggestion count failed q=%q err=%v", query, err)
		}
	}

	return SearchPage{
		Query:   query,
		Results: hits,
		Total:   total,
		Page:    page,
		Limit:   limit,
		Rewrite: rewritten,
		Intent:  intent,
	}, nil
}

// Analyze exposes the processed query and classified intent for debugging.
func (u *Search) Analyze(_ context.Context, query, locale string) Analysis {
	return Analysis{
		Query:     query,
		Processed: search.Process(query, locale),
		Intent:    search.Classify(query, locale),
	}
}

// Similar returns nearest-neighbor content for an item, capped at limit.
func (u *Search) Similar(ctx context.Context, contentID uuid.UUID, limit int) ([]repository.SimilarHit, error) {
	if limit <= 0 {
		limit = 5
	}
	hits, err := u.index.Similar(ctx, contentID, limit)
	if err != nil {
		u.logger.Printf("[Search] similar lookup failed content=%s err=%v", contentID, err)
		return nil, fmt.Errorf("%w: similar lookup", ErrInternal)
	}
	return hits, nil
}
