package repository

import (
	"context"
	"strings"
	"time"

	"github.com/KBRglobal/Traviapp-sub001/internal/database"
	"github.com/KBRglobal/Traviapp-sub001/internal/search"
)

// SuggestionRecord is one precomputed autocomplete candidate. (term, locale)
// is the natural key; re-adding upserts metadata without touching the usage
// counter.
type SuggestionRecord struct {
	Term        string `json:"term"`
	DisplayText string `json:"displayText"`
	Type        string `json:"type"`
	TargetURL   string `json:"targetUrl,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Weight      int    `json:"weight"`
	SearchCount int    `json:"searchCount"`
	Locale      string `json:"locale"`
}

// Suggestion types.
const (
	SuggestionContent  = "content"
	SuggestionCategory = "category"
	SuggestionLocation = "location"
	SuggestionTrending = "trending"
	SuggestionRecent   = "recent"
)

type SuggestionRepository interface {
	Upsert(ctx context.Context, rec SuggestionRecord) error
	PrefixSearch(ctx context.Context, prefix, locale string, limit int) ([]SuggestionRecord, error)
	IncrementSearchCount(ctx context.Context, term, locale string) error

	// Trigram lookups back the spell checker's fuzzy fallback.
	SimilarTerms(ctx context.Context, word string, threshold float64) ([]search.TermSimilarity, error)
	TrigramSupported() bool
}

// PostgresSuggestionRepository implements SuggestionRepository. trigram is the
// pg_trgm capability flag probed at startup; when false, SimilarTerms is
// never attempted and the spell checker stays dictionary-only.
type PostgresSuggestionRepository struct {
	db      database.DB
	trigram bool
	timeout time.Duration
}

func NewPostgresSuggestionRepository(db database.DB, trigram bool, timeout time.Duration) *PostgresSuggestionRepository {
	return &PostgresSuggestionRepository{db: db, trigram: trigram, timeout: timeout}
}

func (r *PostgresSuggestionRepository) Upsert(ctx context.Context, rec SuggestionRecord) error {
	ctx, cancel := queryCtx(ctx, r.timeout)
	defer cancel()

	_, err := r.db.Exec(ctx,
		`INSERT INTO search_suggestions
		   (term, display_text, type, target_url, icon, weight, search_count, locale)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		 ON CONFLICT (term, locale) DO UPDATE SET
		   display_text = EXCLUDED.display_text,
		   type = EXCLUDED.type,
		   target_url = EXCLUDED.target_url,
		   icon = EXCLUDED.icon,
		   weight = EXCLUDED.weight`,
		rec.Term, rec.DisplayText, rec.Type, rec.TargetURL, rec.Icon,
		rec.Weight, rec.SearchCount, rec.Locale,
	)
	return err
}

func (r *PostgresSuggestionRepository) PrefixSearch(ctx context.Context, prefix, locale string, limit int) ([]SuggestionRecord, error) {
	if limit <= 0 {
		limit = 8
	}
	ctx, cancel := queryCtx(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx,
		`SELECT term, display_text, type, target_url, icon, weight, search_count, locale
		 FROM search_suggestions
		 WHERE term LIKE $1 || '%' AND locale = $2
		 ORDER BY weight DESC, search_count DESC
		 LIMIT $3`,
		escapeLike(prefix), locale, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SuggestionRecord, 0, limit)
	for rows.Next() {
		var rec SuggestionRecord
		if err := rows.Scan(
			&rec.Term, &rec.DisplayText, &rec.Type, &rec.TargetURL, &rec.Icon,
			&rec.Weight, &rec.SearchCount, &rec.Locale,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// IncrementSearchCount is an in-place atomic increment: concurrent callers
// never lose updates.
func (r *PostgresSuggestionRepository) IncrementSearchCount(ctx context.Context, term, locale string) error {
	ctx, cancel := queryCtx(ctx, r.timeout)
	defer cancel()

	_, err := r.db.Exec(ctx,
		`UPDATE search_suggestions
		 SET search_count = search_count + 1
		 WHERE term = $1 AND locale = $2`,
		term, locale,
	)
	return err
}

func (r *PostgresSuggestionRepository) SimilarTerms(ctx context.Context, word string, threshold float64) ([]search.TermSimilarity, error) {
	ctx, cancel := queryCtx(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx,
		`SELECT term, similarity(term, $1) AS sim
		 FROM search_suggestions
		 WHERE similarity(term, $1) > $2
		 ORDER BY sim DESC
		 LIMIT 5`,
		word, threshold,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]search.TermSimilarity, 0, 5)
	for rows.Next() {
		var t search.TermSimilarity
		if err := rows.Scan(&t.Term, &t.Similarity); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *PostgresSuggestionRepository) TrigramSupported() bool {
	return r != nil && r.trigram
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes LIKE metacharacters so a user-supplied prefix only
// ever matches literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
