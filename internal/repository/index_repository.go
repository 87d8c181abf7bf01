package repository

import (
	"context"
	"time"

	"github.com/KBRglobal/Traviapp-sub001/internal/database"

	"github.com/google/uuid"
)

// IndexRecord is the denormalized, search-optimized projection of one
// published content item. Exactly one row exists per published item.
type IndexRecord struct {
	ContentID       uuid.UUID
	Title           string
	PlainText       string
	MetaDescription string
	Locations       []string
	Prices          []string
	Categories      []string
	ContentType     string
	Locale          string
	Popularity      int
	Quality         int
	Freshness       time.Time
	SearchTerms     []string
}

// SearchParams drives one full-text query. Expression is a weighted tsquery
// expression as produced by search.BuildExpandedQuery.
type SearchParams struct {
	Expression   string
	ContentTypes []string
	Locale       string
	Limit        int
	Offset       int
}

// SearchHit is one ranked row of a full-text query.
type SearchHit struct {
	ContentID       uuid.UUID `json:"contentId"`
	Title           string    `json:"title"`
	MetaDescription string    `json:"metaDescription"`
	ContentType     string    `json:"contentType"`
	Locale          string    `json:"locale"`
	Popularity      int       `json:"popularity"`
	Quality         int       `json:"quality"`
	Rank            float64   `json:"rank"`
}

// SimilarHit is one nearest-neighbor candidate for a content item.
type SimilarHit struct {
	ContentID uuid.UUID `json:"contentId"`
	Score     float64   `json:"score"`
}

type IndexRepository interface {
	Upsert(ctx context.Context, rec IndexRecord) error
	Get(ctx context.Context, contentID uuid.UUID) (*IndexRecord, error)
	Delete(ctx context.Context, contentID uuid.UUID) error
	ListAll(ctx context.Context) ([]IndexRecord, error)
	Search(ctx context.Context, params SearchParams) ([]SearchHit, int, error)
	Similar(ctx context.Context, contentID uuid.UUID, limit int) ([]SimilarHit, error)
	SetPopularity(ctx context.Context, contentID uuid.UUID, views int) error
}

type PostgresIndexRepository struct {
	db      database.DB
	timeout time.Duration
}

func NewPostgresIndexRepository(db database.DB, timeout time.Duration) *PostgresIndexRepository {
	return &PostgresIndexRepository{db: db, timeout: timeout}
}

// Upsert fully recomputes the row from source, so last-writer-wins on
// conflict is safe without explicit locking.
func (r *PostgresIndexRepository) Upsert(ctx context.Context, rec IndexRecord) error {
	ctx, cancel := queryCtx(ctx, r.timeout)
	defer cancel()

	_, err := r.db.Exec(ctx,
		`INSERT INTO search_index
		   (content_id, title, plain_text, meta_description, locations, prices,
		    categories, content_type, locale, popularity, quality, freshness,
		    search_terms, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,now())
		 ON CONFLICT (content_id) DO UPDATE SET
		   title = EXCLUDED.title,
		   plain_text = EXCLUDED.plain_text,
		   meta_description = EXCLUDED.meta_description,
		   locations = EXCLUDED.locations,
		   prices = EXCLUDED.prices,
		   categories = EXCLUDED.categories,
		   content_type = EXCLUDED.content_type,
		   locale = EXCLUDED.locale,
		   popularity = EXCLUDED.popularity,
		   quality = EXCLUDED.quality,
		   freshness = EXCLUDED.freshness,
		   search_terms = EXCLUDED.search_terms,
		   updated_at = now()`,
		rec.ContentID, rec.Title, rec.PlainText, rec.MetaDescription,
		rec.Locations, rec.Prices, rec.Categories, rec.ContentType, rec.Locale,
		rec.Popularity, rec.Quality, rec.Freshness, rec.SearchTerms,
	)
	return err
}

func (r *PostgresIndexRepository) Get(ctx context.Context, contentID uuid.UUID) (*IndexRecord, error) {
	ctx, cancel := queryCtx(ctx, r.timeout)
	defer cancel()

	row := r.db.QueryRow(ctx,
		`SELECT content_id, title, plain_text, meta_description, locations,
		        prices, categories, content_type, locale, popularity, quality,
		        freshness, search_terms
		 FROM search_index WHERE content_id = $1`,
		contentID,
	)
	var rec IndexRecord
	if err := row.Scan(
		&rec.ContentID, &rec.Title, &rec.PlainText, &rec.MetaDescription,
		&rec.Locations, &rec.Prices, &rec.Categories, &rec.ContentType,
		&rec.Locale, &rec.Popularity, &rec.Quality, &rec.Freshness,
		&rec.SearchTerms,
	); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *PostgresIndexRepository) Delete(ctx context.Context, contentID uuid.UUID) error {
	ctx, cancel := queryCtx(ctx, r.timeout)
	defer cancel()

	_, err := r.db.Exec(ctx, `DELETE FROM search_index WHERE content_id = $1`, contentID)
	return err
}

func (r *PostgresIndexRepository) ListAll(ctx context.Context) ([]IndexRecord, error) {
	ctx, cancel := queryCtx(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx,
		`SELECT content_id, title, plain_text, meta_description, locations,
		        prices, categories, content_type, locale, popularity, quality,
		        freshness, search_terms
		 FROM search_index ORDER BY content_id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]IndexRecord, 0)
	for rows.Next() {
		var rec IndexRecord
		if err := rows.Scan(
			&rec.ContentID, &rec.Title, &rec.PlainText, &rec.MetaDescription,
			&rec.Locations, &rec.Prices, &rec.Categories, &rec.ContentType,
			&rec.Locale, &rec.Popularity, &rec.Quality, &rec.Freshness,
			&rec.SearchTerms,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *PostgresIndexRepository) Search(ctx context.Context, params SearchParams) ([]SearchHit, int, error) {
	if params.Limit <= 0 {
		params.Limit = 20
	}
	if params.Offset < 0 {
		params.Offset = 0
	}
	types := params.ContentTypes
	if types == nil {
		types = []string{}
	}

	ctx, cancel := queryCtx(ctx, r.timeout)
	defer cancel()

	var total int
	if err := r.db.QueryRow(ctx,
		`SELECT count(*)
		 FROM search_index
		 WHERE search_vector @@ to_tsquery('simple', $1)
		   AND ($2 = '' OR locale = $2)
		   AND (cardinality($3::text[]) = 0 OR content_type = ANY($3))`,
		params.Expression, params.Locale, types,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT content_id, title, meta_description, content_type, locale,
		        popularity, quality,
		        ts_rank(search_vector, to_tsquery('simple', $1)) AS rank
		 FROM search_index
		 WHERE search_vector @@ to_tsquery('simple', $1)
		   AND ($2 = '' OR locale = $2)
		   AND (cardinality($3::text[]) = 0 OR content_type = ANY($3))
		 ORDER BY rank DESC, popularity DESC
		 LIMIT $4 OFFSET $5`,
		params.Expression, params.Locale, types, params.Limit, params.Offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]SearchHit, 0, params.Limit)
	for rows.Next() {
		var h SearchHit
		if err := rows.Scan(
			&h.ContentID, &h.Title, &h.MetaDescription, &h.ContentType,
			&h.Locale, &h.Popularity, &h.Quality, &h.Rank,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, h)
	}
	return out, total, rows.Err()
}

// Similar scores neighbors by shared categories and locations. This stands in
// for the external semantic-similarity collaborator; only the {contentId,
// score} contract matters.
func (r *PostgresIndexRepository) Similar(ctx context.Context, contentID uuid.UUID, limit int) ([]SimilarHit, error) {
	if limit <= 0 {
		limit = 5
	}
	ctx, cancel := queryCtx(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx,
		`SELECT o.content_id,
		        (cardinality(ARRAY(SELECT unnest(o.categories) INTERSECT SELECT unnest(s.categories))) * 2
		       + cardinality(ARRAY(SELECT unnest(o.locations) INTERSECT SELECT unnest(s.locations))))::float AS score
		 FROM search_index s
		 JOIN search_index o ON o.content_id <> s.content_id
		 WHERE s.content_id = $1
		 ORDER BY score DESC, o.popularity DESC
		 LIMIT $2`,
		contentID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SimilarHit, 0, limit)
	for rows.Next() {
		var h SimilarHit
		if err := rows.Scan(&h.ContentID, &h.Score); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *PostgresIndexRepository) SetPopularity(ctx context.Context, contentID uuid.UUID, views int) error {
	ctx, cancel := queryCtx(ctx, r.timeout)
	defer cancel()

	_, err := r.db.Exec(ctx,
		`UPDATE search_index SET popularity = $2, updated_at = now() WHERE content_id = $1`,
		contentID, views,
	)
	return err
}
