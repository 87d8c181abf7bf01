package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/KBRglobal/Traviapp-sub001/internal/database"

	"github.com/google/uuid"
)

// ContentBlock is one entry of a content item's ordered block body. Only the
// text-bearing block types contribute to plain-text extraction.
type ContentBlock struct {
	Type    string   `json:"type"`
	Content string   `json:"content,omitempty"`
	Items   []string `json:"items,omitempty"`
}

// ContentExtension carries the type-specific structured fields (hotel star
// rating, dining price tier, and so on) stored in the content row's JSONB
// extension column.
type ContentExtension struct {
	Location      string  `json:"location,omitempty"`
	Area          string  `json:"area,omitempty"`
	StarRating    float64 `json:"starRating,omitempty"`
	PriceTier     string  `json:"priceTier,omitempty"`
	PricePerNight int     `json:"pricePerNight,omitempty"`
	AveragePrice  int     `json:"averagePrice,omitempty"`
}

// ContentRecord is the indexer's read view of one content item from the
// content repository.
type ContentRecord struct {
	ID                uuid.UUID
	Title             string
	Status            string
	Type              string
	Locale            string
	MetaDescription   string
	Blocks            []ContentBlock
	HeroImage         string
	PrimaryKeyword    string
	SecondaryKeywords []string
	SEOScore          int
	WordCount         int
	ViewCount         int
	UpdatedAt         time.Time
	Extension         ContentExtension
}

const ContentStatusPublished = "published"

// ContentRepository is the collaborator interface to the content store. The
// pipeline only reads from it.
type ContentRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*ContentRecord, error)
	ListPublishedIDs(ctx context.Context) ([]uuid.UUID, error)
}

type PostgresContentRepository struct {
	db      database.DB
	timeout time.Duration
}

func NewPostgresContentRepository(db database.DB, timeout time.Duration) *PostgresContentRepository {
	return &PostgresContentRepository{db: db, timeout: timeout}
}

// Get returns (nil, nil) when the content item does not exist; the caller
// decides whether that is a warning or an error.
func (r *PostgresContentRepository) Get(ctx context.Context, id uuid.UUID) (*ContentRecord, error) {
	ctx, cancel := queryCtx(ctx, r.timeout)
	defer cancel()

	row := r.db.QueryRow(ctx,
		`SELECT id, title, status, type, locale, meta_description, blocks,
		        hero_image, primary_keyword, secondary_keywords, seo_score,
		        word_count, view_count, updated_at, extension
		 FROM contents WHERE id = $1`,
		id,
	)

	var (
		rec       ContentRecord
		blocksRaw []byte
		extRaw    []byte
	)
	err := row.Scan(
		&rec.ID, &rec.Title, &rec.Status, &rec.Type, &rec.Locale,
		&rec.MetaDescription, &blocksRaw, &rec.HeroImage, &rec.PrimaryKeyword,
		&rec.SecondaryKeywords, &rec.SEOScore, &rec.WordCount, &rec.ViewCount,
		&rec.UpdatedAt, &extRaw,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}

	if len(blocksRaw) > 0 {
		if err := json.Unmarshal(blocksRaw, &rec.Blocks); err != nil {
			return nil, err
		}
	}
	if len(extRaw) > 0 {
		if err := json.Unmarshal(extRaw, &rec.Extension); err != nil {
			return nil, err
		}
	}
	return &rec, nil
}

func (r *PostgresContentRepository) ListPublishedIDs(ctx context.Context) ([]uuid.UUID, error) {
	ctx, cancel := queryCtx(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx,
		`SELECT id FROM contents WHERE status = $1 ORDER BY id`,
		ContentStatusPublished,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
