package indexer

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/KBRglobal/Traviapp-sub001/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Indexer projects content records into the denormalized search index. It is
// the only writer of IndexRecords.
type Indexer struct {
	contents repository.ContentRepository
	index    repository.IndexRepository
	workers  int
	logger   *log.Logger
}

func New(contents repository.ContentRepository, index repository.IndexRepository, workers int, logger *log.Logger) *Indexer {
	if workers <= 0 {
		workers = 4
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Indexer{contents: contents, index: index, workers: workers, logger: logger}
}

// ReindexResult aggregates one batch run. A non-zero Errors count is
// telemetry, not an overall failure.
type ReindexResult struct {
	Indexed int `json:"indexed"`
	Errors  int `json:"errors"`
}

// IndexContent upserts the index record for one content item. A missing item
// is a warning-level no-op (the caller may be indexing a since-deleted id); a
// non-published item is skipped, which is what keeps unpublished content out
// of the index.
func (ix *Indexer) IndexContent(ctx context.Context, contentID uuid.UUID) error {
	rec, err := ix.contents.Get(ctx, contentID)
	if err != nil {
		return fmt.Errorf("fetch content %s: %w", contentID, err)
	}
	if rec == nil {
		ix.logger.Printf("[Indexer] content %s not found, skipping", contentID)
		return nil
	}
	if rec.Status != repository.ContentStatusPublished {
		return nil
	}

	plainText := flattenBlocks(rec.Blocks)
	locations, prices, categories := extractEntities(rec, plainText)

	record := repository.IndexRecord{
		ContentID:       rec.ID,
		Title:           rec.Title,
		PlainText:       plainText,
		MetaDescription: rec.MetaDescription,
		Locations:       locations,
		Prices:          prices,
		Categories:      categories,
		ContentType:     rec.Type,
		Locale:          rec.Locale,
		Popularity:      rec.ViewCount,
		Quality:         qualityScore(rec),
		Freshness:       rec.UpdatedAt,
		SearchTerms:     generateSearchTerms(rec),
	}

	if err := ix.index.Upsert(ctx, record); err != nil {
		return fmt.Errorf("upsert index record %s: %w", contentID, err)
	}
	return nil
}

// ReindexAll rebuilds the index for every published item with a bounded
// worker pool. Per-item failures are counted and logged without aborting the
// batch; each upsert is its own atomic unit, so readers always see either the
// old or the new record. The batch stops between items when ctx is canceled.
func (ix *Indexer) ReindexAll(ctx context.Context) (ReindexResult, error) {
	start := time.Now()

	ids, err := ix.contents.ListPublishedIDs(ctx)
	if err != nil {
		return ReindexResult{}, fmt.Errorf("list published ids: %w", err)
	}

	var indexed, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ix.workers)
	for _, id := range ids {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := ix.IndexContent(gctx, id); err != nil {
				failed.Add(1)
				ix.logger.Printf("[Indexer] reindex item failed content=%s err=%v", id, err)
				return nil
			}
			indexed.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ReindexResult{}, err
	}

	res := ReindexResult{Indexed: int(indexed.Load()), Errors: int(failed.Load())}
	ix.logger.Printf("[Indexer] reindex done indexed=%d errors=%d duration=%s",
		res.Indexed, res.Errors, time.Since(start))
	return res, ctx.Err()
}

// RemoveFromIndex hard-deletes the index record on unpublish or delete.
func (ix *Indexer) RemoveFromIndex(ctx context.Context, contentID uuid.UUID) error {
	return ix.index.Delete(ctx, contentID)
}

// UpdatePopularity mirrors the view count into the index without recomputing
// the rest of the record.
func (ix *Indexer) UpdatePopularity(ctx context.Context, contentID uuid.UUID, views int) error {
	return ix.index.SetPopularity(ctx, contentID, views)
}
