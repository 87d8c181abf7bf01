package indexer

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/KBRglobal/Traviapp-sub001/internal/repository"

	"github.com/google/uuid"
)

type mockContentRepo struct {
	records map[uuid.UUID]*repository.ContentRecord
	ids     []uuid.UUID
	getErr  error
	listErr error
}

func (m *mockContentRepo) Get(_ context.Context, id uuid.UUID) (*repository.ContentRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.records[id], nil
}

func (m *mockContentRepo) ListPublishedIDs(_ context.Context) ([]uuid.UUID, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.ids, nil
}

type mockIndexRepo struct {
	mu        sync.Mutex
	upserts   map[uuid.UUID]repository.IndexRecord
	deletes   []uuid.UUID
	failOn    map[uuid.UUID]error
	popViews  map[uuid.UUID]int
}

func newMockIndexRepo() *mockIndexRepo {
	return &mockIndexRepo{
		upserts:  make(map[uuid.UUID]repository.IndexRecord),
		failOn:   make(map[uuid.UUID]error),
		popViews: make(map[uuid.UUID]int),
	}
}

func (m *mockIndexRepo) Upsert(_ context.Context, rec repository.IndexRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failOn[rec.ContentID]; err != nil {
		return err
	}
	m.upserts[rec.ContentID] = rec
	return nil
}

func (m *mockIndexRepo) Get(_ context.Context, id uuid.UUID) (*repository.IndexRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.upserts[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (m *mockIndexRepo) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes = append(m.deletes, id)
	return nil
}

func (m *mockIndexRepo) ListAll(_ context.Context) ([]repository.IndexRecord, error) {
	return nil, nil
}

func (m *mockIndexRepo) Search(_ context.Context, _ repository.SearchParams) ([]repository.SearchHit, int, error) {
	return nil, 0, nil
}

func (m *mockIndexRepo) Similar(_ context.Context, _ uuid.UUID, _ int) ([]repository.SimilarHit, error) {
	return nil, nil
}

func (m *mockIndexRepo) SetPopularity(_ context.Context, id uuid.UUID, views int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.popViews[id] = views
	return nil
}

func discardLogger() *log.Logger {
	return log.New(&strings.Builder{}, "", 0)
}

func publishedHotel(id uuid.UUID) *repository.ContentRecord {
	return &repository.ContentRecord{
		ID:              id,
		Title:           "Burj Al Arab Hotel Review",
		Status:          repository.ContentStatusPublished,
		Type:            "hotel",
		Locale:          "en",
		MetaDescription: "A stay at the sail-shaped icon near jumeirah beach.",
		Blocks: []repository.ContentBlock{
			{Type: "paragraph", Content: "Rooms start at AED 3,500 per night."},
			{Type: "heading", Content: "Dining"},
			{Type: "list", Items: []string{"Afternoon tea", "Underwater restaurant"}},
			{Type: "image", Content: "ignored.jpg"},
		},
		HeroImage:         "hero.jpg",
		PrimaryKeyword:    "burj al arab",
		SecondaryKeywords: []string{"luxury hotel dubai"},
		SEOScore:          85,
		WordCount:         1200,
		ViewCount:         4200,
		UpdatedAt:         time.Now(),
		Extension: repository.ContentExtension{
			Location:      "Jumeirah",
			StarRating:    5,
			PricePerNight: 3500,
		},
	}
}

func TestIndexContentPublished(t *testing.T) {
	id := uuid.New()
	contents := &mockContentRepo{records: map[uuid.UUID]*repository.ContentRecord{id: publishedHotel(id)}}
	index := newMockIndexRepo()
	ix := New(contents, index, 2, discardLogger())

	if err := ix.IndexContent(context.Background(), id); err != nil {
		t.Fatalf("IndexContent: %v", err)
	}

	rec, ok := index.upserts[id]
	if !ok {
		t.Fatalf("expected an upsert for %s", id)
	}
	if rec.Title != "Burj Al Arab Hotel Review" {
		t.Fatalf("title = %q", rec.Title)
	}
	if !strings.Contains(rec.PlainText, "Rooms start at AED 3,500 per night.") {
		t.Fatalf("plainText = %q", rec.PlainText)
	}
	if strings.Contains(rec.PlainText, "ignored.jpg") {
		t.Fatalf("non-text block leaked into plainText: %q", rec.PlainText)
	}
	if rec.Popularity != 4200 {
		t.Fatalf("popularity = %d", rec.Popularity)
	}
	if rec.ContentType != "hotel" || rec.Locale != "en" {
		t.Fatalf("type/locale = %q/%q", rec.ContentType, rec.Locale)
	}
}

func TestIndexContentSkipsUnpublished(t *testing.T) {
	id := uuid.New()
	draft := publishedHotel(id)
	draft.Status = "draft"
	contents := &mockContentRepo{records: map[uuid.UUID]*repository.ContentRecord{id: draft}}
	index := newMockIndexRepo()
	ix := New(contents, index, 2, discardLogger())

	if err := ix.IndexContent(context.Background(), id); err != nil {
		t.Fatalf("IndexContent: %v", err)
	}
	if len(index.upserts) != 0 {
		t.Fatalf("draft content must not be indexed")
	}
}

func TestIndexContentMissingIsNoOp(t *testing.T) {
	contents := &mockContentRepo{records: map[uuid.UUID]*repository.ContentRecord{}}
	index := newMockIndexRepo()
	ix := New(contents, index, 2, discardLogger())

	if err := ix.IndexContent(context.Background(), uuid.New()); err != nil {
		t.Fatalf("missing content must be a no-op, got %v", err)
	}
	if len(index.upserts) != 0 {
		t.Fatalf("unexpected upsert")
	}
}

func TestIndexContentPropagatesFetchError(t *testing.T) {
	contents := &mockContentRepo{getErr: errors.New("connection refused")}
	ix := New(contents, newMockIndexRepo(), 2, discardLogger())

	if err := ix.IndexContent(context.Background(), uuid.New()); err == nil {
		t.Fatalf("expected fetch error")
	}
}

func TestReindexAllCountsFailures(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	records := make(map[uuid.UUID]*repository.ContentRecord, len(ids))
	for _, id := range ids {
		records[id] = publishedHotel(id)
	}
	contents := &mockContentRepo{records: records, ids: ids}
	index := newMockIndexRepo()
	index.failOn[ids[1]] = errors.New("disk full")
	ix := New(contents, index, 2, discardLogger())

	res, err := ix.ReindexAll(context.Background())
	if err != nil {
		t.Fatalf("ReindexAll: %v", err)
	}
	if res.Indexed != 2 || res.Errors != 1 {
		t.Fatalf("result = %+v, want 2 indexed / 1 error", res)
	}
	if len(index.upserts) != 2 {
		t.Fatalf("upserts = %d", len(index.upserts))
	}
}

func TestReindexAllListError(t *testing.T) {
	contents := &mockContentRepo{listErr: errors.New("timeout")}
	ix := New(contents, newMockIndexRepo(), 2, discardLogger())

	if _, err := ix.ReindexAll(context.Background()); err == nil {
		t.Fatalf("expected list error to abort the batch")
	}
}

func TestRemoveFromIndex(t *testing.T) {
	index := newMockIndexRepo()
	ix := New(&mockContentRepo{}, index, 2, discardLogger())
	id := uuid.New()

	if err := ix.RemoveFromIndex(context.Background(), id); err != nil {
		t.Fatalf("RemoveFromIndex: %v", err)
	}
	if len(index.deletes) != 1 || index.deletes[0] != id {
		t.Fatalf("deletes = %v", index.deletes)
	}
}

func TestUpdatePopularity(t *testing.T) {
	index := newMockIndexRepo()
	ix := New(&mockContentRepo{}, index, 2, discardLogger())
	id := uuid.New()

	if err := ix.UpdatePopularity(context.Background(), id, 77); err != nil {
		t.Fatalf("UpdatePopularity: %v", err)
	}
	if index.popViews[id] != 77 {
		t.Fatalf("views = %d", index.popViews[id])
	}
}

func TestFlattenBlocksTruncates(t *testing.T) {
	long := strings.Repeat("palm jumeirah beach walk ", 400)
	blocks := []repository.ContentBlock{{Type: "paragraph", Content: long}}

	out := flattenBlocks(blocks)
	if got := len([]rune(out)); got > maxPlainTextLen {
		t.Fatalf("plainText length %d exceeds cap", got)
	}
}

func TestFlattenBlocksTruncatesOnRuneBoundary(t *testing.T) {
	// One leading ASCII byte shifts every following two-byte rune off the byte
	// cap, so a byte-indexed cut would split a character.
	long := "a" + strings.Repeat("م", 6000)
	blocks := []repository.ContentBlock{{Type: "paragraph", Content: long}}

	out := flattenBlocks(blocks)
	if !utf8.ValidString(out) {
		t.Fatalf("truncation produced invalid UTF-8")
	}
	if got := len([]rune(out)); got != maxPlainTextLen {
		t.Fatalf("plainText rune length = %d, want %d", got, maxPlainTextLen)
	}
}

func TestExtractEntities(t *testing.T) {
	id := uuid.New()
	rec := publishedHotel(id)
	plainText := flattenBlocks(rec.Blocks)

	locations, prices, categories := extractEntities(rec, plainText)

	if !containsString(locations, "jumeirah") {
		t.Fatalf("locations = %v", locations)
	}
	if !containsString(prices, "AED 3,500") {
		t.Fatalf("prices = %v", prices)
	}
	if !containsString(prices, "AED 3500") {
		t.Fatalf("extension price missing: %v", prices)
	}
	if !containsString(categories, "luxury") {
		t.Fatalf("five-star hotel must be categorized luxury, got %v", categories)
	}
}

func TestExtractEntitiesRestaurantTiers(t *testing.T) {
	rec := &repository.ContentRecord{
		Type:      "restaurant",
		Extension: repository.ContentExtension{PriceTier: "Cheap"},
	}
	_, _, categories := extractEntities(rec, "")
	if !containsString(categories, "budget-friendly") {
		t.Fatalf("categories = %v", categories)
	}
}

func TestGenerateSearchTerms(t *testing.T) {
	id := uuid.New()
	terms := generateSearchTerms(publishedHotel(id))

	for _, want := range []string{"burj al arab hotel review", "burj", "arab", "hotel", "review", "burj al arab", "luxury hotel dubai"} {
		if !containsString(terms, want) {
			t.Fatalf("missing term %q in %v", want, terms)
		}
	}
	for _, term := range terms {
		if len(term) < 2 {
			t.Fatalf("short term %q survived filtering", term)
		}
	}
}

func TestGenerateSearchTermsSkipsStopWords(t *testing.T) {
	terms := generateSearchTerms(&repository.ContentRecord{
		Title:  "Mall of the Emirates",
		Type:   "attraction",
		Locale: "en",
	})

	if !containsString(terms, "mall of the emirates") {
		t.Fatalf("full title missing from %v", terms)
	}
	if containsString(terms, "the") {
		t.Fatalf("stop word seeded autocomplete: %v", terms)
	}
	for _, want := range []string{"mall", "emirates"} {
		if !containsString(terms, want) {
			t.Fatalf("missing term %q in %v", want, terms)
		}
	}
}

func TestQualityScore(t *testing.T) {
	id := uuid.New()
	full := publishedHotel(id)
	if got := qualityScore(full); got != 90 {
		t.Fatalf("qualityScore = %d, want 90", got)
	}

	bare := &repository.ContentRecord{Title: "x"}
	if got := qualityScore(bare); got != 50 {
		t.Fatalf("bare qualityScore = %d, want 50", got)
	}
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
