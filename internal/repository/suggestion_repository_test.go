package repository

import (
	"context"
	"testing"
	"time"

	"github.com/KBRglobal/Traviapp-sub001/internal/database"

	"github.com/google/uuid"
)

type fakeDB struct {
	lastCtx  context.Context
	lastArgs []any
}

func (f *fakeDB) Ping(_ context.Context) error { return nil }

func (f *fakeDB) Close() error { return nil }

func (f *fakeDB) Exec(ctx context.Context, _ string, args ...any) (int64, error) {
	f.lastCtx = ctx
	f.lastArgs = args
	return 1, nil
}

func (f *fakeDB) Query(ctx context.Context, _ string, args ...any) (database.Rows, error) {
	f.lastCtx = ctx
	f.lastArgs = args
	return emptyRows{}, nil
}

func (f *fakeDB) QueryRow(ctx context.Context, _ string, args ...any) database.Row {
	f.lastCtx = ctx
	f.lastArgs = args
	return emptyRows{}
}

type emptyRows struct{}

func (emptyRows) Close() {}

func (emptyRows) Next() bool { return false }

func (emptyRows) Scan(_ ...any) error { return nil }

func (emptyRows) Err() error { return nil }

func TestEscapeLike(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"burj", "burj"},
		{"50% off", `50\% off`},
		{"a_b", `a\_b`},
		{`back\slash`, `back\\slash`},
	}
	for _, c := range cases {
		if got := escapeLike(c.in); got != c.want {
			t.Fatalf("escapeLike(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestPrefixSearchEscapesLikeMetacharacters(t *testing.T) {
	db := &fakeDB{}
	repo := NewPostgresSuggestionRepository(db, false, 0)

	if _, err := repo.PrefixSearch(context.Background(), "100%_deal", "en", 5); err != nil {
		t.Fatalf("PrefixSearch: %v", err)
	}
	if got := db.lastArgs[0]; got != `100\%\_deal` {
		t.Fatalf("prefix arg = %q, want escaped metacharacters", got)
	}
}

func TestQueriesCarryDeadline(t *testing.T) {
	db := &fakeDB{}
	repo := NewPostgresSuggestionRepository(db, false, 2*time.Second)

	if err := repo.IncrementSearchCount(context.Background(), "hotels", "en"); err != nil {
		t.Fatalf("IncrementSearchCount: %v", err)
	}
	if _, ok := db.lastCtx.Deadline(); !ok {
		t.Fatalf("expected a per-call deadline on the store context")
	}

	index := NewPostgresIndexRepository(db, 2*time.Second)
	if err := index.Delete(context.Background(), uuid.New()); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := db.lastCtx.Deadline(); !ok {
		t.Fatalf("expected a per-call deadline on the index store context")
	}
}

func TestZeroTimeoutLeavesContextUnbounded(t *testing.T) {
	db := &fakeDB{}
	repo := NewPostgresSuggestionRepository(db, false, 0)

	if err := repo.IncrementSearchCount(context.Background(), "hotels", "en"); err != nil {
		t.Fatalf("IncrementSearchCount: %v", err)
	}
	if _, ok := db.lastCtx.Deadline(); ok {
		t.Fatalf("zero timeout must not attach a deadline")
	}
}
