package search

import (
	"context"
	"strings"
	"testing"
	"time"
)

func newTestRewriter() *Rewriter {
	return NewRewriter(NewSpellChecker(nil, nil, time.Hour, nil))
}

func TestHandlePatterns(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"best hotels in dubai", "hotels"},
		{"restaurants near burj khalifa", "restaurants burj khalifa"},
		{"top 10 attractions", "attractions"},
		{"cheap brunch", "cheap brunch"},
	}
	for _, c := range cases {
		if got := handlePatterns(c.in); got != c.want {
			t.Fatalf("handlePatterns(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestRewriteEndToEnd(t *testing.T) {
	got := newTestRewriter().Rewrite(context.Background(), "burk khlaifa hotell", "en")

	if got.Original != "burk khlaifa hotell" {
		t.Fatalf("original = %q", got.Original)
	}
	if got.Rewritten != "burj khalifa hotel" {
		t.Fatalf("rewritten = %q, want %q", got.Rewritten, "burj khalifa hotel")
	}
	if !got.SpellCorrected {
		t.Fatalf("expected spellCorrected = true")
	}
	if got.DidYouMean != "burj khalifa hotel" {
		t.Fatalf("didYouMean = %q", got.DidYouMean)
	}

	hasTransform := func(name string) bool {
		for _, tr := range got.Transformations {
			if tr == name {
				return true
			}
		}
		return false
	}
	if !hasTransform("normalized") || !hasTransform("spell_corrected") {
		t.Fatalf("transformations = %v", got.Transformations)
	}
}

func TestRewritePatternStage(t *testing.T) {
	got := newTestRewriter().Rewrite(context.Background(), "Best Hotels in Dubai!", "en")
	if got.Rewritten != "hotels" {
		t.Fatalf("rewritten = %q, want %q", got.Rewritten, "hotels")
	}
	found := false
	for _, tr := range got.Transformations {
		if tr == "pattern_matched" {
			found = true
		}
	}
	if !found {
		t.Fatalf("transformations = %v, missing pattern_matched", got.Transformations)
	}
}

func TestRewriteCleanQuery(t *testing.T) {
	got := newTestRewriter().Rewrite(context.Background(), "dubai mall", "en")
	if got.SpellCorrected {
		t.Fatalf("clean query must not be marked corrected")
	}
	if got.DidYouMean != "" {
		t.Fatalf("didYouMean = %q, want empty", got.DidYouMean)
	}
	if got.Rewritten != "dubai mall" {
		t.Fatalf("rewritten = %q", got.Rewritten)
	}
	if len(got.ExpandedTerms) == 0 {
		t.Fatalf("expected expansion terms")
	}
}

func TestRewriteDetectsLanguage(t *testing.T) {
	got := newTestRewriter().Rewrite(context.Background(), "מלון זול", "")
	if got.Language != "he" {
		t.Fatalf("language = %q, want he", got.Language)
	}
}

func TestGenerateAlternatives(t *testing.T) {
	r := newTestRewriter()

	got := r.GenerateAlternatives(context.Background(), "hotell dubai", 5)
	if len(got) == 0 {
		t.Fatalf("expected alternatives for a misspelled query")
	}
	if len(got) > 5 {
		t.Fatalf("limit not honored, got %d", len(got))
	}
	for _, alt := range got {
		if alt == "hotell dubai" {
			t.Fatalf("normalized input must be excluded: %v", got)
		}
	}
	if got[0] != "hotel dubai" {
		t.Fatalf("first alternative should be the spell fix, got %v", got)
	}

	if got := r.GenerateAlternatives(context.Background(), "anything", 0); len(got) != 0 {
		t.Fatalf("zero limit must return empty, got %v", got)
	}
}

func TestGenerateAlternativesSubstitutesRelatedTerms(t *testing.T) {
	got := newTestRewriter().GenerateAlternatives(context.Background(), "cheap hotel", 6)
	foundSub := false
	for _, alt := range got {
		if strings.Contains(alt, "accommodation") || strings.Contains(alt, "affordable") || strings.Contains(alt, "budget") {
			foundSub = true
		}
	}
	if !foundSub {
		t.Fatalf("expected a related-term substitution in %v", got)
	}
}
