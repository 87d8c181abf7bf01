package search

import (
	"strings"
	"testing"
)

func TestExpandIsReflexive(t *testing.T) {
	queries := []string{
		"cheap hotel dubai marina",
		"brunch",
		"מלון זול",
		"something entirely unknown",
		"",
	}
	for _, q := range queries {
		exp := Expand(q, "")
		set := make(map[string]struct{}, len(exp.Expanded))
		for _, term := range exp.Expanded {
			set[term] = struct{}{}
		}
		for _, tok := range strings.Fields(strings.ToLower(q)) {
			if _, ok := set[tok]; !ok {
				t.Fatalf("Expand(%q) dropped original token %q: %v", q, tok, exp.Expanded)
			}
		}
	}
}

func TestExpandSynonymGroup(t *testing.T) {
	exp := Expand("hotel", "en")
	want := []string{"accommodation", "stay", "מלון", "فندق"}
	set := make(map[string]struct{}, len(exp.Expanded))
	for _, term := range exp.Expanded {
		set[term] = struct{}{}
	}
	for _, w := range want {
		if _, ok := set[w]; !ok {
			t.Fatalf("group member %q missing from %v", w, exp.Expanded)
		}
	}
}

func TestExpandDeduplicates(t *testing.T) {
	exp := Expand("hotel hotel hotel", "en")
	seen := make(map[string]int)
	for _, term := range exp.Expanded {
		seen[term]++
		if seen[term] > 1 {
			t.Fatalf("duplicate term %q in expansion %v", term, exp.Expanded)
		}
	}
}

func TestExpandDirectedPhraseKey(t *testing.T) {
	exp := Expand("best arabic food spots", "en")
	set := make(map[string]struct{}, len(exp.Expanded))
	for _, term := range exp.Expanded {
		set[term] = struct{}{}
	}
	if _, ok := set["shawarma"]; !ok {
		t.Fatalf("phrase expansion missing, got %v", exp.Expanded)
	}
	if _, ok := set["mezze"]; !ok {
		t.Fatalf("phrase expansion missing, got %v", exp.Expanded)
	}
}

func TestExpandDirectedIsNotSymmetric(t *testing.T) {
	exp := Expand("shawarma", "en")
	for _, term := range exp.Expanded {
		if term == "arabic food" {
			t.Fatalf("directed expansion leaked backwards: %v", exp.Expanded)
		}
	}
}

func TestBuildExpandedQueryWeights(t *testing.T) {
	expr := BuildExpandedQuery("cheap hotel dubai")

	for _, tok := range []string{"cheap:A", "hotel:A", "dubai:A"} {
		if !strings.Contains(expr, tok) {
			t.Fatalf("missing original term %q in %q", tok, expr)
		}
	}
	if strings.Count(expr, ":B") > 10 {
		t.Fatalf("expansion fan-out exceeds 10: %q", expr)
	}
	if !strings.Contains(expr, " | ") {
		t.Fatalf("expected OR-joined expression, got %q", expr)
	}
}

func TestBuildExpandedQueryCapsAtTen(t *testing.T) {
	// A query hitting several groups and expansions generates far more than
	// ten candidate terms.
	expr := BuildExpandedQuery("cheap luxury hotel restaurant beach brunch desert shopping spa tour")
	if got := strings.Count(expr, ":B"); got > 10 {
		t.Fatalf("got %d low-weight terms, want <= 10", got)
	}
}

func TestBuildExpandedQueryEmpty(t *testing.T) {
	if expr := BuildExpandedQuery("   "); expr != "" {
		t.Fatalf("expected empty expression, got %q", expr)
	}
}

func TestBuildExpandedQueryQuotesPhrases(t *testing.T) {
	expr := BuildExpandedQuery("hotel")
	if strings.Contains(expr, "five star:B") {
		t.Fatalf("multi-word lexeme must be quoted: %q", expr)
	}
}

func TestRelatedTerms(t *testing.T) {
	got := RelatedTerms("hotel", 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 related terms, got %v", got)
	}
	for _, term := range got {
		if term == "hotel" {
			t.Fatalf("input term must be excluded: %v", got)
		}
	}

	if got := RelatedTerms("nothing-known", 5); len(got) != 0 {
		t.Fatalf("expected no related terms, got %v", got)
	}

	if got := RelatedTerms("hotel", 0); len(got) != 0 {
		t.Fatalf("expected empty for zero limit, got %v", got)
	}
}
