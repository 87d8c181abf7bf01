package search

import "testing"

func TestClassifyEmptyQuery(t *testing.T) {
	got := Classify("", "en")
	if got.Primary != IntentGeneral {
		t.Fatalf("primary = %q, want general", got.Primary)
	}
	if got.Confidence != 0.4 {
		t.Fatalf("confidence = %v, want 0.4", got.Confidence)
	}
}

func TestClassifyTotality(t *testing.T) {
	queries := []string{
		"", "?!", "zzzz qqqq", "hotels", "where to eat", "מלון", "فندق",
		"romantic dinner for 2 people", "top 10 attractions", "random words here",
	}
	for _, q := range queries {
		got := Classify(q, "")
		if got.Primary == "" {
			t.Fatalf("Classify(%q) produced empty primary intent", q)
		}
		if got.Confidence <= 0 || got.Confidence > 1.0 {
			t.Fatalf("Classify(%q) confidence %v out of range", q, got.Confidence)
		}
	}
}

func TestClassifyPrimaryIntents(t *testing.T) {
	cases := []struct {
		query string
		want  string
	}{
		{"cheapest deals this weekend", IntentPriceComparison},
		{"best hotels", IntentHotelSearch},
		{"where to eat tonight", IntentRestaurantSearch},
		{"sightseeing spots", IntentAttractionSearch},
		{"things to do with kids", IntentActivitySearch},
		{"weekend itinerary", IntentGuideSearch},
		{"restaurants near burj khalifa", IntentRestaurantSearch},
		{"מלונות מומלצים", IntentHotelSearch},
		{"مطاعم فاخرة", IntentRestaurantSearch},
	}
	for _, c := range cases {
		if got := Classify(c.query, ""); got.Primary != c.want {
			t.Fatalf("Classify(%q).Primary = %q, want %q", c.query, got.Primary, c.want)
		}
	}
}

func TestClassifyTieKeepsFirstIntent(t *testing.T) {
	// Both canonical patterns match at the same confidence; the earlier table
	// entry wins.
	got := Classify("hotel restaurant", "en")
	if got.Primary != IntentHotelSearch {
		t.Fatalf("primary = %q, want hotel_search", got.Primary)
	}
}

func TestClassifyCanonicalPatternScoresHigher(t *testing.T) {
	canonical := Classify("hotels", "en")
	secondary := Classify("staycation", "en")
	if canonical.Confidence <= secondary.Confidence {
		t.Fatalf("canonical %v must beat secondary %v", canonical.Confidence, secondary.Confidence)
	}
}

func TestClassifyEntityBoostCapped(t *testing.T) {
	got := Classify("luxury hotels in dubai marina", "en")
	if got.Primary != IntentHotelSearch {
		t.Fatalf("primary = %q", got.Primary)
	}
	if got.Confidence != 1.0 {
		t.Fatalf("confidence = %v, want capped at 1.0", got.Confidence)
	}
}

func TestExtractEntitiesFull(t *testing.T) {
	e := ExtractEntities("romantic dinner under 500 for 2 people in dubai marina")

	if len(e.Locations) != 1 || e.Locations[0] != "dubai marina" {
		t.Fatalf("locations = %v", e.Locations)
	}
	if e.PriceMax == nil || *e.PriceMax != 500 {
		t.Fatalf("priceMax = %v", e.PriceMax)
	}
	if e.PriceMin != nil {
		t.Fatalf("unexpected priceMin %v", *e.PriceMin)
	}
	if e.Occasion != "romantic" {
		t.Fatalf("occasion = %q", e.Occasion)
	}
	if e.GroupSize == nil || *e.GroupSize != 2 {
		t.Fatalf("groupSize = %v", e.GroupSize)
	}
}

func TestExtractEntitiesRating(t *testing.T) {
	e := ExtractEntities("4 star hotels")
	if e.Rating == nil || *e.Rating != 4 {
		t.Fatalf("rating = %v", e.Rating)
	}

	e = ExtractEntities("hotels rated 4+")
	if e.Rating == nil || *e.Rating != 4 {
		t.Fatalf("plus-notation rating = %v", e.Rating)
	}
}

func TestExtractEntitiesHebrewAlias(t *testing.T) {
	e := ExtractEntities("מלון בורג' חליפה")
	if len(e.Locations) == 0 || e.Locations[0] != "burj khalifa" {
		t.Fatalf("alias must resolve to canonical name, got %v", e.Locations)
	}
}

func TestDeriveFiltersContentTypes(t *testing.T) {
	got := Classify("hotels under 800", "en")
	if len(got.Filters.ContentTypes) != 1 || got.Filters.ContentTypes[0] != "hotel" {
		t.Fatalf("contentTypes = %v", got.Filters.ContentTypes)
	}
	if got.Filters.PriceMin == nil || *got.Filters.PriceMin != 0 {
		t.Fatalf("priceMin = %v, want defaulted 0", got.Filters.PriceMin)
	}
	if got.Filters.PriceMax == nil || *got.Filters.PriceMax != 800 {
		t.Fatalf("priceMax = %v", got.Filters.PriceMax)
	}
}

func TestDeriveFiltersDefaultCeiling(t *testing.T) {
	got := Classify("hotels from 200", "en")
	if got.Filters.PriceMin == nil || *got.Filters.PriceMin != 200 {
		t.Fatalf("priceMin = %v", got.Filters.PriceMin)
	}
	if got.Filters.PriceMax == nil || *got.Filters.PriceMax != 10000 {
		t.Fatalf("priceMax = %v, want defaulted ceiling", got.Filters.PriceMax)
	}
}

func TestDeriveFiltersGeneralHasNoTypes(t *testing.T) {
	got := Classify("zzzz qqqq", "en")
	if len(got.Filters.ContentTypes) != 0 {
		t.Fatalf("general intent must not restrict types, got %v", got.Filters.ContentTypes)
	}
}
