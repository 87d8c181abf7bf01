package indexer

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/KBRglobal/Traviapp-sub001/internal/repository"
	"github.com/KBRglobal/Traviapp-sub001/internal/search"
)

// maxPlainTextLen caps the flattened body before storage, counted in runes so
// multibyte text is never cut mid-character.
const maxPlainTextLen = 5000

var pricePattern = regexp.MustCompile(`(?:AED|USD|EUR|\$|€)\s?\d+(?:,\d{3})*`)

// flattenBlocks concatenates the string payloads of text-bearing blocks in
// order. Non-text block types contribute nothing.
func flattenBlocks(blocks []repository.ContentBlock) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		switch b.Type {
		case "paragraph", "heading", "quote":
			if s := strings.TrimSpace(b.Content); s != "" {
				parts = append(parts, s)
			}
		case "list":
			for _, item := range b.Items {
				if s := strings.TrimSpace(item); s != "" {
					parts = append(parts, s)
				}
			}
		}
	}

	out := strings.Join(parts, " ")
	if r := []rune(out); len(r) > maxPlainTextLen {
		out = string(r[:maxPlainTextLen])
	}
	return out
}

// extractEntities scans title+body+meta for gazetteer locations and currency
// prices, then merges the structured extension fields and type-specific
// category rules. All three collections are deduplicated.
func extractEntities(rec *repository.ContentRecord, plainText string) (locations, prices, categories []string) {
	text := strings.ToLower(rec.Title + " " + plainText + " " + rec.MetaDescription)

	locSet := newOrderedSet()
	for _, name := range search.GazetteerNames() {
		if strings.Contains(text, name) {
			locSet.add(search.CanonicalLocation(name))
		}
	}
	if loc := strings.ToLower(strings.TrimSpace(rec.Extension.Location)); loc != "" {
		locSet.add(loc)
	}
	if area := strings.ToLower(strings.TrimSpace(rec.Extension.Area)); area != "" {
		locSet.add(area)
	}

	priceSet := newOrderedSet()
	for _, m := range pricePattern.FindAllString(rec.Title+" "+plainText+" "+rec.MetaDescription, -1) {
		priceSet.add(m)
	}
	if rec.Extension.PricePerNight > 0 {
		priceSet.add("AED " + strconv.Itoa(rec.Extension.PricePerNight))
	}
	if rec.Extension.AveragePrice > 0 {
		priceSet.add("AED " + strconv.Itoa(rec.Extension.AveragePrice))
	}

	catSet := newOrderedSet()
	switch rec.Type {
	case "hotel":
		if rec.Extension.StarRating >= 4 {
			catSet.add("luxury")
		}
	case "restaurant":
		switch rec.Extension.PriceTier {
		case "Expensive":
			catSet.add("fine-dining")
		case "Cheap":
			catSet.add("budget-friendly")
		}
	}

	return locSet.values(), priceSet.values(), catSet.values()
}

// generateSearchTerms seeds autocomplete with the lowercased title, title
// words of three or more characters (stop words excluded), the keyword fields
// and the content type.
func generateSearchTerms(rec *repository.ContentRecord) []string {
	set := newOrderedSet()

	title := strings.ToLower(strings.TrimSpace(rec.Title))
	set.add(title)
	for _, w := range search.StripStopWords(strings.Fields(title), rec.Locale) {
		if len(w) >= 3 {
			set.add(w)
		}
	}

	set.add(strings.ToLower(strings.TrimSpace(rec.PrimaryKeyword)))
	for _, kw := range rec.SecondaryKeywords {
		set.add(strings.ToLower(strings.TrimSpace(kw)))
	}
	set.add(strings.ToLower(rec.Type))

	out := make([]string, 0, len(set.order))
	for _, t := range set.values() {
		if len(t) < 2 {
			continue
		}
		out = append(out, t)
	}
	return out
}

// qualityScore measures completeness of the source record on a 0..100 scale.
func qualityScore(rec *repository.ContentRecord) int {
	score := 50
	if strings.TrimSpace(rec.MetaDescription) != "" {
		score += 10
	}
	if strings.TrimSpace(rec.HeroImage) != "" {
		score += 10
	}
	if rec.SEOScore > 70 {
		score += 15
	}
	if len(rec.Blocks) > 5 {
		score += 10
	}
	if rec.WordCount > 1000 {
		score += 5
	}
	if score > 100 {
		score = 100
	}
	return score
}

// orderedSet deduplicates while keeping first-insertion order so generated
// records stay reproducible.
type orderedSet struct {
	seen  map[string]struct{}
	order []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{})}
}

func (s *orderedSet) add(v string) {
	if v == "" {
		return
	}
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.order = append(s.order, v)
}

func (s *orderedSet) values() []string {
	if s.order == nil {
		return []string{}
	}
	return s.order
}
