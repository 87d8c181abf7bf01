package search

import (
	"regexp"
	"strconv"
	"strings"
)

// Intent names. General is the fallback when nothing matches.
const (
	IntentHotelSearch      = "hotel_search"
	IntentRestaurantSearch = "restaurant_search"
	IntentAttractionSearch = "attraction_search"
	IntentActivitySearch   = "activity_search"
	IntentGuideSearch      = "guide_search"
	IntentPriceComparison  = "price_comparison"
	IntentLocationBased    = "location_based"
	IntentGeneral          = "general"
)

// Entities is the bag of structured values pulled out of a query.
type Entities struct {
	Locations []string `json:"locations,omitempty"`
	PriceMin  *int     `json:"priceMin,omitempty"`
	PriceMax  *int     `json:"priceMax,omitempty"`
	Rating    *float64 `json:"rating,omitempty"`
	Occasion  string   `json:"occasion,omitempty"`
	GroupSize *int     `json:"groupSize,omitempty"`
}

// Filters is the suggested result filter derived from intent and entities.
type Filters struct {
	ContentTypes []string `json:"contentTypes,omitempty"`
	PriceMin     *int     `json:"priceMin,omitempty"`
	PriceMax     *int     `json:"priceMax,omitempty"`
	MinRating    *float64 `json:"minRating,omitempty"`
	Location     string   `json:"location,omitempty"`
}

// Intent is the classified query: primary intent, confidence, entities and
// the derived filters. Request-scoped.
type Intent struct {
	Primary    string   `json:"primary"`
	Confidence float64  `json:"confidence"`
	Entities   Entities `json:"entities"`
	Filters    Filters  `json:"filters"`
}

// intentPatterns is an ordered table: the first pattern of each intent is its
// canonical signal and earns the larger confidence bonus. Patterns cover
// English, Hebrew and Arabic variants.
var intentPatterns = []struct {
	name     string
	patterns []*regexp.Regexp
}{
	{IntentHotelSearch, []*regexp.Regexp{
		regexp.MustCompile(`\b(hotel|hotels)\b`),
		regexp.MustCompile(`\b(resort|resorts|accommodation|staycation)\b`),
		regexp.MustCompile(`\bwhere to stay\b`),
		regexp.MustCompile(`מלון|מלונות`),
		regexp.MustCompile(`فندق|فنادق|منتجع`),
	}},
	{IntentRestaurantSearch, []*regexp.Regexp{
		regexp.MustCompile(`\b(restaurant|restaurants)\b`),
		regexp.MustCompile(`\b(dining|eat|eatery|brunch|dinner|lunch)\b`),
		regexp.MustCompile(`\bwhere to eat\b`),
		regexp.MustCompile(`מסעדה|מסעדות`),
		regexp.MustCompile(`مطعم|مطاعم`),
	}},
	{IntentAttractionSearch, []*regexp.Regexp{
		regexp.MustCompile(`\b(attraction|attractions)\b`),
		regexp.MustCompile(`\b(landmark|landmarks|sightseeing|sights|museum|museums)\b`),
		regexp.MustCompile(`\b(things to see|what to see)\b`),
		regexp.MustCompile(`אטרקציה|אטרקציות`),
		regexp.MustCompile(`معالم|معلم`),
	}},
	{IntentActivitySearch, []*regexp.Regexp{
		regexp.MustCompile(`\b(activity|activities)\b`),
		regexp.MustCompile(`\b(things to do|what to do)\b`),
		regexp.MustCompile(`\b(tour|tours|safari|skydiving|cruise)\b`),
		regexp.MustCompile(`פעילות|פעילויות`),
		regexp.MustCompile(`نشاط|أنشطة|جولة`),
	}},
	{IntentGuideSearch, []*regexp.Regexp{
		regexp.MustCompile(`\b(guide|guides)\b`),
		regexp.MustCompile(`\b(itinerary|itineraries|tips|article|articles)\b`),
		regexp.MustCompile(`\bhow to\b`),
		regexp.MustCompile(`מדריך|מדריכים`),
		regexp.MustCompile(`دليل|أدلة`),
	}},
	{IntentPriceComparison, []*regexp.Regexp{
		regexp.MustCompile(`\b(cheap|cheapest|affordable|budget)\b`),
		regexp.MustCompile(`\b(price|prices|cost|compare|deal|deals)\b`),
		regexp.MustCompile(`זול|מחיר|מבצע`),
		regexp.MustCompile(`رخيص|سعر|أسعار|عروض`),
	}},
	{IntentLocationBased, []*regexp.Regexp{
		regexp.MustCompile(`\b(near|nearby|close to|around|walking distance)\b`),
		regexp.MustCompile(`\bin (downtown|marina|jumeirah|deira|jbr|jvc|jlt|difc)\b`),
		regexp.MustCompile(`ליד|קרוב ל`),
		regexp.MustCompile(`قريب من|بالقرب`),
	}},
}

// intentContentTypes maps intents to the content types they should filter to.
// Absent intents mean no restriction.
var intentContentTypes = map[string][]string{
	IntentHotelSearch:      {"hotel"},
	IntentRestaurantSearch: {"restaurant"},
	IntentAttractionSearch: {"attraction"},
	IntentActivitySearch:   {"activity"},
	IntentGuideSearch:      {"article", "guide"},
}

const (
	baseMatchConfidence   = 0.75
	firstPatternBonus     = 0.15
	laterPatternBonus     = 0.05
	entityBoost           = 0.1
	noMatchConfidence     = 0.4
	defaultPriceCeilingAE = 10000
)

var (
	priceMaxPattern  = regexp.MustCompile(`(?:under|below|up to|less than|max(?:imum)?)\s*(?:aed\s*)?(\d+)`)
	priceMinPattern  = regexp.MustCompile(`(?:from|starting(?: at)?|min(?:imum)?|at least)\s*(?:aed\s*)?(\d+)`)
	ratingPattern    = regexp.MustCompile(`(\d(?:\.\d)?)\s*stars?\b`)
	ratingPlus       = regexp.MustCompile(`(\d)\+`)
	groupSizePattern = regexp.MustCompile(`for\s+(\d+)\s+(?:people|persons|guests|adults)`)
)

var occasionPatterns = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{"romantic", regexp.MustCompile(`\b(romantic|honeymoon|anniversary|couples?)\b`)},
	{"family", regexp.MustCompile(`\b(family|kids?|children)\b`)},
	{"business", regexp.MustCompile(`\b(business|conference|corporate)\b`)},
	{"luxury", regexp.MustCompile(`\b(luxury|luxurious|5 star|five star|vip)\b`)},
	{"budget", regexp.MustCompile(`\b(budget|cheap|affordable)\b`)},
}

// Classify assigns exactly one primary intent to any input, defaulting to
// general at 0.4 when no pattern matches.
// The locale hint is accepted for interface stability; the pattern tables
// already cover every supported language.
func Classify(query, _ string) Intent {
	q := strings.ToLower(strings.TrimSpace(query))

	out := Intent{Primary: IntentGeneral, Confidence: noMatchConfidence}

	best := 0.0
	for _, entry := range intentPatterns {
		for i, p := range entry.patterns {
			if !p.MatchString(q) {
				continue
			}
			conf := baseMatchConfidence + laterPatternBonus
			if i == 0 {
				conf = baseMatchConfidence + firstPatternBonus
			}
			if conf > best {
				best = conf
				out.Primary = entry.name
				out.Confidence = conf
			}
			break
		}
	}

	out.Entities = ExtractEntities(q)
	if hasAnyEntity(out.Entities) {
		out.Confidence += entityBoost
		if out.Confidence > 1.0 {
			out.Confidence = 1.0
		}
	}

	out.Filters = deriveFilters(out.Primary, out.Entities)
	return out
}

// ExtractEntities pulls locations, price bounds, rating, occasion and group
// size out of a lowercased query. Extraction is independent of intent.
func ExtractEntities(q string) Entities {
	var e Entities

	for _, name := range GazetteerNames() {
		if strings.Contains(q, name) {
			loc := CanonicalLocation(name)
			if !containsFold(e.Locations, loc) {
				e.Locations = append(e.Locations, loc)
			}
		}
	}

	if m := priceMaxPattern.FindStringSubmatch(q); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			e.PriceMax = &v
		}
	}
	if m := priceMinPattern.FindStringSubmatch(q); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			e.PriceMin = &v
		}
	}

	if m := ratingPattern.FindStringSubmatch(q); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			e.Rating = &v
		}
	} else if m := ratingPlus.FindStringSubmatch(q); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			e.Rating = &v
		}
	}

	for _, oc := range occasionPatterns {
		if oc.pattern.MatchString(q) {
			e.Occasion = oc.name
			break
		}
	}

	if m := groupSizePattern.FindStringSubmatch(q); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			e.GroupSize = &v
		}
	}

	return e
}

func hasAnyEntity(e Entities) bool {
	return len(e.Locations) > 0 || e.PriceMin != nil || e.PriceMax != nil ||
		e.Rating != nil || e.Occasion != "" || e.GroupSize != nil
}

func deriveFilters(intent string, e Entities) Filters {
	var f Filters

	if types, ok := intentContentTypes[intent]; ok {
		f.ContentTypes = append(f.ContentTypes, types...)
	}

	if e.PriceMin != nil || e.PriceMax != nil {
		minP := 0
		maxP := defaultPriceCeilingAE
		if e.PriceMin != nil {
			minP = *e.PriceMin
		}
		if e.PriceMax != nil {
			maxP = *e.PriceMax
		}
		f.PriceMin = &minP
		f.PriceMax = &maxP
	}

	if e.Rating != nil {
		f.MinRating = e.Rating
	}
	if len(e.Locations) > 0 {
		f.Location = e.Locations[0]
	}
	return f
}
