package search

// Static language data. New languages and terms are additive data changes
// here, never control-flow changes in the components that consume them.

var stopWords = map[string]map[string]struct{}{
	"en": toSet([]string{
		"the", "a", "an", "in", "at", "on", "for", "to", "of", "and", "or",
		"is", "are", "was", "were", "be", "with", "by", "from",
	}),
	"he": toSet([]string{
		"של", "את", "עם", "על", "אל", "זה", "זו", "גם", "או", "אבל", "כי", "מה",
	}),
	"ar": toSet([]string{
		"في", "من", "على", "إلى", "عن", "مع", "هذا", "هذه", "أو", "ثم", "لكن",
	}),
}

// knownTerms holds the vocabulary the spell checker trusts verbatim: single
// words plus multi-word landmark and brand phrases. Phrase entries only match
// a query word that equals the whole phrase.
var knownTermsList = []string{
	"dubai", "hotel", "hotels", "restaurant", "restaurants", "attraction",
	"attractions", "activity", "activities", "guide", "guides", "beach",
	"beaches", "mall", "brunch", "shisha", "souk", "safari", "marina",
	"creek", "desert", "luxury", "budget", "family", "romantic", "rooftop",
	"burj khalifa", "burj al arab", "dubai mall", "palm jumeirah",
	"dubai marina", "jumeirah beach", "global village", "dubai frame",
	"dubai fountain", "desert safari", "dubai creek", "gold souk",
	"spice souk", "miracle garden", "ski dubai", "wild wadi", "atlantis",
	"mall of the emirates", "downtown dubai", "business bay", "deira",
	"bur dubai", "al barsha", "jumeirah", "khalifa", "barsha", "satwa",
	"karama", "jbr", "jvc", "jlt", "difc", "expo city", "bluewaters",
	"la mer", "city walk", "madinat jumeirah", "al fahidi", "al seef",
}

var knownTerms = toSet(knownTermsList)

// typoCorrections maps frequent misspellings straight to their fix, ahead of
// any fuzzy matching.
var typoCorrections = map[string]string{
	"dubia":      "dubai",
	"duabi":      "dubai",
	"dubi":       "dubai",
	"burk":       "burj",
	"burg":       "burj",
	"khlaifa":    "khalifa",
	"kalifa":     "khalifa",
	"khalifah":   "khalifa",
	"hotell":     "hotel",
	"hotal":      "hotel",
	"hottel":     "hotel",
	"restarant":  "restaurant",
	"restaraunt": "restaurant",
	"resturant":  "restaurant",
	"atraction":  "attraction",
	"atractions": "attractions",
	"attracton":  "attraction",
	"jumeira":    "jumeirah",
	"jumierah":   "jumeirah",
	"marena":     "marina",
	"marian":     "marina",
	"beech":      "beach",
	"safary":     "safari",
	"brunsh":     "brunch",
	"atlantas":   "atlantis",
}

// gazetteerEntry is one known place with its Hebrew/Arabic transliterations.
type gazetteerEntry struct {
	Name    string
	Aliases []string
}

var gazetteer = []gazetteerEntry{
	{Name: "downtown dubai", Aliases: []string{"דאונטאון דובאי", "وسط مدينة دبي"}},
	{Name: "dubai marina", Aliases: []string{"מרינה דובאי", "مرسى دبي"}},
	{Name: "palm jumeirah", Aliases: []string{"פאלם ג'ומיירה", "نخلة جميرا"}},
	{Name: "jumeirah", Aliases: []string{"ג'ומיירה", "جميرا"}},
	{Name: "burj khalifa", Aliases: []string{"בורג' חליפה", "برج خليفة"}},
	{Name: "burj al arab", Aliases: []string{"בורג' אל ערב", "برج العرب"}},
	{Name: "business bay", Aliases: []string{"ביזנס ביי", "الخليج التجاري"}},
	{Name: "deira", Aliases: []string{"דיירה", "ديرة"}},
	{Name: "bur dubai", Aliases: []string{"בור דובאי", "بر دبي"}},
	{Name: "al barsha", Aliases: []string{"אל ברשא", "البرشاء"}},
	{Name: "jbr", Aliases: []string{"ג'י בי אר"}},
	{Name: "jvc", Aliases: nil},
	{Name: "jlt", Aliases: nil},
	{Name: "difc", Aliases: nil},
	{Name: "dubai creek", Aliases: []string{"חור דובאי", "خور دبي"}},
	{Name: "la mer", Aliases: nil},
	{Name: "city walk", Aliases: nil},
	{Name: "bluewaters", Aliases: nil},
	{Name: "al fahidi", Aliases: []string{"الفهيدي"}},
	{Name: "expo city", Aliases: nil},
}

// GazetteerNames returns every known place name and transliteration, used for
// substring scans over free text.
func GazetteerNames() []string {
	out := make([]string, 0, len(gazetteer)*2)
	for _, e := range gazetteer {
		out = append(out, e.Name)
		out = append(out, e.Aliases...)
	}
	return out
}

// CanonicalLocation maps an alias back to its English place name; unknown
// input comes back unchanged.
func CanonicalLocation(name string) string {
	for _, e := range gazetteer {
		if e.Name == name {
			return e.Name
		}
		for _, a := range e.Aliases {
			if a == name {
				return e.Name
			}
		}
	}
	return name
}

func toSet(words []string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
