package prefs

import (
	"regexp"
	"sort"
	"strings"

	"github.com/imkonsowa/makansini/models"
)

type synonymGroup struct {
	Canonical string
	Phrases   []string
}

// cuisineSynonyms maps a canonical cuisine to the fragments that imply it.
// Fragments are matched as plain substrings.
var cuisineSynonyms = []synonymGroup{
	{"Mamak", []string{"mamak", "nasi kandar", "roti canai", "teh tarik", "thosai", "maggi goreng"}},
	{"Malay", []string{"malay", "melayu", "nasi lemak", "nasi campur", "kampung", "masakan panas", "ayam penyet"}},
	{"Thai", []string{"thai", "tomyam", "tom yam", "siam"}},
	{"Korean", []string{"korea", "kimchi", "tteokbokki", "bibimbap", "k-food"}},
	{"Japanese", []string{"japan", "sushi", "ramen", "bento", "donburi"}},
	{"Chinese", []string{"chinese", "cina", "dim sum", "chap fan", "kopitiam"}},
	{"Indian", []string{"indian", "india", "banana leaf", "briyani", "biryani", "tandoori"}},
	{"Western", []string{"western", "burger", "steak", "pasta", "chicken chop", "grill"}},
	{"Arab", []string{"arab", "middle eastern", "nasi mandi", "kebab", "shawarma"}},
	{"Fast Food", []string{"fast food", "fastfood", "kfc", "mcd", "mcdonald", "pizza"}},
	{"Seafood", []string{"seafood", "ikan bakar", "makanan laut"}},
	{"Cafe", []string{"cafe", "coffee", "kopi", "dessert", "bakery"}},
}

var budgetLevelSynonyms = []struct {
	Level   models.BudgetLevel
	Value   float64
	Phrases []string
}{
	{models.BudgetCheap, 10, []string{"cheap", "murah", "affordable", "jimat", "cheapest"}},
	{models.BudgetMedium, 15, []string{"medium", "mid", "mid-range", "moderate", "average", "sederhana"}},
	{models.BudgetExpensive, 25, []string{"expensive", "mahal", "high end", "high-end", "fancy", "premium"}},
}

var mealSynonyms = []synonymGroup{
	{string(models.MealBreakfast), []string{"breakfast", "sarapan", "morning", "pagi"}},
	{string(models.MealLunch), []string{"lunch", "tengah hari", "tengahari"}},
	{string(models.MealTeaTime), []string{"tea time", "teatime", "tea", "hi-tea", "minum petang", "petang"}},
	{string(models.MealDinner), []string{"dinner", "supper", "makan malam", "malam", "night"}},
}

// locationSynonyms is ordered; an earlier group wins when phrases overlap.
var locationSynonyms = []synonymGroup{
	{models.LocationOutsideUTP, []string{"outside utp", "luar utp", "outside campus", "luar kampus", "off campus", "outside"}},
	{models.LocationInsideUTP, []string{"inside utp", "dalam utp", "in utp", "utp campus", "inside campus", "dalam kampus", "in campus", "inside"}},
	{models.LocationTronoh, []string{"tronoh", "pekan tronoh"}},
	{models.LocationBandarUni, []string{"bandar universiti", "bandar uni", "bandar u", "b.u", "bu", "bandar"}},
}

// noPreferenceWords mark a structured answer as "any".
var noPreferenceWords = []string{"any", "no preference", "tak kisah", "doesn't matter", "doesnt matter", "whatever", "anything"}

type phraseMatcher struct {
	canonical string
	re        *regexp.Regexp
}

var (
	budgetLevelMatchers = compileBudgetLevels()
	mealMatchers        = compileGroups(mealSynonyms)
	locationReplacer    = compileReplacer(locationSynonyms)
)

func wordPattern(phrase string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(phrase) + `\b`)
}

func compileGroups(groups []synonymGroup) []phraseMatcher {
	var out []phraseMatcher
	for _, g := range groups {
		for _, p := range g.Phrases {
			out = append(out, phraseMatcher{canonical: g.Canonical, re: wordPattern(p)})
		}
	}

	return out
}

func compileBudgetLevels() []phraseMatcher {
	var out []phraseMatcher
	for _, l := range budgetLevelSynonyms {
		for _, p := range l.Phrases {
			out = append(out, phraseMatcher{canonical: string(l.Level), re: wordPattern(p)})
		}
	}

	return out
}

type replacer struct {
	re        *regexp.Regexp
	canonical map[string]string
}

// compileReplacer builds a single alternation so that every phrase is
// rewritten in one pass, longest phrase first at any given position.
func compileReplacer(groups []synonymGroup) replacer {
	canonical := make(map[string]string)
	var phrases []string

	for _, g := range groups {
		for _, p := range g.Phrases {
			if _, ok := canonical[p]; ok {
				continue
			}
			canonical[p] = strings.ToLower(g.Canonical)
			phrases = append(phrases, p)
		}
	}

	sort.SliceStable(phrases, func(i, j int) bool {
		return len(phrases[i]) > len(phrases[j])
	})

	quoted := make([]string, len(phrases))
	for i, p := range phrases {
		quoted[i] = regexp.QuoteMeta(p)
	}

	return replacer{
		re:        regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`),
		canonical: canonical,
	}
}

func (r replacer) Replace(lower string) string {
	return r.re.ReplaceAllStringFunc(lower, func(m string) string {
		return r.canonical[m]
	})
}

func firstMatch(matchers []phraseMatcher, text string) (string, bool) {
	for _, m := range matchers {
		if m.re.MatchString(text) {
			return m.canonical, true
		}
	}

	return "", false
}

// IsNoPreference reports whether a structured answer means "any".
func IsNoPreference(text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return true
	}
	for _, w := range noPreferenceWords {
		if text == w || strings.HasPrefix(text, w+" ") {
			return true
		}
	}

	return false
}
