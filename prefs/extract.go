package prefs

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/imkonsowa/makansini/models"
)

// Mode selects how lenient the extractors are. Structured answers come from
// one question at a time, so a bare number is taken at face value.
type Mode int

const (
	FreeText Mode = iota
	Structured
)

// BudgetRule names the rule that produced a numeric budget. Rules are tried
// in declaration order and the first one that fires wins.
type BudgetRule int

const (
	RuleNone BudgetRule = iota
	RuleLevelMatch
	RuleExplicitRM
	RuleProximity
	RuleRinggitSuffix
	RuleBareNumber
)

func (r BudgetRule) String() string {
	switch r {
	case RuleLevelMatch:
		return "level_match"
	case RuleExplicitRM:
		return "explicit_rm"
	case RuleProximity:
		return "proximity_pattern"
	case RuleRinggitSuffix:
		return "ringgit_suffix"
	case RuleBareNumber:
		return "bare_number"
	default:
		return "none"
	}
}

// expensiveFloor is the bare amount from which a budget is read as expensive
// when no level word was given.
const expensiveFloor = 30

var (
	explicitRM    = regexp.MustCompile(`(?i)\brm\s*(\d+(?:\.\d+)?)`)
	proximity     = regexp.MustCompile(`(?i)\b(?:under|below|max|maximum|budget|bawah|sekitar)\s*(?:rm)?\s*(\d+(?:\.\d+)?)`)
	ringgitSuffix = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*ringgit\b`)
	bareNumber    = regexp.MustCompile(`\b\d+(?:\.\d+)?\b`)
	minutes       = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(?:minutes|minute|mins|min|minit)\b`)
	minuteSuffix  = regexp.MustCompile(`(?i)^\s*(?:minutes|minute|mins|min|minit)\b`)
	punctuation   = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)
	spaces        = regexp.MustCompile(`\s+`)
)

type Budget struct {
	Level *models.BudgetLevel
	Max   *float64
	Rule  BudgetRule
}

// Cuisines returns every cuisine mentioned in text, ordered by where it first
// appears. Catalog cuisine names are matched literally alongside the
// synonym dictionary.
func (p *Parser) Cuisines(text string) []string {
	lower := strings.ToLower(text)

	type hit struct {
		pos  int
		name string
	}
	var hits []hit

	for _, g := range cuisineSynonyms {
		pos := -1
		for _, phrase := range g.Phrases {
			if i := strings.Index(lower, phrase); i >= 0 && (pos < 0 || i < pos) {
				pos = i
			}
		}
		if pos >= 0 {
			hits = append(hits, hit{pos: pos, name: g.Canonical})
		}
	}

	for _, c := range p.vocab.Cuisines {
		if i := strings.Index(lower, strings.ToLower(c)); i >= 0 {
			hits = append(hits, hit{pos: i, name: c})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].pos < hits[j].pos
	})

	seen := make(map[string]bool)
	out := []string{}
	for _, h := range hits {
		key := strings.ToLower(h.name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, h.name)
	}

	return out
}

// ExtractBudget reads the price tier and the numeric RM ceiling from text.
func ExtractBudget(text string, mode Mode) Budget {
	var b Budget

	if level, ok := firstMatch(budgetLevelMatchers, text); ok {
		l := models.BudgetLevel(level)
		b.Level = &l
		b.Max = models.Float(levelValue(l))
		b.Rule = RuleLevelMatch

		return b
	}

	if n, ok := firstBareNumber(text); ok && n >= expensiveFloor {
		b.Level = models.Level(models.BudgetExpensive)
	}

	if m := explicitRM.FindStringSubmatch(text); m != nil {
		b.Max, b.Rule = parseFloat(m[1]), RuleExplicitRM
		return b
	}

	for _, loc := range proximity.FindAllStringSubmatchIndex(text, -1) {
		if minuteSuffix.MatchString(text[loc[1]:]) {
			continue
		}
		b.Max, b.Rule = parseFloat(text[loc[2]:loc[3]]), RuleProximity
		return b
	}

	if m := ringgitSuffix.FindStringSubmatch(text); m != nil {
		b.Max, b.Rule = parseFloat(m[1]), RuleRinggitSuffix
		return b
	}

	if mode == Structured {
		if n, ok := firstBareNumber(text); ok {
			b.Max, b.Rule = models.Float(n), RuleBareNumber
		}
	}

	return b
}

func levelValue(l models.BudgetLevel) float64 {
	for _, s := range budgetLevelSynonyms {
		if s.Level == l {
			return s.Value
		}
	}

	return 0
}

// firstBareNumber returns the first standalone number that is not a number of
// minutes.
func firstBareNumber(text string) (float64, bool) {
	for _, loc := range bareNumber.FindAllStringIndex(text, -1) {
		if minuteSuffix.MatchString(text[loc[1]:]) {
			continue
		}
		if v := parseFloat(text[loc[0]:loc[1]]); v != nil {
			return *v, true
		}
	}

	return 0, false
}

// ExtractMealType returns the first meal mentioned, in breakfast, lunch, tea
// time, dinner order, or MealAny.
func ExtractMealType(text string) models.MealType {
	if meal, ok := firstMatch(mealMatchers, text); ok {
		return models.MealType(meal)
	}

	return models.MealAny
}

// ExtractTravel returns the travel limit in minutes, or nil.
func ExtractTravel(text string, mode Mode) *float64 {
	if m := minutes.FindStringSubmatch(text); m != nil {
		return parseFloat(m[1])
	}

	if mode == Structured {
		if n, ok := firstBareNumber(text); ok {
			return models.Float(n)
		}
	}

	return nil
}

// ExtractHalal treats any mention of "halal" as a halal-only request,
// including negated phrasing.
func ExtractHalal(text string) models.HalalPref {
	if strings.Contains(strings.ToLower(text), "halal") {
		return models.HalalOnly
	}

	return models.HalalDoesntMatter
}

// Location rewrites known area synonyms to their canonical names and then
// looks for "outside utp", a catalog location, or a canonical area, in that
// order. The first hit wins; longer matches are not preferred.
func (p *Parser) Location(text string) string {
	normalized := normalizeLocationText(text)

	if containsWords(normalized, strings.ToLower(models.LocationOutsideUTP)) {
		return models.LocationOutsideUTP
	}

	for _, loc := range p.vocab.Locations {
		if containsWords(normalized, normalizeWords(loc)) {
			return loc
		}
	}

	for _, g := range locationSynonyms {
		if containsWords(normalized, strings.ToLower(g.Canonical)) {
			return g.Canonical
		}
	}

	return models.LocationAny
}

func normalizeLocationText(text string) string {
	return normalizeWords(locationReplacer.Replace(strings.ToLower(text)))
}

func normalizeWords(text string) string {
	text = punctuation.ReplaceAllString(strings.ToLower(text), "")
	return strings.TrimSpace(spaces.ReplaceAllString(text, " "))
}

func containsWords(haystack, needle string) bool {
	if needle == "" {
		return false
	}

	return strings.Contains(" "+haystack+" ", " "+needle+" ")
}

func parseFloat(s string) *float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}

	return &v
}
