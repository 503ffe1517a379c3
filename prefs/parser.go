package prefs

import (
	"strings"

	"github.com/imkonsowa/makansini/catalog"
	"github.com/imkonsowa/makansini/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Vocabulary is the catalog-derived part of the dictionaries.
type Vocabulary struct {
	Cuisines  []string
	Locations []string
}

func VocabularyFrom(c *catalog.Catalog) Vocabulary {
	if c == nil {
		return Vocabulary{}
	}

	return Vocabulary{
		Cuisines:  c.Cuisines(),
		Locations: c.Locations(),
	}
}

// Answers holds the raw replies of the guided question flow, one per field.
type Answers struct {
	Cuisine      string `json:"cuisine"`
	MaxBudget    string `json:"max_budget"`
	MealType     string `json:"meal_type"`
	MaxTravel    string `json:"max_travel"`
	HalalPref    string `json:"halal_pref"`
	LocationPref string `json:"location_pref"`
}

type Parser struct {
	vocab Vocabulary
}

func NewParser(vocab Vocabulary) *Parser {
	return &Parser{vocab: vocab}
}

// ParseText builds a preference set from a single free-text utterance.
func (p *Parser) ParseText(text string) models.PreferenceSet {
	budget := ExtractBudget(text, FreeText)

	return models.PreferenceSet{
		Cuisines:     p.Cuisines(text),
		MaxBudget:    budget.Max,
		BudgetLevel:  budget.Level,
		MealType:     ExtractMealType(text),
		MaxTravel:    ExtractTravel(text, FreeText),
		HalalPref:    ExtractHalal(text),
		LocationPref: p.Location(text),
	}.Normalize()
}

// ParseAnswers builds a preference set from the guided question answers.
// Empty or "any" answers leave the field at its no-preference value.
func (p *Parser) ParseAnswers(a Answers) models.PreferenceSet {
	out := models.NewPreferenceSet()

	// a named cuisine wins over a leading "any", as in "any western"
	if found := p.Cuisines(a.Cuisine); len(found) > 0 {
		out.Cuisines = []string{found[0]}
	} else if !IsNoPreference(a.Cuisine) {
		if c := p.Cuisine(a.Cuisine); c != "" {
			out.Cuisines = []string{c}
		}
	}

	if !IsNoPreference(a.MaxBudget) {
		budget := ExtractBudget(a.MaxBudget, Structured)
		out.MaxBudget, out.BudgetLevel = budget.Max, budget.Level
	}

	if !IsNoPreference(a.MealType) {
		out.MealType = ExtractMealType(a.MealType)
	}

	if !IsNoPreference(a.MaxTravel) {
		out.MaxTravel = ExtractTravel(a.MaxTravel, Structured)
	}

	out.HalalPref = ExtractHalal(a.HalalPref)

	if !IsNoPreference(a.LocationPref) {
		if strings.EqualFold(strings.TrimSpace(a.LocationPref), "utp") {
			out.LocationPref = models.LocationInsideUTP
		} else {
			out.LocationPref = p.Location(a.LocationPref)
		}
	}

	return out
}

// Cuisine returns the first cuisine in text. An answer that names nothing in
// the dictionaries is kept as typed, title-cased, so it can still match a
// catalog cell by substring.
func (p *Parser) Cuisine(text string) string {
	if found := p.Cuisines(text); len(found) > 0 {
		return found[0]
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	return cases.Title(language.English).String(text)
}
