package ranking

import (
	"math"
	"sort"
	"strings"

	"github.com/imkonsowa/makansini/models"
)

// Weights are the score deltas applied per aspect. Negative values are
// penalties.
type Weights struct {
	Cuisine        float64 `mapstructure:"cuisine"`
	BudgetWithin   float64 `mapstructure:"budgetWithin"`
	BudgetPartial  float64 `mapstructure:"budgetPartial"`
	BudgetOver     float64 `mapstructure:"budgetOver"`
	TierVeryCheap  float64 `mapstructure:"tierVeryCheap"`
	TierCheap      float64 `mapstructure:"tierCheap"`
	Meal           float64 `mapstructure:"meal"`
	Travel         float64 `mapstructure:"travel"`
	HalalMatch     float64 `mapstructure:"halalMatch"`
	HalalMismatch  float64 `mapstructure:"halalMismatch"`
	CampusMatch    float64 `mapstructure:"campusMatch"`
	CampusMismatch float64 `mapstructure:"campusMismatch"`
	AreaMatch      float64 `mapstructure:"areaMatch"`
	RatingFactor   float64 `mapstructure:"ratingFactor"`
}

func DefaultWeights() Weights {
	return Weights{
		Cuisine:        40,
		BudgetWithin:   30,
		BudgetPartial:  15,
		BudgetOver:     -10,
		TierVeryCheap:  -20,
		TierCheap:      -5,
		Meal:           15,
		Travel:         10,
		HalalMatch:     10,
		HalalMismatch:  -20,
		CampusMatch:    20,
		CampusMismatch: -10,
		AreaMatch:      30,
		RatingFactor:   2,
	}
}

// An expensive-tier request penalises places whose top price is at most
// these fractions of the budget.
const (
	veryCheapRatio = 0.5
	cheapRatio     = 0.8
)

type Scorer struct {
	weights Weights
}

func NewScorer(w Weights) *Scorer {
	return &Scorer{weights: w}
}

// Score rates every entry against p and returns them best first. Ties on
// score are broken by rating, then by input order. Score has no side
// effects and does not drop entries.
func (s *Scorer) Score(entries []models.CatalogEntry, p models.PreferenceSet) []models.ScoredEntry {
	p = p.Normalize()

	out := make([]models.ScoredEntry, len(entries))
	for i, e := range entries {
		b := s.breakdown(&e, p)
		out[i] = models.ScoredEntry{
			CatalogEntry: e,
			Score:        b.Total(),
			Breakdown:    &b,
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return ratingKey(out[i].Rating) > ratingKey(out[j].Rating)
	})

	return out
}

func ratingKey(r *float64) float64 {
	if r == nil {
		return math.Inf(-1)
	}

	return *r
}

func (s *Scorer) breakdown(e *models.CatalogEntry, p models.PreferenceSet) models.Breakdown {
	return models.Breakdown{
		Cuisine:  s.cuisine(e, p),
		Budget:   s.budget(e, p),
		Travel:   s.travel(e, p),
		Meal:     s.meal(e, p),
		Halal:    s.halal(e, p),
		Location: s.location(e, p),
		Rating:   e.RatingOrZero() * s.weights.RatingFactor,
	}
}

func (s *Scorer) cuisine(e *models.CatalogEntry, p models.PreferenceSet) float64 {
	if MatchesCuisine(e, p.Cuisines) {
		return s.weights.Cuisine
	}

	return 0
}

func (s *Scorer) budget(e *models.CatalogEntry, p models.PreferenceSet) float64 {
	if p.MaxBudget == nil {
		return 0
	}
	budget := *p.MaxBudget

	var score float64
	if e.MinSpend != nil && e.MaxSpend != nil {
		switch {
		case *e.MaxSpend <= budget:
			score += s.weights.BudgetWithin
		case *e.MinSpend <= budget:
			score += s.weights.BudgetPartial
		default:
			score += s.weights.BudgetOver
		}
	}

	if p.BudgetLevel != nil && *p.BudgetLevel == models.BudgetExpensive && e.MaxSpend != nil {
		switch {
		case *e.MaxSpend <= veryCheapRatio*budget:
			score += s.weights.TierVeryCheap
		case *e.MaxSpend <= cheapRatio*budget:
			score += s.weights.TierCheap
		}
	}

	return score
}

func (s *Scorer) travel(e *models.CatalogEntry, p models.PreferenceSet) float64 {
	if p.MaxTravel != nil && e.TravelMins != nil && *e.TravelMins <= *p.MaxTravel {
		return s.weights.Travel
	}

	return 0
}

func (s *Scorer) meal(e *models.CatalogEntry, p models.PreferenceSet) float64 {
	if MatchesMeal(e, p.MealType) {
		return s.weights.Meal
	}

	return 0
}

func (s *Scorer) halal(e *models.CatalogEntry, p models.PreferenceSet) float64 {
	if p.HalalPref != models.HalalOnly {
		return 0
	}
	if e.IsHalal() {
		return s.weights.HalalMatch
	}

	return s.weights.HalalMismatch
}

func (s *Scorer) location(e *models.CatalogEntry, p models.PreferenceSet) float64 {
	switch p.LocationPref {
	case models.LocationAny:
		return 0
	case models.LocationOutsideUTP:
		if e.IsInsideUTP() {
			return s.weights.CampusMismatch
		}
		return s.weights.CampusMatch
	case models.LocationInsideUTP:
		if e.IsInsideUTP() {
			return s.weights.CampusMatch
		}
		return s.weights.CampusMismatch
	default:
		if MatchesArea(e, p.LocationPref) {
			return s.weights.AreaMatch
		}
		return 0
	}
}

func MatchesCuisine(e *models.CatalogEntry, cuisines []string) bool {
	cell := strings.ToLower(e.Cuisine)
	for _, c := range cuisines {
		c = strings.ToLower(strings.TrimSpace(c))
		if c != "" && strings.Contains(cell, c) {
			return true
		}
	}

	return false
}

func MatchesMeal(e *models.CatalogEntry, meal models.MealType) bool {
	if meal == "" || meal == models.MealAny {
		return false
	}

	return strings.Contains(strings.ToLower(e.DiningTag), strings.ToLower(string(meal)))
}

func MatchesArea(e *models.CatalogEntry, area string) bool {
	area = strings.ToLower(strings.TrimSpace(area))

	return area != "" && strings.Contains(strings.ToLower(e.Location), area)
}
