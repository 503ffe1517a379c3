package models

import (
	"fmt"
	"strings"
)

type MealType string

const (
	MealAny       MealType = "Any"
	MealBreakfast MealType = "Breakfast"
	MealLunch     MealType = "Lunch"
	MealTeaTime   MealType = "Tea Time"
	MealDinner    MealType = "Dinner"
)

type HalalPref string

const (
	HalalOnly         HalalPref = "Halal only"
	HalalDoesntMatter HalalPref = "Doesn't matter"
)

type BudgetLevel string

const (
	BudgetCheap     BudgetLevel = "cheap"
	BudgetMedium    BudgetLevel = "medium"
	BudgetExpensive BudgetLevel = "expensive"
)

const (
	LocationAny        = "Any"
	LocationInsideUTP  = "Inside UTP"
	LocationOutsideUTP = "Outside UTP"
	LocationTronoh     = "Tronoh"
	LocationBandarUni  = "Bandar Universiti"
)

var canonicalLocations = []string{
	LocationAny, LocationInsideUTP, LocationOutsideUTP, LocationTronoh, LocationBandarUni,
}

// CatalogEntry is one restaurant row. Nil numeric fields mean the cell was
// missing or could not be parsed.
type CatalogEntry struct {
	Name       string   `json:"name"`
	SpendRange string   `json:"spend_range"`
	MinSpend   *float64 `json:"min_spend"`
	MaxSpend   *float64 `json:"max_spend"`
	DiningTag  string   `json:"dining_tag"`
	Halal      string   `json:"halal"`
	Cuisine    string   `json:"cuisine"`
	Hours      string   `json:"hours"`
	Days       string   `json:"days"`
	TravelMins *float64 `json:"travel_mins"`
	Location   string   `json:"location"`
	Rating     *float64 `json:"rating"`
}

func (e *CatalogEntry) IsHalal() bool {
	return strings.Contains(strings.ToLower(e.Halal), "yes")
}

func (e *CatalogEntry) IsInsideUTP() bool {
	return strings.Contains(strings.ToLower(e.Location), strings.ToLower(LocationInsideUTP))
}

func (e *CatalogEntry) RatingOrZero() float64 {
	if e.Rating == nil {
		return 0
	}

	return *e.Rating
}

func (e *CatalogEntry) Stringify() string {
	return fmt.Sprintf("Restaurant: %s (%s), Area: %s, Spend: %s, Rating: %s, Travel: %s mins, Halal: %s, Hours: %s, Days: %s",
		e.Name, e.Cuisine, e.Location, e.SpendRange, formatOptional(e.Rating, "%.1f"),
		formatOptional(e.TravelMins, "%.0f"), e.Halal, e.Hours, e.Days)
}

func formatOptional(v *float64, format string) string {
	if v == nil {
		return "N/A"
	}

	return fmt.Sprintf(format, *v)
}

// PreferenceSet is the normalized intent of one user. Every field has a
// "no preference" value: empty Cuisines, nil pointers, MealAny,
// HalalDoesntMatter and LocationAny.
type PreferenceSet struct {
	Cuisines     []string     `json:"cuisines"`
	MaxBudget    *float64     `json:"max_budget"`
	BudgetLevel  *BudgetLevel `json:"budget_level"`
	MealType     MealType     `json:"meal_type"`
	MaxTravel    *float64     `json:"max_travel"`
	HalalPref    HalalPref    `json:"halal_pref"`
	LocationPref string       `json:"location_pref"`
}

func NewPreferenceSet() PreferenceSet {
	return PreferenceSet{
		Cuisines:     []string{},
		MealType:     MealAny,
		HalalPref:    HalalDoesntMatter,
		LocationPref: LocationAny,
	}
}

// Normalize replaces empty enum values with their "no preference" form and
// spells known areas the canonical way, whatever their case.
func (p PreferenceSet) Normalize() PreferenceSet {
	if p.Cuisines == nil {
		p.Cuisines = []string{}
	}
	if p.MealType == "" {
		p.MealType = MealAny
	}
	if p.HalalPref == "" {
		p.HalalPref = HalalDoesntMatter
	}
	p.LocationPref = strings.TrimSpace(p.LocationPref)
	if p.LocationPref == "" {
		p.LocationPref = LocationAny
	}
	for _, l := range canonicalLocations {
		if strings.EqualFold(p.LocationPref, l) {
			p.LocationPref = l
			break
		}
	}

	return p
}

// HasSignal reports whether the set carries any cuisine, budget, travel or
// location preference.
func (p PreferenceSet) HasSignal() bool {
	return len(p.Cuisines) > 0 ||
		p.MaxBudget != nil ||
		p.MaxTravel != nil ||
		(p.LocationPref != "" && p.LocationPref != LocationAny)
}

type Breakdown struct {
	Cuisine  float64 `json:"score_cuisine"`
	Budget   float64 `json:"score_budget"`
	Travel   float64 `json:"score_travel"`
	Meal     float64 `json:"score_meal"`
	Halal    float64 `json:"score_halal"`
	Location float64 `json:"score_location"`
	Rating   float64 `json:"score_rating"`
}

func (b Breakdown) Total() float64 {
	return b.Cuisine + b.Budget + b.Travel + b.Meal + b.Halal + b.Location + b.Rating
}

type ScoredEntry struct {
	CatalogEntry
	Score     float64    `json:"score"`
	Breakdown *Breakdown `json:"breakdown,omitempty"`
}

func Float(v float64) *float64 {
	return &v
}

func Level(l BudgetLevel) *BudgetLevel {
	return &l
}
