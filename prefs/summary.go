package prefs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/imkonsowa/makansini/models"
)

// Summary renders the preference set as the "here's what I understood" lines.
func Summary(p models.PreferenceSet) []string {
	cuisine := "any cuisine"
	if len(p.Cuisines) > 0 {
		cuisine = strings.Join(p.Cuisines, ", ")
	}

	budget := "any budget"
	if p.MaxBudget != nil {
		budget = "≤ RM" + FormatNumber(*p.MaxBudget)
	}
	if p.BudgetLevel != nil {
		budget = fmt.Sprintf("%s (%s)", budget, *p.BudgetLevel)
	}

	distance := "any distance"
	if p.MaxTravel != nil {
		distance = "within " + FormatNumber(*p.MaxTravel) + " mins"
	}

	halal := "halal or non-halal"
	if p.HalalPref == models.HalalOnly {
		halal = "halal only"
	}

	meal := p.MealType
	if meal == "" {
		meal = models.MealAny
	}

	area := p.LocationPref
	if area == "" {
		area = models.LocationAny
	}

	return []string{
		"Cuisine: " + cuisine,
		"Budget: " + budget,
		"Meal: " + string(meal),
		"Distance: " + distance,
		"Preference: " + halal,
		"Area: " + area,
	}
}

func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
