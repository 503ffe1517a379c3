package ranking

import (
	"fmt"
	"strconv"

	"github.com/imkonsowa/makansini/models"
)

const fallbackReason = "High overall score based on your preferences and rating."

// Reasons explains in short sentences why e suits p. It only mentions
// aspects that actually matched.
func Reasons(e *models.CatalogEntry, p models.PreferenceSet) []string {
	p = p.Normalize()

	var out []string

	if MatchesCuisine(e, p.Cuisines) {
		out = append(out, fmt.Sprintf("Matches your cuisine preference: %s.", e.Cuisine))
	}

	if p.MaxBudget != nil && e.MinSpend != nil && *e.MinSpend <= *p.MaxBudget {
		out = append(out, fmt.Sprintf("Within your budget (min spend about RM%.0f).", *e.MinSpend))
	}

	if MatchesMeal(e, p.MealType) {
		out = append(out, fmt.Sprintf("Suitable for %s.", p.MealType))
	}

	if p.MaxTravel != nil && e.TravelMins != nil && *e.TravelMins <= *p.MaxTravel {
		out = append(out, fmt.Sprintf("Travel time %s mins is within your limit.", number(*e.TravelMins)))
	}

	if p.HalalPref == models.HalalOnly && e.IsHalal() {
		out = append(out, "Halal-friendly restaurant.")
	}

	switch p.LocationPref {
	case models.LocationAny:
	case models.LocationOutsideUTP:
		if !e.IsInsideUTP() {
			out = append(out, "Located outside UTP.")
		}
	case models.LocationInsideUTP:
		if e.IsInsideUTP() {
			out = append(out, "Located inside UTP.")
		}
	default:
		if MatchesArea(e, p.LocationPref) {
			out = append(out, fmt.Sprintf("Located in your preferred area: %s.", e.Location))
		}
	}

	if len(out) == 0 {
		return []string{fallbackReason}
	}

	return out
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
