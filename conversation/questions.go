package conversation

import (
	"strings"

	"github.com/imkonsowa/makansini/catalog"
	"github.com/imkonsowa/makansini/models"
	"github.com/imkonsowa/makansini/prefs"
)

type Question struct {
	Key    string `json:"key"`
	Prompt string `json:"prompt"`
	Hint   string `json:"-"`

	valid func(answer string, c *catalog.Catalog, p *prefs.Parser) bool
	set   func(a *prefs.Answers, answer string)
}

var questions = []Question{
	{
		Key:    "cuisine",
		Prompt: "What cuisine are you craving? (e.g. Malay, Thai, Western, Korean)",
		Hint:   "Hmm, I couldn't find that cuisine in my list. Try something like Malay, Thai, Western, Korean, Indian or Mamak, or type `any`.",
		valid: func(answer string, c *catalog.Catalog, p *prefs.Parser) bool {
			return prefs.IsNoPreference(answer) ||
				(c != nil && c.CuisineExists(answer)) ||
				len(p.Cuisines(answer)) > 0
		},
		set: func(a *prefs.Answers, answer string) { a.Cuisine = answer },
	},
	{
		Key:    "max_budget",
		Prompt: "What is your maximum budget per person? (RM, e.g. 10)",
		Hint:   "Please enter your budget as a number, e.g. `10` or `15`, a word like `cheap`, or `any`.",
		valid: func(answer string, _ *catalog.Catalog, _ *prefs.Parser) bool {
			return prefs.IsNoPreference(answer) || prefs.ExtractBudget(answer, prefs.Structured).Max != nil
		},
		set: func(a *prefs.Answers, answer string) { a.MaxBudget = answer },
	},
	{
		Key:    "meal_type",
		Prompt: "Which meal are you planning for? (Breakfast, Lunch, Tea Time, Dinner, or Any)",
		Hint:   "Please choose a meal from Breakfast, Lunch, Tea Time, Dinner or Any. You can type something like `lunch` or `any`.",
		valid: func(answer string, _ *catalog.Catalog, _ *prefs.Parser) bool {
			return containsAny(answer, "breakfast", "lunch", "tea time", "teatime", "dinner", "supper", "any")
		},
		set: func(a *prefs.Answers, answer string) { a.MealType = answer },
	},
	{
		Key:    "max_travel",
		Prompt: "How many minutes are you willing to travel from UTP? (e.g. 5, 10, 15)",
		Hint:   "Please enter travel time in minutes as a number, e.g. `5`, `10` or `15`, or `any`.",
		valid: func(answer string, _ *catalog.Catalog, _ *prefs.Parser) bool {
			return prefs.IsNoPreference(answer) || prefs.ExtractTravel(answer, prefs.Structured) != nil
		},
		set: func(a *prefs.Answers, answer string) { a.MaxTravel = answer },
	},
	{
		Key:    "halal_pref",
		Prompt: "Do you want only halal restaurants, or it doesn't matter?",
		Hint:   "Please answer clearly: do you want only halal restaurants, or it doesn't matter? For example `only halal` or `doesn't matter`.",
		valid: func(answer string, _ *catalog.Catalog, _ *prefs.Parser) bool {
			return containsAny(answer, "halal", "only", "tak kisah", "doesn't matter", "doesnt matter", "no preference")
		},
		set: func(a *prefs.Answers, answer string) { a.HalalPref = answer },
	},
	{
		Key:    "location_pref",
		Prompt: "Any preferred area? (Inside UTP, Outside UTP, Tronoh, Bandar Universiti, or Any)",
		Hint:   "Please choose a location like Inside UTP, Outside UTP, Tronoh, Bandar Universiti or Any. You can also type `no preference` or `tak kisah`.",
		valid: func(answer string, _ *catalog.Catalog, p *prefs.Parser) bool {
			return prefs.IsNoPreference(answer) ||
				strings.EqualFold(strings.TrimSpace(answer), "utp") ||
				p.Location(answer) != models.LocationAny
		},
		set: func(a *prefs.Answers, answer string) { a.LocationPref = answer },
	},
}

// Questions returns the guided flow in the order it is asked.
func Questions() []Question {
	return append([]Question(nil), questions...)
}

func containsAny(text string, words ...string) bool {
	text = strings.ToLower(text)
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}

	return false
}
