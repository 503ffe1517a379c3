package conversation

import (
	"fmt"

	"github.com/imkonsowa/makansini/recommender"
)

const noSignalMessage = "I couldn't catch any specific cuisine, budget, distance or area. " +
	"Try including at least one detail, e.g. `cheap Malay food`, `halal Western lunch under RM15` " +
	"or `any cuisine within 5 mins from UTP`."

func greeting(mode Mode) []string {
	if mode == ModeOneShot {
		return []string{
			"Hi! I'm MakanSini. Tell me what you're craving in one sentence.",
			"Example: `cheap halal Korean dinner within 10 minutes from UTP`",
		}
	}

	return []string{
		"Hi! I'm MakanSini. I'll help you find a place to eat around UTP.",
		questions[0].Prompt,
	}
}

// FormatResult renders a recommendation result as chat lines.
func FormatResult(res *recommender.Result) []string {
	switch {
	case res.Status == recommender.StatusEmptyCatalog:
		return []string{"I don't have any restaurants in my list yet."}
	case len(res.Recommendations) == 0:
		return []string{"I couldn't find any restaurants matching your preferences."}
	}

	var lines []string
	if res.Status == recommender.StatusClosedToday {
		lines = append(lines, fmt.Sprintf("None of the matching places are open today (%s). These are the best options on other days:", res.Today))
	} else {
		lines = append(lines, "Here are my top picks for you:")
	}

	for i, rec := range res.Recommendations {
		rating := "N/A"
		if rec.Rating != nil {
			rating = fmt.Sprintf("%.1f", *rec.Rating)
		}

		lines = append(lines, fmt.Sprintf("%d. %s (%s) - %s, %s, rating %s, open %s",
			i+1, rec.Name, rec.Cuisine, rec.Location, rec.SpendRange, rating, rec.Hours))
		lines = append(lines, bullets(rec.Reasons)...)
	}

	return lines
}

func bullets(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = "- " + l
	}

	return out
}
