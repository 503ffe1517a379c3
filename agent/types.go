package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/imkonsowa/makansini/conversation"
	"github.com/imkonsowa/makansini/models"
	"github.com/imkonsowa/makansini/prefs"
	"github.com/imkonsowa/makansini/recommender"
)

var ErrInvalidRequest = errors.New("invalid request")

type ProcessingResult struct {
	Err error
	Msg WebSocketsMessage
}

type WebSocketsMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// RecommendRequest carries exactly one of free text, a ready preference set,
// or guided answers.
type RecommendRequest struct {
	Text        string                `json:"text"`
	Preferences *models.PreferenceSet `json:"preferences"`
	Answers     *prefs.Answers        `json:"answers"`
	Today       string                `json:"today"`
	Debug       bool                  `json:"debug"`
}

func (r *RecommendRequest) Validate() error {
	given := 0
	if strings.TrimSpace(r.Text) != "" {
		given++
	}
	if r.Preferences != nil {
		given++
	}
	if r.Answers != nil {
		given++
	}
	if given != 1 {
		return fmt.Errorf("exactly one of text, preferences or answers is required")
	}

	if r.Today != "" {
		if _, ok := weekday(r.Today); !ok {
			return fmt.Errorf("%w: today must be a weekday name, got %q", ErrInvalidRequest, r.Today)
		}
	}

	if p := r.Preferences; p != nil {
		if p.MaxBudget != nil && *p.MaxBudget < 0 {
			return fmt.Errorf("max_budget must not be negative")
		}
		if p.MaxTravel != nil && *p.MaxTravel < 0 {
			return fmt.Errorf("max_travel must not be negative")
		}
		switch p.MealType {
		case "", models.MealAny, models.MealBreakfast, models.MealLunch, models.MealTeaTime, models.MealDinner:
		default:
			return fmt.Errorf("unknown meal_type %q", p.MealType)
		}
		switch p.HalalPref {
		case "", models.HalalOnly, models.HalalDoesntMatter:
		default:
			return fmt.Errorf("unknown halal_pref %q", p.HalalPref)
		}
		if l := p.BudgetLevel; l != nil {
			switch *l {
			case models.BudgetCheap, models.BudgetMedium, models.BudgetExpensive:
			default:
				return fmt.Errorf("unknown budget_level %q", *l)
			}
		}
	}

	return nil
}

type RecommendResponse struct {
	*recommender.Result
	NoPreferenceSignal bool `json:"no_preference_signal,omitempty"`
}

type ChatRequest struct {
	State string            `json:"state"`
	Mode  conversation.Mode `json:"mode"`
	Input string            `json:"input"`
}

type ChatResponse struct {
	State string             `json:"state"`
	Reply conversation.Reply `json:"reply"`
}

func weekday(name string) (string, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(strings.TrimSpace(name), d.String()) {
			return d.String(), true
		}
	}

	return "", false
}
