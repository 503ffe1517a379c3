package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/imkonsowa/makansini/catalog"
	"github.com/imkonsowa/makansini/models"
	"github.com/imkonsowa/makansini/prefs"
	"github.com/imkonsowa/makansini/recommender"
)

// Recommender is the part of recommender.Service a conversation needs.
type Recommender interface {
	Catalog(ctx context.Context) (*catalog.Catalog, error)
	Recommend(ctx context.Context, p models.PreferenceSet, today string) (*recommender.Result, error)
}

// Reply is what the assistant says in response to one turn.
type Reply struct {
	Messages []string            `json:"messages"`
	Result   *recommender.Result `json:"result,omitempty"`
	Done     bool                `json:"done"`
}

type Engine struct {
	svc   Recommender
	today func() string
}

// NewEngine returns an engine that asks today for the current weekday name
// on every recommendation.
func NewEngine(svc Recommender, today func() string) *Engine {
	return &Engine{svc: svc, today: today}
}

var resetCommands = []string{"reset", "restart", "start over"}

// HandleTurn applies one user input to s and returns the next state with the
// assistant's reply. Input to a finished guided conversation starts a new one.
func (e *Engine) HandleTurn(ctx context.Context, s State, input string) (State, Reply, error) {
	s = s.clone()
	if !s.Mode.Valid() {
		return s, Reply{}, fmt.Errorf("%w: unknown mode %q", ErrInvalidState, s.Mode)
	}

	input = strings.TrimSpace(input)
	for _, cmd := range resetCommands {
		if strings.EqualFold(input, cmd) {
			next := Reset(s)
			return next, Reply{Messages: greeting(next.Mode)}, nil
		}
	}

	if s.Done && s.Mode == ModeGuided {
		s = Reset(s)
	}

	s = s.log(RoleUser, input)

	if input == "" {
		return s.say(Reply{Messages: []string{"Please type something so I can help you."}})
	}

	c, err := e.svc.Catalog(ctx)
	if err != nil {
		return s, Reply{}, err
	}
	parser := prefs.NewParser(prefs.VocabularyFrom(c))

	switch s.Mode {
	case ModeOneShot:
		return e.oneShot(ctx, s, parser, input)
	default:
		return e.guided(ctx, s, c, parser, input)
	}
}

func (e *Engine) guided(ctx context.Context, s State, c *catalog.Catalog, parser *prefs.Parser, input string) (State, Reply, error) {
	if s.QuestionIndex >= len(questions) {
		s.QuestionIndex = len(questions) - 1
	}

	q := questions[s.QuestionIndex]
	if !q.valid(input, c, parser) {
		return s.say(Reply{Messages: []string{q.Hint}})
	}

	q.set(&s.Answers, input)
	s.QuestionIndex++

	if s.QuestionIndex < len(questions) {
		return s.say(Reply{Messages: []string{questions[s.QuestionIndex].Prompt}})
	}

	p := parser.ParseAnswers(s.Answers)
	res, err := e.svc.Recommend(ctx, p, e.today())
	if err != nil {
		return s, Reply{}, err
	}

	s.Done = true

	lines := []string{"Got it! Let me check the restaurants that match you..."}
	lines = append(lines, FormatResult(res)...)

	return s.say(Reply{Messages: lines, Result: res, Done: true})
}

func (e *Engine) oneShot(ctx context.Context, s State, parser *prefs.Parser, input string) (State, Reply, error) {
	p := parser.ParseText(input)
	if !p.HasSignal() {
		slog.Debug("no preference signal", "session", s.SessionID)

		return s.say(Reply{Messages: []string{noSignalMessage}})
	}

	res, err := e.svc.Recommend(ctx, p, e.today())
	if err != nil {
		return s, Reply{}, err
	}

	lines := []string{"Here's what I understood:"}
	lines = append(lines, bullets(res.Summary)...)
	lines = append(lines, FormatResult(res)...)

	return s.say(Reply{Messages: lines, Result: res, Done: true})
}

func (s State) say(r Reply) (State, Reply, error) {
	for _, m := range r.Messages {
		s = s.log(RoleAssistant, m)
	}

	return s, r, nil
}
