package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/bytedance/sonic"
	"github.com/imkonsowa/makansini/catalog"
	"github.com/imkonsowa/makansini/conversation"
	"github.com/imkonsowa/makansini/models"
	"github.com/imkonsowa/makansini/recommender"
)

type Handler struct {
	svc    *recommender.Service
	engine *conversation.Engine
	today  func() string
}

func NewHandler(svc *recommender.Service, today func() string) *Handler {
	return &Handler{
		svc:    svc,
		engine: conversation.NewEngine(svc, today),
		today:  today,
	}
}

func (h *Handler) ListRestaurants(ctx context.Context) ([]models.CatalogEntry, error) {
	c, err := h.svc.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}

	return c.Entries, nil
}

func (h *Handler) ListCuisines(ctx context.Context) ([]string, error) {
	c, err := h.svc.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cuisines: %w", err)
	}

	return c.Cuisines(), nil
}

func (h *Handler) Recommend(ctx context.Context, req RecommendRequest) (*RecommendResponse, error) {
	parser, err := h.svc.Parser(ctx)
	if err != nil {
		return nil, err
	}

	var p models.PreferenceSet
	switch {
	case req.Preferences != nil:
		p = req.Preferences.Normalize()
	case req.Answers != nil:
		p = parser.ParseAnswers(*req.Answers)
	default:
		p = parser.ParseText(req.Text)
	}

	today := h.today()
	if req.Today != "" {
		day, ok := weekday(req.Today)
		if !ok {
			return nil, fmt.Errorf("%w: today must be a weekday name, got %q", ErrInvalidRequest, req.Today)
		}
		today = day
	}

	res, err := h.svc.Recommend(ctx, p, today)
	if err != nil {
		return nil, err
	}

	if !req.Debug {
		stripBreakdown(res)
	}

	return &RecommendResponse{
		Result:             res,
		NoPreferenceSignal: req.Text != "" && !p.HasSignal(),
	}, nil
}

func stripBreakdown(res *recommender.Result) {
	for i := range res.Recommendations {
		res.Recommendations[i].Breakdown = nil
	}
}

// Chat runs one conversation turn. An empty state token starts a new
// conversation in the requested mode.
func (h *Handler) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	var state conversation.State
	if req.State == "" {
		state = conversation.NewState(req.Mode)
	} else {
		var err error
		if state, err = conversation.Decode(req.State); err != nil {
			return nil, err
		}
	}

	var (
		reply conversation.Reply
		err   error
	)
	if req.State == "" && req.Input == "" {
		reply = conversation.Reply{Messages: messageTexts(state)}
	} else {
		state, reply, err = h.engine.HandleTurn(ctx, state, req.Input)
		if err != nil {
			return nil, err
		}
	}

	if reply.Result != nil {
		stripBreakdown(reply.Result)
	}

	token, err := conversation.Encode(state)
	if err != nil {
		return nil, err
	}

	return &ChatResponse{State: token, Reply: reply}, nil
}

func messageTexts(s conversation.State) []string {
	out := make([]string, 0, len(s.Messages))
	for _, m := range s.Messages {
		out = append(out, m.Text)
	}

	return out
}

// SearchByUserQuery streams the answer to a free-text query: the parsed
// preferences first, then the restaurants, then the chat lines.
func (h *Handler) SearchByUserQuery(ctx context.Context, userInput string) chan *ProcessingResult {
	resultChan := make(chan *ProcessingResult)

	send := func(r *ProcessingResult) bool {
		select {
		case resultChan <- r:
			return true
		case <-ctx.Done():
			return false
		}
	}

	go func() {
		defer close(resultChan)

		parser, err := h.svc.Parser(ctx)
		if err != nil {
			send(&ProcessingResult{Err: fmt.Errorf("failed to load catalog: %w", err)})
			return
		}

		parsed := parser.ParseText(userInput)
		if !send(&ProcessingResult{Msg: WebSocketsMessage{Type: "debug", Data: parsed}}) {
			return
		}

		if !parsed.HasSignal() {
			send(&ProcessingResult{Msg: WebSocketsMessage{
				Type: "chat",
				Data: "I couldn't catch any specific cuisine, budget, distance or area. Try something like `cheap halal mamak inside utp`.",
			}})
			send(&ProcessingResult{Err: io.EOF})
			return
		}

		res, err := h.svc.Recommend(ctx, parsed, h.today())
		if err != nil {
			slog.Error("failed to recommend restaurants", "error", err)
			send(&ProcessingResult{Err: fmt.Errorf("search failed: %w", err)})
			return
		}
		stripBreakdown(res)

		payload, err := sonic.MarshalString(map[string]interface{}{
			"status":  res.Status,
			"results": res.Recommendations,
		})
		if err != nil {
			send(&ProcessingResult{Err: fmt.Errorf("failed to marshal results: %w", err)})
			return
		}

		if !send(&ProcessingResult{Msg: WebSocketsMessage{Type: "restaurants", Data: payload}}) {
			return
		}

		for _, line := range conversation.FormatResult(res) {
			if !send(&ProcessingResult{Msg: WebSocketsMessage{Type: "chat", Data: line}}) {
				return
			}
		}

		send(&ProcessingResult{Err: io.EOF})
	}()

	return resultChan
}

// isClientError reports whether err was caused by the request rather than
// by the catalog or the server.
func isClientError(err error) bool {
	return errors.Is(err, ErrInvalidRequest) || errors.Is(err, conversation.ErrInvalidState)
}

func isSourceError(err error) bool {
	var dsErr *catalog.DataSourceError
	return errors.As(err, &dsErr)
}
