package recommender

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/imkonsowa/makansini/catalog"
	"github.com/imkonsowa/makansini/models"
	"github.com/imkonsowa/makansini/prefs"
	"github.com/imkonsowa/makansini/ranking"
)

// CatalogSource is satisfied by catalog.Cache and catalog.Source.
type CatalogSource interface {
	Catalog(ctx context.Context) (*catalog.Catalog, error)
}

type Status string

const (
	StatusOK           Status = "ok"
	StatusClosedToday  Status = "closed_today"
	StatusEmptyCatalog Status = "empty_catalog"
)

type Options struct {
	MaxCount      int
	Threshold     float64
	OnlyOpenToday bool
	Weights       ranking.Weights
}

func DefaultOptions() Options {
	return Options{
		MaxCount:      ranking.DefaultMaxCount,
		Threshold:     ranking.DefaultThreshold,
		OnlyOpenToday: true,
		Weights:       ranking.DefaultWeights(),
	}
}

type Recommendation struct {
	models.ScoredEntry
	Reasons []string `json:"reasons"`
}

// Result is one recommendation run. With StatusClosedToday the
// recommendations are the best places overall, none of which is open today.
type Result struct {
	Status          Status               `json:"status"`
	Today           string               `json:"today"`
	Preferences     models.PreferenceSet `json:"preferences"`
	Summary         []string             `json:"summary"`
	Recommendations []Recommendation     `json:"recommendations"`
}

type Service struct {
	source CatalogSource
	scorer *ranking.Scorer
	opts   Options
}

func NewService(source CatalogSource, opts Options) *Service {
	return &Service{
		source: source,
		scorer: ranking.NewScorer(opts.Weights),
		opts:   opts,
	}
}

func (s *Service) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	c, err := s.source.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	return c, nil
}

// Parser returns a preference parser that knows the current catalog's
// cuisines and locations.
func (s *Service) Parser(ctx context.Context) (*prefs.Parser, error) {
	c, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	return prefs.NewParser(prefs.VocabularyFrom(c)), nil
}

// Recommend ranks the catalog against p for the given weekday name.
func (s *Service) Recommend(ctx context.Context, p models.PreferenceSet, today string) (*Result, error) {
	c, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	p = p.Normalize()
	result := &Result{
		Status:          StatusOK,
		Today:           today,
		Preferences:     p,
		Summary:         prefs.Summary(p),
		Recommendations: []Recommendation{},
	}

	if c.Len() == 0 {
		result.Status = StatusEmptyCatalog
		return result, nil
	}

	candidates := c.Entries
	if s.opts.OnlyOpenToday && c.HasColumn(catalog.FieldDays) {
		candidates = ranking.FilterOpenToday(c.Entries, today)
		if len(candidates) == 0 {
			slog.Debug("nothing open today, ranking whole catalog", "today", today)

			result.Status = StatusClosedToday
			candidates = c.Entries
		}
	}

	selected := ranking.Select(s.scorer.Score(candidates, p), s.opts.MaxCount, s.opts.Threshold)
	for _, e := range selected {
		result.Recommendations = append(result.Recommendations, Recommendation{
			ScoredEntry: e,
			Reasons:     ranking.Reasons(&e.CatalogEntry, p),
		})
	}

	slog.Debug("recommendations computed",
		"status", result.Status,
		"candidates", len(candidates),
		"selected", len(result.Recommendations),
	)

	return result, nil
}

// DayName returns the weekday name of now in loc, as used by the catalog's
// days column. A nil loc means local time.
func DayName(now time.Time, loc *time.Location) string {
	if loc != nil {
		now = now.In(loc)
	}

	return now.Weekday().String()
}
