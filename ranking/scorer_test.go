package ranking

import (
	"testing"

	"github.com/imkonsowa/makansini/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(name string, opts ...func(*models.CatalogEntry)) models.CatalogEntry {
	e := models.CatalogEntry{Name: name}
	for _, o := range opts {
		o(&e)
	}

	return e
}

func spend(min, max float64) func(*models.CatalogEntry) {
	return func(e *models.CatalogEntry) {
		e.MinSpend, e.MaxSpend = models.Float(min), models.Float(max)
	}
}

func rating(r float64) func(*models.CatalogEntry) {
	return func(e *models.CatalogEntry) { e.Rating = models.Float(r) }
}

func withCuisine(c string) func(*models.CatalogEntry) {
	return func(e *models.CatalogEntry) { e.Cuisine = c }
}

func withLocation(l string) func(*models.CatalogEntry) {
	return func(e *models.CatalogEntry) { e.Location = l }
}

func withHalal(h string) func(*models.CatalogEntry) {
	return func(e *models.CatalogEntry) { e.Halal = h }
}

func score(t *testing.T, e models.CatalogEntry, p models.PreferenceSet) models.ScoredEntry {
	t.Helper()

	out := NewScorer(DefaultWeights()).Score([]models.CatalogEntry{e}, p)
	require.Len(t, out, 1)
	require.NotNil(t, out[0].Breakdown)

	return out[0]
}

func TestScoreBudgetBoundaries(t *testing.T) {
	p := models.NewPreferenceSet()
	p.MaxBudget = models.Float(10)

	tests := []struct {
		name     string
		min, max float64
		want     float64
	}{
		{"max equals budget", 5, 10, 30},
		{"straddles budget", 8, 12, 15},
		{"min equals budget", 10, 20, 15},
		{"entirely above", 11, 20, -10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := score(t, entry("x", spend(tt.min, tt.max)), p)
			assert.Equal(t, tt.want, got.Breakdown.Budget)
			assert.Equal(t, tt.want, got.Score)
		})
	}
}

func TestScoreBudgetNeedsBothBounds(t *testing.T) {
	p := models.NewPreferenceSet()
	p.MaxBudget = models.Float(10)

	e := entry("x")
	e.MaxSpend = models.Float(5)

	assert.Zero(t, score(t, e, p).Breakdown.Budget)
}

func TestScoreExpensiveTierPenalty(t *testing.T) {
	p := models.NewPreferenceSet()
	p.MaxBudget = models.Float(25)
	p.BudgetLevel = models.Level(models.BudgetExpensive)

	tests := []struct {
		name string
		max  float64
		want float64
	}{
		{"very cheap", 12.5, 30 - 20},
		{"cheap", 20, 30 - 5},
		{"close to budget", 25, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := score(t, entry("x", spend(5, tt.max)), p)
			assert.Equal(t, tt.want, got.Breakdown.Budget)
		})
	}
}

func TestScoreHalal(t *testing.T) {
	p := models.NewPreferenceSet()
	p.HalalPref = models.HalalOnly

	assert.Equal(t, 10.0, score(t, entry("a", withHalal("Yes")), p).Score)
	assert.Equal(t, -20.0, score(t, entry("b", withHalal("No")), p).Score)
	assert.Equal(t, -20.0, score(t, entry("c"), p).Score)
}

func TestScoreLocation(t *testing.T) {
	inside := entry("in", withLocation("Inside UTP"))
	outside := entry("out", withLocation("Bandar Universiti"))

	tests := []struct {
		pref    string
		e       models.CatalogEntry
		want    float64
		comment string
	}{
		{models.LocationOutsideUTP, outside, 20, "outside wanted, outside"},
		{models.LocationOutsideUTP, inside, -10, "outside wanted, inside"},
		{models.LocationInsideUTP, inside, 20, "inside wanted, inside"},
		{models.LocationInsideUTP, outside, -10, "inside wanted, outside"},
		{models.LocationBandarUni, outside, 30, "area match"},
		{models.LocationTronoh, outside, 0, "area miss"},
		{models.LocationAny, inside, 0, "no preference"},
	}

	for _, tt := range tests {
		t.Run(tt.comment, func(t *testing.T) {
			p := models.NewPreferenceSet()
			p.LocationPref = tt.pref
			assert.Equal(t, tt.want, score(t, tt.e, p).Breakdown.Location)
		})
	}
}

func TestScoreLocationIgnoresCase(t *testing.T) {
	inside := entry("in", withLocation("Inside UTP"))
	tronoh := entry("tronoh", withLocation("Tronoh"))

	tests := []struct {
		pref         string
		inside, away float64
	}{
		{"inside utp", 20, -10},
		{"  INSIDE UTP ", 20, -10},
		{"outside utp", -10, 20},
		{"Outside utp", -10, 20},
		{"tronoh", 0, 30},
		{"any", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.pref, func(t *testing.T) {
			p := models.NewPreferenceSet()
			p.LocationPref = tt.pref

			assert.Equal(t, tt.inside, score(t, inside, p).Breakdown.Location)
			assert.Equal(t, tt.away, score(t, tronoh, p).Breakdown.Location)
		})
	}
}

func TestScoreNoPreferenceIsRatingOnly(t *testing.T) {
	e := models.CatalogEntry{
		Name:       "Full",
		MinSpend:   models.Float(5),
		MaxSpend:   models.Float(9),
		DiningTag:  "Lunch, Dinner",
		Halal:      "Yes",
		Cuisine:    "Malay",
		TravelMins: models.Float(3),
		Location:   "Inside UTP",
		Rating:     models.Float(4.2),
	}

	got := score(t, e, models.NewPreferenceSet())
	assert.InDelta(t, 8.4, got.Score, 1e-9)
	assert.Equal(t, models.Breakdown{Rating: got.Breakdown.Rating}, *got.Breakdown)

	// zero value preferences behave the same as the explicit defaults
	assert.InDelta(t, 8.4, score(t, e, models.PreferenceSet{}).Score, 1e-9)
}

func TestScoreIsSumOfBreakdown(t *testing.T) {
	p := models.PreferenceSet{
		Cuisines:     []string{"Malay"},
		MaxBudget:    models.Float(10),
		MealType:     models.MealLunch,
		MaxTravel:    models.Float(5),
		HalalPref:    models.HalalOnly,
		LocationPref: models.LocationOutsideUTP,
	}

	e := models.CatalogEntry{
		Name:       "Warung",
		MinSpend:   models.Float(5),
		MaxSpend:   models.Float(10),
		DiningTag:  "Lunch",
		Halal:      "Yes",
		Cuisine:    "Malay",
		TravelMins: models.Float(5),
		Location:   "Tronoh",
		Rating:     models.Float(4),
	}

	got := score(t, e, p)
	assert.Equal(t, models.Breakdown{
		Cuisine:  40,
		Budget:   30,
		Travel:   10,
		Meal:     15,
		Halal:    10,
		Location: 20,
		Rating:   8,
	}, *got.Breakdown)
	assert.Equal(t, got.Breakdown.Total(), got.Score)
	assert.Equal(t, 133.0, got.Score)
}

func TestScoreMissingNumbersContributeNothing(t *testing.T) {
	p := models.NewPreferenceSet()
	p.MaxBudget = models.Float(10)
	p.MaxTravel = models.Float(10)

	got := score(t, entry("bare"), p)
	assert.Zero(t, got.Score)
}

func TestScoreOrdering(t *testing.T) {
	entries := []models.CatalogEntry{
		entry("first", rating(4)),
		entry("unrated"),
		entry("second", rating(4)),
		entry("best", rating(4), withCuisine("Thai")),
		entry("higher", rating(4.5)),
	}

	p := models.NewPreferenceSet()
	p.Cuisines = []string{"thai"}

	out := NewScorer(DefaultWeights()).Score(entries, p)

	var names []string
	for _, e := range out {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"best", "higher", "first", "second", "unrated"}, names)
}

func TestScoreUnratedTiesRankBelowRated(t *testing.T) {
	entries := []models.CatalogEntry{
		entry("unrated", withCuisine("Thai")),
		entry("zero", rating(0), withCuisine("Thai")),
	}

	p := models.NewPreferenceSet()
	p.Cuisines = []string{"Thai"}

	out := NewScorer(DefaultWeights()).Score(entries, p)
	require.Len(t, out, 2)
	assert.Equal(t, "zero", out[0].Name)
	assert.Equal(t, "unrated", out[1].Name)
}

func TestScoreIsIdempotent(t *testing.T) {
	entries := []models.CatalogEntry{
		entry("a", rating(3), spend(5, 12), withCuisine("Malay")),
		entry("b", rating(4), spend(8, 9)),
		entry("c", rating(2.5), withLocation("Inside UTP")),
	}
	before := append([]models.CatalogEntry(nil), entries...)

	p := models.NewPreferenceSet()
	p.MaxBudget = models.Float(10)
	p.Cuisines = []string{"Malay"}

	s := NewScorer(DefaultWeights())
	first := s.Score(entries, p)
	second := s.Score(entries, p)

	assert.Equal(t, first, second)
	assert.Equal(t, before, entries)
}

func TestScoreCustomWeights(t *testing.T) {
	w := DefaultWeights()
	w.RatingFactor = 10

	out := NewScorer(w).Score([]models.CatalogEntry{entry("a", rating(4))}, models.NewPreferenceSet())
	require.Len(t, out, 1)
	assert.Equal(t, 40.0, out[0].Score)
}

func TestMatchesMealIgnoresAny(t *testing.T) {
	e := entry("a")
	e.DiningTag = "Any time"

	assert.False(t, MatchesMeal(&e, models.MealAny))
	assert.False(t, MatchesMeal(&e, ""))

	e.DiningTag = "Breakfast, Tea Time"
	assert.True(t, MatchesMeal(&e, models.MealTeaTime))
}
