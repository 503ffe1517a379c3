package recommender

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/imkonsowa/makansini/catalog"
	"github.com/imkonsowa/makansini/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalog = `name,spend_range,min_spend,max_spend,dining_tag,halal,cuisine,hours,days,travel_mins,location,rating
Warung Pak Ali,RM6 - RM12,6,12,"Lunch, Dinner",Yes,Malay,11am - 10pm,"Monday, Tuesday, Wednesday, Thursday, Friday",5,Tronoh,4.2
Mamak Corner,RM5 - RM10,5,10,"Breakfast, Dinner",Yes,Mamak,24 hours,"Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday",3,Inside UTP,3.9
Seoul Kitchen,RM15 - RM30,15,30,Dinner,No,Korean,5pm - 11pm,"Friday, Saturday",12,Bandar Universiti,4.6
Cafe Tronoh,RM8 - RM15,8,15,Tea Time,Yes,Cafe,2pm - 6pm,Saturday,7,Tronoh,4.0
`

type staticSource struct {
	catalog *catalog.Catalog
	err     error
}

func (s staticSource) Catalog(context.Context) (*catalog.Catalog, error) {
	return s.catalog, s.err
}

func newTestService(t *testing.T, data string) *Service {
	t.Helper()

	c, err := catalog.Parse("test.csv", strings.NewReader(data))
	require.NoError(t, err)

	return NewService(staticSource{catalog: c}, DefaultOptions())
}

func resultNames(r *Result) []string {
	out := make([]string, len(r.Recommendations))
	for i, rec := range r.Recommendations {
		out[i] = rec.Name
	}

	return out
}

func TestRecommend(t *testing.T) {
	svc := newTestService(t, testCatalog)

	p := models.NewPreferenceSet()
	p.Cuisines = []string{"Malay"}
	p.HalalPref = models.HalalOnly
	p.MaxBudget = models.Float(12)

	res, err := svc.Recommend(context.Background(), p, "Monday")
	require.NoError(t, err)

	assert.Equal(t, StatusOK, res.Status)
	assert.Equal(t, "Monday", res.Today)
	require.NotEmpty(t, res.Recommendations)
	assert.Equal(t, "Warung Pak Ali", res.Recommendations[0].Name)
	assert.NotEmpty(t, res.Recommendations[0].Reasons)
	assert.NotEmpty(t, res.Summary)

	for _, rec := range res.Recommendations {
		assert.NotEqual(t, "Seoul Kitchen", rec.Name, "closed on Monday")
		assert.NotEqual(t, "Cafe Tronoh", rec.Name, "closed on Monday")
		assert.Equal(t, rec.Breakdown.Total(), rec.Score)
	}
}

func TestRecommendClosedToday(t *testing.T) {
	data := `name,days,cuisine,rating
Only Weekdays,"Monday, Tuesday",Thai,4
Also Weekdays,Wednesday,Korean,3
`
	svc := newTestService(t, data)

	res, err := svc.Recommend(context.Background(), models.NewPreferenceSet(), "Sunday")
	require.NoError(t, err)

	assert.Equal(t, StatusClosedToday, res.Status)
	assert.Equal(t, []string{"Only Weekdays", "Also Weekdays"}, resultNames(res))
}

func TestRecommendWithoutDaysColumn(t *testing.T) {
	data := `name,cuisine,rating
Anywhere,Thai,4
`
	svc := newTestService(t, data)

	res, err := svc.Recommend(context.Background(), models.NewPreferenceSet(), "Sunday")
	require.NoError(t, err)

	assert.Equal(t, StatusOK, res.Status)
	assert.Equal(t, []string{"Anywhere"}, resultNames(res))
}

func TestRecommendEmptyCatalog(t *testing.T) {
	svc := newTestService(t, "name,cuisine\n")

	res, err := svc.Recommend(context.Background(), models.NewPreferenceSet(), "Monday")
	require.NoError(t, err)

	assert.Equal(t, StatusEmptyCatalog, res.Status)
	assert.NotNil(t, res.Recommendations)
	assert.Empty(t, res.Recommendations)
}

func TestRecommendOpenTodayDisabled(t *testing.T) {
	c, err := catalog.Parse("test.csv", strings.NewReader(testCatalog))
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.OnlyOpenToday = false
	svc := NewService(staticSource{catalog: c}, opts)

	p := models.NewPreferenceSet()
	p.Cuisines = []string{"Korean"}

	res, err := svc.Recommend(context.Background(), p, "Monday")
	require.NoError(t, err)
	require.NotEmpty(t, res.Recommendations)
	assert.Equal(t, "Seoul Kitchen", res.Recommendations[0].Name)
}

func TestRecommendSourceError(t *testing.T) {
	cause := &catalog.DataSourceError{Source: "missing.csv", Err: errors.New("boom")}
	svc := NewService(staticSource{err: cause}, DefaultOptions())

	_, err := svc.Recommend(context.Background(), models.NewPreferenceSet(), "Monday")
	require.Error(t, err)

	var dsErr *catalog.DataSourceError
	assert.ErrorAs(t, err, &dsErr)
	assert.Equal(t, "missing.csv", dsErr.Source)
}

func TestServiceParserUsesCatalogVocabulary(t *testing.T) {
	svc := newTestService(t, testCatalog)

	parser, err := svc.Parser(context.Background())
	require.NoError(t, err)

	p := parser.ParseText("somewhere in bandar universiti please")
	assert.Equal(t, "Bandar Universiti", p.LocationPref)
}

func TestDayName(t *testing.T) {
	// 2024-01-07 23:30 UTC is already Monday in Kuala Lumpur.
	now := time.Date(2024, 1, 7, 23, 30, 0, 0, time.UTC)

	loc := time.FixedZone("MYT", 8*60*60)
	assert.Equal(t, "Monday", DayName(now, loc))
	assert.Equal(t, "Sunday", DayName(now, time.UTC))
}
