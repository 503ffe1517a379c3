package ranking

import (
	"testing"

	"github.com/imkonsowa/makansini/models"
	"github.com/stretchr/testify/assert"
)

func TestFilterOpenToday(t *testing.T) {
	entries := []models.CatalogEntry{
		{Name: "weekdays", Days: "Monday, Tuesday, Wednesday, Thursday, Friday"},
		{Name: "weekend", Days: "saturday & SUNDAY"},
		{Name: "unknown"},
		{Name: "daily", Days: "Monday - Sunday, Friday"},
	}

	got := FilterOpenToday(entries, "Friday")
	assert.Equal(t, []string{"weekdays", "daily"}, entryNames(got))

	got = FilterOpenToday(entries, "sunday")
	assert.Equal(t, []string{"weekend", "daily"}, entryNames(got))

	got = FilterOpenToday(entries, "Saturday")
	assert.Equal(t, []string{"weekend"}, entryNames(got))
}

func TestFilterOpenTodayEmptyDay(t *testing.T) {
	entries := []models.CatalogEntry{{Name: "a"}, {Name: "b", Days: "Monday"}}

	assert.Equal(t, entries, FilterOpenToday(entries, " "))
}

func TestFilterOpenTodayNoneOpen(t *testing.T) {
	entries := []models.CatalogEntry{{Name: "a", Days: "Monday"}}

	got := FilterOpenToday(entries, "Tuesday")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func entryNames(entries []models.CatalogEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}

	return out
}
