package catalog

import (
	"regexp"
	"sort"
	"strings"

	"github.com/imkonsowa/makansini/models"
)

const (
	FieldName       = "name"
	FieldSpendRange = "spend_range"
	FieldMinSpend   = "min_spend"
	FieldMaxSpend   = "max_spend"
	FieldDiningTag  = "dining_tag"
	FieldHalal      = "halal"
	FieldCuisine    = "cuisine"
	FieldHours      = "hours"
	FieldDays       = "days"
	FieldTravelMins = "travel_mins"
	FieldLocation   = "location"
	FieldRating     = "rating"
)

var cuisineSeparators = regexp.MustCompile(`[,/;]`)

// Catalog is an immutable snapshot of the restaurant source.
type Catalog struct {
	Source  string
	Entries []models.CatalogEntry

	columns map[string]bool
}

// HasColumn reports whether the source carried a column mapped to field.
func (c *Catalog) HasColumn(field string) bool {
	return c.columns[field]
}

func (c *Catalog) Len() int {
	return len(c.Entries)
}

// Cuisines returns the distinct cuisine names found in the catalog, with
// multi-cuisine cells split on , / and ;.
func (c *Catalog) Cuisines() []string {
	seen := make(map[string]bool)
	out := []string{}

	for _, e := range c.Entries {
		for _, part := range cuisineSeparators.Split(e.Cuisine, -1) {
			part = strings.TrimSpace(part)
			key := strings.ToLower(part)
			if part == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, part)
		}
	}

	sort.Strings(out)

	return out
}

// Locations returns the distinct locations in catalog order.
func (c *Catalog) Locations() []string {
	seen := make(map[string]bool)
	out := []string{}

	for _, e := range c.Entries {
		loc := strings.TrimSpace(e.Location)
		key := strings.ToLower(loc)
		if loc == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, loc)
	}

	return out
}

// CuisineExists reports whether any cuisine cell contains text, ignoring case.
func (c *Catalog) CuisineExists(text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return false
	}

	for _, e := range c.Entries {
		if strings.Contains(strings.ToLower(e.Cuisine), text) {
			return true
		}
	}

	return false
}
