package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/imkonsowa/makansini/models"
	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"
)

// surveyHeaders maps the survey form headers to catalog fields. Headers are
// compared after trimming only; the canonical field names are accepted too.
var surveyHeaders = map[string]string{
	"Restaurant Name":                        FieldName,
	"Range spending per meal":                FieldSpendRange,
	"Minimum spending per person  (eg: RM5)": FieldMinSpend,
	"Maximum spending per person (eg: RM15)": FieldMaxSpend,
	"Dining Tag":                             FieldDiningTag,
	"Is this restaurant Halal?":              FieldHalal,
	"Cuisine Tag":                            FieldCuisine,
	"Operating Hours (eg: 8.00am - 3.00pm)":  FieldHours,
	"Operating Days":                         FieldDays,
	"Travel time from UTP (in mins, eg: 6 mins)": FieldTravelMins,
	"Location/Area": FieldLocation,
	"Rating":        FieldRating,
}

var canonicalFields = []string{
	FieldName, FieldSpendRange, FieldMinSpend, FieldMaxSpend, FieldDiningTag, FieldHalal,
	FieldCuisine, FieldHours, FieldDays, FieldTravelMins, FieldLocation, FieldRating,
}

func fieldForHeader(header string) (string, bool) {
	header = strings.TrimSpace(strings.TrimPrefix(header, "\ufeff"))
	if field, ok := surveyHeaders[header]; ok {
		return field, true
	}
	for _, field := range canonicalFields {
		if header == field {
			return field, true
		}
	}

	return "", false
}

// Load reads the catalog at path. Files ending in .xlsx are read as
// workbooks (first sheet), everything else as CSV.
func Load(path string) (*Catalog, error) {
	var (
		rows [][]string
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = readWorkbook(path)
	default:
		rows, err = readCSV(path)
	}
	if err != nil {
		return nil, sourceError(path, err)
	}

	return build(path, rows)
}

// Parse reads a CSV catalog from r. source only names the catalog in errors.
func Parse(source string, r io.Reader) (*Catalog, error) {
	rows, err := parseCSV(r)
	if err != nil {
		return nil, sourceError(source, err)
	}

	return build(source, rows)
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return parseCSV(f)
}

func parseCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	return rows, nil
}

func readWorkbook(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}

	return rows, nil
}

func build(source string, rows [][]string) (*Catalog, error) {
	if len(rows) == 0 {
		return nil, sourceError(source, errors.New("source is empty"))
	}

	columns := make(map[string]bool)
	index := make(map[string]int)

	for i, header := range rows[0] {
		field, ok := fieldForHeader(header)
		if !ok || columns[field] {
			continue
		}
		columns[field] = true
		index[field] = i
	}

	if !columns[FieldName] {
		return nil, sourceError(source, ErrMissingNameColumn)
	}

	entries := make([]models.CatalogEntry, 0, len(rows)-1)
	for line, row := range rows[1:] {
		cell := func(field string) string {
			i, ok := index[field]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		number := func(field string) *float64 {
			return parseNumber(source, line+2, field, cell(field))
		}

		name := cell(FieldName)
		if name == "" {
			continue
		}

		entries = append(entries, models.CatalogEntry{
			Name:       name,
			SpendRange: cell(FieldSpendRange),
			MinSpend:   nonNegative(number(FieldMinSpend)),
			MaxSpend:   nonNegative(number(FieldMaxSpend)),
			DiningTag:  cell(FieldDiningTag),
			Halal:      cell(FieldHalal),
			Cuisine:    cell(FieldCuisine),
			Hours:      cell(FieldHours),
			Days:       cell(FieldDays),
			TravelMins: nonNegative(number(FieldTravelMins)),
			Location:   cell(FieldLocation),
			Rating:     number(FieldRating),
		})
	}

	slog.Debug("loaded catalog", "source", source, "count", len(entries))

	return &Catalog{
		Source:  source,
		Entries: entries,
		columns: columns,
	}, nil
}

// parseNumber returns nil for empty or unparseable cells; a bad cell is
// never fatal.
func parseNumber(source string, line int, field, raw string) *float64 {
	if raw == "" {
		return nil
	}

	v, err := cast.ToFloat64E(raw)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		slog.Debug("unparseable catalog value", "source", source, "line", line, "field", field, "value", raw)
		return nil
	}

	return &v
}

func nonNegative(v *float64) *float64 {
	if v == nil || *v < 0 {
		return nil
	}

	return v
}
