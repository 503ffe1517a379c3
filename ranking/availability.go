package ranking

import (
	"strings"

	"github.com/imkonsowa/makansini/models"
)

// FilterOpenToday keeps the entries whose days text mentions today, ignoring
// case. An entry with no days listed is treated as not confirmed open and is
// dropped. An empty today disables the filter.
func FilterOpenToday(entries []models.CatalogEntry, today string) []models.CatalogEntry {
	today = strings.ToLower(strings.TrimSpace(today))
	if today == "" {
		return entries
	}

	out := make([]models.CatalogEntry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Days), today) {
			out = append(out, e)
		}
	}

	return out
}
