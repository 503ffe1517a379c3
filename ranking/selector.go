package ranking

import "github.com/imkonsowa/makansini/models"

const (
	DefaultMaxCount  = 3
	DefaultThreshold = 15
)

// Select picks the final recommendations from entries already sorted best
// first. Entries with score >= top score - threshold are kept, up to maxCount
// of them: with scores 80, 65, 60 and threshold 15 only 80 and 65 survive,
// keeping 60 as well needs a threshold of 20. A negative threshold disables
// the cut and returns the plain top maxCount. The top entry is always
// returned when entries is not empty.
func Select(entries []models.ScoredEntry, maxCount int, threshold float64) []models.ScoredEntry {
	if len(entries) == 0 {
		return []models.ScoredEntry{}
	}
	if maxCount <= 0 {
		maxCount = DefaultMaxCount
	}

	kept := entries
	if threshold >= 0 {
		floor := entries[0].Score - threshold
		kept = make([]models.ScoredEntry, 0, maxCount)
		for _, e := range entries {
			if e.Score >= floor {
				kept = append(kept, e)
			}
		}
	}

	if len(kept) > maxCount {
		kept = kept[:maxCount]
	}
	if len(kept) == 0 {
		kept = entries[:1]
	}

	out := make([]models.ScoredEntry, len(kept))
	copy(out, kept)

	return out
}
