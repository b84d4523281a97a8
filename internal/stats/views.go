package stats

import (
	"sort"

	"github.com/verte-zerg/ultramac/internal/model"
)

// DefaultViewSize is the number of rows in the recent and top views.
const DefaultViewSize = 5

// Recent returns up to n records, most recent first. Records with the same
// timestamp keep reverse append order. The input is not modified.
func Recent(records []model.ScoreRecord, n int) []model.ScoreRecord {
	items := reversed(records)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PlayedAt.After(items[j].PlayedAt)
	})
	return head(items, n)
}

// Top returns up to n records with the highest scores. Equal scores are
// ordered most recent first. The input is not modified.
func Top(records []model.ScoreRecord, n int) []model.ScoreRecord {
	items := reversed(records)
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Score == items[j].Score {
			return items[i].PlayedAt.After(items[j].PlayedAt)
		}
		return items[i].Score > items[j].Score
	})
	return head(items, n)
}

func reversed(records []model.ScoreRecord) []model.ScoreRecord {
	out := make([]model.ScoreRecord, len(records))
	for i, rec := range records {
		out[len(records)-1-i] = rec
	}
	return out
}

func head(records []model.ScoreRecord, n int) []model.ScoreRecord {
	if n <= 0 || len(records) == 0 {
		return nil
	}
	if n > len(records) {
		n = len(records)
	}
	return records[:n]
}
