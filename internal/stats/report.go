package stats

import (
	"context"

	"github.com/verte-zerg/ultramac/internal/model"
	"github.com/verte-zerg/ultramac/internal/store"
)

// Report contains precomputed data for history rendering.
type Report struct {
	Username string
	Records  []model.ScoreRecord
	Summary  model.ScoreSummary
	Recent   []model.ScoreRecord
	Top      []model.ScoreRecord
	Trend    []float64
}

// BuildReport loads a user's games and prepares the recent and top views.
func BuildReport(ctx context.Context, st store.ScoreStore, username string) (Report, error) {
	records, err := st.Query(ctx, username)
	if err != nil {
		return Report{}, err
	}
	return NewReport(username, records), nil
}

// NewReport prepares the views for records already in memory.
func NewReport(username string, records []model.ScoreRecord) Report {
	return Report{
		Username: username,
		Records:  records,
		Summary:  Summarize(records),
		Recent:   Recent(records, DefaultViewSize),
		Top:      Top(records, DefaultViewSize),
		Trend:    Scores(records),
	}
}
