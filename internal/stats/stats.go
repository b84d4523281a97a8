// Package stats derives score history views and renders them as text.
package stats

import (
	"math"
	"strings"

	"github.com/verte-zerg/ultramac/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Summarize computes games played, best and average score, and the most
// recent game.
func Summarize(records []model.ScoreRecord) model.ScoreSummary {
	if len(records) == 0 {
		return model.ScoreSummary{}
	}
	summary := model.ScoreSummary{Games: len(records), Best: records[0].Score}
	total := 0
	last := 0
	for i, rec := range records {
		total += rec.Score
		if rec.Score > summary.Best {
			summary.Best = rec.Score
		}
		// Later appends win ties on timestamp.
		if !rec.PlayedAt.Before(records[last].PlayedAt) {
			last = i
		}
	}
	summary.Average = float64(total) / float64(len(records))
	lastRec := records[last]
	summary.Last = &lastRec
	return summary
}

// Scores returns the scores of records ordered oldest first.
func Scores(records []model.ScoreRecord) []float64 {
	ordered := Recent(records, len(records))
	out := make([]float64, len(ordered))
	for i, rec := range ordered {
		out[len(ordered)-1-i] = float64(rec.Score)
	}
	return out
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 || len(values) == 0 {
		copy(out, values)
		return out
	}
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}
