package stats

import (
	"math"
	"testing"

	"github.com/verte-zerg/ultramac/internal/model"
)

func TestSummarize(t *testing.T) {
	summary := Summarize([]model.ScoreRecord{rec(0, 4), rec(2, 9), rec(1, 2)})
	if summary.Games != 3 || summary.Best != 9 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if math.Abs(summary.Average-5) > 1e-9 {
		t.Fatalf("expected average 5, got %f", summary.Average)
	}
	if summary.Last == nil || summary.Last.Score != 9 {
		t.Fatalf("expected last game to be the latest timestamp, got %+v", summary.Last)
	}

	empty := Summarize(nil)
	if empty.Games != 0 || empty.Last != nil {
		t.Fatalf("unexpected empty summary: %+v", empty)
	}
}

func TestScoresOldestFirst(t *testing.T) {
	got := Scores([]model.ScoreRecord{rec(2, 3), rec(0, 1), rec(1, 2)})
	want := []float64{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{4, 9, 2, 5}, 3)
	want := []float64{4, 6.5, 5, 16.0 / 3}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("index %d: expected %f, got %f", i, want[i], got[i])
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 9}); got != " @" {
		t.Fatalf("unexpected sparkline %q", got)
	}
	if got := Sparkline([]float64{3, 3, 3}); got != "+++" {
		t.Fatalf("unexpected flat sparkline %q", got)
	}
	if got := Sparkline(nil); got != "" {
		t.Fatalf("expected empty sparkline, got %q", got)
	}
}
