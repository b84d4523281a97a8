package stats

import (
	"testing"
	"time"

	"github.com/verte-zerg/ultramac/internal/model"
)

func rec(minute, score int) model.ScoreRecord {
	return model.ScoreRecord{
		Username: "alice",
		PlayedAt: time.Date(2024, 3, 1, 12, minute, 30, 0, time.Local),
		Score:    score,
	}
}

func scoresOf(records []model.ScoreRecord) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.Score
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRecentOrdersByTimestamp(t *testing.T) {
	records := []model.ScoreRecord{rec(3, 1), rec(1, 2), rec(5, 3), rec(2, 4), rec(4, 5), rec(0, 6), rec(6, 7)}
	got := scoresOf(Recent(records, 5))
	if want := []int{7, 3, 5, 1, 4}; !equalInts(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if records[0].Score != 1 || records[6].Score != 7 {
		t.Fatalf("input was reordered: %v", scoresOf(records))
	}
}

func TestRecentTiesPreferLaterAppends(t *testing.T) {
	records := []model.ScoreRecord{rec(1, 1), rec(1, 2), rec(1, 3)}
	got := scoresOf(Recent(records, 2))
	if want := []int{3, 2}; !equalInts(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestTopOrdersByScore(t *testing.T) {
	records := []model.ScoreRecord{rec(0, 4), rec(1, 9), rec(2, 2), rec(3, 9), rec(4, 7), rec(5, 1), rec(6, 5)}
	top := Top(records, 5)
	if want := []int{9, 9, 7, 5, 4}; !equalInts(scoresOf(top), want) {
		t.Fatalf("expected %v, got %v", want, scoresOf(top))
	}
	if !top[0].PlayedAt.Equal(rec(3, 0).PlayedAt) {
		t.Fatalf("expected the more recent 9 first, got %s", top[0].Timestamp())
	}
}

func TestViewsWithFewRecords(t *testing.T) {
	records := []model.ScoreRecord{rec(0, 4), rec(1, 9)}
	if got := Recent(records, 5); len(got) != 2 {
		t.Fatalf("expected 2 recent records, got %d", len(got))
	}
	if got := Top(records, 5); len(got) != 2 {
		t.Fatalf("expected 2 top records, got %d", len(got))
	}
	if got := Top(nil, 5); got != nil {
		t.Fatalf("expected nil for empty history, got %v", got)
	}
	if got := Recent(records, 0); got != nil {
		t.Fatalf("expected nil for n=0, got %v", got)
	}
}
