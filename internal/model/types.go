// Package model defines shared data structures.
package model

import (
	"strings"
	"time"
)

// TimestampLayout is how score timestamps are written and compared.
const TimestampLayout = "2006-01-02 15:04:05"

// Config defines game settings after flags and the config file are merged.
type Config struct {
	Username  string        `validate:"required,max=64"`
	TimeLimit time.Duration `validate:"gte=1s"`
	Lower     int           `validate:"gte=0"`
	Upper     int           `validate:"gtfield=Lower"`
	Seed      int64
	Template  string
	Store     string `validate:"oneof=sqlite csv memory"`
	StorePath string
	LogLevel  string `validate:"oneof=debug info warn error"`
}

// ScoreRecord is one finished game.
type ScoreRecord struct {
	// SessionID is optional; backends that cannot store it leave it empty.
	SessionID string
	Username  string
	PlayedAt  time.Time
	Score     int
	TimeLimit time.Duration
}

// Timestamp renders PlayedAt with TimestampLayout.
func (r ScoreRecord) Timestamp() string {
	return r.PlayedAt.Format(TimestampLayout)
}

// ParseTimestamp parses a TimestampLayout value in the local time zone.
func ParseTimestamp(value string) (time.Time, error) {
	return time.ParseInLocation(TimestampLayout, strings.TrimSpace(value), time.Local)
}

// ScoreSummary aggregates a user's history.
type ScoreSummary struct {
	Games   int
	Best    int
	Average float64
	Last    *ScoreRecord
}
