package store

import (
	"context"
	"sort"
	"sync"

	"github.com/verte-zerg/ultramac/internal/model"
)

// Memory keeps scores for the lifetime of the process.
type Memory struct {
	mu      sync.Mutex
	records map[string][]model.ScoreRecord
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{records: map[string][]model.ScoreRecord{}}
}

// Append implements ScoreStore.
func (m *Memory) Append(_ context.Context, rec model.ScoreRecord) error {
	if err := checkUsername(rec.Username); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[rec.Username] = append(m.records[rec.Username], rec)
	return nil
}

// Query implements ScoreStore. The returned slice is a copy.
func (m *Memory) Query(_ context.Context, username string) ([]model.ScoreRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	src := m.records[username]
	if len(src) == 0 {
		return nil, nil
	}
	out := make([]model.ScoreRecord, len(src))
	copy(out, src)
	return out, nil
}

// Users lists every username with at least one game.
func (m *Memory) Users(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]string, 0, len(m.records))
	for name := range m.records {
		users = append(users, name)
	}
	sort.Strings(users)
	return users, nil
}

// Close implements ScoreStore.
func (m *Memory) Close() error {
	return nil
}
