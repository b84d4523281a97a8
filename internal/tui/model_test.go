package tui

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/ultramac/internal/game"
	"github.com/verte-zerg/ultramac/internal/logging"
	"github.com/verte-zerg/ultramac/internal/mathgen"
	"github.com/verte-zerg/ultramac/internal/model"
	"github.com/verte-zerg/ultramac/internal/store"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestModel(t *testing.T, st store.ScoreStore) (*Model, *testClock) {
	t.Helper()
	clock := &testClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)}
	seed := int64(0)
	m, err := NewModel(Options{
		NewSession: func() (*game.Session, error) {
			seed++
			gen, err := mathgen.NewWithSeed(mathgen.DefaultDifficulty, seed)
			if err != nil {
				return nil, err
			}
			return game.New(game.Options{
				Username:  "alice",
				TimeLimit: 5 * time.Second,
				Problems:  gen,
				Recorder:  st,
				Clock:     clock.Now,
				Logger:    logging.Discard(),
			})
		},
		Store:  st,
		Clock:  clock.Now,
		Logger: logging.Discard(),
	})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	return m, clock
}

func press(m *Model, key tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: key})
	return cmd
}

func typeText(m *Model, text string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func answer(m *Model, correct bool) {
	solution := m.snap.Problem.Solution
	if !correct {
		solution++
	}
	typeText(m, strconv.Itoa(solution))
	press(m, tea.KeyEnter)
}

func TestGameFlow(t *testing.T) {
	st := store.NewMemory()
	m, clock := newTestModel(t, st)

	if !strings.Contains(m.View(), "Press enter to start") {
		t.Fatalf("expected intro screen, got:\n%s", m.View())
	}
	if cmd := press(m, tea.KeyEnter); cmd == nil {
		t.Fatalf("expected start to schedule a tick")
	}
	if m.snap.Status != game.StatusRunning {
		t.Fatalf("expected running game, got %s", m.snap.Status)
	}

	answer(m, true)
	answer(m, true)
	answer(m, false)
	if m.snap.Score != 2 {
		t.Fatalf("expected score 2, got %d", m.snap.Score)
	}
	if m.input.Value() != "" {
		t.Fatalf("expected input to be cleared, got %q", m.input.Value())
	}

	clock.Advance(3 * time.Second)
	_, cmd := m.Update(tickMsg{sessionID: m.snap.SessionID})
	if cmd == nil || m.snap.Status != game.StatusRunning {
		t.Fatalf("expected the game to keep ticking")
	}

	clock.Advance(2 * time.Second)
	_, cmd = m.Update(tickMsg{sessionID: m.snap.SessionID})
	if cmd != nil {
		t.Fatalf("expected no further ticks after the game ends")
	}
	if m.snap.Status != game.StatusFinished {
		t.Fatalf("expected finished game, got %s", m.snap.Status)
	}

	records, err := st.Query(context.Background(), "alice")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(records) != 1 || records[0].Score != 2 {
		t.Fatalf("unexpected records: %+v", records)
	}
	view := m.View()
	for _, want := range []string{"Time's up!", "Final score: 2", "2 of 3 answers correct", "Recent", "Top"} {
		if !strings.Contains(view, want) {
			t.Fatalf("results missing %q:\n%s", want, view)
		}
	}
}

func TestStaleTickIsIgnored(t *testing.T) {
	m, clock := newTestModel(t, store.NewMemory())
	press(m, tea.KeyEnter)
	clock.Advance(time.Minute)

	_, cmd := m.Update(tickMsg{sessionID: "other"})
	if cmd != nil {
		t.Fatalf("expected stale tick to be dropped")
	}
	if m.snap.Status != game.StatusRunning {
		t.Fatalf("stale tick changed status to %s", m.snap.Status)
	}
}

func TestEscapeAbandonsWithoutSaving(t *testing.T) {
	st := store.NewMemory()
	m, _ := newTestModel(t, st)
	press(m, tea.KeyEnter)
	answer(m, true)

	press(m, tea.KeyEsc)
	if m.snap.Status != game.StatusFinished || !m.snap.Abandoned {
		t.Fatalf("expected abandoned game, got %+v", m.snap)
	}
	records, err := st.Query(context.Background(), "alice")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected nothing saved, got %+v", records)
	}
	if !strings.Contains(m.View(), "Score not saved") {
		t.Fatalf("expected abandon notice:\n%s", m.View())
	}
}

func TestPlayAgainStartsNewSession(t *testing.T) {
	m, clock := newTestModel(t, store.NewMemory())
	press(m, tea.KeyEnter)
	first := m.snap.SessionID
	clock.Advance(5 * time.Second)
	m.Update(tickMsg{sessionID: first})

	if cmd := press(m, tea.KeyEnter); cmd == nil {
		t.Fatalf("expected play again to schedule a tick")
	}
	if m.snap.Status != game.StatusRunning {
		t.Fatalf("expected running game, got %s", m.snap.Status)
	}
	if m.snap.SessionID == first {
		t.Fatalf("expected a new session")
	}
	if m.snap.Score != 0 {
		t.Fatalf("expected fresh score, got %d", m.snap.Score)
	}
}

func TestLateAnswerFinishesGame(t *testing.T) {
	st := store.NewMemory()
	m, clock := newTestModel(t, st)
	press(m, tea.KeyEnter)
	answer(m, true)
	clock.Advance(6 * time.Second)
	answer(m, true)

	if m.snap.Status != game.StatusFinished {
		t.Fatalf("expected finished game, got %s", m.snap.Status)
	}
	if m.snap.Score != 1 {
		t.Fatalf("expected late answer not to count, got %d", m.snap.Score)
	}
}

func TestRenderStatusLine(t *testing.T) {
	m, clock := newTestModel(t, store.NewMemory())
	press(m, tea.KeyEnter)
	clock.Advance(1500 * time.Millisecond)
	answer(m, true)

	out := m.renderStatusLine()
	for _, want := range []string{"alice", "Score 1", "Time 0:04"} {
		if !strings.Contains(out, want) {
			t.Fatalf("status line missing %q: %s", want, out)
		}
	}
}

func TestFeedbackLine(t *testing.T) {
	p := mathgen.Problem{Text: "5 + 7 = ", Solution: 12}
	if got := feedbackLine(p, " 3 ", false); !strings.Contains(got, "5 + 7 = 12 (you said 3)") {
		t.Fatalf("unexpected feedback %q", got)
	}
	if got := feedbackLine(p, "", false); !strings.Contains(got, "you said nothing") {
		t.Fatalf("unexpected feedback %q", got)
	}
	if got := feedbackLine(p, "12", true); !strings.Contains(got, "correct") {
		t.Fatalf("unexpected feedback %q", got)
	}
}

func TestFormatRemaining(t *testing.T) {
	cases := map[time.Duration]string{
		0:                      "0:00",
		-time.Second:           "0:00",
		400 * time.Millisecond: "0:01",
		59 * time.Second:       "0:59",
		2 * time.Minute:        "2:00",
		90*time.Second + 1:     "1:31",
	}
	for d, want := range cases {
		if got := formatRemaining(d); got != want {
			t.Fatalf("formatRemaining(%s) = %q, want %q", d, got, want)
		}
	}
}

type queryCountingStore struct {
	store.ScoreStore
	queries int
}

func (s *queryCountingStore) Query(ctx context.Context, username string) ([]model.ScoreRecord, error) {
	s.queries++
	return s.ScoreStore.Query(ctx, username)
}

func TestTickAfterFinishIsIgnored(t *testing.T) {
	st := &queryCountingStore{ScoreStore: store.NewMemory()}
	m, clock := newTestModel(t, st)
	press(m, tea.KeyEnter)
	id := m.snap.SessionID
	press(m, tea.KeyEsc)
	if st.queries != 1 {
		t.Fatalf("expected results to load once, got %d queries", st.queries)
	}

	clock.Advance(time.Minute)
	if _, cmd := m.Update(tickMsg{sessionID: id}); cmd != nil {
		t.Fatalf("expected no tick after the game ended")
	}
	if st.queries != 1 {
		t.Fatalf("expected no reload after the game ended, got %d queries", st.queries)
	}
	if !m.snap.Abandoned {
		t.Fatalf("expected abandoned game to stay abandoned")
	}
}
