// Package game runs one timed drill: it hands out problems, checks answers
// and reports the final score once time runs out.
package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/ultramac/internal/mathgen"
	"github.com/verte-zerg/ultramac/internal/model"
)

// DefaultTimeLimit is the length of a game when none is configured.
const DefaultTimeLimit = 2 * time.Minute

var (
	// ErrAlreadyStarted is returned by Start once the session has left Idle.
	ErrAlreadyStarted = errors.New("game already started")
	// ErrNotRunning is returned for actions that need a running game.
	ErrNotRunning = errors.New("game is not running")
	// ErrTimeUp is returned by Submit for an answer that arrived after the
	// deadline. The session is finished by the same call.
	ErrTimeUp = errors.New("time is up")
)

// Status is the lifecycle position of a session.
type Status int

// Sessions move Idle -> Running -> Finished and never go back.
const (
	StatusIdle Status = iota
	StatusRunning
	StatusFinished
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusFinished:
		return "finished"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// ProblemSource hands out the next problem to solve.
type ProblemSource interface {
	Next() (mathgen.Problem, error)
}

// ScoreRecorder persists a finished game.
type ScoreRecorder interface {
	Append(ctx context.Context, rec model.ScoreRecord) error
}

// Options configures a Session.
type Options struct {
	Username  string
	TimeLimit time.Duration
	Problems  ProblemSource
	// Recorder receives the final score. Nil disables persistence.
	Recorder ScoreRecorder
	Clock    func() time.Time
	Logger   *slog.Logger
	// Listener is called with a fresh snapshot after every state change,
	// outside the session lock.
	Listener func(Snapshot)
}

// Snapshot is a read-only copy of session state for presentation.
type Snapshot struct {
	SessionID  string
	Username   string
	Status     Status
	Problem    mathgen.Problem
	Score      int
	Answered   int
	LastResult *bool
	StartedAt  time.Time
	Deadline   time.Time
	FinishedAt time.Time
	TimeLimit  time.Duration
	Abandoned  bool
	Saved      bool
	SaveErr    error
}

// Session is the state machine for one game. All methods are safe for
// concurrent use; each runs atomically with respect to the others.
type Session struct {
	mu sync.Mutex

	id        string
	username  string
	timeLimit time.Duration
	problems  ProblemSource
	recorder  ScoreRecorder
	clock     func() time.Time
	logger    *slog.Logger
	listener  func(Snapshot)

	status     Status
	problem    mathgen.Problem
	score      int
	answered   int
	lastResult *bool
	startedAt  time.Time
	deadline   time.Time
	finishedAt time.Time
	abandoned  bool
	saved      bool
	saveErr    error
}

// New creates an idle session.
func New(opts Options) (*Session, error) {
	if opts.Problems == nil {
		return nil, fmt.Errorf("problem source is required")
	}
	if opts.TimeLimit <= 0 {
		opts.TimeLimit = DefaultTimeLimit
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	id := uuid.NewString()
	return &Session{
		id:        id,
		username:  opts.Username,
		timeLimit: opts.TimeLimit,
		problems:  opts.Problems,
		recorder:  opts.Recorder,
		clock:     opts.Clock,
		logger:    opts.Logger.With("session_id", id),
		listener:  opts.Listener,
	}, nil
}

// Start begins the countdown and draws the first problem. It fails with
// ErrAlreadyStarted unless the session is idle; if no problem can be drawn
// the session stays idle.
func (s *Session) Start() error {
	s.mu.Lock()
	if s.status != StatusIdle {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	first, err := s.problems.Next()
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to generate problem: %w", err)
	}
	now := s.clock()
	s.status = StatusRunning
	s.problem = first
	s.score = 0
	s.answered = 0
	s.startedAt = now
	s.deadline = now.Add(s.timeLimit)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Info("game started", "user", s.username, "time_limit", s.timeLimit)
	s.notify(snap)
	return nil
}

// Submit checks raw against the current problem and moves on to the next
// one whether or not it was right. Input that is not an integer counts as
// a wrong answer. An answer that arrives after the deadline is not scored;
// it finishes the game and returns ErrTimeUp. If the next problem cannot be
// drawn the answer is not scored and the current problem stays.
func (s *Session) Submit(raw string) (bool, error) {
	s.mu.Lock()
	if s.status != StatusRunning {
		s.mu.Unlock()
		return false, ErrNotRunning
	}
	now := s.clock()
	if !now.Before(s.deadline) {
		rec := s.finishLocked(now)
		s.mu.Unlock()
		s.complete(rec)
		return false, ErrTimeUp
	}

	next, err := s.problems.Next()
	if err != nil {
		s.mu.Unlock()
		return false, fmt.Errorf("failed to generate problem: %w", err)
	}
	correct := checkAnswer(raw, s.problem.Solution)
	s.answered++
	if correct {
		s.score++
	}
	s.lastResult = &correct
	s.problem = next
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return correct, nil
}

// Tick finishes the game once now reaches the deadline. Ticking a session
// that is idle or already finished changes nothing.
func (s *Session) Tick(now time.Time) Status {
	s.mu.Lock()
	if s.status != StatusRunning || now.Before(s.deadline) {
		status := s.status
		s.mu.Unlock()
		return status
	}
	rec := s.finishLocked(now)
	s.mu.Unlock()

	s.complete(rec)
	return StatusFinished
}

// Abandon ends a running game without recording its score.
func (s *Session) Abandon() error {
	s.mu.Lock()
	if s.status != StatusRunning {
		s.mu.Unlock()
		return ErrNotRunning
	}
	s.status = StatusFinished
	s.finishedAt = s.clock()
	s.abandoned = true
	s.problem = mathgen.Problem{}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Info("game abandoned", "user", s.username, "score", snap.Score)
	s.notify(snap)
	return nil
}

// Display returns the current problem text, or "" when no game is running.
func (s *Session) Display() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusRunning {
		return ""
	}
	return s.problem.Text
}

// Score returns the number of correct answers so far.
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// Status returns the lifecycle status.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Remaining returns the time left at now, never negative.
func (s *Session) Remaining(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.status {
	case StatusIdle:
		return s.timeLimit
	case StatusFinished:
		return 0
	}
	left := s.deadline.Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		SessionID:  s.id,
		Username:   s.username,
		Status:     s.status,
		Problem:    s.problem,
		Score:      s.score,
		Answered:   s.answered,
		StartedAt:  s.startedAt,
		Deadline:   s.deadline,
		FinishedAt: s.finishedAt,
		TimeLimit:  s.timeLimit,
		Abandoned:  s.abandoned,
		Saved:      s.saved,
		SaveErr:    s.saveErr,
	}
	if s.lastResult != nil {
		v := *s.lastResult
		snap.LastResult = &v
	}
	return snap
}

// finishLocked moves a running session to Finished and returns the record
// to persist. The caller must hold s.mu and must call complete afterwards.
func (s *Session) finishLocked(now time.Time) model.ScoreRecord {
	s.status = StatusFinished
	s.finishedAt = now
	s.problem = mathgen.Problem{}
	return model.ScoreRecord{
		SessionID: s.id,
		Username:  s.username,
		PlayedAt:  now,
		Score:     s.score,
		TimeLimit: s.timeLimit,
	}
}

// complete persists the final score and notifies the listener. A failed
// save is logged and kept on the snapshot; the score itself stands.
func (s *Session) complete(rec model.ScoreRecord) {
	s.logger.Info("game finished", "user", rec.Username, "score", rec.Score)
	var saveErr error
	if s.recorder != nil {
		saveErr = s.recorder.Append(context.Background(), rec)
		if saveErr != nil {
			s.logger.Error("failed to save score", "user", rec.Username, "score", rec.Score, "error", saveErr)
		}
	}

	s.mu.Lock()
	s.saved = s.recorder != nil && saveErr == nil
	s.saveErr = saveErr
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
}

func (s *Session) notify(snap Snapshot) {
	if s.listener != nil {
		s.listener(snap)
	}
}

func checkAnswer(raw string, solution int) bool {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return value == solution
}
