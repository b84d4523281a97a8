// Package tui provides the Bubble Tea game interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/ultramac/internal/game"
	"github.com/verte-zerg/ultramac/internal/mathgen"
	"github.com/verte-zerg/ultramac/internal/stats"
	"github.com/verte-zerg/ultramac/internal/store"
)

const tickInterval = time.Second

var (
	problemStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	accentStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	panelStyle     = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
)

// Options configures the game UI.
type Options struct {
	// NewSession creates a fresh idle session for each game.
	NewSession func() (*game.Session, error)
	// Store is read for the recent and top tables. Nil hides them.
	Store  store.ScoreStore
	Clock  func() time.Time
	Logger *slog.Logger
}

type tickMsg struct {
	sessionID string
}

// Model implements the Bubble Tea game UI.
type Model struct {
	newSession func() (*game.Session, error)
	store      store.ScoreStore
	clock      func() time.Time
	logger     *slog.Logger

	session *game.Session
	snap    game.Snapshot
	input   textinput.Model

	feedback string
	errMsg   string

	report      stats.Report
	recentTable table.Model
	topTable    table.Model

	width  int
	height int
}

// NewModel constructs the game UI with an idle session.
func NewModel(opts Options) (*Model, error) {
	if opts.NewSession == nil {
		return nil, errors.New("session factory is required")
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	m := &Model{
		newSession: opts.NewSession,
		store:      opts.Store,
		clock:      opts.Clock,
		logger:     opts.Logger,
		input:      newAnswerInput(),
	}
	if err := m.resetSession(); err != nil {
		return nil, err
	}
	return m, nil
}

func newAnswerInput() textinput.Model {
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "?"
	input.CharLimit = 12
	input.Width = 12
	return input
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		return m.handleTick(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		if m.snap.Status == game.StatusRunning {
			m.abandon()
		}
		return m, tea.Quit
	}
	switch m.snap.Status {
	case game.StatusIdle:
		switch msg.Type {
		case tea.KeyEnter:
			return m, m.start()
		case tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyRunes:
			if string(msg.Runes) == "q" {
				return m, tea.Quit
			}
		}
		return m, nil
	case game.StatusRunning:
		switch msg.Type {
		case tea.KeyEnter:
			m.submit()
			return m, nil
		case tea.KeyEsc:
			m.abandon()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	default:
		switch msg.Type {
		case tea.KeyEnter:
			if err := m.resetSession(); err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			return m, m.start()
		case tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyRunes:
			switch string(msg.Runes) {
			case "q":
				return m, tea.Quit
			case "r":
				if err := m.resetSession(); err != nil {
					m.errMsg = err.Error()
				}
			}
		}
		return m, nil
	}
}

func (m *Model) handleTick(msg tickMsg) (tea.Model, tea.Cmd) {
	if m.session == nil || msg.sessionID != m.snap.SessionID || m.snap.Status == game.StatusFinished {
		return m, nil
	}
	status := m.session.Tick(m.clock())
	m.snap = m.session.Snapshot()
	if status == game.StatusRunning {
		return m, m.tick()
	}
	m.onFinished()
	return m, nil
}

func (m *Model) tick() tea.Cmd {
	id := m.snap.SessionID
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return tickMsg{sessionID: id}
	})
}

func (m *Model) resetSession() error {
	session, err := m.newSession()
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}
	m.session = session
	m.snap = session.Snapshot()
	m.feedback = ""
	m.errMsg = ""
	m.input.Reset()
	m.input.Blur()
	return nil
}

func (m *Model) start() tea.Cmd {
	if err := m.session.Start(); err != nil {
		m.errMsg = err.Error()
		m.logger.Error("failed to start game", "error", err)
		return nil
	}
	m.snap = m.session.Snapshot()
	m.errMsg = ""
	return tea.Batch(m.input.Focus(), m.tick())
}

func (m *Model) submit() {
	prev := m.snap.Problem
	raw := m.input.Value()

	correct, err := m.session.Submit(raw)
	m.snap = m.session.Snapshot()
	switch {
	case errors.Is(err, game.ErrTimeUp):
		m.input.Reset()
		m.onFinished()
		return
	case err != nil:
		m.errMsg = err.Error()
		m.logger.Error("failed to submit answer", "error", err)
		return
	}
	m.input.Reset()
	m.errMsg = ""
	m.feedback = feedbackLine(prev, raw, correct)
}

func (m *Model) abandon() {
	if err := m.session.Abandon(); err != nil {
		m.logger.Warn("failed to abandon game", "error", err)
	}
	m.snap = m.session.Snapshot()
	m.onFinished()
}

func (m *Model) onFinished() {
	m.input.Blur()
	m.input.Reset()
	m.feedback = ""
	if m.snap.SaveErr != nil {
		m.errMsg = fmt.Sprintf("failed to save score: %v", m.snap.SaveErr)
	}
	m.loadResults()
}

func (m *Model) loadResults() {
	if m.store == nil {
		return
	}
	report, err := stats.BuildReport(context.Background(), m.store, m.snap.Username)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to load scores: %v", err)
		m.logger.Error("failed to load scores", "user", m.snap.Username, "error", err)
		return
	}
	m.report = report
	m.recentTable = buildScoreTable(report.Recent)
	m.topTable = buildScoreTable(report.Top)
}

func feedbackLine(prev mathgen.Problem, raw string, correct bool) string {
	if correct {
		return correctStyle.Render("correct")
	}
	answer := strings.TrimSpace(raw)
	if answer == "" {
		answer = "nothing"
	}
	return incorrectStyle.Render(fmt.Sprintf("%s = %d (you said %s)", prev.Expression(), prev.Solution, answer))
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	switch m.snap.Status {
	case game.StatusIdle:
		content = m.renderIntro()
	case game.StatusRunning:
		content = m.renderGame()
	default:
		content = m.renderResults()
	}
	if m.errMsg != "" {
		content = lipgloss.JoinVertical(lipgloss.Center, content, "", incorrectStyle.Render(m.errMsg))
	}
	if m.width == 0 || m.height == 0 {
		return content
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footer := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, m.renderFooter())
	return body + "\n" + footer
}

func (m *Model) renderIntro() string {
	lines := []string{
		accentStyle.Render("ultramac"),
		"",
		fmt.Sprintf("Player: %s", m.snap.Username),
		fmt.Sprintf("Time limit: %s", formatRemaining(m.snap.TimeLimit)),
		"",
		mutedStyle.Render("Press enter to start"),
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (m *Model) renderGame() string {
	prompt := problemStyle.Render(m.session.Display()) + m.input.View()
	lines := []string{
		m.renderStatusLine(),
		"",
		prompt,
		"",
		m.feedback,
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (m *Model) renderStatusLine() string {
	remaining := m.session.Remaining(m.clock())
	segments := []string{
		m.snap.Username,
		fmt.Sprintf("Score %d", m.snap.Score),
		fmt.Sprintf("Time %s", formatRemaining(remaining)),
	}
	return mutedStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) renderResults() string {
	title := "Time's up!"
	if m.snap.Abandoned {
		title = "Game abandoned"
	}
	lines := []string{
		accentStyle.Render(title),
		fmt.Sprintf("Final score: %d", m.snap.Score),
	}
	if m.snap.Answered > 0 {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("%d of %d answers correct", m.snap.Score, m.snap.Answered)))
	}
	if m.snap.Abandoned {
		lines = append(lines, mutedStyle.Render("Score not saved"))
	}
	if len(m.report.Records) > 0 {
		tables := lipgloss.JoinHorizontal(lipgloss.Top,
			scorePanel("Recent", m.recentTable),
			scorePanel("Top", m.topTable),
		)
		lines = append(lines, "", tables)
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (m *Model) renderFooter() string {
	var help string
	switch m.snap.Status {
	case game.StatusIdle:
		help = "enter start · q quit"
	case game.StatusRunning:
		help = "enter submit · esc give up · ctrl+c quit"
	default:
		help = "enter play again · q quit"
	}
	return footerStyle.Render(help)
}

func scorePanel(title string, t table.Model) string {
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, mutedStyle.Render(title), t.View()))
}

// formatRemaining renders d as m:ss, rounding partial seconds up.
func formatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
