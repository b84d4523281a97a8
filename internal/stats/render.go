package stats

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/verte-zerg/ultramac/internal/model"
)

const trendWindow = 3

var headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))

// RenderHistory prints the summary, recent and top tables, and a score
// trend for a user.
func RenderHistory(w io.Writer, username string, records []model.ScoreRecord) error {
	return RenderReport(w, NewReport(username, records))
}

// RenderReport prints a prepared report.
func RenderReport(w io.Writer, report Report) error {
	useColor := shouldUseColor(w)
	if len(report.Records) == 0 {
		_, err := fmt.Fprintf(w, "No games recorded for %s.\n", report.Username)
		return err
	}
	if err := renderSummary(w, report, useColor); err != nil {
		return err
	}
	if err := renderScoreTable(w, "Recent", report.Recent, useColor); err != nil {
		return err
	}
	if err := renderScoreTable(w, "Top", report.Top, useColor); err != nil {
		return err
	}
	if len(report.Trend) < 2 {
		return nil
	}
	if _, err := fmt.Fprintln(w, heading("Trend", useColor)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s\n", Sparkline(MovingAverage(report.Trend, trendWindow)))
	return err
}

func renderSummary(w io.Writer, report Report, useColor bool) error {
	s := report.Summary
	if _, err := fmt.Fprintln(w, heading("Scores for "+report.Username, useColor)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Games: %d\n", s.Games); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best: %d\n", s.Best); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Average: %.2f\n", s.Average); err != nil {
		return err
	}
	if s.Last != nil {
		if _, err := fmt.Fprintf(w, "Last: %d (%s)\n", s.Last.Score, s.Last.Timestamp()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func renderScoreTable(w io.Writer, title string, records []model.ScoreRecord, useColor bool) error {
	if _, err := fmt.Fprintln(w, heading(title, useColor)); err != nil {
		return err
	}
	for _, line := range formatTable([]string{"#", "Date", "Score"}, ScoreRows(records), map[int]bool{0: true, 2: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// ScoreRows formats records as rank, timestamp and score cells.
func ScoreRows(records []model.ScoreRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for i, rec := range records {
		rows = append(rows, []string{strconv.Itoa(i + 1), rec.Timestamp(), strconv.Itoa(rec.Score)})
	}
	return rows
}

func heading(text string, useColor bool) string {
	if !useColor {
		return text
	}
	return headingStyle.Render(text)
}

func shouldUseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
