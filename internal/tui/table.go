package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/ultramac/internal/model"
	"github.com/verte-zerg/ultramac/internal/stats"
)

var scoreColumns = []table.Column{
	{Title: "#", Width: 2},
	{Title: "Date", Width: len(model.TimestampLayout)},
	{Title: "Score", Width: 5},
}

func buildScoreTable(records []model.ScoreRecord) table.Model {
	cells := stats.ScoreRows(records)
	rows := make([]table.Row, 0, len(cells))
	for _, cell := range cells {
		rows = append(rows, table.Row(cell))
	}
	t := table.New(
		table.WithColumns(scoreColumns),
		table.WithRows(rows),
		table.WithHeight(max(1, len(rows))),
		table.WithFocused(false),
	)
	t.SetStyles(scoreTableStyles())
	return t
}

func scoreTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	// Nothing is selectable; keep the first row unhighlighted.
	styles.Selected = lipgloss.NewStyle()
	return styles
}
