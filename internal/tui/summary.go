// Package tui renders the static end-of-run report. There is no live
// progress display; output is printed once after the batch joins.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type SummaryRow struct {
	Label string
	Value string
}

// RenderSummary formats rows as a two-column table with aligned separators.
func RenderSummary(rows []SummaryRow) string {
	labelWidth := 0
	valueWidth := 0
	for _, row := range rows {
		if len(row.Label) > labelWidth {
			labelWidth = len(row.Label)
		}
		if len(row.Value) > valueWidth {
			valueWidth = len(row.Value)
		}
	}

	hline := strings.Repeat("-", labelWidth+valueWidth+3)
	lines := []string{hline}

	for _, row := range rows {
		label := padRight(row.Label, labelWidth)
		value := padRight(row.Value, valueWidth)
		lines = append(lines, fmt.Sprintf("%s | %s", labelStyle.Render(label), valueStyle.Render(value)))
	}

	lines = append(lines, hline)
	return strings.Join(lines, "\n")
}

// RenderOutcome styles one per-file result line by its terminal state.
func RenderOutcome(line string, succeeded, skipped bool) string {
	switch {
	case skipped:
		return skipStyle.Render(line)
	case succeeded:
		return okStyle.Render(line)
	default:
		return failStyle.Render(line)
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

var (
	labelStyle = lipgloss.NewStyle().Foreground(ColorAccent)
	valueStyle = lipgloss.NewStyle().Foreground(ColorInk).Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(ColorSuccess)
	skipStyle  = lipgloss.NewStyle().Foreground(ColorWarn)
	failStyle  = lipgloss.NewStyle().Foreground(ColorFail)
)
