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

func RenderSummary(rows []SummaryRow) string {
	labelWidth := 0
	valueWidth := 0
	for _, row := range rows {
		labelWidth = max(labelWidth, lipgloss.Width(row.Label))
		valueWidth = max(valueWidth, lipgloss.Width(row.Value))
	}

	hline := dimStyle.Render(strings.Repeat("-", labelWidth+valueWidth+3))
	lines := []string{hline}

	for _, row := range rows {
		label := padRight(row.Label, labelWidth)
		value := padRight(row.Value, valueWidth)
		line := fmt.Sprintf("%s | %s", labelStyle.Render(label), valueStyle.Render(value))
		lines = append(lines, line)
	}

	lines = append(lines, hline)
	return strings.Join(lines, "\n")
}

// RenderFailures lists at most limit failed paths followed by a count of
// the ones left out.
func RenderFailures(paths []string, limit int) string {
	if len(paths) == 0 {
		return ""
	}

	lines := []string{failStyle.Render(fmt.Sprintf("%d file(s) could not be removed:", len(paths)))}
	shown := paths
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	for _, p := range shown {
		lines = append(lines, "  "+dimStyle.Render("-")+" "+p)
	}
	if rest := len(paths) - len(shown); rest > 0 {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("  ... and %d more", rest)))
	}
	lines = append(lines, dimStyle.Render("Check permissions or whether the files are in use."))
	return strings.Join(lines, "\n")
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

var (
	valueStyle = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	failStyle  = lipgloss.NewStyle().Foreground(ColorDanger).Bold(true)
)
