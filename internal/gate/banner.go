package gate

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"deleter/internal/tui"
	"deleter/pkg/bytesize"
)

const PreviewLimit = 10

func RenderBanner(s Summary) string {
	lines := []string{
		dangerStyle.Render("⚠️  DANGER"),
		fmt.Sprintf("%s %s", labelStyle.Render("Files:"), valueStyle.Render(fmt.Sprintf("%d", s.Files))),
		fmt.Sprintf("%s %s", labelStyle.Render("Size: "), valueStyle.Render(bytesize.Format(s.Bytes))),
		fmt.Sprintf("%s %s", labelStyle.Render("Mode: "), modeStyle.Render(s.Mode)),
	}

	shown := s.Paths
	if len(shown) > PreviewLimit {
		shown = shown[:PreviewLimit]
	}
	if len(shown) > 0 {
		lines = append(lines, labelStyle.Render("Preview:"))
		for _, p := range shown {
			lines = append(lines, "  "+pathStyle.Render(p))
		}
		if s.Files > uint64(len(shown)) {
			rest := s.Files - uint64(len(shown))
			lines = append(lines, dimStyle.Render(fmt.Sprintf("  ... and %d more", rest)))
		}
	}

	return strings.Join(lines, "\n")
}

var (
	dangerStyle = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorDanger)
	labelStyle  = lipgloss.NewStyle().Foreground(tui.ColorDim)
	valueStyle  = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorInk)
	modeStyle   = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorWarn)
	pathStyle   = lipgloss.NewStyle().Foreground(tui.ColorAccent)
	dimStyle    = lipgloss.NewStyle().Foreground(tui.ColorDim)
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorWarn)
)
