package cmd

import (
	"github.com/charmbracelet/lipgloss"

	"deleter/internal/tui"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorAccent)
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorSuccess)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorDanger)
	dimStyle     = lipgloss.NewStyle().Foreground(tui.ColorDim)

	scanRootStyle   = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorAccent)
	scanValueStyle  = lipgloss.NewStyle().Foreground(tui.ColorInk)
	scanDimStyle    = lipgloss.NewStyle().Foreground(tui.ColorDim)
	scanBulletStyle = lipgloss.NewStyle().Foreground(tui.ColorDim)
)
