package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"deleter/internal/processor"
	"deleter/pkg/bytesize"
)

// Model renders sweep progress from a stream of processor.ProgressUpdate
// deltas. It quits once the stream is closed.
type Model struct {
	updates   <-chan processor.ProgressUpdate
	cancel    func()
	bar       progress.Model
	mode      processor.Mode
	started   time.Time
	total     uint64
	processed uint64
	deleted   uint64
	failed    uint64
	freed     uint64
	stopping  bool
	quitting  bool
}

type doneMsg struct{}

type updateMsg processor.ProgressUpdate

// NewModel expects total files to be processed. cancel, if set, is called
// on ctrl+c; the model keeps draining until the sweep closes updates.
func NewModel(updates <-chan processor.ProgressUpdate, total uint64, mode processor.Mode, cancel func()) Model {
	return Model{
		updates: updates,
		cancel:  cancel,
		bar:     progress.New(progress.WithDefaultGradient()),
		mode:    mode,
		started: time.Now(),
		total:   total,
	}
}

func (m Model) Init() tea.Cmd {
	return listenForUpdates(m.updates)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case updateMsg:
		m.processed += uint64(msg.ProcessedDelta)
		m.deleted += uint64(msg.DeletedDelta)
		m.failed += uint64(msg.FailedDelta)
		m.freed += msg.FreedDelta
		if msg.Path != "" {
			return m, tea.Batch(tea.Println(pathStyle.Render(msg.Path)), listenForUpdates(m.updates))
		}
		return m, listenForUpdates(m.updates)
	case doneMsg:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" && !m.stopping {
			m.stopping = true
			if m.cancel != nil {
				m.cancel()
			}
		}
		return m, nil
	case tea.WindowSizeMsg:
		width := msg.Width - 4
		if width > 60 {
			width = 60
		}
		if width < 20 {
			width = 20
		}
		m.bar.Width = width
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	elapsed := time.Since(m.started).Round(time.Millisecond)
	lines := []string{
		titleStyle.Render("deleter 🗑️") + "  " + modeStyle.Render(m.mode.String()),
		labelStyle.Render(fmt.Sprintf("Files: %d/%d", m.processed, m.total)) +
			dimStyle.Render(fmt.Sprintf("  removed:%d failed:%d", m.deleted, m.failed)),
		labelStyle.Render("Freed: " + bytesize.Format(m.freed)),
		dimStyle.Render(fmt.Sprintf("Elapsed: %s", elapsed)),
		m.bar.ViewAs(m.ratio()),
	}
	if m.stopping {
		lines = append(lines, warnStyle.Render("Stopping after in-flight files..."))
	}

	return strings.Join(lines, "\n")
}

func (m Model) ratio() float64 {
	if m.total == 0 {
		return 0
	}
	r := float64(m.processed) / float64(m.total)
	if r > 1 {
		r = 1
	}
	return r
}

func listenForUpdates(updates <-chan processor.ProgressUpdate) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-updates
		if !ok {
			return doneMsg{}
		}
		return updateMsg(update)
	}
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(ColorInk)
	modeStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorWarn)
	warnStyle  = lipgloss.NewStyle().Foreground(ColorWarn)
	pathStyle  = lipgloss.NewStyle().Foreground(ColorAccent)
	dimStyle   = lipgloss.NewStyle().Foreground(ColorDim)
)
