package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"deleter/internal/gate"
	"deleter/internal/pipeline"
	"deleter/internal/processor"
	"deleter/internal/tui"
	"deleter/pkg/bytesize"
)

// maxFailedShown bounds the failed paths printed after a sweep.
const maxFailedShown = 20

func runDelete(cmd *cobra.Command, args []string) error {
	rootSet, pred, err := selection(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	mode := processor.ModeFor(flagDryRun, flagTrash)
	plan := pipeline.Plan{
		Roots:       rootSet,
		Predicate:   pred,
		MinSize:     uint64(flagMinSize),
		Mode:        mode,
		Concurrency: flagParallelism,
		Verbose:     flagVerbose,
		AssumeYes:   flagYes,
		Rewalk:      flagRewalk,
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, headerStyle.Render("🔍 Scanning..."))

	report, err := pipeline.Run(ctx, plan, pipeline.Deps{
		In:  cmd.InOrStdin(),
		Out: out,
		Scanned: func(r processor.ScanResult) {
			if r.Files > 0 {
				fmt.Fprintf(out, "Found %d files (%s).\n", r.Files, bytesize.Format(r.Bytes))
			}
		},
		Progress: progressSink(out, mode, flagVerbose, cancel),
	})
	if errors.Is(err, gate.ErrCancelled) {
		fmt.Fprintln(out, dimStyle.Render("Cancelled. Nothing was removed."))
		return err
	}

	switch report.Status {
	case pipeline.StatusNothing:
		if err == nil {
			fmt.Fprintln(out, "Nothing matched.")
		}
	case pipeline.StatusDryRun:
		printSweep(out, mode, report)
		fmt.Fprintln(out, successStyle.Render("Preview complete."))
	case pipeline.StatusCompleted:
		printSweep(out, mode, report)
		fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ Removed %d files, freed %s",
			report.Sweep.Deleted, bytesize.Format(report.Sweep.FreedBytes))))
	}
	return err
}

func printSweep(out io.Writer, mode processor.Mode, report pipeline.Report) {
	removed := "Files removed"
	if mode == processor.ModeDryRun {
		removed = "Files that would be removed"
	}
	affected := report.Sweep.Deleted
	if mode == processor.ModeDryRun {
		affected = report.Sweep.Processed - report.Sweep.Failed - report.Sweep.Skipped
	}

	rows := []tui.SummaryRow{
		{Label: "Mode", Value: mode.String()},
		{Label: "Files matched", Value: fmt.Sprintf("%d", report.Scan.Files)},
		{Label: removed, Value: fmt.Sprintf("%d", affected)},
		{Label: "Failed", Value: fmt.Sprintf("%d", report.Sweep.Failed)},
	}
	if report.Sweep.Skipped > 0 {
		rows = append(rows, tui.SummaryRow{Label: "Skipped (changed since scan)", Value: fmt.Sprintf("%d", report.Sweep.Skipped)})
	}
	rows = append(rows, tui.SummaryRow{Label: "Space freed", Value: bytesize.Format(report.Sweep.FreedBytes)})

	fmt.Fprintln(out, tui.RenderSummary(rows))
	if failures := tui.RenderFailures(report.Sweep.FailedPaths, maxFailedShown); failures != "" {
		fmt.Fprintln(out, failures)
	}
}

// progressSink shows the bubbletea progress view on a terminal and falls
// back to plain path output otherwise.
func progressSink(out io.Writer, mode processor.Mode, verbose bool, cancel func()) func(uint64) (chan<- processor.ProgressUpdate, func()) {
	return func(total uint64) (chan<- processor.ProgressUpdate, func()) {
		fmt.Fprintln(out, headerStyle.Render("🗑️  Processing..."))

		updates := make(chan processor.ProgressUpdate, 64)
		uiDone := make(chan struct{})

		if isTerminal(out) {
			program := tea.NewProgram(tui.NewModel(updates, total, mode, cancel), tea.WithOutput(out))
			go func() {
				defer close(uiDone)
				if _, err := program.Run(); err != nil {
					logrus.WithError(err).Warn("progress display failed")
					tui.Drain(updates, out, verbose)
				}
			}()
		} else {
			go func() {
				defer close(uiDone)
				tui.Drain(updates, out, verbose)
			}()
		}

		return updates, func() { <-uiDone }
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
