package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"deleter/internal/processor"
	"deleter/internal/tui"
	"deleter/pkg/bytesize"
)

var scanCmd = &cobra.Command{
	Use:   "scan [flags] <paths...>",
	Short: "List matching files without removing anything",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rootSet, pred, err := selection(args)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		result, err := processor.Scan(ctx, rootSet, processor.ScanOptions{
			Predicate:   pred,
			MinSize:     uint64(flagMinSize),
			Concurrency: flagParallelism,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if result.Files == 0 {
			fmt.Fprintln(out, "Nothing matched.")
			return nil
		}

		// Matches arrive grouped by root, in root order.
		lastRoot := ""
		for _, f := range result.Matched {
			root := f.Root
			if root != lastRoot {
				if lastRoot != "" {
					fmt.Fprintln(out)
				}
				fmt.Fprintln(out, scanRootStyle.Render(root))
				lastRoot = root
			}
			if flagVerbose {
				fmt.Fprintf(out, "  %s %s %s\n",
					scanBulletStyle.Render("-"),
					scanValueStyle.Render(f.RelPath),
					scanDimStyle.Render(bytesize.Format(f.Size)),
				)
				continue
			}
			fmt.Fprintf(out, "  %s %s\n", scanBulletStyle.Render("-"), scanValueStyle.Render(f.RelPath))
		}
		fmt.Fprintln(out)

		rows := []tui.SummaryRow{
			{Label: "Roots scanned", Value: fmt.Sprintf("%d", len(rootSet))},
			{Label: "Files matched", Value: fmt.Sprintf("%d", result.Files)},
			{Label: "Total size", Value: bytesize.Format(result.Bytes)},
		}
		fmt.Fprintln(out, tui.RenderSummary(rows))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
