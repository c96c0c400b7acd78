package tui

import (
	"fmt"
	"io"

	"deleter/internal/processor"
)

// Drain consumes updates without a terminal UI, printing each reported
// path to w when verbose is set. It returns when updates is closed.
func Drain(updates <-chan processor.ProgressUpdate, w io.Writer, verbose bool) {
	for u := range updates {
		if verbose && u.Path != "" {
			fmt.Fprintln(w, u.Path)
		}
	}
}
