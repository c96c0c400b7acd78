package processor

import (
	"runtime"

	"deleter/internal/match"
)

type Mode int

const (
	ModeDryRun Mode = iota
	ModeTrash
	ModePermanent
)

func (m Mode) String() string {
	switch m {
	case ModeDryRun:
		return "DRY RUN"
	case ModeTrash:
		return "TRASH"
	case ModePermanent:
		return "PERMANENT DELETE"
	default:
		return "UNKNOWN"
	}
}

// ModeFor picks the sweep mode from the command-line switches. Dry run
// wins over trash.
func ModeFor(dryRun, trash bool) Mode {
	switch {
	case dryRun:
		return ModeDryRun
	case trash:
		return ModeTrash
	default:
		return ModePermanent
	}
}

// DefaultConcurrency is the worker bound used when none is configured.
func DefaultConcurrency() int {
	return runtime.NumCPU() * 4
}

func concurrency(n int) int {
	if n < 1 {
		return DefaultConcurrency()
	}
	return n
}

// File is a matched regular file. Size is taken at scan time.
type File struct {
	Root    string
	Path    string
	RelPath string
	Size    uint64
}

type ScanOptions struct {
	Predicate   *match.Predicate
	MinSize     uint64
	Concurrency int
}

type ScanResult struct {
	Files   uint64
	Bytes   uint64
	Matched []File
}

// Paths returns the matched paths in scan order.
func (r ScanResult) Paths() []string {
	paths := make([]string, 0, len(r.Matched))
	for _, f := range r.Matched {
		paths = append(paths, f.Path)
	}
	return paths
}

type SweepOptions struct {
	Mode        Mode
	MinSize     uint64
	Concurrency int
	ReportEach  bool
	// Remover overrides the removal strategy implied by Mode.
	Remover Remover
}

type SweepOutcome struct {
	Deleted     uint64
	Failed      uint64
	Skipped     uint64
	Processed   uint64
	FreedBytes  uint64
	FailedPaths []string
}

type ProgressUpdate struct {
	ProcessedDelta int
	DeletedDelta   int
	FailedDelta    int
	FreedDelta     uint64
	// Path is set when a file is reported before it is acted on.
	Path string
}
