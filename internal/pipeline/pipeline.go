// Package pipeline runs one scan, one confirmation and one sweep.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"deleter/internal/gate"
	"deleter/internal/match"
	"deleter/internal/processor"
)

type Status int

const (
	StatusNothing Status = iota
	StatusDryRun
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusNothing:
		return "nothing matched"
	case StatusDryRun:
		return "dry run"
	case StatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

type Plan struct {
	Roots       []string
	Predicate   *match.Predicate
	MinSize     uint64
	Mode        processor.Mode
	Concurrency int
	Verbose     bool
	AssumeYes   bool
	// Rewalk makes the sweep walk the roots again instead of working from
	// the scanned list.
	Rewalk bool
}

type Deps struct {
	// In answers the confirmation prompt. Nil declines.
	In  io.Reader
	Out io.Writer
	// Remover replaces the removal strategy implied by the mode.
	Remover processor.Remover
	// Scanned is called with the scan result before the prompt.
	Scanned func(processor.ScanResult)
	// Progress is called right before the sweep with the number of files
	// to process. The pipeline closes the returned channel when the sweep
	// ends and then calls done.
	Progress func(total uint64) (updates chan<- processor.ProgressUpdate, done func())
}

type Report struct {
	Status Status
	Scan   processor.ScanResult
	Sweep  processor.SweepOutcome
}

// Run scans plan.Roots, asks for confirmation unless the plan is a dry run
// or pre-approved, and sweeps the matched files. A declined prompt returns
// gate.ErrCancelled before anything is touched.
func Run(ctx context.Context, plan Plan, deps Deps) (Report, error) {
	log := logrus.WithFields(logrus.Fields{
		"roots":   len(plan.Roots),
		"mode":    plan.Mode.String(),
		"pattern": plan.Predicate.String(),
	})

	log.Info("scan started")
	result, err := processor.Scan(ctx, plan.Roots, processor.ScanOptions{
		Predicate:   plan.Predicate,
		MinSize:     plan.MinSize,
		Concurrency: plan.Concurrency,
	})
	if err != nil {
		return Report{}, fmt.Errorf("scan: %w", err)
	}
	log.WithFields(logrus.Fields{"files": result.Files, "bytes": result.Bytes}).Info("scan finished")

	report := Report{Status: StatusNothing, Scan: result}
	if deps.Scanned != nil {
		deps.Scanned(result)
	}

	g := gate.New(plan.AssumeYes || plan.Mode == processor.ModeDryRun, deps.In, deps.Out)
	ok, err := g.Scanned(result.Files)
	if err != nil || !ok {
		return report, err
	}

	err = g.Confirm(ctx, gate.Summary{
		Files: result.Files,
		Bytes: result.Bytes,
		Mode:  plan.Mode.String(),
		Paths: result.Paths(),
	})
	if err != nil {
		if finishErr := g.Finish(); finishErr != nil {
			return report, errors.Join(err, finishErr)
		}
		return report, err
	}

	if err := g.BeginSweep(); err != nil {
		return report, err
	}

	var (
		updates chan<- processor.ProgressUpdate
		done    func()
	)
	if deps.Progress != nil {
		updates, done = deps.Progress(result.Files)
	}

	opts := processor.SweepOptions{
		Mode:        plan.Mode,
		MinSize:     plan.MinSize,
		Concurrency: plan.Concurrency,
		ReportEach:  plan.Verbose,
		Remover:     deps.Remover,
	}
	var (
		outcome  processor.SweepOutcome
		sweepErr error
	)
	if plan.Rewalk {
		log.Debug("sweeping by walking roots again")
		outcome, sweepErr = processor.SweepRoots(ctx, plan.Roots, plan.Predicate, opts, updates)
	} else {
		outcome, sweepErr = processor.Sweep(ctx, result.Matched, opts, updates)
	}

	if updates != nil {
		close(updates)
	}
	if done != nil {
		done()
	}

	report.Sweep = outcome
	report.Status = StatusCompleted
	if plan.Mode == processor.ModeDryRun {
		report.Status = StatusDryRun
	}

	if err := g.Finish(); err != nil {
		return report, err
	}
	if sweepErr != nil {
		return report, fmt.Errorf("sweep: %w", sweepErr)
	}
	return report, nil
}
