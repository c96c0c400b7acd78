package processor

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	"deleter/internal/match"
)

type job struct {
	file File
	// recheck is set when the file comes from an earlier scan and may have
	// changed since.
	recheck bool
}

type sweeper struct {
	opts     SweepOptions
	remover  Remover
	counters *Counters
	failed   *failedList
	updates  chan<- ProgressUpdate

	joinMu  sync.Mutex
	joinErr *JoinError
}

// Sweep processes files that an earlier Scan matched. Each file is checked
// again right before it is acted on: a file that vanished counts as failed,
// one that is no longer a regular file or has shrunk below opts.MinSize is
// skipped.
func Sweep(ctx context.Context, files []File, opts SweepOptions, updates chan<- ProgressUpdate) (SweepOutcome, error) {
	return run(ctx, opts, updates, func(send func(job) error) error {
		for _, f := range files {
			if err := send(job{file: f, recheck: true}); err != nil {
				return err
			}
		}
		return nil
	})
}

// SweepRoots walks roots again with the same predicate and size floor as
// Scan and processes what it finds. The walk and the earlier scan may see
// different filesystem states.
func SweepRoots(ctx context.Context, roots []string, pred *match.Predicate, opts SweepOptions, updates chan<- ProgressUpdate) (SweepOutcome, error) {
	return run(ctx, opts, updates, func(send func(job) error) error {
		for _, root := range roots {
			err := walkFunc(ctx, root, pred, opts.MinSize, func(f File) error {
				return send(job{file: f})
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func run(ctx context.Context, opts SweepOptions, updates chan<- ProgressUpdate, produce func(send func(job) error) error) (SweepOutcome, error) {
	s := &sweeper{
		opts:     opts,
		remover:  opts.Remover,
		counters: &Counters{},
		failed:   &failedList{},
		updates:  updates,
	}
	if s.remover == nil {
		s.remover = RemoverFor(opts.Mode)
	}

	logrus.WithFields(logrus.Fields{
		"mode":    opts.Mode.String(),
		"workers": concurrency(opts.Concurrency),
	}).Info("sweep started")

	jobs := make(chan job)

	workers := concurrency(opts.Concurrency)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := range jobs {
				s.process(j)
			}
		}()
	}

	producerErr := make(chan error, 1)
	go func() {
		defer close(jobs)

		sendJob := func(j job) error {
			select {
			case jobs <- j:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		var err error
		func() {
			defer recoverJoin("producer", &err)
			err = produce(sendJob)
		}()
		producerErr <- err
	}()

	wg.Wait()

	outcome := SweepOutcome{
		Deleted:     s.counters.Deleted(),
		Failed:      s.counters.Failed(),
		Skipped:     s.counters.Skipped(),
		Processed:   s.counters.Processed(),
		FreedBytes:  s.counters.FreedBytes(),
		FailedPaths: s.failed.snapshot(),
	}

	logrus.WithFields(logrus.Fields{
		"deleted": outcome.Deleted,
		"failed":  outcome.Failed,
		"skipped": outcome.Skipped,
	}).Info("sweep finished")

	if err := <-producerErr; err != nil {
		return outcome, err
	}
	if s.joinErr != nil {
		return outcome, s.joinErr
	}
	return outcome, nil
}

func (s *sweeper) process(j job) {
	defer func() {
		s.counters.AddProcessed()
		s.send(ProgressUpdate{ProcessedDelta: 1})
	}()
	defer func() {
		if r := recover(); r != nil {
			s.fail(j.file.Path, fmt.Errorf("panic: %v", r))
			s.joinMu.Lock()
			if s.joinErr == nil {
				s.joinErr = &JoinError{Unit: j.file.Path, Cause: r}
			}
			s.joinMu.Unlock()
		}
	}()

	if s.opts.ReportEach {
		s.send(ProgressUpdate{Path: j.file.Path})
	}

	size := j.file.Size
	if j.recheck {
		current, ok, err := s.recheck(j.file)
		if err != nil {
			s.fail(j.file.Path, err)
			return
		}
		if !ok {
			s.counters.AddSkipped()
			return
		}
		size = current
	}

	if s.opts.Mode == ModeDryRun || s.remover == nil {
		return
	}

	if err := s.remover.Remove(j.file.Path); err != nil {
		s.fail(j.file.Path, err)
		return
	}
	s.counters.AddDeleted(size)
	s.send(ProgressUpdate{DeletedDelta: 1, FreedDelta: size})
}

// recheck reports the current size of f and whether it still qualifies.
func (s *sweeper) recheck(f File) (uint64, bool, error) {
	info, err := os.Lstat(f.Path)
	if err != nil {
		return 0, false, err
	}
	if !info.Mode().IsRegular() {
		return 0, false, nil
	}
	size := uint64(info.Size())
	if size < s.opts.MinSize {
		return 0, false, nil
	}
	return size, true, nil
}

func (s *sweeper) fail(path string, err error) {
	s.counters.AddFailed()
	s.failed.add(path)
	logrus.WithError(err).WithField("path", path).Debug("sweep failed for file")
	s.send(ProgressUpdate{FailedDelta: 1})
}

func (s *sweeper) send(u ProgressUpdate) {
	if s.updates != nil {
		s.updates <- u
	}
}

