package processor

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type rootScan struct {
	mu    sync.Mutex
	files uint64
	bytes uint64
	list  []File
}

func (r *rootScan) add(f File) error {
	r.mu.Lock()
	r.files++
	r.bytes += f.Size
	r.list = append(r.list, f)
	r.mu.Unlock()
	return nil
}

// Scan walks every root, at most opts.Concurrency at a time, and returns
// the aggregate of matching files. Results are merged in root order once
// every traversal has finished. A traversal that panics fails the whole
// scan with a *JoinError.
func Scan(ctx context.Context, roots []string, opts ScanOptions) (ScanResult, error) {
	perRoot := make([]*rootScan, len(roots))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency(opts.Concurrency))
	for i, root := range roots {
		acc := &rootScan{}
		perRoot[i] = acc
		g.Go(func() (err error) {
			defer recoverJoin(root, &err)
			return walkFunc(gctx, root, opts.Predicate, opts.MinSize, acc.add)
		})
	}

	if err := g.Wait(); err != nil {
		return ScanResult{}, err
	}

	var result ScanResult
	for i, acc := range perRoot {
		logrus.WithFields(logrus.Fields{
			"root":  roots[i],
			"files": acc.files,
			"bytes": acc.bytes,
		}).Debug("root scanned")
		result.Files += acc.files
		result.Bytes += acc.bytes
		result.Matched = append(result.Matched, acc.list...)
	}
	return result, nil
}
