package processor

import (
	"sync"
	"sync/atomic"
)

// Counters is the shared tally of a sweep. Every field only ever grows and
// is safe for use from any number of workers.
type Counters struct {
	deleted   atomic.Uint64
	failed    atomic.Uint64
	skipped   atomic.Uint64
	processed atomic.Uint64
	freed     atomic.Uint64
}

func (c *Counters) AddDeleted(size uint64) {
	c.deleted.Add(1)
	c.freed.Add(size)
}

func (c *Counters) AddFailed()    { c.failed.Add(1) }
func (c *Counters) AddSkipped()   { c.skipped.Add(1) }
func (c *Counters) AddProcessed() { c.processed.Add(1) }

func (c *Counters) Deleted() uint64    { return c.deleted.Load() }
func (c *Counters) Failed() uint64     { return c.failed.Load() }
func (c *Counters) Skipped() uint64    { return c.skipped.Load() }
func (c *Counters) Processed() uint64  { return c.processed.Load() }
func (c *Counters) FreedBytes() uint64 { return c.freed.Load() }

// failedList collects paths that could not be removed. Appends happen from
// workers; the list is read only once all of them have returned.
type failedList struct {
	mu    sync.Mutex
	paths []string
}

func (l *failedList) add(path string) {
	l.mu.Lock()
	l.paths = append(l.paths, path)
	l.mu.Unlock()
}

func (l *failedList) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.paths...)
}
