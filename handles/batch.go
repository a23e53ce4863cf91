// Package handles hands out integer handles for objects and releases
// them in batches.
package handles

import (
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sys/cpu"
)

// DefaultBatchSize is the capacity of a Batch created with size 0.
const DefaultBatchSize = 32

// A Batch accumulates values and hands them to its flush function in
// bulk, once the batch is full or when it is drained.
//
// A Batch is safe for concurrent use. The flush function runs with
// the batch locked, and must not call back into the Batch.
type Batch[T any] struct {
	_ cpu.CacheLinePad

	mu      sync.Mutex
	size    int
	items   []T
	flush   func([]T)
	flushes int
	log     *zap.Logger

	_ cpu.CacheLinePad
}

// NewBatch returns a Batch that holds up to size values before
// flushing them. A nil log disables logging.
func NewBatch[T any](size int, flush func([]T), log *zap.Logger) *Batch[T] {
	if size <= 0 {
		size = DefaultBatchSize
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Batch[T]{
		size:  size,
		items: make([]T, 0, size),
		flush: flush,
		log:   log,
	}
}

// Add appends v to the batch. If the batch is already full, the
// entries it holds are flushed first, so v is never dropped.
func (b *Batch[T]) Add(v T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.items) >= b.size {
		b.flushLocked("full")
	}
	b.items = append(b.items, v)
}

// FlushIfFull flushes the batch if it is at capacity, and reports
// whether it did.
func (b *Batch[T]) FlushIfFull() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.items) < b.size {
		return false
	}
	b.flushLocked("full")
	return true
}

// Drain flushes whatever the batch holds.
func (b *Batch[T]) Drain() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.items) == 0 {
		return
	}
	b.flushLocked("drain")
}

// Len returns the number of pending values.
func (b *Batch[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// Flushes returns the number of times the batch has been flushed.
func (b *Batch[T]) Flushes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.flushes
}

func (b *Batch[T]) flushLocked(reason string) {
	items := b.items
	b.items = make([]T, 0, b.size)
	b.flushes++
	b.log.Debug("flushing release batch",
		zap.String("reason", reason),
		zap.Int("count", len(items)))
	b.flush(items)
}
