package dataset

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Batch processing limits.
const (
	// DefaultBatchSize is the number of items per batch.
	DefaultBatchSize = 500

	// MinBatchSize is the minimum allowed batch size.
	MinBatchSize = 1

	// MaxBatchSize is the maximum allowed batch size.
	MaxBatchSize = 10000
)

// Batch processing errors.
var (
	ErrInvalidBatchSize = errors.New("batch size must be between 1 and 10000")
	ErrNilCallback      = errors.New("batch callback cannot be nil")
)

// BatchFunc processes one batch. start is the index of batch[0] in the input.
type BatchFunc[T any] func(ctx context.Context, batch []T, start int) error

// Progress is reported after every completed batch.
type Progress struct {
	TotalItems       int
	ProcessedItems   int
	TotalBatches     int
	ProcessedBatches int
}

// Processor splits items into fixed-size batches and processes them
// concurrently with a bounded number of workers.
type Processor[T any] struct {
	// batchSize is the number of items per batch.
	batchSize int

	// workers bounds the number of batches in flight.
	workers int

	// onProgress is an optional callback invoked after each batch.
	onProgress func(Progress)

	// mu serializes progress updates.
	mu sync.Mutex
}

// NewProcessor creates a processor. workers below 1 means one worker.
func NewProcessor[T any](batchSize, workers int) (*Processor[T], error) {
	if batchSize < MinBatchSize || batchSize > MaxBatchSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBatchSize, batchSize)
	}
	return &Processor[T]{batchSize: batchSize, workers: max(workers, 1)}, nil
}

// WithProgress sets a progress callback. It is called from worker goroutines
// but never concurrently.
func (p *Processor[T]) WithProgress(fn func(Progress)) *Processor[T] {
	p.onProgress = fn
	return p
}

// Batches returns the [start, end) boundaries for n items.
func (p *Processor[T]) Batches(n int) [][2]int {
	out := make([][2]int, 0, (n+p.batchSize-1)/p.batchSize)
	for start := 0; start < n; start += p.batchSize {
		out = append(out, [2]int{start, min(start+p.batchSize, n)})
	}
	return out
}

// Process runs fn over every batch. The first error cancels the remaining
// batches and is returned.
func (p *Processor[T]) Process(ctx context.Context, items []T, fn BatchFunc[T]) error {
	if fn == nil {
		return ErrNilCallback
	}
	batches := p.Batches(len(items))
	progress := Progress{TotalItems: len(items), TotalBatches: len(batches)}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for _, b := range batches {
		start, end := b[0], b[1]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := fn(gctx, items[start:end], start); err != nil {
				return fmt.Errorf("batch at %d failed: %w", start, err)
			}
			p.mu.Lock()
			defer p.mu.Unlock()
			progress.ProcessedItems += end - start
			progress.ProcessedBatches++
			if p.onProgress != nil {
				p.onProgress(progress)
			}
			return nil
		})
	}
	return g.Wait()
}
