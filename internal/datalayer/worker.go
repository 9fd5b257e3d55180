// Package datalayer serializes every access to persistent storage through a
// single goroutine.
//
// Callers hand requests to a [Worker] through a bounded mailbox. The worker
// runs them one at a time, in arrival order, so the backend never sees
// concurrent use.
package datalayer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/calvinalkan/onpurpose/internal/item"
)

// DefaultMailboxSize is the number of requests that may wait in the mailbox
// before senders block.
const DefaultMailboxSize = 20

// ErrClosed is returned for requests made after [Worker.Close].
var ErrClosed = errors.New("data layer is closed")

// Backend is the storage the worker owns. *store.Store implements it.
type Backend interface {
	Snapshot(ctx context.Context) (item.Snapshot, error)
	CreateItem(ctx context.Context, kind item.Kind, summary string) (item.ItemRecord, error)
	FinishItem(ctx context.Context, id string, at time.Time) error
	CoverItem(ctx context.Context, smaller, parent string) (item.CoveringRecord, error)
	RemoveCovering(ctx context.Context, smaller, parent string) error
	CoverUntil(ctx context.Context, id string, until time.Time) (item.TimeCoveringRecord, error)
	SetRequirements(ctx context.Context, id string, kinds []item.RequirementKind) ([]item.RequirementRecord, error)
	SetStaging(ctx context.Context, id string, staging item.Staging) error
	UpdateSummary(ctx context.Context, id, summary string) error
}

type request struct {
	op  string
	ctx context.Context
	run func(ctx context.Context, b Backend)
}

// Worker is the single owner of a [Backend].
//
// All methods are safe for concurrent use. A request whose context is already
// done is never enqueued. Once enqueued, a request runs to completion even if
// the caller stops waiting for it.
type Worker struct {
	backend Backend
	log     *slog.Logger

	mu     sync.RWMutex // guards closed and sends on reqs
	closed bool
	reqs   chan request
	done   chan struct{}

	closeOnce sync.Once
	closeErr  error
}

// New starts a worker that owns backend. A mailboxSize <= 0 uses
// [DefaultMailboxSize]. A nil logger discards.
func New(backend Backend, mailboxSize int, logger *slog.Logger) *Worker {
	if mailboxSize <= 0 {
		mailboxSize = DefaultMailboxSize
	}

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	w := &Worker{
		backend: backend,
		log:     logger,
		reqs:    make(chan request, mailboxSize),
		done:    make(chan struct{}),
	}

	go w.loop()

	return w
}

func (w *Worker) loop() {
	defer close(w.done)

	for req := range w.reqs {
		start := time.Now()

		req.run(req.ctx, w.backend)

		w.log.Debug("request processed", "op", req.op, "duration", time.Since(start), "pending", len(w.reqs))
	}

	w.log.Debug("data layer drained")
}

// Close stops accepting requests, waits until every queued request has run,
// then closes the backend if it implements [io.Closer]. Close is idempotent;
// later calls return the first call's result.
func (w *Worker) Close() error {
	w.closeOnce.Do(func() {
		w.mu.Lock()
		w.closed = true
		close(w.reqs)
		w.mu.Unlock()

		<-w.done

		if c, ok := w.backend.(io.Closer); ok {
			err := c.Close()
			if err != nil {
				w.closeErr = fmt.Errorf("close backend: %w", err)
			}
		}
	})

	return w.closeErr
}

// Pending reports how many requests wait in the mailbox, excluding the one
// currently running.
func (w *Worker) Pending() int {
	return len(w.reqs)
}

// enqueue hands req to the worker. It fails without enqueuing when ctx is
// already done, when ctx ends while the mailbox is full, or after Close.
func (w *Worker) enqueue(ctx context.Context, req request) error {
	err := ctx.Err()
	if err != nil {
		return err
	}

	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.closed {
		return ErrClosed
	}

	select {
	case w.reqs <- req:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type result[T any] struct {
	val T
	err error
}

// call runs fn on the worker goroutine and waits for its result. The backend
// sees a context detached from the caller's cancellation so an enqueued
// mutation is never abandoned half way.
func call[T any](ctx context.Context, w *Worker, op string, fn func(ctx context.Context, b Backend) (T, error)) (T, error) {
	var zero T

	if ctx == nil {
		return zero, fmt.Errorf("%s: context is nil", op)
	}

	out := make(chan result[T], 1)

	err := w.enqueue(ctx, request{
		op:  op,
		ctx: context.WithoutCancel(ctx),
		run: func(ctx context.Context, b Backend) {
			val, runErr := fn(ctx, b)
			out <- result[T]{val: val, err: runErr}
		},
	})
	if err != nil {
		return zero, fmt.Errorf("%s: %w", op, err)
	}

	select {
	case res := <-out:
		return res.val, res.err
	case <-ctx.Done():
		return zero, fmt.Errorf("%s: %w", op, ctx.Err())
	}
}

// Snapshot reads one consistent snapshot of every record.
func (w *Worker) Snapshot(ctx context.Context) (item.Snapshot, error) {
	return call(ctx, w, "snapshot", func(ctx context.Context, b Backend) (item.Snapshot, error) {
		return b.Snapshot(ctx)
	})
}

// View reads a snapshot and resolves it.
func (w *Worker) View(ctx context.Context) (*item.View, error) {
	snap, err := w.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return item.Resolve(snap)
}

// CreateItem captures a new unfinished item of the given kind.
func (w *Worker) CreateItem(ctx context.Context, kind item.Kind, summary string) (item.ItemRecord, error) {
	return call(ctx, w, "create item", func(ctx context.Context, b Backend) (item.ItemRecord, error) {
		return b.CreateItem(ctx, kind, summary)
	})
}

// FinishItem marks the item finished at at. Finishing twice fails.
func (w *Worker) FinishItem(ctx context.Context, id string, at time.Time) error {
	_, err := call(ctx, w, "finish item", func(ctx context.Context, b Backend) (struct{}, error) {
		return struct{}{}, b.FinishItem(ctx, id, at)
	})

	return err
}

// CoverItem records that parent waits on smaller.
func (w *Worker) CoverItem(ctx context.Context, smaller, parent string) (item.CoveringRecord, error) {
	return call(ctx, w, "cover item", func(ctx context.Context, b Backend) (item.CoveringRecord, error) {
		return b.CoverItem(ctx, smaller, parent)
	})
}

// RemoveCovering deletes the edge recorded by [Worker.CoverItem].
func (w *Worker) RemoveCovering(ctx context.Context, smaller, parent string) error {
	_, err := call(ctx, w, "remove covering", func(ctx context.Context, b Backend) (struct{}, error) {
		return struct{}{}, b.RemoveCovering(ctx, smaller, parent)
	})

	return err
}

// CoverUntil hides the item until the given time.
func (w *Worker) CoverUntil(ctx context.Context, id string, until time.Time) (item.TimeCoveringRecord, error) {
	return call(ctx, w, "cover until", func(ctx context.Context, b Backend) (item.TimeCoveringRecord, error) {
		return b.CoverUntil(ctx, id, until)
	})
}

// SetRequirements replaces the item's requirements. The caller may reuse kinds
// after the call returns.
func (w *Worker) SetRequirements(ctx context.Context, id string, kinds []item.RequirementKind) ([]item.RequirementRecord, error) {
	kinds = append([]item.RequirementKind(nil), kinds...)

	return call(ctx, w, "set requirements", func(ctx context.Context, b Backend) ([]item.RequirementRecord, error) {
		return b.SetRequirements(ctx, id, kinds)
	})
}

// SetStaging replaces the item's staging.
func (w *Worker) SetStaging(ctx context.Context, id string, staging item.Staging) error {
	_, err := call(ctx, w, "set staging", func(ctx context.Context, b Backend) (struct{}, error) {
		return struct{}{}, b.SetStaging(ctx, id, staging)
	})

	return err
}

// UpdateSummary replaces the item's summary.
func (w *Worker) UpdateSummary(ctx context.Context, id, summary string) error {
	_, err := call(ctx, w, "update summary", func(ctx context.Context, b Backend) (struct{}, error) {
		return struct{}{}, b.UpdateSummary(ctx, id, summary)
	})

	return err
}
