package fieldlogic

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/opmodel/legacyui/internal/output"
)

// ProcessRequest is one asyncProcess action handed to the process queue.
// Field and Record are shared with the caller; a handler that mutates them
// must not outlive the render pass that submitted it.
type ProcessRequest struct {
	ID     uuid.UUID      `json:"id"`
	Action string         `json:"action"`
	Mode   ViewMode       `json:"mode"`
	Module string         `json:"module"`
	Params map[string]any `json:"params,omitempty"`
	Field  *Field         `json:"field"`
	Record *Record        `json:"record"`
}

// ProcessHandler executes queued process requests.
type ProcessHandler interface {
	Process(ctx context.Context, req ProcessRequest) error
}

// ProcessHandlerFunc adapts a function to ProcessHandler.
type ProcessHandlerFunc func(ctx context.Context, req ProcessRequest) error

// Process implements ProcessHandler.
func (f ProcessHandlerFunc) Process(ctx context.Context, req ProcessRequest) error {
	return f(ctx, req)
}

// ErrQueueClosed is returned by Submit after Close.
var ErrQueueClosed = errors.New("process queue closed")

// ProcessQueue is a bounded worker pool implementing AsyncRunner.
// Requests are started in submission order per worker; completion order is
// not guaranteed.
type ProcessQueue struct {
	handler ProcessHandler
	reqs    chan ProcessRequest
	group   errgroup.Group

	mu     sync.RWMutex
	closed bool
}

// NewProcessQueue starts workers goroutines feeding handler. buffer bounds
// the number of pending requests.
func NewProcessQueue(handler ProcessHandler, workers, buffer int) *ProcessQueue {
	if workers < 1 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}

	q := &ProcessQueue{
		handler: handler,
		reqs:    make(chan ProcessRequest, buffer),
	}
	for range workers {
		q.group.Go(q.work)
	}
	return q
}

func (q *ProcessQueue) work() error {
	for req := range q.reqs {
		if err := q.handler.Process(context.Background(), req); err != nil {
			output.Warn("process failed", "id", req.ID, "action", req.Action, "err", err)
		}
	}
	return nil
}

// Submit enqueues req, blocking while the buffer is full.
func (q *ProcessQueue) Submit(ctx context.Context, req ProcessRequest) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}

	select {
	case q.reqs <- req:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting requests and waits for queued ones to finish.
// It is safe to call more than once.
func (q *ProcessQueue) Close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.reqs)
	}
	q.mu.Unlock()

	_ = q.group.Wait()
}
