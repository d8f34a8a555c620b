package fieldlogic

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessQueue_DrainsOnClose(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []string
	)
	q := NewProcessQueue(ProcessHandlerFunc(func(_ context.Context, req ProcessRequest) error {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, req.Action)
		return nil
	}), 3, 10)

	for _, a := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, q.Submit(context.Background(), ProcessRequest{Action: a}))
	}
	q.Close()

	assert.ElementsMatch(t, []string{"a", "b", "c", "d", "e"}, seen)
	assert.ErrorIs(t, q.Submit(context.Background(), ProcessRequest{Action: "late"}), ErrQueueClosed)
	q.Close()
}

func TestProcessQueue_AssignsIDs(t *testing.T) {
	ids := make(chan uuid.UUID, 1)
	q := NewProcessQueue(ProcessHandlerFunc(func(_ context.Context, req ProcessRequest) error {
		ids <- req.ID
		return nil
	}), 1, 1)

	require.NoError(t, q.Submit(context.Background(), ProcessRequest{Action: "a"}))
	q.Close()

	assert.NotEqual(t, uuid.Nil, <-ids)
}

func TestProcessQueue_AsAsyncRunner(t *testing.T) {
	done := make(chan ProcessRequest, 1)
	q := NewProcessQueue(ProcessHandlerFunc(func(_ context.Context, req ProcessRequest) error {
		done <- req
		return nil
	}), 2, 4)
	d := NewDispatcher(NewDefaultRegistry(), WithAsyncRunner(q))

	field := &Field{Name: "email", Logic: Logic{{Key: "unlink", Modes: []ViewMode{ModeList}, AsyncProcess: true}}}
	d.RunLogic(context.Background(), field, ModeList, &Record{ID: "1", Module: "contacts"})
	q.Close()

	req := <-done
	assert.Equal(t, "unlink", req.Action)
	assert.Equal(t, "contacts", req.Module)
}
