package fieldlogic

import (
	"context"

	"github.com/google/uuid"

	"github.com/opmodel/legacyui/internal/output"
)

// AsyncRunner accepts actions flagged asyncProcess. Submit must not wait for
// the action to complete.
type AsyncRunner interface {
	Submit(ctx context.Context, req ProcessRequest) error
}

// Dispatcher runs the logic a field declares for a view mode.
type Dispatcher struct {
	registry *Registry
	async    AsyncRunner
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithAsyncRunner routes asyncProcess actions that have no registered handler
// to runner.
func WithAsyncRunner(runner AsyncRunner) Option {
	return func(d *Dispatcher) {
		d.async = runner
	}
}

// NewDispatcher returns a Dispatcher over a frozen registry.
func NewDispatcher(registry *Registry, opts ...Option) *Dispatcher {
	registry.Freeze()
	d := &Dispatcher{registry: registry}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ApplicableActions returns the actions of field that run in mode, in
// declaration order. Actions without modes never run.
func ApplicableActions(field *Field, mode ViewMode) []Action {
	if field == nil || len(field.Logic) == 0 {
		return nil
	}

	var actions []Action
	for _, a := range field.Logic {
		if len(a.Modes) == 0 {
			continue
		}
		if a.AppliesTo(mode) {
			actions = append(actions, a)
		}
	}
	return actions
}

// RunLogic invokes the applicable logic of field, in order, and returns the
// keys of the actions that were handed to a handler or to the async runner.
//
// An action with no registered handler for mode is not invoked. Handler
// errors are logged and do not stop the remaining actions.
func (d *Dispatcher) RunLogic(ctx context.Context, field *Field, mode ViewMode, record *Record) []string {
	actions := ApplicableActions(field, mode)
	if len(actions) == 0 {
		return nil
	}

	if record == nil {
		record = &Record{}
	}
	actx := ActionContext{Record: record, Field: field, Module: record.Module}

	invoked := make([]string, 0, len(actions))
	for _, a := range actions {
		if d.runAction(ctx, a, mode, actx) {
			invoked = append(invoked, a.Key)
		}
	}
	return invoked
}

// runAction prefers the handler registered for (mode, key). An asyncProcess
// action without one is handed to the async runner with its field and record.
func (d *Dispatcher) runAction(ctx context.Context, a Action, mode ViewMode, actx ActionContext) bool {
	data := ActionData{Field: actx.Field, Record: actx.Record}

	if h, ok := d.registry.Lookup(mode, a.Key); ok {
		if err := h.Run(ctx, a, data); err != nil {
			output.Warn("action failed", "action", a.Key, "field", actx.Field.Name, "mode", mode, "err", err)
		}
		return true
	}

	if !a.AsyncProcess || d.async == nil {
		return false
	}

	req := ProcessRequest{
		ID:     uuid.New(),
		Action: a.Key,
		Mode:   mode,
		Module: actx.Module,
		Params: a.Params,
		Field:  data.Field,
		Record: data.Record,
	}
	if err := d.async.Submit(ctx, req); err != nil {
		output.Warn("async action not submitted", "action", a.Key, "field", actx.Field.Name, "err", err)
		return false
	}
	return true
}
