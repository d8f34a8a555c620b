package fieldlogic

import (
	"context"
	"errors"
	"fmt"
)

// Handler executes one logic action.
type Handler interface {
	// Key is the action key the handler serves.
	Key() string

	// Modes lists the view modes the handler registers under.
	Modes() []ViewMode

	// Run applies the action. Side effects go through data.
	Run(ctx context.Context, action Action, data ActionData) error
}

var (
	// ErrDuplicateAction is returned when a (mode, key) pair is registered twice.
	ErrDuplicateAction = errors.New("duplicate action")

	// ErrRegistryFrozen is returned when registering after Freeze.
	ErrRegistryFrozen = errors.New("action registry is frozen")
)

// Registry maps (mode, key) to a Handler.
//
// Register is meant for process startup and is not safe for concurrent use.
// After Freeze the registry is read-only and Lookup needs no locking.
type Registry struct {
	handlers map[ViewMode]map[string]Handler
	frozen   bool
}

// NewRegistry returns an empty registry with a bucket per known mode.
func NewRegistry() *Registry {
	r := &Registry{handlers: make(map[ViewMode]map[string]Handler)}
	for _, m := range Modes() {
		r.handlers[m] = make(map[string]Handler)
	}
	return r
}

// NewDefaultRegistry returns a frozen registry holding the built-in actions.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	if err := r.Register(NewDisplayTypeAction()); err != nil {
		panic(err)
	}
	r.Freeze()
	return r
}

// Register adds h under every mode it declares. Nothing is registered when
// any (mode, key) pair is already taken.
func (r *Registry) Register(h Handler) error {
	if r.frozen {
		return ErrRegistryFrozen
	}

	key := h.Key()
	for _, m := range h.Modes() {
		if !m.Known() {
			return fmt.Errorf("action %q: unknown mode %q", key, m)
		}
		if _, taken := r.handlers[m][key]; taken {
			return fmt.Errorf("action %q in mode %q: %w", key, m, ErrDuplicateAction)
		}
	}

	for _, m := range h.Modes() {
		r.handlers[m][key] = h
	}
	return nil
}

// Freeze makes the registry read-only.
func (r *Registry) Freeze() {
	r.frozen = true
}

// Lookup returns the handler registered for key in mode.
func (r *Registry) Lookup(mode ViewMode, key string) (Handler, bool) {
	bucket, ok := r.handlers[mode]
	if !ok {
		return nil, false
	}
	h, ok := bucket[key]
	return h, ok
}
