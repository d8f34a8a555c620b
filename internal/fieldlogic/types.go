// Package fieldlogic dispatches the logic actions a field declares for the
// view mode it is rendered in.
//
// Actions are looked up in a Registry keyed by (mode, key) that is populated
// once at startup and frozen before use. Actions flagged asyncProcess also run
// in unknown modes; those without a registered handler are handed to an
// AsyncRunner.
package fieldlogic

import "slices"

// ViewMode is the rendering context of a field.
type ViewMode string

// Known view modes.
const (
	ModeList       ViewMode = "list"
	ModeDetail     ViewMode = "detail"
	ModeEdit       ViewMode = "edit"
	ModeCreate     ViewMode = "create"
	ModeMassUpdate ViewMode = "massupdate"
	ModeFilter     ViewMode = "filter"
)

// Modes returns every known view mode.
func Modes() []ViewMode {
	return []ViewMode{ModeList, ModeDetail, ModeEdit, ModeCreate, ModeMassUpdate, ModeFilter}
}

// Known reports whether m is one of the known view modes.
func (m ViewMode) Known() bool {
	return slices.Contains(Modes(), m)
}

// Action is a logic behavior declared on a field.
type Action struct {
	Key          string         `json:"key" yaml:"key"`
	Modes        []ViewMode     `json:"modes" yaml:"modes"`
	AsyncProcess bool           `json:"asyncProcess,omitempty" yaml:"asyncProcess,omitempty"`
	Params       map[string]any `json:"params,omitempty" yaml:"params,omitempty"`
}

// AppliesTo reports whether the action runs in mode. Unknown modes admit
// only async actions.
func (a Action) AppliesTo(mode ViewMode) bool {
	if !slices.Contains(a.Modes, mode) {
		return false
	}
	return mode.Known() || a.AsyncProcess
}

// Display values of a field.
const (
	DisplayShow     = "show"
	DisplayNone     = "none"
	DisplayReadonly = "readonly"
)

// Field is a rendered form or list field.
type Field struct {
	Name           string `json:"name" yaml:"name"`
	Type           string `json:"type,omitempty" yaml:"type,omitempty"`
	Value          any    `json:"value,omitempty" yaml:"value,omitempty"`
	Display        string `json:"display,omitempty" yaml:"display,omitempty"`
	DefaultDisplay string `json:"defaultDisplay,omitempty" yaml:"defaultDisplay,omitempty"`
	Logic          Logic  `json:"logic,omitempty" yaml:"logic,omitempty"`
}

// ResetDisplay restores the field's default display.
func (f *Field) ResetDisplay() {
	if f.DefaultDisplay != "" {
		f.Display = f.DefaultDisplay
		return
	}
	f.Display = DisplayShow
}

// Record is the record a field belongs to.
type Record struct {
	ID         string         `json:"id,omitempty" yaml:"id,omitempty"`
	Module     string         `json:"module" yaml:"module"`
	Attributes map[string]any `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// ActionContext is built once per RunLogic call.
type ActionContext struct {
	Record *Record
	Field  *Field
	Module string
}

// ActionData is what a handler receives.
type ActionData struct {
	Field  *Field
	Record *Record
}
