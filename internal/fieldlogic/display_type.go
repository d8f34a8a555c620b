package fieldlogic

import (
	"context"
	"fmt"
	"slices"
)

// ActionDisplayType is the key of the built-in display-type action.
const ActionDisplayType = "displayType"

// DisplayTypeAction switches a field's display when the record matches the
// configured field values.
//
// Params:
//
//	targetDisplay:  display to apply while active (none, readonly, ...)
//	activeOnFields: record field name to the list of accepted values
//
// The action is active when every listed record field holds one of its
// accepted values. Otherwise the field returns to its default display.
type DisplayTypeAction struct{}

// NewDisplayTypeAction returns the display-type action.
func NewDisplayTypeAction() *DisplayTypeAction {
	return &DisplayTypeAction{}
}

// Key implements Handler.
func (a *DisplayTypeAction) Key() string { return ActionDisplayType }

// Modes implements Handler.
func (a *DisplayTypeAction) Modes() []ViewMode { return Modes() }

// Run implements Handler.
func (a *DisplayTypeAction) Run(_ context.Context, action Action, data ActionData) error {
	if data.Field == nil {
		return nil
	}

	target, _ := action.Params["targetDisplay"].(string)
	if target == "" {
		return fmt.Errorf("displayType on %q: missing targetDisplay", data.Field.Name)
	}

	if active(action.Params["activeOnFields"], data.Record) {
		data.Field.Display = target
		return nil
	}
	data.Field.ResetDisplay()
	return nil
}

func active(spec any, record *Record) bool {
	fields, ok := spec.(map[string]any)
	if !ok || len(fields) == 0 || record == nil {
		return false
	}

	for name, accepted := range fields {
		value, ok := record.Attributes[name]
		if !ok {
			return false
		}
		if !slices.Contains(stringSet(accepted), fmt.Sprint(value)) {
			return false
		}
	}
	return true
}

func stringSet(v any) []string {
	switch val := v.(type) {
	case []any:
		out := make([]string, len(val))
		for i, item := range val {
			out[i] = fmt.Sprint(item)
		}
		return out
	case []string:
		return val
	case nil:
		return nil
	default:
		return []string{fmt.Sprint(val)}
	}
}
