// Package errors provides sentinel errors and the located errors legacyui
// reports for metadata, config, snapshot and store failures.
package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// Kind is the category of a DetailError. Every kind unwraps to its sentinel.
type Kind int

// Error kinds.
const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindConnectivity
	KindPermission
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation failed"
	case KindNotFound:
		return "not found"
	case KindConnectivity:
		return "connectivity failed"
	case KindPermission:
		return "permission denied"
	default:
		return "error"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindValidation:
		return ErrValidation
	case KindNotFound:
		return ErrNotFound
	case KindConnectivity:
		return ErrConnectivity
	case KindPermission:
		return ErrPermission
	default:
		return nil
	}
}

// DetailError is a failure located in the metadata tree or another input
// file. Location fields are optional and unset ones are not printed.
type DetailError struct {
	Kind    Kind
	Message string

	// File is the metadata, config, snapshot or store file involved.
	File string
	// Module is the legacy module the file belongs to.
	Module string
	// Tab is the subpanel tab key inside a layout.
	Tab string
	// Field is the dotted path inside File.
	Field string

	Hint  string
	Cause error
}

// Validation returns a validation DetailError.
func Validation(message string) *DetailError {
	return &DetailError{Kind: KindValidation, Message: message}
}

// NotFound returns a not-found DetailError.
func NotFound(message string) *DetailError {
	return &DetailError{Kind: KindNotFound, Message: message}
}

// Connectivity returns a connectivity DetailError.
func Connectivity(message string) *DetailError {
	return &DetailError{Kind: KindConnectivity, Message: message}
}

// Permission returns a permission DetailError.
func Permission(message string) *DetailError {
	return &DetailError{Kind: KindPermission, Message: message}
}

// InFile sets the file the error was read from.
func (e *DetailError) InFile(path string) *DetailError {
	e.File = path
	return e
}

// InModule sets the legacy module.
func (e *DetailError) InModule(module string) *DetailError {
	e.Module = module
	return e
}

// InTab sets the subpanel tab key.
func (e *DetailError) InTab(tab string) *DetailError {
	e.Tab = tab
	return e
}

// AtField sets the dotted field path.
func (e *DetailError) AtField(field string) *DetailError {
	e.Field = field
	return e
}

// WithHint sets the actionable hint.
func (e *DetailError) WithHint(hint string) *DetailError {
	e.Hint = hint
	return e
}

// WithCause records the underlying error.
func (e *DetailError) WithCause(err error) *DetailError {
	e.Cause = err
	return e
}

// Location renders the set location fields, outermost first.
func (e *DetailError) Location() string {
	var parts []string
	for _, p := range []struct{ label, value string }{
		{"file", e.File},
		{"module", e.Module},
		{"tab", e.Tab},
		{"field", e.Field},
	} {
		if p.value != "" {
			parts = append(parts, p.label+" "+p.value)
		}
	}
	return strings.Join(parts, ", ")
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	b.WriteString(": ")
	b.WriteString(e.Message)
	if loc := e.Location(); loc != "" {
		b.WriteString(" (")
		b.WriteString(loc)
		b.WriteString(")")
	}
	if e.Hint != "" {
		b.WriteString("\n  hint: ")
		b.WriteString(e.Hint)
	}
	return b.String()
}

// Unwrap returns the kind's sentinel and the cause, if any.
func (e *DetailError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// WithModule sets the module of the first DetailError in err's chain when it
// has none. Other errors are returned unchanged.
func WithModule(err error, module string) error {
	var de *DetailError
	if errors.As(err, &de) && de.Module == "" {
		de.Module = module
	}
	return err
}

// ReadFailure classifies an error from reading path. A missing file is
// not found, an unreadable one is a permission error; what names the file
// in the message.
func ReadFailure(err error, what, path, hint string) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return NotFound(what + " does not exist").InFile(path).WithHint(hint).WithCause(err)
	case errors.Is(err, fs.ErrPermission):
		return Permission(what + " is not readable").InFile(path).WithHint(hint).WithCause(err)
	default:
		return fmt.Errorf("reading %s: %w", what, err)
	}
}

// Wrap wraps an error with a sentinel error type.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}
