package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCodeFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain error", errors.New("boom"), ExitGeneralError},
		{"validation sentinel", Wrap(ErrValidation, "bad layout"), ExitValidationError},
		{"validation detail", Validation("bad").InFile("layouts/Accounts.yaml"), ExitValidationError},
		{"not found detail", NotFound("missing").InFile("snapshots/accounts.yaml"), ExitNotFound},
		{"connectivity", fmt.Errorf("opening store: %w", ErrConnectivity), ExitConnectivityError},
		{"permission", Permission("denied"), ExitPermissionDenied},
		{"unreadable file", ReadFailure(fs.ErrPermission, "snapshot", "s.yaml", ""), ExitPermissionDenied},
		{"explicit exit error", NewExitError(errors.New("differences found"), ExitGeneralError), ExitGeneralError},
		{"wrapped exit error", fmt.Errorf("diff: %w", NewExitError(ErrNotFound, ExitValidationError)), ExitValidationError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeFromError(tt.err))
		})
	}
}

func TestExitError(t *testing.T) {
	inner := errors.New("config file not found")
	err := NewExitError(inner, ExitNotFound)

	assert.Equal(t, "config file not found", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.False(t, err.Printed)

	assert.Equal(t, "Not Found", (&ExitError{Code: ExitNotFound}).Error())
}

func TestExitCodeName(t *testing.T) {
	assert.Equal(t, "Success", ExitCodeName(ExitSuccess))
	assert.Equal(t, "Validation Error", ExitCodeName(ExitValidationError))
	assert.Equal(t, "Unknown", ExitCodeName(42))
}
