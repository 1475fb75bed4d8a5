package botroles

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSentinelErrors tests that all sentinel errors are properly defined
func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		msg  string
	}{
		{"ErrSelfReference", ErrSelfReference, "botroles: role cannot be its own child"},
		{"ErrCyclicHierarchy", ErrCyclicHierarchy, "botroles: adding child would create a hierarchy cycle"},
		{"ErrDuplicateName", ErrDuplicateName, "botroles: role name already taken"},
		{"ErrUnknownRole", ErrUnknownRole, "botroles: unknown role"},
		{"ErrNotInvertible", ErrNotInvertible, "botroles: role can not be inverted"},
		{"ErrNotInitialized", ErrNotInitialized, "botroles: registry not initialized, call WithRegistry first"},
		{"ErrSnapshotNotFound", ErrSnapshotNotFound, "botroles: registry snapshot not found"},
		{"ErrCorruptSnapshot", ErrCorruptSnapshot, "botroles: corrupt registry snapshot"},
		{"ErrStorage", ErrStorage, "botroles: storage error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.msg, tt.err.Error())
			assert.NotNil(t, tt.err)
		})
	}
}

// TestError_Error tests the Error method of Error struct
func TestError_Error(t *testing.T) {
	t.Run("With message", func(t *testing.T) {
		err := &Error{
			Err:     ErrUnknownRole,
			Message: "moderators",
		}
		assert.Equal(t, "botroles: unknown role: moderators", err.Error())
	})

	t.Run("Without message", func(t *testing.T) {
		err := &Error{
			Err: ErrUnknownRole,
		}
		assert.Equal(t, "botroles: unknown role", err.Error())
	})
}

// TestError_Unwrap tests the Unwrap method
func TestError_Unwrap(t *testing.T) {
	err := &Error{
		Err:     ErrDuplicateName,
		Message: "moderators",
	}

	assert.Equal(t, ErrDuplicateName, err.Unwrap())
	assert.ErrorIs(t, err, ErrDuplicateName)
	assert.NotErrorIs(t, err, ErrUnknownRole)
}

// TestError_With tests the fluent context helpers
func TestError_With(t *testing.T) {
	err := NewError(ErrCyclicHierarchy, "helpers is already a descendant of moderators").
		WithRole("moderators").
		WithChat(-100123).
		WithUser(42)

	assert.Equal(t, "moderators", err.Role)
	assert.Equal(t, int64(-100123), err.ChatID)
	assert.Equal(t, int64(42), err.UserID)
	assert.ErrorIs(t, err, ErrCyclicHierarchy)
}

// TestErrorHelpers tests the Is* convenience checks
func TestErrorHelpers(t *testing.T) {
	assert.True(t, IsDuplicateName(NewError(ErrDuplicateName, "x")))
	assert.False(t, IsDuplicateName(ErrUnknownRole))
	assert.True(t, IsCyclicHierarchy(ErrCyclicHierarchy))
	assert.True(t, IsNotInvertible(NewError(ErrNotInvertible, "Role(x)")))
	assert.True(t, IsNotInitialized(ErrNotInitialized))
	assert.True(t, IsSnapshotNotFound(NewError(ErrSnapshotNotFound, "mybot")))
	assert.False(t, IsSnapshotNotFound(errors.New("other")))
}
