package botroles

import (
	"errors"
	"fmt"
)

// Sentinel errors for botroles operations.
var (
	// ErrSelfReference is returned when a role is added as its own child.
	ErrSelfReference = errors.New("botroles: role cannot be its own child")

	// ErrCyclicHierarchy is returned when adding a child role would create a
	// cycle, i.e. the child is already an ancestor of the role.
	ErrCyclicHierarchy = errors.New("botroles: adding child would create a hierarchy cycle")

	// ErrDuplicateName is returned when a role name is already registered.
	ErrDuplicateName = errors.New("botroles: role name already taken")

	// ErrUnknownRole is returned when a named role is not in the registry.
	ErrUnknownRole = errors.New("botroles: unknown role")

	// ErrNotInvertible is returned when inverting a dynamic role.
	ErrNotInvertible = errors.New("botroles: role can not be inverted")

	// ErrNotInitialized is returned when a gated handler runs without a
	// Registry set up in the context.
	ErrNotInitialized = errors.New("botroles: registry not initialized, call WithRegistry first")

	// ErrSnapshotNotFound is returned when a store has no snapshot for a key.
	ErrSnapshotNotFound = errors.New("botroles: registry snapshot not found")

	// ErrCorruptSnapshot is returned when a snapshot cannot be decoded or
	// references roles outside its own arena.
	ErrCorruptSnapshot = errors.New("botroles: corrupt registry snapshot")

	// ErrStorage is returned when a persistence operation fails.
	ErrStorage = errors.New("botroles: storage error")
)

// Error wraps a sentinel error with additional context.
type Error struct {
	Err     error  // Underlying sentinel error
	Message string // Additional context
	Role    string // Role name involved (if applicable)
	ChatID  int64  // Chat involved (if applicable)
	UserID  int64  // User involved (if applicable)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is checks if the error matches a target error.
func (e *Error) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewError creates a new Error with context.
func NewError(err error, message string) *Error {
	return &Error{
		Err:     err,
		Message: message,
	}
}

// WithRole adds the role name to the error.
func (e *Error) WithRole(role string) *Error {
	e.Role = role
	return e
}

// WithChat adds the chat id to the error.
func (e *Error) WithChat(chatID int64) *Error {
	e.ChatID = chatID
	return e
}

// WithUser adds the user id to the error.
func (e *Error) WithUser(userID int64) *Error {
	e.UserID = userID
	return e
}

// IsDuplicateName checks if an error is due to a duplicate role name.
func IsDuplicateName(err error) bool {
	return errors.Is(err, ErrDuplicateName)
}

// IsCyclicHierarchy checks if an error is due to a hierarchy cycle.
func IsCyclicHierarchy(err error) bool {
	return errors.Is(err, ErrCyclicHierarchy)
}

// IsNotInvertible checks if an error is due to inverting a dynamic role.
func IsNotInvertible(err error) bool {
	return errors.Is(err, ErrNotInvertible)
}

// IsNotInitialized checks if an error is due to a missing Registry.
func IsNotInitialized(err error) bool {
	return errors.Is(err, ErrNotInitialized)
}

// IsSnapshotNotFound checks if an error is due to a missing snapshot.
func IsSnapshotNotFound(err error) bool {
	return errors.Is(err, ErrSnapshotNotFound)
}
