package apperror

import "fmt"

// ValidationError reports a bad column reference or an incompatible
// strategy/dtype combination. The field name is preserved for the caller.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

func NewValidation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// StageLockedError is returned when an operation runs before its
// prerequisite pipeline stages are complete.
type StageLockedError struct {
	Stage string
}

func (e *StageLockedError) Error() string {
	return fmt.Sprintf("stage %q is locked: complete the previous steps first", e.Stage)
}

// SessionNotFoundError is returned for any unknown session identifier.
type SessionNotFoundError struct {
	SessionID string
}

func (e *SessionNotFoundError) Error() string {
	return fmt.Sprintf("session %q not found", e.SessionID)
}

// AmbiguousQueryError means a required column could not be resolved from
// the query text.
type AmbiguousQueryError struct {
	Query  string
	Reason string
}

func (e *AmbiguousQueryError) Error() string {
	return fmt.Sprintf("ambiguous query %q: %s", e.Query, e.Reason)
}

// UnresolvedQueryError means neither resolution tier produced a usable
// operation plan. It is the only unresolved outcome surfaced to callers.
type UnresolvedQueryError struct {
	Query string
}

func (e *UnresolvedQueryError) Error() string {
	return fmt.Sprintf("could not understand %q: try rephrasing with a column name and an operation like total, average, count or top N", e.Query)
}
