package analytics

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRecord marks attempt input missing a required field.
	ErrMalformedRecord = errors.New("malformed attempt record")
	// ErrUnknownScope marks a class or student scope that does not resolve to a known entity.
	ErrUnknownScope = errors.New("unknown scope")
)

// MalformedRecordError identifies the offending record within a batch.
type MalformedRecordError struct {
	Index     int
	SessionID string
	Field     string
}

func (e *MalformedRecordError) Error() string {
	if e.SessionID != "" {
		return fmt.Sprintf("%s: record %d (session %s) missing %s", ErrMalformedRecord, e.Index, e.SessionID, e.Field)
	}
	return fmt.Sprintf("%s: record %d missing %s", ErrMalformedRecord, e.Index, e.Field)
}

func (e *MalformedRecordError) Unwrap() error { return ErrMalformedRecord }

// UnknownScopeError names the scope that failed to resolve.
type UnknownScopeError struct {
	Scope Scope
}

func (e *UnknownScopeError) Error() string {
	return fmt.Sprintf("%s: %s %q", ErrUnknownScope, e.Scope.Kind, e.Scope.ID)
}

func (e *UnknownScopeError) Unwrap() error { return ErrUnknownScope }
