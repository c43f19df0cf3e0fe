package services

import (
	"errors"
	"fmt"
)

// ErrBackendNotConfigured is returned by demo-mode operations that need a
// server.
var ErrBackendNotConfigured = errors.New("backend not configured")

// Persistence operations.
const (
	OpSave   = "save"
	OpDelete = "delete"
	OpFetch  = "fetch"
	OpExport = "export"
)

// PersistenceError is a failed entry store call. Message is safe to show;
// Err is only logged.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s entry: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func (e *PersistenceError) Message() string {
	switch e.Op {
	case OpSave:
		return "Could not save entry."
	case OpDelete:
		return "Could not delete entry."
	case OpFetch:
		return "Could not fetch entries."
	case OpExport:
		return "Could not export entries."
	default:
		return "Something went wrong."
	}
}
