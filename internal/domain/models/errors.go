package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrPersistence is returned when a storage write fails.
	ErrPersistence = errors.New("persistence failure")
	// ErrQuery is returned when an aggregation read fails.
	ErrQuery = errors.New("query failure")
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")
)

// ValidationError lists the payload fields that were missing or invalid.
type ValidationError struct {
	Fields []string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed: missing %s", strings.Join(e.Fields, ", "))
}
