package utils

import (
	"errors"
	"fmt"
)

// ValidationError marks malformed input: bad coordinates, unknown service type,
// missing conditionally-required fields. Never retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
	}
	return "validation failed: " + e.Message
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError is surfaced distinctly from StorageError so callers can tell
// "doesn't exist" apart from "couldn't check".
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
	}
	return e.Resource + " not found"
}

func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// StorageError wraps persistence layer failures. Surfaced to the caller as a
// 5xx; retry policy belongs to the transport layer, not this core.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

// UpstreamUnavailable covers failures of external collaborators (weather).
// Recovered locally with a fallback value and logged, never surfaced.
type UpstreamUnavailable struct {
	Provider string
	Err      error
}

func (e *UpstreamUnavailable) Error() string {
	return fmt.Sprintf("upstream %s unavailable: %v", e.Provider, e.Err)
}

func (e *UpstreamUnavailable) Unwrap() error {
	return e.Err
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFoundError(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
