package utils

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorClassification(t *testing.T) {
	validation := NewValidationError("fuel_amount", "required")
	notFound := NewNotFoundError("service request", "abc123")
	storage := NewStorageError("find", errors.New("connection reset"))

	if !IsValidationError(validation) || IsValidationError(notFound) || IsValidationError(storage) {
		t.Error("validation error misclassified")
	}
	if !IsNotFoundError(notFound) || IsNotFoundError(validation) {
		t.Error("not found error misclassified")
	}
	if !IsStorageError(storage) || IsStorageError(validation) {
		t.Error("storage error misclassified")
	}
	if IsValidationError(nil) || IsNotFoundError(nil) || IsStorageError(nil) {
		t.Error("nil should never classify")
	}
}

func TestErrorClassificationThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("creating request: %w", NewValidationError("location", "out of range"))
	if !IsValidationError(wrapped) {
		t.Error("wrapped validation error not detected")
	}
}

func TestStorageErrorUnwrap(t *testing.T) {
	cause := errors.New("no reachable servers")
	storage := NewStorageError("insert", cause)
	if !errors.Is(storage, cause) {
		t.Error("storage error should unwrap to its cause")
	}
}
