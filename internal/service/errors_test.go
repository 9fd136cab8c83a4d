package service

import (
	"errors"
	"testing"
)

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "prompt", Message: "prompt cannot be empty"}

	if got := err.Error(); got != "validation error on field prompt: prompt cannot be empty" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("ValidationError should unwrap to ErrInvalidInput")
	}
}

func TestWrapError(t *testing.T) {
	base := errors.New("base")
	wrapped := WrapError(base, "context")

	if !errors.Is(wrapped, base) {
		t.Error("WrapError() should preserve the cause")
	}
	if WrapError(nil, "context") != nil {
		t.Error("WrapError(nil) should be nil")
	}
}

func TestUpstream(t *testing.T) {
	base := errors.New("connection refused")
	err := Upstream(base, "embedding request")

	if !errors.Is(err, ErrExternalService) {
		t.Error("Upstream() should mark the error as external")
	}
	if !errors.Is(err, base) {
		t.Error("Upstream() should preserve the cause")
	}
	if Upstream(nil, "x") != nil {
		t.Error("Upstream(nil) should be nil")
	}
}
