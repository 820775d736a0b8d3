package provider

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestWrapError_AuthFailed(t *testing.T) {
	err := fmt.Errorf("request failed: %w", ErrAuthFailed)
	wrapped := WrapError(err)

	userErr, ok := wrapped.(*UserError)
	if !ok {
		t.Fatalf("WrapError() returned %T, want *UserError", wrapped)
	}

	if userErr.Message != "Authentication failed" {
		t.Errorf("Message = %q, want %q", userErr.Message, "Authentication failed")
	}
	if !strings.Contains(userErr.Hint, "GITHUB_TOKEN") {
		t.Errorf("Hint should mention GITHUB_TOKEN, got %q", userErr.Hint)
	}
	if !errors.Is(wrapped, ErrAuthFailed) {
		t.Error("errors.Is(wrapped, ErrAuthFailed) = false, want true")
	}
}

func TestWrapError_NotFound(t *testing.T) {
	wrapped := WrapError(fmt.Errorf("%w: artifact gone", ErrNotFound))

	userErr, ok := wrapped.(*UserError)
	if !ok {
		t.Fatalf("WrapError() returned %T, want *UserError", wrapped)
	}
	if !strings.Contains(userErr.Hint, "workflow file") {
		t.Errorf("Hint = %q, want workflow guidance", userErr.Hint)
	}
}

func TestWrapError_PassThrough(t *testing.T) {
	plain := errors.New("something else")
	if got := WrapError(plain); got != plain {
		t.Errorf("WrapError() = %v, want the original error unchanged", got)
	}

	if got := WrapError(nil); got != nil {
		t.Errorf("WrapError(nil) = %v, want nil", got)
	}
}

func TestUserError_Error(t *testing.T) {
	err := &UserError{
		Message: "Broken",
		Hint:    "Fix it",
		Err:     errors.New("cause"),
	}

	msg := err.Error()
	for _, want := range []string{"Broken", "Hint: Fix it", "Details: cause"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, should contain %q", msg, want)
		}
	}

	if err.Unwrap() == nil {
		t.Error("Unwrap() = nil, want wrapped error")
	}
}
