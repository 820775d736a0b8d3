package provider

import (
	"errors"
	"fmt"
)

var (
	ErrProviderUnknown = errors.New("unknown CI provider")
	ErrAuthFailed      = errors.New("authentication failed")
	ErrNotFound        = errors.New("not found")
	ErrRateLimited     = errors.New("rate limited")
)

// UserError wraps errors with user-friendly messages
type UserError struct {
	Message string
	Hint    string
	Err     error
}

func (e *UserError) Error() string {
	msg := e.Message
	if e.Hint != "" {
		msg += "\n\nHint: " + e.Hint
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n\nDetails: %v", e.Err)
	}
	return msg
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// WrapError converts API errors to user-friendly messages
func WrapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrAuthFailed) {
		return &UserError{
			Message: "Authentication failed",
			Hint:    "Check that GITHUB_TOKEN is valid and has the actions:write scope.",
			Err:     err,
		}
	}

	if errors.Is(err, ErrNotFound) {
		return &UserError{
			Message: "Workflow, run, or artifact not found",
			Hint:    "Check the repository, workflow file name, and that the token can see the repository.",
			Err:     err,
		}
	}

	if errors.Is(err, ErrRateLimited) {
		return &UserError{
			Message: "API rate limit exceeded",
			Hint:    "Wait for the rate limit window to reset before retrying.",
			Err:     err,
		}
	}

	return err
}
