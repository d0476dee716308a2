package llm

import (
	"context"
	"errors"
	"fmt"
)

// APIError is an application-level failure reported by the provider, such as
// an invalid key, an unknown model, or a quota error.
type APIError struct {
	Provider   string
	StatusCode int    // HTTP status, 0 if unknown
	Code       string // provider error code, "" if none
	Message    string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s API error", e.Provider)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Code != "" {
		msg += fmt.Sprintf(" [%s]", e.Code)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// RemoteError is a transport-level failure: the provider could not be
// reached, the connection broke, or the call timed out.
type RemoteError struct {
	Provider string
	Err      error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s unreachable: %v", e.Provider, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// Timeout reports whether the failure was a deadline being exceeded.
func (e *RemoteError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var t interface{ Timeout() bool }
	return errors.As(e.Err, &t) && t.Timeout()
}
