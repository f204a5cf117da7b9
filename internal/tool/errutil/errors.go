// Package errutil holds the error shape shared by actions whose pre-checks
// fail before any external process runs.
package errutil

import "maps"

// PrecheckError is a failed precondition reported to the caller as a
// structured {error, ...} result rather than as a call failure.
type PrecheckError struct {
	Message string
	Extra   map[string]any
	Cause   error
}

// NewPrecheckError creates a PrecheckError with no extra fields.
func NewPrecheckError(message string) *PrecheckError {
	return &PrecheckError{Message: message}
}

func (e *PrecheckError) Error() string { return e.Message }
func (e *PrecheckError) Unwrap() error { return e.Cause }

// Payload returns {"error": Message} merged with Extra.
func (e *PrecheckError) Payload() map[string]any {
	payload := make(map[string]any, len(e.Extra)+1)
	maps.Copy(payload, e.Extra)
	payload["error"] = e.Message
	return payload
}
