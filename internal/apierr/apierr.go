// Package apierr models the structured errors the back-office API speaks:
// a numeric code, a symbolic slug, a human message, and optional per-field
// detail. Errors are constructed (or decoded) once at the boundary and
// inspected with errors.As everywhere else.
package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Error is a structured API error.
type Error struct {
	Code    int               `json:"code,omitempty"`
	Slug    string            `json:"slug,omitempty"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func (e *Error) Error() string {
	if e.Slug != "" {
		return fmt.Sprintf("[%d %s] %s", e.Code, e.Slug, e.Message)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// New builds a structured error with a code, slug and message.
func New(code int, slug, message string) *Error {
	return &Error{Code: code, Slug: slug, Message: message}
}

// WithDetails attaches per-field detail and returns the same error.
func (e *Error) WithDetails(details map[string]string) *Error {
	e.Details = details
	return e
}

// As extracts a structured error from an error chain.
// The second return is false for plain errors.
func As(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// Decode parses a structured error from a response body. Bodies that are not
// the expected shape degrade to a plain error carrying the HTTP status.
func Decode(statusCode int, body []byte) *Error {
	var e Error
	if err := json.Unmarshal(body, &e); err == nil && (e.Message != "" || e.Code != 0 || e.Slug != "") {
		return &e
	}
	return &Error{Code: statusCode, Message: fmt.Sprintf("request failed with status %d", statusCode)}
}

// Messages maps error codes and slugs to user-facing copy. Integer keys match
// on Code, string keys on Slug. Codes win over slugs when both are present.
type Messages struct {
	ByCode map[int]string
	BySlug map[string]string
}

// Lookup resolves the user-facing message for an error. Unrecognized
// structured errors fall back to the server-supplied message when present,
// then to the generic fallback. Plain errors always get the fallback.
func (m Messages) Lookup(err error, fallback string) string {
	apiErr, ok := As(err)
	if !ok {
		return fallback
	}
	if msg, ok := m.ByCode[apiErr.Code]; ok {
		return msg
	}
	if msg, ok := m.BySlug[apiErr.Slug]; ok {
		return msg
	}
	if apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
