package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

var (
	// ErrInvalidID is returned before any request is sent when an id is not positive
	ErrInvalidID = errors.New("invalid id")

	// ErrInvalidDay is returned when a day of week is outside 1..7
	ErrInvalidDay = errors.New("day of week must be between 1 and 7")
)

const maxPlainMessage = 300

// Error is a non-2xx response. It is handed back to callers unchanged so they
// can inspect the status and the server's message.
type Error struct {
	Method     string
	URL        string
	StatusCode int
	Message    string
	Body       []byte
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode), e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// HTTPStatus returns the response status code.
func (e *Error) HTTPStatus() int { return e.StatusCode }

// ServerMessage returns the human-readable message the server attached, if any.
func (e *Error) ServerMessage() string { return e.Message }

func newError(method, url string, status int, body []byte) *Error {
	return &Error{
		Method:     method,
		URL:        url,
		StatusCode: status,
		Message:    extractMessage(body),
		Body:       body,
	}
}

// extractMessage reads {"message": "..."} bodies, JSON strings and short
// plain-text bodies. Anything else yields no message.
func extractMessage(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}

	switch trimmed[0] {
	case '{':
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(trimmed, &payload); err != nil {
			return ""
		}
		return strings.TrimSpace(payload.Message)
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return ""
		}
		return strings.TrimSpace(s)
	case '[', '<':
		return ""
	}

	if !utf8.Valid(trimmed) || len(trimmed) > maxPlainMessage {
		return ""
	}
	return string(trimmed)
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not a
// response error.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsNotFound returns true if the server answered 404
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsForbidden returns true if the server answered 403
func IsForbidden(err error) bool {
	return StatusCode(err) == http.StatusForbidden
}

// IsUnauthorized returns true if the server answered 401
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}
