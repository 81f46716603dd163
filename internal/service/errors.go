package service

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents the type of analysis service error
type ErrorType string

const (
	// ErrTypeNetwork indicates the service could not be reached
	ErrTypeNetwork ErrorType = "network"

	// ErrTypeTimeout indicates the request deadline expired
	ErrTypeTimeout ErrorType = "timeout"

	// ErrTypeStatus indicates a non-2xx response
	ErrTypeStatus ErrorType = "status"

	// ErrTypeDecode indicates a response body that is not the expected JSON
	ErrTypeDecode ErrorType = "decode"

	// ErrTypeValidation indicates a request the client refused to send
	ErrTypeValidation ErrorType = "validation"
)

// Error is returned for every transport or protocol level failure
type Error struct {
	Type       ErrorType
	Message    string
	Endpoint   string
	StatusCode int
	Body       string
	Cause      error
}

// Error implements the error interface
func (e *Error) Error() string {
	parts := []string{fmt.Sprintf("type=%s", e.Type)}

	if e.Endpoint != "" {
		parts = append(parts, fmt.Sprintf("endpoint=%s", e.Endpoint))
	}
	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}

	parts = append(parts, e.Message)

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%s", e.Cause.Error()))
	}

	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches on error type so callers can write errors.Is(err, service.ErrTimeout)
func (e *Error) Is(target error) bool {
	var se *Error
	if errors.As(target, &se) {
		return e.Type == se.Type
	}
	return false
}

// Sentinels for errors.Is
var (
	ErrNetwork    = &Error{Type: ErrTypeNetwork}
	ErrTimeout    = &Error{Type: ErrTypeTimeout}
	ErrStatus     = &Error{Type: ErrTypeStatus}
	ErrDecode     = &Error{Type: ErrTypeDecode}
	ErrValidation = &Error{Type: ErrTypeValidation}
)

func newError(errType ErrorType, endpoint, message string, cause error) *Error {
	return &Error{
		Type:     errType,
		Message:  message,
		Endpoint: endpoint,
		Cause:    cause,
	}
}

// StatusCode extracts the HTTP status from err, or 0
func StatusCode(err error) int {
	var se *Error
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
