package services

import (
	"errors"
	"fmt"
)

// Sentinel errors for controller preconditions
var (
	ErrSessionActive       = errors.New("a top-up session is already active")
	ErrNoActiveSession     = errors.New("no active top-up session")
	ErrVerificationPending = errors.New("reference already submitted; verification pending")
	ErrSessionTerminal     = errors.New("top-up session already reached a terminal outcome")
	ErrRequestInFlight     = errors.New("a request for this session is still in flight")
	ErrTimerArmed          = errors.New("expiry timer is already armed")
)

// FieldError is a user-correctable validation failure tied to a single
// input field. It never advances the session stage.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ErrorKind classifies wallet API failures so callers can decide between
// inline display, retry, and silent logging.
type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindConflict
	KindTransient
	KindServer
)

// APIError is a classified failure returned by the wallet backend.
type APIError struct {
	Kind       ErrorKind
	Code       string
	Message    string
	StatusCode int
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("wallet api: %s (%s)", e.Message, e.Code)
	}
	return fmt.Sprintf("wallet api: %s", e.Message)
}

// IsConflict reports whether err is a conflict-class failure, including
// the local single-session guard.
func IsConflict(err error) bool {
	if errors.Is(err, ErrSessionActive) || errors.Is(err, ErrNoActiveSession) ||
		errors.Is(err, ErrRequestInFlight) || errors.Is(err, ErrSessionTerminal) ||
		errors.Is(err, ErrVerificationPending) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindConflict
}

// IsValidation reports whether err is a field-level validation failure.
func IsValidation(err error) bool {
	var fieldErr *FieldError
	if errors.As(err, &fieldErr) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindValidation
}

// IsTransient reports whether err is worth retrying unchanged.
func IsTransient(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && (apiErr.Kind == KindTransient || apiErr.Kind == KindServer)
}
