package service

import (
	"errors"
	"net/http"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrConflict      = errors.New("conflict")
	ErrNotFound      = errors.New("not found")
	ErrMisconfigured = errors.New("auth config invalid")
)

// detailError carries a client-facing message while still matching its sentinel with errors.Is.
type detailError struct {
	kind error
	msg  string
}

func (e *detailError) Error() string { return e.msg }
func (e *detailError) Unwrap() error { return e.kind }

func withDetail(kind error, msg string) error {
	return &detailError{kind: kind, msg: msg}
}

// CSRFError is returned by the CSRF guard. Status is the HTTP status the caller should answer with.
type CSRFError struct {
	Status  int
	Message string
}

func (e *CSRFError) Error() string {
	return e.Message
}

func newCSRFError(message string) *CSRFError {
	return &CSRFError{Status: http.StatusForbidden, Message: message}
}
