package pgerr

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const (
	CodeNotFound       = "NOT_FOUND"
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeForbidden      = "FORBIDDEN"
	CodeConflict       = "CONFLICT"
	CodeUnsupported    = "UNSUPPORTED"
	CodeInternalError  = "INTERNAL_ERROR"
)

var (
	// ErrInvalidReq is returned when a request is malformed.
	ErrInvalidReq = New(fiber.StatusBadRequest, CodeInvalidRequest, "invalid request: some or all request parameters are invalid")

	// ErrUnauthorized is returned when no valid session accompanies the request.
	ErrUnauthorized = New(fiber.StatusUnauthorized, CodeUnauthorized, "a valid session is required for this endpoint")

	// ErrForbidden is returned when the caller does not own the addressed resource.
	ErrForbidden = New(fiber.StatusForbidden, CodeForbidden, "resource does not belong to you")

	// ErrNotFound is returned when a resource is not found. Resources owned
	// by other users are reported as not found, never as forbidden.
	ErrNotFound = New(fiber.StatusNotFound, CodeNotFound, "resource not found with given parameters")

	// ErrConflict is returned when a write would duplicate an existing
	// record: idempotency by rejection rather than silent merge.
	ErrConflict = New(fiber.StatusConflict, CodeConflict, "request conflicts with existing data")

	// ErrUnsupported distinguishes "not computable here" from a zero result,
	// e.g. a level with no bonus-table entry.
	ErrUnsupported = New(fiber.StatusBadRequest, CodeUnsupported, "operation not supported for the given parameters")

	// ErrInternalError is returned when an internal error occurs.
	ErrInternalError = New(fiber.StatusInternalServerError, CodeInternalError, "internal server error occurred")
)

type Extras map[string]any

type TrackerError struct {
	StatusCode int    `example:"400"`
	ErrorCode  string `example:"INVALID_REQUEST"`
	Message    string `example:"invalid request: some or all request parameters are invalid"`
	Extras     *Extras
}

func New(statusCode int, errorCode string, message string) *TrackerError {
	return &TrackerError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

func (e TrackerError) Msg(format string, parts ...any) *TrackerError {
	e.Message = fmt.Sprintf(format, parts...)
	return &e
}

func (e TrackerError) WithExtras(extras Extras) *TrackerError {
	e.Extras = &extras
	return &e
}

func NewInvalidViolations(violations any) *TrackerError {
	e := *ErrInvalidReq
	e.Extras = &Extras{
		"violations": violations,
	}
	return &e
}

func (e *TrackerError) Error() string {
	return fmt.Sprintf("%s: %s", e.ErrorCode, e.Message)
}
