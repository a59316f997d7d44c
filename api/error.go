package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/256dpi/serve"
	"github.com/256dpi/xo"

	"github.com/threadnexus/nexus/heat"
	"github.com/threadnexus/nexus/payment"
	"github.com/threadnexus/nexus/repo"
)

// AsError will try to unwrap an Error from err.
func AsError(err error) *Error {
	var anError *Error
	if errors.As(err, &anError) {
		return anError
	}
	return nil
}

// Error objects describe a failed request to the client.
type Error struct {
	// The HTTP status code applicable to this problem.
	Status int `json:"status"`

	// A stable application-specific error code.
	Code string `json:"code"`

	// A short, human-readable summary of the problem.
	Title string `json:"title"`

	// A human-readable explanation specific to this occurrence of the problem.
	Detail string `json:"detail,omitempty"`
}

// Error returns a string representation of the error for logging purposes.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Title, e.Detail)
}

func newError(status int, code, detail string) *Error {
	return &Error{
		Status: status,
		Code:   code,
		Title:  http.StatusText(status),
		Detail: detail,
	}
}

// Unauthenticated returns an error for a missing or invalid credential.
func Unauthenticated(detail string) *Error {
	return newError(http.StatusUnauthorized, "unauthenticated", detail)
}

// Forbidden returns an error for an identity lacking a privilege.
func Forbidden(detail string) *Error {
	return newError(http.StatusForbidden, "forbidden", detail)
}

// NotFound returns an error for a missing resource.
func NotFound(detail string) *Error {
	return newError(http.StatusNotFound, "not_found", detail)
}

// InvalidArgument returns an error for a malformed request.
func InvalidArgument(detail string) *Error {
	return newError(http.StatusBadRequest, "invalid_argument", detail)
}

// Conflict returns an error for a resource in an unexpected state.
func Conflict(detail string) *Error {
	return newError(http.StatusConflict, "conflict", detail)
}

// TooLarge returns an error for a request body over the limit.
func TooLarge(detail string) *Error {
	return newError(http.StatusRequestEntityTooLarge, "too_large", detail)
}

// UpstreamFailure returns an error for a failed call to a third party.
func UpstreamFailure(detail string) *Error {
	return newError(http.StatusBadGateway, "upstream_failure", detail)
}

// Timeout returns an error for a request that exceeded its deadline.
func Timeout(detail string) *Error {
	return newError(http.StatusGatewayTimeout, "timeout", detail)
}

// Internal returns an error for an unexpected failure. The detail is never
// derived from the underlying error.
func Internal() *Error {
	return newError(http.StatusInternalServerError, "internal", "")
}

// Convert will convert the provided error to an error object. It returns
// whether the error is unexpected and should be reported.
func Convert(err error) (*Error, bool) {
	// check rich error
	if anError := AsError(err); anError != nil {
		return anError, false
	}

	// check safe error
	if xo.IsSafe(err) {
		return InvalidArgument(xo.AsSafe(err).Msg), false
	}

	// check upstream error
	var upstreamError *payment.UpstreamError
	if errors.As(err, &upstreamError) {
		return UpstreamFailure(upstreamError.Message), false
	}

	// check known errors
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return NotFound("resource not found"), false
	case errors.Is(err, repo.ErrConflict):
		return Conflict("resource is not in the required state"), false
	case errors.Is(err, heat.ErrExpiredToken):
		return Unauthenticated("expired credential"), false
	case errors.Is(err, heat.ErrInvalidToken):
		return Unauthenticated("invalid credential"), false
	case errors.Is(err, serve.ErrBodyLimitExceeded):
		return TooLarge("body limit exceeded"), false
	case errors.Is(err, context.DeadlineExceeded):
		return Timeout("request deadline exceeded"), true
	}

	return Internal(), true
}
