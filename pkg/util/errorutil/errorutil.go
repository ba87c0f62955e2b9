package errorutil

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/spec-kit/content-service/internal/auth"
	"github.com/spec-kit/content-service/internal/repository"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, nil)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError("CONFLICT", message, http.StatusConflict, details)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// unauthorized wraps an auth failure, keeping the cause for logs.
func unauthorized(message string, err error) *DomainError {
	return &DomainError{
		Code:       "UNAUTHORIZED",
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError. Credential failures
// (unknown account vs wrong password) deliberately share one client-facing
// message so responses cannot be used to enumerate accounts; the wrapped
// cause stays distinct for logging.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}

	switch {
	case errors.Is(err, auth.ErrMissingHeader):
		return unauthorized("authorization header required", err)
	case errors.Is(err, auth.ErrMalformedHeader):
		return unauthorized("authorization header malformed", err)
	case errors.Is(err, auth.ErrTokenExpired):
		return unauthorized("token expired", err)
	case errors.Is(err, auth.ErrTokenInvalid):
		return unauthorized("token invalid", err)
	case errors.Is(err, auth.ErrWrongTokenKind):
		return unauthorized("wrong token kind", err)
	case errors.Is(err, auth.ErrNotRefreshToken):
		return unauthorized("rotation requires a refresh token", err)
	case errors.Is(err, auth.ErrIdentityNotFound), errors.Is(err, auth.ErrPasswordMismatch):
		return unauthorized("invalid credentials", err)
	case errors.Is(err, auth.ErrDuplicateIdentity):
		return &DomainError{
			Code:       "CONFLICT",
			Message:    "nickname or email already registered",
			HTTPStatus: http.StatusConflict,
			Err:        err,
		}
	case errors.Is(err, repository.ErrNotFound):
		if de, ok := NewNotFound("resource", nil).(*DomainError); ok {
			return de
		}
	case errors.Is(err, repository.ErrConflict):
		return &DomainError{
			Code:       "CONFLICT",
			Message:    "resource already exists",
			HTTPStatus: http.StatusConflict,
			Err:        err,
		}
	}

	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// MapError converts generic errors to DomainError.
func MapError(err error) error {
	return ToDomainError(err)
}
