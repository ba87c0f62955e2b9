package errorutil

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/content-service/internal/auth"
	"github.com/spec-kit/content-service/internal/repository"
)

func TestToDomainErrorAuthTaxonomy(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "missing header", err: auth.ErrMissingHeader, wantStatus: http.StatusUnauthorized, wantCode: "UNAUTHORIZED"},
		{name: "malformed header", err: auth.ErrMalformedHeader, wantStatus: http.StatusUnauthorized, wantCode: "UNAUTHORIZED"},
		{name: "token invalid", err: auth.ErrTokenInvalid, wantStatus: http.StatusUnauthorized, wantCode: "UNAUTHORIZED"},
		{name: "token expired", err: auth.ErrTokenExpired, wantStatus: http.StatusUnauthorized, wantCode: "UNAUTHORIZED"},
		{name: "wrong kind", err: auth.ErrWrongTokenKind, wantStatus: http.StatusUnauthorized, wantCode: "UNAUTHORIZED"},
		{name: "not refresh", err: auth.ErrNotRefreshToken, wantStatus: http.StatusUnauthorized, wantCode: "UNAUTHORIZED"},
		{name: "identity not found", err: auth.ErrIdentityNotFound, wantStatus: http.StatusUnauthorized, wantCode: "UNAUTHORIZED"},
		{name: "password mismatch", err: auth.ErrPasswordMismatch, wantStatus: http.StatusUnauthorized, wantCode: "UNAUTHORIZED"},
		{name: "duplicate identity", err: auth.ErrDuplicateIdentity, wantStatus: http.StatusConflict, wantCode: "CONFLICT"},
		{name: "repo not found", err: repository.ErrNotFound, wantStatus: http.StatusNotFound, wantCode: "NOT_FOUND"},
		{name: "repo conflict", err: repository.ErrConflict, wantStatus: http.StatusConflict, wantCode: "CONFLICT"},
		{name: "unknown", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantCode: "INTERNAL_ERROR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			domainErr := ToDomainError(tc.err)
			assert.Equal(t, tc.wantStatus, domainErr.HTTPStatus)
			assert.Equal(t, tc.wantCode, domainErr.Code)
		})
	}
}

func TestToDomainErrorCollapsesCredentialFailures(t *testing.T) {
	notFound := ToDomainError(auth.ErrIdentityNotFound)
	mismatch := ToDomainError(auth.ErrPasswordMismatch)

	assert.Equal(t, notFound.Message, mismatch.Message)
	// the wrapped cause keeps them distinguishable for logs
	assert.NotEqual(t, errors.Unwrap(notFound), errors.Unwrap(mismatch))
}

func TestToDomainErrorPassesThroughDomainErrors(t *testing.T) {
	original := NewDomainError("VALIDATION_FAILED", "bad input", http.StatusBadRequest, nil)
	assert.Same(t, original, ToDomainError(original))
}

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}
