package auth

import "errors"

// Sentinel errors for every way an authentication attempt can fail. They stay
// distinct internally so logs and metrics can tell them apart; the HTTP
// boundary decides how much to reveal to the client.
var (
	// ErrMissingHeader is returned when no Authorization header is present.
	ErrMissingHeader = errors.New("authorization header missing")
	// ErrMalformedHeader covers bad schemes, wrong segment counts and
	// undecodable basic credentials.
	ErrMalformedHeader = errors.New("authorization header malformed")
	// ErrTokenInvalid is returned on signature or claim-shape failures.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrTokenExpired is returned when the embedded expiry has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrWrongTokenKind is returned by a kind-restricted bearer gate when the
	// presented token verifies but is of the other kind.
	ErrWrongTokenKind = errors.New("wrong token kind")
	// ErrNotRefreshToken is returned by rotation when the presented token is
	// not a refresh token.
	ErrNotRefreshToken = errors.New("rotation requires a refresh token")
	// ErrIdentityNotFound is returned when no account matches the credential.
	ErrIdentityNotFound = errors.New("identity not found")
	// ErrPasswordMismatch is returned when the password does not match the
	// stored digest.
	ErrPasswordMismatch = errors.New("password mismatch")
	// ErrDuplicateIdentity is returned when registration collides with an
	// existing nickname or email.
	ErrDuplicateIdentity = errors.New("identity already exists")
)
