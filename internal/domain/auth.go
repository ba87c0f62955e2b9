package domain

// TokenKind discriminates access tokens from refresh tokens.
type TokenKind string

const (
	// KindAny disables the kind check on a bearer gate.
	KindAny     TokenKind = ""
	KindAccess  TokenKind = "access"
	KindRefresh TokenKind = "refresh"
)

// TokenPair bundles the two tokens issued on login and registration.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// TokenSubject carries the identity fields embedded in a signed token.
type TokenSubject struct {
	Email  string
	UserID int64
}

// AuthContext is the per-request authentication result attached by a gate.
// It is written once when the gate admits the request and read-only after.
type AuthContext struct {
	User     *User
	RawToken string
	Kind     TokenKind
}
