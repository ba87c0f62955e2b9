package auth

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/content-service/internal/domain"
	"github.com/spec-kit/content-service/internal/repository"
)

const authContextKey = "auth_context"

// Authenticator validates an email/password pair against the user store.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
}

// Guard builds request-gating middleware around the token codec and user
// store. A request moves through extract -> validate -> annotate; any failure
// rejects it with an unauthorized outcome.
type Guard struct {
	codec *TokenCodec
	users repository.UserRepository
	authn Authenticator
}

// NewGuard constructs the guard.
func NewGuard(codec *TokenCodec, users repository.UserRepository, authn Authenticator) *Guard {
	return &Guard{codec: codec, users: users, authn: authn}
}

// Basic admits requests carrying "Authorization: Basic base64(email:password)"
// and attaches the authenticated identity to the request.
func (g *Guard) Basic() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return ErrMissingHeader
		}

		credential, err := ParseAuthorizationHeader(header, false)
		if err != nil {
			return err
		}

		email, password, err := DecodeBasicCredentials(credential)
		if err != nil {
			return err
		}

		user, err := g.authn.Authenticate(c.UserContext(), email, password)
		if err != nil {
			return err
		}

		c.Locals(authContextKey, domain.AuthContext{User: user})
		return c.Next()
	}
}

// Bearer admits requests carrying "Authorization: Bearer token". The single
// implementation serves both specializations: pass domain.KindAccess or
// domain.KindRefresh to additionally require that kind, or domain.KindAny to
// accept either.
func (g *Guard) Bearer(kind domain.TokenKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return ErrMissingHeader
		}

		rawToken, err := ParseAuthorizationHeader(header, true)
		if err != nil {
			return err
		}

		claims, err := g.codec.Verify(rawToken)
		if err != nil {
			return err
		}

		user, err := g.users.FindByEmail(c.UserContext(), claims.Email)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrIdentityNotFound
			}
			return err
		}

		c.Locals(authContextKey, domain.AuthContext{
			User:     user,
			RawToken: rawToken,
			Kind:     claims.Kind,
		})

		if kind != domain.KindAny && claims.Kind != kind {
			return ErrWrongTokenKind
		}
		return c.Next()
	}
}

// ContextFrom retrieves the authentication result attached by a gate.
func ContextFrom(c *fiber.Ctx) (domain.AuthContext, bool) {
	val := c.Locals(authContextKey)
	if val == nil {
		return domain.AuthContext{}, false
	}
	authCtx, ok := val.(domain.AuthContext)
	return authCtx, ok
}
