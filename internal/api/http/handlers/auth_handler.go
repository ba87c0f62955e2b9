package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/content-service/internal/api/dto"
	"github.com/spec-kit/content-service/internal/auth"
	"github.com/spec-kit/content-service/internal/service"
	apperrors "github.com/spec-kit/content-service/pkg/util/errorutil"
)

// AuthHandler exposes registration, login and token rotation endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Nickname == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("nickname, email, password required", nil)
	}

	user, pair, err := h.auth.Register(c.UserContext(), req.Email, req.Nickname, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewUserResponse(user),
			"auth": dto.TokenPairResponse{
				AccessToken:  pair.AccessToken,
				RefreshToken: pair.RefreshToken,
			},
		},
	})
}

// Login handles POST /auth/login. It runs behind the basic gate, which has
// already authenticated the credential pair and attached the identity.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	authCtx, ok := auth.ContextFrom(c)
	if !ok || authCtx.User == nil {
		return auth.ErrMissingHeader
	}

	pair, err := h.auth.IssueTokenPair(authCtx.User)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewUserResponse(authCtx.User),
			"auth": dto.TokenPairResponse{
				AccessToken:  pair.AccessToken,
				RefreshToken: pair.RefreshToken,
			},
		},
	})
}

// RotateAccess handles POST /auth/token/access behind the refresh gate,
// exchanging the presented refresh token for a new access token.
func (h *AuthHandler) RotateAccess(c *fiber.Ctx) error {
	return h.rotate(c, false)
}

// RotateRefresh handles POST /auth/token/refresh behind the refresh gate,
// exchanging the presented refresh token for a new refresh token.
func (h *AuthHandler) RotateRefresh(c *fiber.Ctx) error {
	return h.rotate(c, true)
}

func (h *AuthHandler) rotate(c *fiber.Ctx, refresh bool) error {
	authCtx, ok := auth.ContextFrom(c)
	if !ok || authCtx.RawToken == "" {
		return auth.ErrMissingHeader
	}

	token, err := h.auth.Rotate(authCtx.RawToken, refresh)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.TokenResponse{Token: token}})
}
