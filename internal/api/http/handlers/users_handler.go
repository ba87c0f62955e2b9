package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/content-service/internal/api/dto"
	"github.com/spec-kit/content-service/internal/auth"
	"github.com/spec-kit/content-service/internal/repository"
)

// UsersHandler exposes account listing endpoints.
type UsersHandler struct {
	users repository.UserRepository
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users repository.UserRepository) *UsersHandler {
	return &UsersHandler{users: users}
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, dto.NewUserResponse(user))
	}
	return c.JSON(fiber.Map{"data": responses})
}

// Me handles GET /users/me, echoing the identity resolved by the access gate.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	authCtx, ok := auth.ContextFrom(c)
	if !ok || authCtx.User == nil {
		return auth.ErrMissingHeader
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(authCtx.User)})
}
