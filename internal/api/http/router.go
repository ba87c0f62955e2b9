package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/content-service/internal/api/http/handlers"
	"github.com/spec-kit/content-service/internal/auth"
	"github.com/spec-kit/content-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health *handlers.HealthHandler
	Auth   *handlers.AuthHandler
	Users  *handlers.UsersHandler
	Posts  *handlers.PostsHandler
	Guard  *auth.Guard
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Guard.Basic(), cfg.Auth.Login)

	tokenGroup := authGroup.Group("/token", cfg.Guard.Bearer(domain.KindRefresh))
	tokenGroup.Post("/access", cfg.Auth.RotateAccess)
	tokenGroup.Post("/refresh", cfg.Auth.RotateRefresh)

	usersGroup := app.Group("/users", cfg.Guard.Bearer(domain.KindAccess))
	usersGroup.Get("/", cfg.Users.List)
	usersGroup.Get("/me", cfg.Users.Me)

	postsGroup := app.Group("/posts")
	postsGroup.Get("/", cfg.Posts.List)
	postsGroup.Get("/:id", cfg.Posts.Get)

	postsWrite := postsGroup.Group("", cfg.Guard.Bearer(domain.KindAccess))
	postsWrite.Post("/", cfg.Posts.Create)
	postsWrite.Patch("/:id", cfg.Posts.Update)
	postsWrite.Delete("/:id", cfg.Posts.Delete)
}
