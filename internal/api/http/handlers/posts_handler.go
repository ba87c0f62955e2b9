package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/content-service/internal/api/dto"
	"github.com/spec-kit/content-service/internal/auth"
	"github.com/spec-kit/content-service/internal/domain"
	"github.com/spec-kit/content-service/internal/repository"
	"github.com/spec-kit/content-service/internal/service"
	apperrors "github.com/spec-kit/content-service/pkg/util/errorutil"
)

// PostsHandler exposes post CRUD endpoints.
type PostsHandler struct {
	posts *service.PostService
}

// NewPostsHandler constructs handler.
func NewPostsHandler(postService *service.PostService) *PostsHandler {
	return &PostsHandler{posts: postService}
}

// List handles GET /posts.
func (h *PostsHandler) List(c *fiber.Ctx) error {
	var query dto.PaginatePostsQuery
	if err := c.QueryParser(&query); err != nil {
		return apperrors.NewValidationError("invalid query", nil)
	}

	order := domain.SortAsc
	switch query.Order {
	case "", string(domain.SortAsc):
	case string(domain.SortDesc):
		order = domain.SortDesc
	default:
		return apperrors.NewValidationError("order__createdAt must be ASC or DESC", nil)
	}

	page, err := h.posts.List(c.UserContext(), repository.PostFilter{
		Page:       query.Page,
		IDMoreThan: query.IDMoreThan,
		IDLessThan: query.IDLessThan,
		Order:      order,
		Take:       query.Take,
	})
	if err != nil {
		return err
	}

	responses := make([]dto.PostResponse, 0, len(page.Posts))
	for _, post := range page.Posts {
		responses = append(responses, dto.NewPostResponse(post))
	}
	return c.JSON(fiber.Map{"data": dto.PostListResponse{Posts: responses, Total: page.Total}})
}

// Get handles GET /posts/:id.
func (h *PostsHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid post id", nil)
	}

	post, err := h.posts.Get(c.UserContext(), int64(id))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPostResponse(post)})
}

// Create handles POST /posts behind the access gate.
func (h *PostsHandler) Create(c *fiber.Ctx) error {
	authCtx, ok := auth.ContextFrom(c)
	if !ok || authCtx.User == nil {
		return auth.ErrMissingHeader
	}

	var req dto.PostCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Title == "" || req.Content == "" {
		return apperrors.NewValidationError("title and content required", nil)
	}

	post, err := h.posts.Create(c.UserContext(), authCtx.User.ID, req.Title, req.Content)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewPostResponse(post)})
}

// Update handles PATCH /posts/:id behind the access gate.
func (h *PostsHandler) Update(c *fiber.Ctx) error {
	authCtx, ok := auth.ContextFrom(c)
	if !ok || authCtx.User == nil {
		return auth.ErrMissingHeader
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid post id", nil)
	}

	var req dto.PostUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	post, err := h.posts.Update(c.UserContext(), authCtx.User.ID, int64(id), service.PostUpdateInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPostResponse(post)})
}

// Delete handles DELETE /posts/:id behind the access gate.
func (h *PostsHandler) Delete(c *fiber.Ctx) error {
	authCtx, ok := auth.ContextFrom(c)
	if !ok || authCtx.User == nil {
		return auth.ErrMissingHeader
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid post id", nil)
	}

	if err := h.posts.Delete(c.UserContext(), authCtx.User.ID, int64(id)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": id}})
}
