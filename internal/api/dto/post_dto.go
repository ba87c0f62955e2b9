package dto

import (
	"time"

	"github.com/spec-kit/content-service/internal/domain"
)

// PostCreateRequest payload for new posts.
type PostCreateRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// PostUpdateRequest payload for partial updates; nil fields stay unchanged.
type PostUpdateRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// PaginatePostsQuery mirrors the listing query string. Page drives offset
// mode; the id bounds drive cursor mode.
type PaginatePostsQuery struct {
	Page       int    `query:"page"`
	IDMoreThan *int64 `query:"where__id_more_than"`
	IDLessThan *int64 `query:"where__id_less_than"`
	Order      string `query:"order__createdAt"`
	Take       int    `query:"take"`
}

// PostResponse is the public view of a post.
type PostResponse struct {
	ID           int64     `json:"id"`
	AuthorID     int64     `json:"author_id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	LikeCount    int       `json:"like_count"`
	CommentCount int       `json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewPostResponse converts a domain post.
func NewPostResponse(post *domain.Post) PostResponse {
	return PostResponse{
		ID:           post.ID,
		AuthorID:     post.AuthorID,
		Title:        post.Title,
		Content:      post.Content,
		LikeCount:    post.LikeCount,
		CommentCount: post.CommentCount,
		CreatedAt:    post.CreatedAt,
		UpdatedAt:    post.UpdatedAt,
	}
}

// PostListResponse wraps one page of posts.
type PostListResponse struct {
	Posts []PostResponse `json:"posts"`
	Total int64          `json:"total"`
}
