package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/content-service/internal/domain"
)

// PostFilter captures pagination parameters for post listings. Either the
// page number (offset mode) or one of the id cursors (cursor mode) drives the
// window; Take caps the page size.
type PostFilter struct {
	Page       int
	IDMoreThan *int64
	IDLessThan *int64
	Order      domain.SortOrder
	Take       int
}

// PostRepository encapsulates post persistence.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	Update(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id int64) (*domain.Post, error)
	List(ctx context.Context, filter PostFilter) (*domain.PostPage, error)
	Delete(ctx context.Context, id int64) error
}

type postRepository struct {
	pool *pgxpool.Pool
}

// NewPostRepository instantiates repository.
func NewPostRepository(pool *pgxpool.Pool) PostRepository {
	return &postRepository{pool: pool}
}

const postColumns = `id, author_id, title, content, like_count, comment_count, created_at, updated_at`

func (r *postRepository) Create(ctx context.Context, post *domain.Post) error {
	const query = `
        INSERT INTO posts (author_id, title, content, like_count, comment_count)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		post.AuthorID,
		post.Title,
		post.Content,
		post.LikeCount,
		post.CommentCount,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	return mapError(err)
}

func (r *postRepository) Update(ctx context.Context, post *domain.Post) error {
	const query = `
        UPDATE posts SET title=$1, content=$2, like_count=$3, comment_count=$4, updated_at=NOW()
        WHERE id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		post.Title,
		post.Content,
		post.LikeCount,
		post.CommentCount,
		post.ID,
	)
	if err != nil {
		return mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	const query = `SELECT ` + postColumns + ` FROM posts WHERE id=$1`

	var post domain.Post
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&post.ID,
		&post.AuthorID,
		&post.Title,
		&post.Content,
		&post.LikeCount,
		&post.CommentCount,
		&post.CreatedAt,
		&post.UpdatedAt,
	); err != nil {
		return nil, mapError(err)
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, filter PostFilter) (*domain.PostPage, error) {
	conditions := []string{}
	args := []any{}

	if filter.IDMoreThan != nil {
		args = append(args, *filter.IDMoreThan)
		conditions = append(conditions, fmt.Sprintf("id > $%d", len(args)))
	}
	if filter.IDLessThan != nil {
		args = append(args, *filter.IDLessThan)
		conditions = append(conditions, fmt.Sprintf("id < $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	order := "ASC"
	if filter.Order == domain.SortDesc {
		order = "DESC"
	}

	take := filter.Take
	if take <= 0 {
		take = 20
	}
	args = append(args, take)
	limit := fmt.Sprintf(" ORDER BY created_at %s, id %s LIMIT $%d", order, order, len(args))

	if filter.Page > 0 {
		args = append(args, (filter.Page-1)*take)
		limit += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	query := `SELECT ` + postColumns + ` FROM posts` + where + limit

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	posts := []*domain.Post{}
	for rows.Next() {
		var post domain.Post
		if err := rows.Scan(
			&post.ID,
			&post.AuthorID,
			&post.Title,
			&post.Content,
			&post.LikeCount,
			&post.CommentCount,
			&post.CreatedAt,
			&post.UpdatedAt,
		); err != nil {
			return nil, err
		}
		posts = append(posts, &post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&total); err != nil {
		return nil, mapError(err)
	}

	return &domain.PostPage{Posts: posts, Total: total}, nil
}

func (r *postRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id=$1`, id)
	if err != nil {
		return mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
