package domain

import "time"

// Post is a user-authored content entry.
type Post struct {
	ID           int64
	AuthorID     int64
	Title        string
	Content      string
	LikeCount    int
	CommentCount int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SortOrder controls list ordering for paginated queries.
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// PostPage describes one page of a post listing.
type PostPage struct {
	Posts []*Post
	Total int64
}
