package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/content-service/internal/domain"
	"github.com/spec-kit/content-service/internal/events"
	"github.com/spec-kit/content-service/internal/repository"
)

// PostService coordinates post CRUD workflows.
type PostService struct {
	posts      repository.PostRepository
	dispatcher events.Dispatcher
}

// PostDependencies bundles collaborators for the post service.
type PostDependencies struct {
	PostRepo   repository.PostRepository
	Dispatcher events.Dispatcher
}

// PostUpdateInput carries the optional fields of a partial update.
type PostUpdateInput struct {
	Title   *string
	Content *string
}

// NewPostService builds the service.
func NewPostService(deps PostDependencies) *PostService {
	return &PostService{posts: deps.PostRepo, dispatcher: deps.Dispatcher}
}

// List returns one page of posts.
func (s *PostService) List(ctx context.Context, filter repository.PostFilter) (*domain.PostPage, error) {
	return s.posts.List(ctx, filter)
}

// Get returns a single post by id.
func (s *PostService) Get(ctx context.Context, id int64) (*domain.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// Create stores a new post authored by the given account.
func (s *PostService) Create(ctx context.Context, authorID int64, title, content string) (*domain.Post, error) {
	post := &domain.Post{
		AuthorID: authorID,
		Title:    title,
		Content:  content,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventPostCreated,
		ActorID: authorID,
		Payload: events.PostChangedPayload{PostID: post.ID, Title: post.Title},
	})
	return post, nil
}

// Update applies a partial update to an existing post.
func (s *PostService) Update(ctx context.Context, actorID, id int64, input PostUpdateInput) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Content != nil {
		post.Content = *input.Content
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventPostUpdated,
		ActorID: actorID,
		Payload: events.PostChangedPayload{PostID: post.ID, Title: post.Title},
	})
	return post, nil
}

// Delete removes a post.
func (s *PostService) Delete(ctx context.Context, actorID, id int64) error {
	if _, err := s.posts.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventPostDeleted,
		ActorID: actorID,
		Payload: events.PostChangedPayload{PostID: id},
	})
	return nil
}

func (s *PostService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
