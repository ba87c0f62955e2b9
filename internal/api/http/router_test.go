package http_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	httptransport "github.com/spec-kit/content-service/internal/api/http"
	"github.com/spec-kit/content-service/internal/api/http/handlers"
	"github.com/spec-kit/content-service/internal/auth"
	"github.com/spec-kit/content-service/internal/domain"
	"github.com/spec-kit/content-service/internal/events"
	"github.com/spec-kit/content-service/internal/observability"
	"github.com/spec-kit/content-service/internal/repository"
	"github.com/spec-kit/content-service/internal/service"
)

type memUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[int64]*domain.User{}, nextID: 1}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, existing := range r.users {
		if existing.Nickname == user.Nickname || existing.Email == user.Email {
			return repository.ErrConflict
		}
	}
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if user, ok := r.users[id]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) FindByNickname(_ context.Context, nickname string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Nickname == nickname {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (r *memUserRepo) List(_ context.Context) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(r.users))
	for _, user := range r.users {
		clone := *user
		users = append(users, &clone)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

type memPostRepo struct {
	posts  map[int64]*domain.Post
	nextID int64
}

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{posts: map[int64]*domain.Post{}, nextID: 1}
}

func (r *memPostRepo) Create(_ context.Context, post *domain.Post) error {
	post.ID = r.nextID
	r.nextID++
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	clone := *post
	r.posts[post.ID] = &clone
	return nil
}

func (r *memPostRepo) Update(_ context.Context, post *domain.Post) error {
	if _, ok := r.posts[post.ID]; !ok {
		return repository.ErrNotFound
	}
	post.UpdatedAt = time.Now()
	clone := *post
	r.posts[post.ID] = &clone
	return nil
}

func (r *memPostRepo) GetByID(_ context.Context, id int64) (*domain.Post, error) {
	if post, ok := r.posts[id]; ok {
		clone := *post
		return &clone, nil
	}
	return nil, repository.ErrNotFound
}

func (r *memPostRepo) List(_ context.Context, filter repository.PostFilter) (*domain.PostPage, error) {
	posts := make([]*domain.Post, 0, len(r.posts))
	for _, post := range r.posts {
		if filter.IDMoreThan != nil && post.ID <= *filter.IDMoreThan {
			continue
		}
		if filter.IDLessThan != nil && post.ID >= *filter.IDLessThan {
			continue
		}
		clone := *post
		posts = append(posts, &clone)
	}
	sort.Slice(posts, func(i, j int) bool {
		if filter.Order == domain.SortDesc {
			return posts[i].ID > posts[j].ID
		}
		return posts[i].ID < posts[j].ID
	})

	take := filter.Take
	if take <= 0 {
		take = 20
	}
	if filter.Page > 0 {
		offset := (filter.Page - 1) * take
		if offset > len(posts) {
			offset = len(posts)
		}
		posts = posts[offset:]
	}
	if len(posts) > take {
		posts = posts[:take]
	}
	return &domain.PostPage{Posts: posts, Total: int64(len(r.posts))}, nil
}

func (r *memPostRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	userRepo := newMemUserRepo()
	postRepo := newMemPostRepo()
	dispatcher := events.NewInMemoryDispatcher()
	codec := auth.NewTokenCodec("test-secret", 300*time.Second, 3600*time.Second)
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)

	authService := service.NewAuthService(service.AuthDependencies{
		UserRepo:   userRepo,
		Hasher:     hasher,
		Codec:      codec,
		Dispatcher: dispatcher,
	})
	postService := service.NewPostService(service.PostDependencies{
		PostRepo:   postRepo,
		Dispatcher: dispatcher,
	})

	logger := zap.NewNop()
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, 0)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler("content-service", "test", nil, nil),
		Auth:   handlers.NewAuthHandler(authService),
		Users:  handlers.NewUsersHandler(userRepo),
		Posts:  handlers.NewPostsHandler(postService),
		Guard:  auth.NewGuard(codec, userRepo, authService),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload any, headers map[string]string) (int, map[string]any) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, val := range headers {
		req.Header.Set(key, val)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	parsed := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed))
	}
	return resp.StatusCode, parsed
}

func register(t *testing.T, app *fiber.App, nickname, email, password string) (accessToken, refreshToken string) {
	t.Helper()
	status, body := doJSON(t, app, http.MethodPost, "/auth/register", map[string]string{
		"nickname": nickname,
		"email":    email,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusCreated, status)

	authData := body["data"].(map[string]any)["auth"].(map[string]any)
	return authData["access_token"].(string), authData["refresh_token"].(string)
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func TestRegisterAndAccessGateEndToEnd(t *testing.T) {
	app := newTestApp(t)

	accessToken, refreshToken := register(t, app, "alice", "a@b.com", "pw123456")

	status, body := doJSON(t, app, http.MethodGet, "/users/me", nil, bearer(accessToken))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alice", body["data"].(map[string]any)["nickname"])

	// the refresh gate must reject the access token
	status, body = doJSON(t, app, http.MethodPost, "/auth/token/access", nil, bearer(accessToken))
	require.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "wrong token kind", body["error"].(map[string]any)["message"])

	// rotation with the refresh token yields a usable access token
	status, body = doJSON(t, app, http.MethodPost, "/auth/token/access", nil, bearer(refreshToken))
	require.Equal(t, http.StatusOK, status)
	rotated := body["data"].(map[string]any)["token"].(string)

	status, body = doJSON(t, app, http.MethodGet, "/users/me", nil, bearer(rotated))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alice", body["data"].(map[string]any)["nickname"])

	// a rotated refresh token must not pass the access gate
	status, body = doJSON(t, app, http.MethodPost, "/auth/token/refresh", nil, bearer(refreshToken))
	require.Equal(t, http.StatusOK, status)
	rotatedRefresh := body["data"].(map[string]any)["token"].(string)
	status, _ = doJSON(t, app, http.MethodGet, "/users/me", nil, bearer(rotatedRefresh))
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestLoginWithBasicCredentials(t *testing.T) {
	app := newTestApp(t)
	register(t, app, "alice", "a@b.com", "pw123456")

	encoded := base64.StdEncoding.EncodeToString([]byte("a@b.com:pw123456"))
	status, body := doJSON(t, app, http.MethodPost, "/auth/login", nil, map[string]string{
		"Authorization": "Basic " + encoded,
	})
	require.Equal(t, http.StatusOK, status)

	authData := body["data"].(map[string]any)["auth"].(map[string]any)
	assert.NotEmpty(t, authData["access_token"])
	assert.NotEmpty(t, authData["refresh_token"])
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	app := newTestApp(t)
	register(t, app, "alice", "a@b.com", "pw123456")

	wrongPassword := base64.StdEncoding.EncodeToString([]byte("a@b.com:wrong"))
	statusA, bodyA := doJSON(t, app, http.MethodPost, "/auth/login", nil, map[string]string{
		"Authorization": "Basic " + wrongPassword,
	})

	unknownUser := base64.StdEncoding.EncodeToString([]byte("ghost@b.com:pw123456"))
	statusB, bodyB := doJSON(t, app, http.MethodPost, "/auth/login", nil, map[string]string{
		"Authorization": "Basic " + unknownUser,
	})

	assert.Equal(t, http.StatusUnauthorized, statusA)
	assert.Equal(t, http.StatusUnauthorized, statusB)
	assert.Equal(t, bodyA["error"], bodyB["error"], "responses must not reveal which credential failed")
}

func TestRegisterDuplicateConflicts(t *testing.T) {
	app := newTestApp(t)
	register(t, app, "alice", "a@b.com", "pw123456")

	status, body := doJSON(t, app, http.MethodPost, "/auth/register", map[string]string{
		"nickname": "alice",
		"email":    "other@b.com",
		"password": "pw123456",
	}, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", body["error"].(map[string]any)["code"])

	status, _ = doJSON(t, app, http.MethodPost, "/auth/register", map[string]string{
		"nickname": "bob",
		"email":    "a@b.com",
		"password": "pw123456",
	}, nil)
	assert.Equal(t, http.StatusConflict, status)
}

func TestPostCRUD(t *testing.T) {
	app := newTestApp(t)
	accessToken, _ := register(t, app, "alice", "a@b.com", "pw123456")

	// unauthenticated create is rejected
	status, _ := doJSON(t, app, http.MethodPost, "/posts/", map[string]string{
		"title": "t", "content": "c",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, status)

	status, body := doJSON(t, app, http.MethodPost, "/posts/", map[string]string{
		"title": "hello", "content": "world",
	}, bearer(accessToken))
	require.Equal(t, http.StatusCreated, status)
	postData := body["data"].(map[string]any)
	postID := int64(postData["id"].(float64))
	assert.Equal(t, "hello", postData["title"])
	assert.Equal(t, float64(1), postData["author_id"])

	status, body = doJSON(t, app, http.MethodGet, fmt.Sprintf("/posts/%d", postID), nil, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "world", body["data"].(map[string]any)["content"])

	status, body = doJSON(t, app, http.MethodPatch, fmt.Sprintf("/posts/%d", postID), map[string]string{
		"title": "hello again",
	}, bearer(accessToken))
	require.Equal(t, http.StatusOK, status)
	updated := body["data"].(map[string]any)
	assert.Equal(t, "hello again", updated["title"])
	assert.Equal(t, "world", updated["content"])

	status, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/posts/%d", postID), nil, bearer(accessToken))
	require.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/posts/%d", postID), nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestPostPagination(t *testing.T) {
	app := newTestApp(t)
	accessToken, _ := register(t, app, "alice", "a@b.com", "pw123456")

	for i := 1; i <= 5; i++ {
		status, _ := doJSON(t, app, http.MethodPost, "/posts/", map[string]string{
			"title": fmt.Sprintf("post %d", i), "content": "c",
		}, bearer(accessToken))
		require.Equal(t, http.StatusCreated, status)
	}

	status, body := doJSON(t, app, http.MethodGet, "/posts/?take=2&order__createdAt=DESC", nil, nil)
	require.Equal(t, http.StatusOK, status)
	page := body["data"].(map[string]any)
	posts := page["posts"].([]any)
	require.Len(t, posts, 2)
	assert.Equal(t, "post 5", posts[0].(map[string]any)["title"])
	assert.Equal(t, float64(5), page["total"])

	status, body = doJSON(t, app, http.MethodGet, "/posts/?where__id_more_than=3", nil, nil)
	require.Equal(t, http.StatusOK, status)
	posts = body["data"].(map[string]any)["posts"].([]any)
	require.Len(t, posts, 2)
	assert.Equal(t, "post 4", posts[0].(map[string]any)["title"])

	status, _ = doJSON(t, app, http.MethodGet, "/posts/?order__createdAt=SIDEWAYS", nil, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestUsersListRequiresAccessToken(t *testing.T) {
	app := newTestApp(t)
	accessToken, refreshToken := register(t, app, "alice", "a@b.com", "pw123456")
	register(t, app, "bob", "b@b.com", "pw123456")

	status, _ := doJSON(t, app, http.MethodGet, "/users/", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = doJSON(t, app, http.MethodGet, "/users/", nil, bearer(refreshToken))
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body := doJSON(t, app, http.MethodGet, "/users/", nil, bearer(accessToken))
	require.Equal(t, http.StatusOK, status)
	users := body["data"].([]any)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].(map[string]any)["nickname"])
}
