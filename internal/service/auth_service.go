package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/content-service/internal/auth"
	"github.com/spec-kit/content-service/internal/domain"
	"github.com/spec-kit/content-service/internal/events"
	"github.com/spec-kit/content-service/internal/repository"
)

// AuthService coordinates credential validation, registration and token
// issuance.
type AuthService struct {
	users      repository.UserRepository
	hasher     auth.PasswordHasher
	codec      *auth.TokenCodec
	dispatcher events.Dispatcher
}

// AuthDependencies bundles collaborators for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Hasher     auth.PasswordHasher
	Codec      *auth.TokenCodec
	Dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		hasher:     deps.Hasher,
		codec:      deps.Codec,
		dispatcher: deps.Dispatcher,
	}
}

// Authenticate validates an email/password pair and returns the matching
// account. Account existence is checked strictly before the password compare,
// so the two failure kinds stay distinct for logging.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, auth.ErrIdentityNotFound
		}
		return nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, auth.ErrPasswordMismatch
	}
	return user, nil
}

// IssueTokenPair signs an access and a refresh token for the account.
func (s *AuthService) IssueTokenPair(user *domain.User) (domain.TokenPair, error) {
	subject := domain.TokenSubject{Email: user.Email, UserID: user.ID}

	accessToken, err := s.codec.Sign(subject, false)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refreshToken, err := s.codec.Sign(subject, true)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Login authenticates and issues a token pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.TokenPair, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return s.IssueTokenPair(user)
}

// Register creates an account and logs it in. Nickname uniqueness is checked
// before email uniqueness, and both before the password is hashed; the unique
// constraints in the store remain the atomic backstop against races.
func (s *AuthService) Register(ctx context.Context, email, nickname, password string) (*domain.User, domain.TokenPair, error) {
	if _, err := s.users.FindByNickname(ctx, nickname); err == nil {
		return nil, domain.TokenPair{}, auth.ErrDuplicateIdentity
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, domain.TokenPair{}, err
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, domain.TokenPair{}, err
	}
	if exists {
		return nil, domain.TokenPair{}, auth.ErrDuplicateIdentity
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, domain.TokenPair{}, err
	}

	user := &domain.User{
		Nickname:     nickname,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, domain.TokenPair{}, auth.ErrDuplicateIdentity
		}
		return nil, domain.TokenPair{}, err
	}

	pair, err := s.IssueTokenPair(user)
	if err != nil {
		return nil, domain.TokenPair{}, err
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventUserRegistered,
		ActorID: user.ID,
		Payload: events.UserRegisteredPayload{
			UserID:   user.ID,
			Nickname: user.Nickname,
			Email:    user.Email,
		},
	})

	return user, pair, nil
}

// Rotate exchanges a refresh token for a newly signed token of the requested
// kind. Only refresh tokens may drive rotation, regardless of which kind of
// replacement is asked for.
func (s *AuthService) Rotate(token string, refresh bool) (string, error) {
	claims, err := s.codec.Verify(token)
	if err != nil {
		return "", err
	}
	if claims.Kind != domain.KindRefresh {
		return "", auth.ErrNotRefreshToken
	}
	return s.codec.Sign(claims.Subject(), refresh)
}

func (s *AuthService) publishEvent(ctx context.Context, event events.Event) {
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
