package application

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-todo-api/internal/domain/entity"
	repo "github.com/oksasatya/go-todo-api/internal/domain/repository"
	"github.com/oksasatya/go-todo-api/pkg/helpers"
	"github.com/oksasatya/go-todo-api/pkg/mailer"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
)

const profileCacheTTL = 15 * time.Minute

func profileKey(userID string) string {
	return "user:profile:" + userID
}

// AuthService implements registration, login and profile lookup.
// Redis and the publisher are optional; the service degrades to plain
// database access when they are nil.
type AuthService struct {
	Repo   repo.UserRepository
	JWT    *helpers.JWTManager
	Redis  *redis.Client
	Logger *logrus.Logger
	Pub    *helpers.RabbitPublisher
}

func NewAuthService(repo repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger, pub *helpers.RabbitPublisher) *AuthService {
	return &AuthService{Repo: repo, JWT: jwt, Redis: rdb, Logger: logger, Pub: pub}
}

// AuthResult is returned by Register and Login: a public user view plus a
// fresh access token.
type AuthResult struct {
	User    entity.PublicUser
	Token   string
	Expires time.Time
}

// Register hashes the password, creates the user, and issues a token.
// The plaintext password is never stored or logged.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*AuthResult, error) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{Email: email, Password: hash, Name: name}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	token, exp, err := s.JWT.GenerateToken(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		}
		return nil, err
	}

	// Welcome email is fire-and-forget; registration never fails on it.
	if s.Pub != nil {
		if pErr := s.Pub.PublishJSON(ctx, mailer.WelcomeJob(u.Email, u.Name)); pErr != nil && s.Logger != nil {
			s.Logger.WithError(pErr).WithField("user_id", u.ID).Warn("enqueue welcome email failed")
		}
	}

	return &AuthResult{User: u.Public(), Token: token, Expires: exp}, nil
}

// Login validates email/password and issues a fresh token. Unknown email
// and wrong password are indistinguishable to the caller; the bcrypt
// comparison runs in both cases. Store failures propagate unchanged so the
// boundary can answer 500 instead of 401.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// Burn a comparison against a fixed hash so the miss and
			// the wrong-password path take similar time.
			helpers.CompareHashAndPassword(dummyHash, password)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.JWT.GenerateToken(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		}
		return nil, err
	}
	return &AuthResult{User: u.Public(), Token: token, Expires: exp}, nil
}

// dummyHash is a bcrypt hash of a random string, used to equalize timing on
// unknown-email logins.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// GetProfile returns the public view for an already-authenticated id,
// read-through cached in Redis.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*entity.PublicUser, error) {
	if s.Redis != nil {
		var cached entity.PublicUser
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, profileKey(userID), &cached); err == nil && ok {
			return &cached, nil
		}
	}

	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	pub := u.Public()

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, profileKey(userID), pub, profileCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Warn("profile cache write failed")
		}
	}
	return &pub, nil
}
