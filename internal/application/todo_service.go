package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-todo-api/internal/domain/entity"
	repo "github.com/oksasatya/go-todo-api/internal/domain/repository"
	"github.com/oksasatya/go-todo-api/pkg/helpers"
)

var (
	ErrTitleRequired = errors.New("title is required")
	ErrTodoNotFound  = errors.New("todo not found")
	ErrNotOwner      = errors.New("todo belongs to another user")
)

const listCacheTTL = 5 * time.Minute

func listKey(userID string) string {
	return "todos:user:" + userID
}

// TodoService implements the task operations. Every mutation runs the
// ownership predicate before touching the store, and the store write itself
// is owner-conditional.
type TodoService struct {
	Repo   repo.TodoRepository
	Redis  *redis.Client
	Logger *logrus.Logger
}

func NewTodoService(repo repo.TodoRepository, rdb *redis.Client, logger *logrus.Logger) *TodoService {
	return &TodoService{Repo: repo, Redis: rdb, Logger: logger}
}

// UpdateTodoInput carries the partial-update fields; nil means unchanged.
type UpdateTodoInput struct {
	Title       *string
	Description *string
	Completed   *bool
}

// List returns all todos owned by userID in store order.
func (s *TodoService) List(ctx context.Context, userID string) ([]entity.Todo, error) {
	if s.Redis != nil {
		var cached []entity.Todo
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, listKey(userID), &cached); err == nil && ok {
			return cached, nil
		}
	}

	todos, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, listKey(userID), todos, listCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Warn("todo list cache write failed")
		}
	}
	return todos, nil
}

// Create stores a new todo owned by userID with completed=false.
func (s *TodoService) Create(ctx context.Context, userID, title, description string) (*entity.Todo, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrTitleRequired
	}
	t := &entity.Todo{
		Title:       title,
		Description: description,
		Completed:   false,
		UserID:      userID,
	}
	if err := s.Repo.Create(ctx, t); err != nil {
		return nil, err
	}
	s.invalidateList(ctx, userID)
	return t, nil
}

// Update applies the provided subset of fields to a todo owned by userID.
func (s *TodoService) Update(ctx context.Context, userID, todoID string, in UpdateTodoInput) (*entity.Todo, error) {
	t, err := s.load(ctx, userID, todoID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, ErrTitleRequired
		}
		t.Title = *in.Title
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Completed != nil {
		t.Completed = *in.Completed
	}

	// The write is owner-conditional; a todo deleted or reassigned since
	// the load surfaces as not found, never as a cross-owner write.
	if err := s.Repo.UpdateOwned(ctx, t, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}
	s.invalidateList(ctx, userID)
	return t, nil
}

// Delete permanently removes a todo owned by userID.
func (s *TodoService) Delete(ctx context.Context, userID, todoID string) error {
	if _, err := s.load(ctx, userID, todoID); err != nil {
		return err
	}
	if err := s.Repo.DeleteOwned(ctx, todoID, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrTodoNotFound
		}
		return err
	}
	s.invalidateList(ctx, userID)
	return nil
}

// load fetches the todo and runs the ownership predicate, mapping the two
// failure modes to their distinct errors (404 vs 403 at the boundary).
func (s *TodoService) load(ctx context.Context, userID, todoID string) (*entity.Todo, error) {
	t, err := s.Repo.GetByID(ctx, todoID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}
	if !t.OwnedBy(userID) {
		return nil, ErrNotOwner
	}
	return t, nil
}

func (s *TodoService) invalidateList(ctx context.Context, userID string) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, listKey(userID)); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("todo list cache invalidation failed")
	}
}
