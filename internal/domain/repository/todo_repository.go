package repository

import (
	"context"

	"github.com/oksasatya/go-todo-api/internal/domain/entity"
)

// TodoRepository defines the interface for todo-related database operations.
// UpdateOwned and DeleteOwned are owner-conditional: they only touch rows
// whose user_id matches ownerID and report ErrNotFound otherwise, so a
// concurrent non-owner mutation can never win the race.
type TodoRepository interface {
	Create(ctx context.Context, t *entity.Todo) error
	GetByID(ctx context.Context, id string) (*entity.Todo, error)
	ListByUser(ctx context.Context, userID string) ([]entity.Todo, error)
	UpdateOwned(ctx context.Context, t *entity.Todo, ownerID string) error
	DeleteOwned(ctx context.Context, id, ownerID string) error
}
