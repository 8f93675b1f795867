package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-todo-api/internal/domain/entity"
	"github.com/oksasatya/go-todo-api/internal/domain/repository"
)

type TodoRepository struct {
	pool *pgxpool.Pool
}

func NewTodoRepository(pool *pgxpool.Pool) *TodoRepository {
	return &TodoRepository{pool: pool}
}

func (r *TodoRepository) Create(ctx context.Context, t *entity.Todo) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO todos (title, description, completed, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, t.Title, t.Description, t.Completed, t.UserID)

	return row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TodoRepository) GetByID(ctx context.Context, id string) (*entity.Todo, error) {
	t := &entity.Todo{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, title, description, completed, user_id, created_at, updated_at
		FROM todos
		WHERE id = $1
	`, id)

	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.UserID,
		&t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return t, nil
}

func (r *TodoRepository) ListByUser(ctx context.Context, userID string) ([]entity.Todo, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, description, completed, user_id, created_at, updated_at
		FROM todos
		WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := make([]entity.Todo, 0)
	for rows.Next() {
		var t entity.Todo
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.UserID,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

// UpdateOwned writes the todo only when it is still owned by ownerID, so a
// concurrent delete or reassignment cannot be overwritten by a stale check.
func (r *TodoRepository) UpdateOwned(ctx context.Context, t *entity.Todo, ownerID string) error {
	t.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE todos
		SET title = $1, description = $2, completed = $3, updated_at = $4
		WHERE id = $5 AND user_id = $6
	`, t.Title, t.Description, t.Completed, t.UpdatedAt, t.ID, ownerID)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// DeleteOwned removes the todo only when owned by ownerID.
func (r *TodoRepository) DeleteOwned(ctx context.Context, id, ownerID string) error {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM todos
		WHERE id = $1 AND user_id = $2
	`, id, ownerID)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

var _ repository.TodoRepository = (*TodoRepository)(nil)
