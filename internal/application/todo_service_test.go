package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-todo-api/internal/domain/entity"
	repo "github.com/oksasatya/go-todo-api/internal/domain/repository"
)

// --- fakes ---

type fakeTodoRepo struct {
	todos []*entity.Todo
}

func (f *fakeTodoRepo) Create(ctx context.Context, t *entity.Todo) error {
	t.ID = uuid.NewString()
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	cp := *t
	f.todos = append(f.todos, &cp)
	return nil
}

func (f *fakeTodoRepo) GetByID(ctx context.Context, id string) (*entity.Todo, error) {
	for _, t := range f.todos {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeTodoRepo) ListByUser(ctx context.Context, userID string) ([]entity.Todo, error) {
	out := make([]entity.Todo, 0)
	for _, t := range f.todos {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTodoRepo) UpdateOwned(ctx context.Context, in *entity.Todo, ownerID string) error {
	for _, t := range f.todos {
		if t.ID == in.ID && t.UserID == ownerID {
			t.Title = in.Title
			t.Description = in.Description
			t.Completed = in.Completed
			t.UpdatedAt = time.Now()
			return nil
		}
	}
	return repo.ErrNotFound
}

func (f *fakeTodoRepo) DeleteOwned(ctx context.Context, id, ownerID string) error {
	for i, t := range f.todos {
		if t.ID == id && t.UserID == ownerID {
			f.todos = append(f.todos[:i], f.todos[i+1:]...)
			return nil
		}
	}
	return repo.ErrNotFound
}

func newTodoService(t *testing.T) (*TodoService, *fakeTodoRepo) {
	t.Helper()
	r := &fakeTodoRepo{}
	return NewTodoService(r, nil, nil), r
}

func strptr(s string) *string { return &s }
func boolptr(b bool) *bool    { return &b }

// --- tests ---

func TestCreate_SetsOwnerAndDefaults(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTodoService(t)

	todo, err := svc.Create(ctx, "alice", "Buy milk", "2 liters")
	require.NoError(t, err)
	assert.Equal(t, "alice", todo.UserID)
	assert.Equal(t, "Buy milk", todo.Title)
	assert.Equal(t, "2 liters", todo.Description)
	assert.False(t, todo.Completed)
	assert.NotEmpty(t, todo.ID)
}

func TestCreate_EmptyTitle(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTodoService(t)

	_, err := svc.Create(ctx, "alice", "", "desc")
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = svc.Create(ctx, "alice", "   ", "desc")
	assert.ErrorIs(t, err, ErrTitleRequired)
}

func TestList_OnlyOwnersTodos(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTodoService(t)

	_, err := svc.Create(ctx, "alice", "a1", "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "bob", "b1", "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "alice", "a2", "")
	require.NoError(t, err)

	todos, err := svc.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, todos, 2)
	for _, td := range todos {
		assert.Equal(t, "alice", td.UserID)
	}
}

func TestUpdate_PartialLeavesOtherFields(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTodoService(t)

	created, err := svc.Create(ctx, "alice", "Buy milk", "2 liters")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "alice", created.ID, UpdateTodoInput{Completed: boolptr(true)})
	require.NoError(t, err)
	assert.True(t, updated.Completed)
	assert.Equal(t, "Buy milk", updated.Title)
	assert.Equal(t, "2 liters", updated.Description)

	// and back again; completed is freely settable in both directions
	updated, err = svc.Update(ctx, "alice", created.ID, UpdateTodoInput{Completed: boolptr(false)})
	require.NoError(t, err)
	assert.False(t, updated.Completed)
}

func TestUpdate_EmptyTitleRejected(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTodoService(t)

	created, err := svc.Create(ctx, "alice", "Buy milk", "")
	require.NoError(t, err)

	_, err = svc.Update(ctx, "alice", created.ID, UpdateTodoInput{Title: strptr("  ")})
	assert.ErrorIs(t, err, ErrTitleRequired)
}

func TestUpdate_NonOwnerForbiddenAndUnchanged(t *testing.T) {
	ctx := context.Background()
	svc, r := newTodoService(t)

	created, err := svc.Create(ctx, "alice", "Buy milk", "")
	require.NoError(t, err)

	_, err = svc.Update(ctx, "bob", created.ID, UpdateTodoInput{Title: strptr("hijacked")})
	assert.ErrorIs(t, err, ErrNotOwner)

	stored, err := r.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", stored.Title)
	assert.Equal(t, "alice", stored.UserID)
}

func TestUpdate_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTodoService(t)

	_, err := svc.Update(ctx, "alice", uuid.NewString(), UpdateTodoInput{Completed: boolptr(true)})
	assert.ErrorIs(t, err, ErrTodoNotFound)
}

func TestDelete_NonOwnerForbidden(t *testing.T) {
	ctx := context.Background()
	svc, r := newTodoService(t)

	created, err := svc.Create(ctx, "alice", "Buy milk", "")
	require.NoError(t, err)

	err = svc.Delete(ctx, "bob", created.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = r.GetByID(ctx, created.ID)
	assert.NoError(t, err)
}

func TestDelete_TwiceNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTodoService(t)

	created, err := svc.Create(ctx, "alice", "Buy milk", "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "alice", created.ID))

	err = svc.Delete(ctx, "alice", created.ID)
	assert.ErrorIs(t, err, ErrTodoNotFound)
}
