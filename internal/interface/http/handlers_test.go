package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-todo-api/internal/application"
	"github.com/oksasatya/go-todo-api/internal/domain/entity"
	repo "github.com/oksasatya/go-todo-api/internal/domain/repository"
	"github.com/oksasatya/go-todo-api/internal/interface/middleware"
	"github.com/oksasatya/go-todo-api/pkg/helpers"
	"github.com/oksasatya/go-todo-api/pkg/validation"
)

// --- in-memory stores ---

type memUserRepo struct {
	users map[string]*entity.User
}

func (m *memUserRepo) Create(ctx context.Context, u *entity.User) error {
	for _, e := range m.users {
		if e.Email == u.Email {
			return repo.ErrDuplicateEmail
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

type memTodoRepo struct {
	todos []*entity.Todo
}

func (m *memTodoRepo) Create(ctx context.Context, t *entity.Todo) error {
	t.ID = uuid.NewString()
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	cp := *t
	m.todos = append(m.todos, &cp)
	return nil
}

func (m *memTodoRepo) GetByID(ctx context.Context, id string) (*entity.Todo, error) {
	for _, t := range m.todos {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memTodoRepo) ListByUser(ctx context.Context, userID string) ([]entity.Todo, error) {
	out := make([]entity.Todo, 0)
	for _, t := range m.todos {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *memTodoRepo) UpdateOwned(ctx context.Context, in *entity.Todo, ownerID string) error {
	for _, t := range m.todos {
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

func (m *memTodoRepo) DeleteOwned(ctx context.Context, id, ownerID string) error {
	for i, t := range m.todos {
		if t.ID == id && t.UserID == ownerID {
			m.todos = append(m.todos[:i], m.todos[i+1:]...)
			return nil
		}
	}
	return repo.ErrNotFound
}

// --- server wiring ---

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	authSvc := application.NewAuthService(&memUserRepo{users: map[string]*entity.User{}}, jwt, nil, logger, nil)
	todoSvc := application.NewTodoService(&memTodoRepo{}, nil, logger)

	authH := NewAuthHandler(authSvc, logger)
	todoH := NewTodoHandler(todoSvc, logger)

	r := gin.New()
	api := r.Group("/api")

	api.POST("/auth/register", authH.Register)
	api.POST("/auth/login", authH.Login)
	authed := api.Group("/")
	authed.Use(middleware.Auth(jwt, logger))
	{
		authed.GET("/auth/profile", authH.GetProfile)
		authed.GET("/todos", todoH.List)
		authed.POST("/todos", todoH.Create)
		authed.PUT("/todos/:id", todoH.Update)
		authed.DELETE("/todos/:id", todoH.Delete)
	}
	return r
}

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func do(t *testing.T, r *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func register(t *testing.T, r *gin.Engine, email, password, name string) (token string, userID string) {
	t.Helper()
	w, env := do(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": email, "password": password, "name": name,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var data struct {
		Token string            `json:"token"`
		User  entity.PublicUser `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	require.NotEmpty(t, data.User.ID)
	return data.Token, data.User.ID
}

// --- tests ---

func TestClientIP_PrefersResolvedAddress(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	assert.NotEmpty(t, clientIP(c))

	c.Set("real_ip", "203.0.113.7")
	assert.Equal(t, "203.0.113.7", clientIP(c))
}

func TestRegister_DuplicateEmailIs400(t *testing.T) {
	r := newTestServer(t)

	register(t, r, "a@x.com", "password123", "A")
	w, env := do(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": "a@x.com", "password": "otherpassword", "name": "B",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
}

func TestRegister_InvalidPayloadIs400(t *testing.T) {
	r := newTestServer(t)

	w, _ := do(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": "not-an-email", "password": "short", "name": "",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_BadCredentialsAreUniform(t *testing.T) {
	r := newTestServer(t)
	register(t, r, "a@x.com", "password123", "A")

	w1, env1 := do(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "a@x.com", "password": "wrongpassword",
	})
	w2, env2 := do(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "nobody@x.com", "password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, w1.Code)
	assert.Equal(t, http.StatusUnauthorized, w2.Code)
	assert.Equal(t, env1.Message, env2.Message)
}

func TestProfile_NeverExposesPasswordHash(t *testing.T) {
	r := newTestServer(t)
	token, _ := register(t, r, "a@x.com", "password123", "A")

	w, _ := do(t, r, http.MethodGet, "/api/auth/profile", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, strings.ToLower(w.Body.String()), "password")
}

func TestProfile_RequiresAuth(t *testing.T) {
	r := newTestServer(t)

	w, _ := do(t, r, http.MethodGet, "/api/auth/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTodos_RequireAuth(t *testing.T) {
	r := newTestServer(t)

	w, _ := do(t, r, http.MethodGet, "/api/todos", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = do(t, r, http.MethodPost, "/api/todos", "", gin.H{"title": "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTodos_EndToEndScenario(t *testing.T) {
	r := newTestServer(t)

	tokenA, userA := register(t, r, "a@x.com", "password123", "A")
	tokenB, _ := register(t, r, "b@x.com", "password123", "B")

	// create
	w, env := do(t, r, http.MethodPost, "/api/todos", tokenA, gin.H{"title": "Buy milk"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created entity.Todo
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.False(t, created.Completed)
	assert.Equal(t, userA, created.UserID)

	// list contains it
	w, env = do(t, r, http.MethodGet, "/api/todos", tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed []entity.Todo
	require.NoError(t, json.Unmarshal(env.Data, &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)

	// owner completes it; title and description survive
	w, env = do(t, r, http.MethodPut, "/api/todos/"+created.ID, tokenA, gin.H{"completed": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated entity.Todo
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.True(t, updated.Completed)
	assert.Equal(t, "Buy milk", updated.Title)

	// another user may not touch it
	w, _ = do(t, r, http.MethodPut, "/api/todos/"+created.ID, tokenB, gin.H{"completed": false})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = do(t, r, http.MethodDelete, "/api/todos/"+created.ID, tokenB, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// owner deletes; second delete is a 404
	w, _ = do(t, r, http.MethodDelete, "/api/todos/"+created.ID, tokenA, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, _ = do(t, r, http.MethodDelete, "/api/todos/"+created.ID, tokenA, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTodos_UpdateUnknownIDIs404(t *testing.T) {
	r := newTestServer(t)
	token, _ := register(t, r, "a@x.com", "password123", "A")

	w, _ := do(t, r, http.MethodPut, "/api/todos/"+uuid.NewString(), token, gin.H{"completed": true})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTodos_CreateWithoutTitleIs400(t *testing.T) {
	r := newTestServer(t)
	token, _ := register(t, r, "a@x.com", "password123", "A")

	w, _ := do(t, r, http.MethodPost, "/api/todos", token, gin.H{"description": "no title"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
