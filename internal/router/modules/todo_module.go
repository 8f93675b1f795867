package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-todo-api/internal/container"
	handlers "github.com/oksasatya/go-todo-api/internal/interface/http"
	"github.com/oksasatya/go-todo-api/internal/interface/middleware"
	"github.com/oksasatya/go-todo-api/pkg/helpers"
)

// TodoModule wires the todo CRUD handlers into routes.
// Every route requires a valid bearer token.

type TodoModule struct {
	Handler *handlers.TodoHandler
	JWT     *helpers.JWTManager
}

func NewTodoModule(h *handlers.TodoHandler, jwt *helpers.JWTManager) *TodoModule {
	return &TodoModule{Handler: h, JWT: jwt}
}

func (m *TodoModule) Register(rg *gin.RouterGroup) {
	todos := rg.Group("/todos")
	todos.Use(middleware.Auth(m.JWT, container.GetLogger()))
	{
		todos.GET("", m.Handler.List)
		todos.POST("", m.Handler.Create)
		todos.PUT("/:id", m.Handler.Update)
		todos.DELETE("/:id", m.Handler.Delete)
	}
}
