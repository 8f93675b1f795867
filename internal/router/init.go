package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-todo-api/internal/application"
	"github.com/oksasatya/go-todo-api/internal/container"
	pginfra "github.com/oksasatya/go-todo-api/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/go-todo-api/internal/interface/http"
	"github.com/oksasatya/go-todo-api/internal/router/modules"
)

func buildAuthModule() *modules.AuthModule {
	repo := pginfra.NewUserRepository(container.GetPGPool())
	svc := application.NewAuthService(
		repo,
		container.GetJWT(),
		container.GetRedis(),
		container.GetLogger(),
		container.GetRabbitPub(),
	)
	h := handlers.NewAuthHandler(svc, container.GetLogger())
	return modules.NewAuthModule(h, container.GetJWT())
}

func buildTodoModule() *modules.TodoModule {
	repo := pginfra.NewTodoRepository(container.GetPGPool())
	svc := application.NewTodoService(repo, container.GetRedis(), container.GetLogger())
	h := handlers.NewTodoHandler(svc, container.GetLogger())
	return modules.NewTodoModule(h, container.GetJWT())
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	r.Add(buildAuthModule())
	r.Add(buildTodoModule())

	r.API.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
