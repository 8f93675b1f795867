package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-todo-api/internal/application"
	"github.com/oksasatya/go-todo-api/internal/interface/middleware"
	"github.com/oksasatya/go-todo-api/pkg/response"
	"github.com/oksasatya/go-todo-api/pkg/validation"
)

type TodoHandler struct {
	Svc    *application.TodoService
	Logger *logrus.Logger
}

func NewTodoHandler(svc *application.TodoService, logger *logrus.Logger) *TodoHandler {
	return &TodoHandler{Svc: svc, Logger: logger}
}

type createTodoRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// updateTodoRequest uses pointers so absent fields stay unchanged.
type updateTodoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// List GET /api/todos
func (h *TodoHandler) List(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	todos, err := h.Svc.List(c.Request.Context(), uid)
	if err != nil {
		h.Logger.WithError(err).WithField("user_id", uid).Error("list todos failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to list todos", nil)
		return
	}
	response.Success(c, http.StatusOK, todos, "todos", nil)
}

// Create POST /api/todos
func (h *TodoHandler) Create(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	t, err := h.Svc.Create(c.Request.Context(), uid, req.Title, req.Description)
	if err != nil {
		if errors.Is(err, application.ErrTitleRequired) {
			response.Error[any](c, http.StatusBadRequest, "title is required", nil)
			return
		}
		h.Logger.WithError(err).WithField("user_id", uid).Error("create todo failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to create todo", nil)
		return
	}
	response.Success(c, http.StatusCreated, t, "todo created", nil)
}

// Update PUT /api/todos/:id
func (h *TodoHandler) Update(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	id := c.Param("id")
	var req updateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	t, err := h.Svc.Update(c.Request.Context(), uid, id, application.UpdateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		h.writeTodoError(c, uid, id, err, "update todo failed")
		return
	}
	response.Success(c, http.StatusOK, t, "todo updated", nil)
}

// Delete DELETE /api/todos/:id
func (h *TodoHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	id := c.Param("id")

	if err := h.Svc.Delete(c.Request.Context(), uid, id); err != nil {
		h.writeTodoError(c, uid, id, err, "delete todo failed")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TodoHandler) writeTodoError(c *gin.Context, uid, id string, err error, logMsg string) {
	switch {
	case errors.Is(err, application.ErrTodoNotFound):
		response.Error[any](c, http.StatusNotFound, "todo not found", nil)
	case errors.Is(err, application.ErrNotOwner):
		response.Error[any](c, http.StatusForbidden, "you do not own this todo", nil)
	case errors.Is(err, application.ErrTitleRequired):
		response.Error[any](c, http.StatusBadRequest, "title is required", nil)
	default:
		h.Logger.WithError(err).WithFields(logrus.Fields{"user_id": uid, "todo_id": id}).Error(logMsg)
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}
