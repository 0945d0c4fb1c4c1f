package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskflow/internal/domain"
	"taskflow/internal/service"
)

// TaskHandler mantiene dependencias para endpoints de tareas. Todas las
// rutas pasan antes por RequireAuth; la identidad del dueño sale
// siempre de los claims, nunca del body ni de la query.
type TaskHandler struct {
	logger   *zap.Logger
	taskServ *service.TaskService
}

// NewTaskHandler crea una instancia de TaskHandler con dependencias necesarias.
func NewTaskHandler(logger *zap.Logger, taskServ *service.TaskService) *TaskHandler {
	return &TaskHandler{
		logger:   logger,
		taskServ: taskServ,
	}
}

// List maneja GET /api/tasks.
func (h *TaskHandler) List(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	status := domain.StatusFilter(c.Query("status"))
	sort := domain.SortKey(c.Query("sort"))

	tasks, err := h.taskServ.List(c.Request.Context(), userID, status, sort)
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": vErr.Fields})
			return
		}
		h.logger.Error("list tasks failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list tasks"})
		return
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// Create maneja POST /api/tasks.
func (h *TaskHandler) Create(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	var req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create task request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	task, err := h.taskServ.Create(c.Request.Context(), userID, req.Title, req.Description)
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": vErr.Fields})
			return
		}
		h.logger.Error("create task failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create task"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"task": task})
}

// Get maneja GET /api/tasks/:id.
func (h *TaskHandler) Get(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	taskID, ok := h.taskID(c)
	if !ok {
		return
	}

	task, err := h.taskServ.Get(c.Request.Context(), userID, taskID)
	if err != nil {
		h.respondTaskError(c, err, "get task failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task})
}

// Update maneja PUT /api/tasks/:id.
func (h *TaskHandler) Update(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	taskID, ok := h.taskID(c)
	if !ok {
		return
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update task request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	task, err := h.taskServ.Update(c.Request.Context(), userID, taskID, req.Title, req.Description)
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": vErr.Fields})
			return
		}
		h.respondTaskError(c, err, "update task failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task})
}

// Delete maneja DELETE /api/tasks/:id.
func (h *TaskHandler) Delete(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	taskID, ok := h.taskID(c)
	if !ok {
		return
	}

	if err := h.taskServ.Delete(c.Request.Context(), userID, taskID); err != nil {
		h.respondTaskError(c, err, "delete task failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleComplete maneja PATCH /api/tasks/:id/complete.
func (h *TaskHandler) ToggleComplete(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	taskID, ok := h.taskID(c)
	if !ok {
		return
	}

	task, err := h.taskServ.ToggleComplete(c.Request.Context(), userID, taskID)
	if err != nil {
		h.respondTaskError(c, err, "toggle task failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task})
}

func (h *TaskHandler) userID(c *gin.Context) (string, bool) {
	userID, ok := AuthUserID(c)
	if !ok {
		// Solo alcanzable si la ruta quedó sin middleware; es un error
		// de cableado, no una condición de request.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return "", false
	}
	return userID, true
}

func (h *TaskHandler) taskID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		// Un id no numérico no identifica ningún recurso.
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return 0, false
	}
	return id, true
}

func (h *TaskHandler) respondTaskError(c *gin.Context, err error, logMsg string) {
	if errors.Is(err, domain.ErrTaskNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	h.logger.Error(logMsg, zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected error"})
}
