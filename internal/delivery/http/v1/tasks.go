package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskwell/taskwell/internal/models"
	"github.com/taskwell/taskwell/internal/services"
)

// taskResponse is camelCase to match what the browser client expects.
type taskResponse struct {
	ID          string    `json:"id"`
	User        string    `json:"user"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func newTaskResponse(task *models.Task) taskResponse {
	return taskResponse{
		ID:          task.ID,
		User:        task.UserID,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate,
		Status:      task.Status,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func isTaskValidationError(err error) bool {
	return errors.Is(err, services.ErrTitleRequired) ||
		errors.Is(err, services.ErrDueDateRequired) ||
		errors.Is(err, services.ErrInvalidDueDate) ||
		errors.Is(err, services.ErrInvalidTaskStatus)
}

type createTaskRequest struct {
	Title       string `json:"title" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
	DueDate     string `json:"dueDate" binding:"required"`
	Status      string `json:"status"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	userID, exists := getStringFromContext(c, userIDCtxKey)
	if !exists {
		h.logger.Error().Msg("no user id found in context")
		abort(c, newUnauthorizedError("authorization denied"))
		return
	}

	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.CreateTask(c, services.CreateTaskParams{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      req.Status,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create task")
		if isTaskValidationError(err) {
			abort(c, newBadRequestError(err.Error()))
			return
		}
		h.abortInternal(c, err)
		return
	}

	c.JSON(http.StatusCreated, newTaskResponse(task))
}

func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	userID, exists := getStringFromContext(c, userIDCtxKey)
	if !exists {
		h.logger.Error().Msg("no user id found in context")
		abort(c, newUnauthorizedError("authorization denied"))
		return
	}

	tasks, err := h.tasks.GetTasksByUserID(c, userID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to fetch tasks")
		h.abortInternal(c, err)
		return
	}

	response := make([]taskResponse, len(tasks))
	for i, task := range tasks {
		response[i] = newTaskResponse(task)
	}

	c.JSON(http.StatusOK, response)
}

type updateTaskRequest struct {
	Title       *string `json:"title,omitempty" binding:"omitempty,max=100"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=500"`
	DueDate     *string `json:"dueDate,omitempty"`
	Status      *string `json:"status,omitempty"`
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	userID, exists := getStringFromContext(c, userIDCtxKey)
	if !exists {
		h.logger.Error().Msg("no user id found in context")
		abort(c, newUnauthorizedError("authorization denied"))
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		h.logger.Error().Msg("no task id provided")
		abort(c, newBadRequestError("task id is required"))
		return
	}

	var req updateTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.UpdateTask(c, services.UpdateTaskParams{
		ID:          taskID,
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      req.Status,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to update task")
		switch {
		case isTaskValidationError(err):
			abort(c, newBadRequestError(err.Error()))
		case errors.Is(err, services.ErrTaskNotFound):
			abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
		case errors.Is(err, services.ErrTaskForbidden):
			// Ownership mismatch reports 401, the same as a missing
			// token; the client treats both as "log in again".
			abort(c, newUnauthorizedError("not authorized to update this task"))
		default:
			h.abortInternal(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	userID, exists := getStringFromContext(c, userIDCtxKey)
	if !exists {
		h.logger.Error().Msg("no user id found in context")
		abort(c, newUnauthorizedError("authorization denied"))
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		h.logger.Error().Msg("no task id provided")
		abort(c, newBadRequestError("task id is required"))
		return
	}

	err := h.tasks.DeleteTask(c, services.DeleteTaskParams{
		ID:     taskID,
		UserID: userID,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to delete task")
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
		case errors.Is(err, services.ErrTaskForbidden):
			abort(c, newUnauthorizedError("not authorized to delete this task"))
		default:
			h.abortInternal(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Task removed successfully"})
}
