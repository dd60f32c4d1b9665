package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/taskwell/taskwell/internal/models"
)

const dueDateLayout = "2006-01-02"

// ParseDueDate accepts either a bare calendar date or a full RFC 3339
// timestamp, which is what the browser client sends.
func ParseDueDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, ErrDueDateRequired
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(dueDateLayout, value)
	if err != nil {
		return time.Time{}, ErrInvalidDueDate
	}
	return t, nil
}

type taskServiceImpl struct {
	logger zerolog.Logger
	db     Database
}

func NewTaskService(
	logger zerolog.Logger,
	db Database,
) TaskService {
	return &taskServiceImpl{
		logger: logger,
		db:     db,
	}
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	if strings.TrimSpace(params.Title) == "" {
		return nil, ErrTitleRequired
	}

	dueDate, err := ParseDueDate(params.DueDate)
	if err != nil {
		return nil, err
	}

	status := params.Status
	if status == "" {
		status = models.StatusCreated
	}
	if !models.ValidStatus(status) {
		s.logger.Error().
			Str("status", status).
			Msg("invalid task status")
		return nil, ErrInvalidTaskStatus
	}

	taskUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate task uuid")
		return nil, err
	}

	now := time.Now()
	task := &models.Task{
		ID:          taskUUID.String(),
		UserID:      params.UserID,
		Title:       params.Title,
		Description: params.Description,
		DueDate:     dueDate,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	const insertTaskQuery = `
INSERT INTO tasks (id,
                   user_id,
                   title,
                   description,
                   due_date,
                   status,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`
	_, err = s.db.Exec(
		ctx,
		insertTaskQuery,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		task.DueDate,
		task.Status,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, err
	}
	s.logger.Debug().
		Str("task_id", task.ID).
		Msg("inserted task")

	s.logger.Info().
		Str("task_id", task.ID).
		Str("user_id", task.UserID).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) GetTasksByUserID(ctx context.Context, userID string) ([]*models.Task, error) {
	const selectTasksByUserIDQuery = `
SELECT id,
       title,
       description,
       due_date,
       status,
       created_at,
       updated_at
FROM tasks
WHERE user_id = $1
ORDER BY due_date, created_at DESC
`
	rows, err := s.db.Query(
		ctx,
		selectTasksByUserIDQuery,
		userID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select tasks by user id")
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		task := &models.Task{UserID: userID}
		err = rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&task.DueDate,
			&task.Status,
			&task.CreatedAt,
			&task.UpdatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan task")
			return nil, err
		}
		tasks = append(tasks, task)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}

	s.logger.Info().
		Int("count", len(tasks)).
		Str("user_id", userID).
		Msg("fetched tasks")
	return tasks, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error) {
	task, err := s.getOwnedTask(ctx, params.ID, params.UserID)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		if strings.TrimSpace(*params.Title) == "" {
			return nil, ErrTitleRequired
		}
		task.Title = *params.Title
	}
	if params.Description != nil {
		// An empty string clears the description; a nil pointer
		// leaves it untouched.
		task.Description = *params.Description
	}
	if params.DueDate != nil {
		dueDate, err := ParseDueDate(*params.DueDate)
		if err != nil {
			return nil, err
		}
		task.DueDate = dueDate
	}
	if params.Status != nil {
		if !models.ValidStatus(*params.Status) {
			s.logger.Error().
				Str("status", *params.Status).
				Msg("invalid task status")
			return nil, ErrInvalidTaskStatus
		}
		task.Status = *params.Status
	}
	task.UpdatedAt = time.Now()

	const updateTaskQuery = `
UPDATE tasks
SET title = $1,
    description = $2,
    due_date = $3,
    status = $4,
    updated_at = $5
WHERE id = $6
`
	_, err = s.db.Exec(
		ctx,
		updateTaskQuery,
		task.Title,
		task.Description,
		task.DueDate,
		task.Status,
		task.UpdatedAt,
		task.ID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", task.ID).
			Msg("failed to update task")
		return nil, err
	}
	s.logger.Debug().
		Str("task_id", task.ID).
		Msg("updated task")

	s.logger.Info().
		Str("task_id", task.ID).
		Str("user_id", task.UserID).
		Msg("updated task")
	return task, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, params DeleteTaskParams) error {
	_, err := s.getOwnedTask(ctx, params.ID, params.UserID)
	if err != nil {
		return err
	}

	const deleteTaskQuery = `
DELETE FROM tasks
WHERE id = $1
`
	_, err = s.db.Exec(
		ctx,
		deleteTaskQuery,
		params.ID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", params.ID).
			Msg("failed to delete task")
		return err
	}

	s.logger.Info().
		Str("task_id", params.ID).
		Str("user_id", params.UserID).
		Msg("deleted task")
	return nil
}

// getOwnedTask loads a task by ID and checks ownership. Existence is
// checked before ownership so a caller probing another user's task
// still learns whether the ID exists, which matches the observed API.
func (s *taskServiceImpl) getOwnedTask(ctx context.Context, taskID, userID string) (*models.Task, error) {
	task := &models.Task{ID: taskID}

	const selectTaskByIDQuery = `
SELECT user_id,
       title,
       description,
       due_date,
       status,
       created_at,
       updated_at
FROM tasks
WHERE id = $1
`
	err := s.db.QueryRow(
		ctx,
		selectTaskByIDQuery,
		task.ID,
	).Scan(
		&task.UserID,
		&task.Title,
		&task.Description,
		&task.DueDate,
		&task.Status,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Error().
				Str("task_id", task.ID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", task.ID).
			Msg("failed to select task by id")
		return nil, err
	}

	if task.UserID != userID {
		s.logger.Error().
			Str("task_id", task.ID).
			Str("owner_id", task.UserID).
			Str("user_id", userID).
			Msg("task owned by another user")
		return nil, ErrTaskForbidden
	}
	return task, nil
}
