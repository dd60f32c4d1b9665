package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taskwell/taskwell/internal/models"
)

// MinPasswordLength is the minimum accepted plaintext password length.
const MinPasswordLength = 6

var (
	ErrCredentialsRequired = errors.New("email and password are required")
	ErrPasswordTooShort    = errors.New("password must be at least 6 characters")
	ErrEmailTaken          = errors.New("user already exists with this email")
	ErrInvalidCredentials  = errors.New("invalid credentials")

	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	ErrTitleRequired     = errors.New("title is required")
	ErrDueDateRequired   = errors.New("due date is required")
	ErrInvalidDueDate    = errors.New("invalid due date format")
	ErrInvalidTaskStatus = errors.New("invalid task status")
	ErrTaskNotFound      = errors.New("task not found")
	ErrTaskForbidden     = errors.New("task owned by another user")
)

// Database is the subset of pgxpool.Pool the services need. Keeping it
// an interface lets tests substitute a pgxmock pool for the real one.
type Database interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type AuthService interface {
	// Register creates a user with a freshly salted argon2id hash of
	// the password and a generated unique ID.
	//
	// It returns ErrCredentialsRequired or ErrPasswordTooShort on bad
	// input and ErrEmailTaken if the email is already registered. The
	// email is lowercased and trimmed before use.
	Register(ctx context.Context, params RegisterParams) (*models.User, error)

	// Authenticate verifies the email and password against the stored
	// hash. Verification recomputes the hash, it never decrypts.
	//
	// It returns ErrInvalidCredentials both when no user with the
	// given email exists and when the password does not match, so a
	// caller cannot tell the two apart.
	Authenticate(ctx context.Context, params LoginParams) (*models.User, error)
}

type TokenService interface {
	// Issue signs a token carrying the user ID with an absolute
	// expiry. Tokens are not persisted server-side.
	Issue(userID string) (token string, expiresAt time.Time, err error)

	// Verify checks the signature and expiry of a token and returns
	// the embedded user ID. It returns ErrTokenExpired for a
	// well-signed but stale token and ErrInvalidToken otherwise.
	Verify(token string) (userID string, err error)
}

type TaskService interface {
	// CreateTask persists a task owned by params.UserID. The status
	// defaults to models.StatusCreated when not supplied.
	CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error)

	// GetTasksByUserID returns all tasks owned by the user, ordered
	// by ascending due date; ties are broken by descending creation
	// time.
	GetTasksByUserID(ctx context.Context, userID string) ([]*models.Task, error)

	// UpdateTask applies a partial update to a task. Only non-nil
	// fields change; a non-nil empty Description clears it.
	//
	// It returns ErrTaskNotFound if no task has the given ID and
	// ErrTaskForbidden if the task belongs to another user.
	UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error)

	// DeleteTask removes a task after the same existence and
	// ownership checks as UpdateTask.
	DeleteTask(ctx context.Context, params DeleteTaskParams) error
}

type RegisterParams struct {
	Email    string
	Password string
}

type LoginParams struct {
	Email    string
	Password string
}

type CreateTaskParams struct {
	UserID      string
	Title       string
	Description string
	DueDate     string
	Status      string
}

type UpdateTaskParams struct {
	ID          string
	UserID      string
	Title       *string
	Description *string
	DueDate     *string
	Status      *string
}

type DeleteTaskParams struct {
	ID     string
	UserID string
}
