package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/taskwell/taskwell/internal/models"
)

type authServiceImpl struct {
	logger zerolog.Logger
	db     Database
}

func NewAuthService(
	logger zerolog.Logger,
	db Database,
) AuthService {
	return &authServiceImpl{
		logger: logger,
		db:     db,
	}
}

// NormalizeEmail lowercases and trims an email so that the unique
// index on users.email treats differently-cased spellings as one
// identity.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authServiceImpl) Register(ctx context.Context, params RegisterParams) (*models.User, error) {
	email := NormalizeEmail(params.Email)
	if email == "" || params.Password == "" {
		return nil, ErrCredentialsRequired
	}
	if len(params.Password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := argon2id.CreateHash(params.Password, argon2id.DefaultParams)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to hash password")
		return nil, err
	}

	userUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate user uuid")
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		ID:        userUUID.String(),
		Email:     email,
		Password:  hash,
		CreatedAt: now,
		UpdatedAt: now,
	}

	const insertUserQuery = `
INSERT INTO users (id,
                   email,
                   password,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5)
`
	_, err = s.db.Exec(
		ctx,
		insertUserQuery,
		user.ID,
		user.Email,
		user.Password,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			s.logger.Error().
				Str("email", user.Email).
				Msg("user with this email already exists")
			return nil, ErrEmailTaken
		}

		s.logger.Error().
			Err(err).
			Msg("failed to insert user")
		return nil, err
	}
	s.logger.Debug().
		Str("user_id", user.ID).
		Msg("inserted user")

	s.logger.Info().
		Str("user_id", user.ID).
		Str("email", user.Email).
		Msg("registered user")
	return user, nil
}

func (s *authServiceImpl) Authenticate(ctx context.Context, params LoginParams) (*models.User, error) {
	email := NormalizeEmail(params.Email)
	if email == "" || params.Password == "" {
		return nil, ErrCredentialsRequired
	}

	user := &models.User{Email: email}

	const selectUserByEmailQuery = `
SELECT id,
       password
FROM users
WHERE email = $1
`
	err := s.db.QueryRow(
		ctx,
		selectUserByEmailQuery,
		user.Email,
	).Scan(
		&user.ID,
		&user.Password,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Error().
				Str("email", user.Email).
				Msg("user not found")
			return nil, ErrInvalidCredentials
		}

		s.logger.Error().
			Err(err).
			Str("email", user.Email).
			Msg("failed to select user by email")
		return nil, err
	}
	s.logger.Debug().
		Str("user_id", user.ID).
		Msg("selected user")

	match, err := argon2id.ComparePasswordAndHash(params.Password, user.Password)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to compare password")
		return nil, err
	} else if !match {
		s.logger.Error().Msg("passwords do not match")
		return nil, ErrInvalidCredentials
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Msg("authenticated user")
	return user, nil
}
