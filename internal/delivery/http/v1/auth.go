package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskwell/taskwell/internal/models"
	"github.com/taskwell/taskwell/internal/services"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=255"`
}

// Login deliberately skips the length check: a short password is just
// a wrong password and must fail with 401, not 400.
type loginRequest struct {
	Email    string `json:"email" binding:"required,max=255"`
	Password string `json:"password" binding:"required,max=255"`
}

type identityResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type authResponse struct {
	Success bool             `json:"success"`
	Token   string           `json:"token"`
	User    identityResponse `json:"user"`
}

func (h *handlerImpl) newAuthResponse(c *gin.Context, user *models.User) (authResponse, bool) {
	token, _, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to issue token")
		h.abortInternal(c, err)
		return authResponse{}, false
	}

	return authResponse{
		Success: true,
		Token:   token,
		User: identityResponse{
			ID:    user.ID,
			Email: user.Email,
		},
	}, true
}

func (h *handlerImpl) HandleRegister(c *gin.Context) {
	var req registerRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}
	h.logger.Info().
		Str("email", req.Email).
		Msg("register request")

	user, err := h.auth.Register(c, services.RegisterParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to register user")
		switch {
		case errors.Is(err, services.ErrCredentialsRequired),
			errors.Is(err, services.ErrPasswordTooShort),
			// Duplicate email is reported as a plain 400; the client
			// treats it like any other rejected form submission.
			errors.Is(err, services.ErrEmailTaken):
			abort(c, newBadRequestError(err.Error()))
		default:
			h.abortInternal(c, err)
		}
		return
	}

	response, ok := h.newAuthResponse(c, user)
	if !ok {
		return
	}

	c.JSON(http.StatusCreated, response)
}

func (h *handlerImpl) HandleLogin(c *gin.Context) {
	var req loginRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}
	h.logger.Info().
		Str("email", req.Email).
		Msg("login request")

	user, err := h.auth.Authenticate(c, services.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to authenticate user")
		switch {
		case errors.Is(err, services.ErrCredentialsRequired):
			abort(c, newBadRequestError(err.Error()))
		case errors.Is(err, services.ErrInvalidCredentials):
			abort(c, newUnauthorizedError(services.ErrInvalidCredentials.Error()))
		default:
			h.abortInternal(c, err)
		}
		return
	}

	response, ok := h.newAuthResponse(c, user)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, response)
}
