package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/taskwell/taskwell/internal/services"
)

type Handler interface {
	HandleRegister(c *gin.Context)
	HandleLogin(c *gin.Context)
	HandleAuthMiddleware(c *gin.Context)

	HandleCreateTask(c *gin.Context)
	HandleGetTasks(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)
}

type handlerImpl struct {
	logger zerolog.Logger
	auth   services.AuthService
	tokens services.TokenService
	tasks  services.TaskService
	// exposeErrors lets non-prod environments see the concrete error
	// behind a 500 instead of the generic message.
	exposeErrors bool
}

func New(
	logger zerolog.Logger,
	authService services.AuthService,
	tokenService services.TokenService,
	taskService services.TaskService,
	exposeErrors bool,
) Handler {
	return &handlerImpl{
		logger:       logger,
		auth:         authService,
		tokens:       tokenService,
		tasks:        taskService,
		exposeErrors: exposeErrors,
	}
}
