package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/taskwell/taskwell/internal/config"
	v1 "github.com/taskwell/taskwell/internal/delivery/http/v1"
	"github.com/taskwell/taskwell/internal/services"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: httpCfg.AllowedOrigins,
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowHeaders:     []string{"Origin", "Content-Type", v1.AuthTokenHeader},
		AllowCredentials: true,
	}))
	registerRoutes(router)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// Wait for the interrupt signal to gracefully
	// shut down the server with a bounded timeout.
	quit := make(chan os.Signal, 1)
	// kill (no params) by default sends syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	// kill -9 is syscall.SIGKILL but can't be caught, so don't need to add it
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func registerRoutes(router gin.IRouter) {
	cfg := config.Global()

	authService := services.NewAuthService(globalLogger, globalPostgresPool)
	tokenService := services.NewTokenService(
		globalLogger,
		cfg.JWT.Issuer,
		cfg.JWT.Secret,
		cfg.JWT.TokenTTL,
	)
	taskService := services.NewTaskService(globalLogger, globalPostgresPool)

	v1Handler := v1.New(
		globalLogger,
		authService,
		tokenService,
		taskService,
		cfg.Env != config.EnvProd,
	)

	api := router.Group("/api")
	api.GET("/health", handleHealth)

	authRouter := api.Group("/auth")
	authRouter.POST("/register", v1Handler.HandleRegister)
	authRouter.POST("/login", v1Handler.HandleLogin)

	taskRouter := api.Group("/tasks", v1Handler.HandleAuthMiddleware)
	taskRouter.POST("", v1Handler.HandleCreateTask)
	taskRouter.GET("", v1Handler.HandleGetTasks)
	taskRouter.PUT("/:id", v1Handler.HandleUpdateTask)
	taskRouter.DELETE("/:id", v1Handler.HandleDeleteTask)
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "backend is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
