package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/taskwell/taskwell/internal/models"
	"github.com/taskwell/taskwell/internal/services"
)

type fakeAuthService struct {
	registerUser *models.User
	registerErr  error
	authUser     *models.User
	authErr      error

	gotRegister services.RegisterParams
	gotLogin    services.LoginParams
}

func (f *fakeAuthService) Register(_ context.Context, params services.RegisterParams) (*models.User, error) {
	f.gotRegister = params
	return f.registerUser, f.registerErr
}

func (f *fakeAuthService) Authenticate(_ context.Context, params services.LoginParams) (*models.User, error) {
	f.gotLogin = params
	return f.authUser, f.authErr
}

type fakeTokenService struct {
	issueToken string
	issueErr   error
	verifyID   string
	verifyErr  error

	gotVerify string
}

func (f *fakeTokenService) Issue(string) (string, time.Time, error) {
	return f.issueToken, time.Now().Add(24 * time.Hour), f.issueErr
}

func (f *fakeTokenService) Verify(token string) (string, error) {
	f.gotVerify = token
	return f.verifyID, f.verifyErr
}

type fakeTaskService struct {
	createFn func(services.CreateTaskParams) (*models.Task, error)
	listFn   func(string) ([]*models.Task, error)
	updateFn func(services.UpdateTaskParams) (*models.Task, error)
	deleteFn func(services.DeleteTaskParams) error
}

func (f *fakeTaskService) CreateTask(_ context.Context, params services.CreateTaskParams) (*models.Task, error) {
	return f.createFn(params)
}

func (f *fakeTaskService) GetTasksByUserID(_ context.Context, userID string) ([]*models.Task, error) {
	return f.listFn(userID)
}

func (f *fakeTaskService) UpdateTask(_ context.Context, params services.UpdateTaskParams) (*models.Task, error) {
	return f.updateFn(params)
}

func (f *fakeTaskService) DeleteTask(_ context.Context, params services.DeleteTaskParams) error {
	return f.deleteFn(params)
}

func newTestRouter(auth services.AuthService, tokens services.TokenService, tasks services.TaskService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := New(zerolog.Nop(), auth, tokens, tasks, false)

	router := gin.New()
	api := router.Group("/api")

	authRouter := api.Group("/auth")
	authRouter.POST("/register", h.HandleRegister)
	authRouter.POST("/login", h.HandleLogin)

	taskRouter := api.Group("/tasks", h.HandleAuthMiddleware)
	taskRouter.POST("", h.HandleCreateTask)
	taskRouter.GET("", h.HandleGetTasks)
	taskRouter.PUT("/:id", h.HandleUpdateTask)
	taskRouter.DELETE("/:id", h.HandleDeleteTask)

	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(AuthTokenHeader, token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
