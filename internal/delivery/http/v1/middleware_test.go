package v1

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskwell/taskwell/internal/models"
	"github.com/taskwell/taskwell/internal/services"
)

func TestHandleAuthMiddleware(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		router := newTestRouter(&fakeAuthService{}, &fakeTokenService{}, &fakeTaskService{})

		w := doJSON(t, router, http.MethodGet, "/api/tasks", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		tokens := &fakeTokenService{verifyErr: services.ErrInvalidToken}
		router := newTestRouter(&fakeAuthService{}, tokens, &fakeTaskService{})

		w := doJSON(t, router, http.MethodGet, "/api/tasks", "garbage", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "garbage", tokens.gotVerify)
	})

	t.Run("expired token", func(t *testing.T) {
		tokens := &fakeTokenService{verifyErr: services.ErrTokenExpired}
		router := newTestRouter(&fakeAuthService{}, tokens, &fakeTaskService{})

		w := doJSON(t, router, http.MethodGet, "/api/tasks", "stale", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token injects the resolved user id", func(t *testing.T) {
		tokens := &fakeTokenService{verifyID: "user-1"}

		var gotUserID string
		tasks := &fakeTaskService{
			listFn: func(userID string) ([]*models.Task, error) {
				gotUserID = userID
				return []*models.Task{}, nil
			},
		}
		router := newTestRouter(&fakeAuthService{}, tokens, tasks)

		w := doJSON(t, router, http.MethodGet, "/api/tasks", "signed-token", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user-1", gotUserID)
	})
}
