package v1

import (
	"github.com/gin-gonic/gin"
)

const userIDCtxKey = "user_id"

// AuthTokenHeader carries the opaque token on every protected request.
const AuthTokenHeader = "X-Auth-Token"

// HandleAuthMiddleware is the gate in front of every protected route.
// It only verifies the token and injects the resolved user id into the
// request context; ownership checks happen in the task service.
func (h *handlerImpl) HandleAuthMiddleware(c *gin.Context) {
	token := c.GetHeader(AuthTokenHeader)
	if token == "" {
		h.logger.Error().Msg("auth token header required")
		abort(c, newUnauthorizedError("no token, authorization denied"))
		return
	}

	userID, err := h.tokens.Verify(token)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to verify token")
		abort(c, newUnauthorizedError("token is not valid"))
		return
	}

	c.Set(userIDCtxKey, userID)
	c.Next()
}

func getStringFromContext(c *gin.Context, key string) (string, bool) {
	value, exists := c.Get(key)
	if !exists {
		return "", false
	}
	str, ok := value.(string)
	return str, ok
}
