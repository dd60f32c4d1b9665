package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

var errInvalidRequestBody = errors.New("invalid request body")

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func (e apiError) Error() string {
	return e.Message
}

// The "msg" key is part of the wire contract with the browser client.
func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, gin.H{"msg": err.Message})
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, message)
}

func newUnauthorizedError(message string) apiError {
	return newAPIError(http.StatusUnauthorized, message)
}

func newNotFoundError(message string) apiError {
	return newAPIError(http.StatusNotFound, message)
}

func (h *handlerImpl) abortInternal(c *gin.Context, err error) {
	if h.exposeErrors && err != nil {
		abort(c, newAPIError(http.StatusInternalServerError, err.Error()))
		return
	}
	abort(c, newAPIError(http.StatusInternalServerError, "server error"))
}
