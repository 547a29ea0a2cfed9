package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rei-kenpai/backend/pkg/logger"

	"go.uber.org/zap"
)

type errorResponseBody struct {
	Error string `json:"error"`
}

func errorResponse(c *gin.Context, err error) {
	status, message := statusAndMessage(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", zap.Error(err))
	}
	c.AbortWithStatusJSON(status, errorResponseBody{Error: message})
}

func errorResponseWith(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, errorResponseBody{Error: message})
}

func badRequestResponse(c *gin.Context) {
	errorResponseWith(c, http.StatusBadRequest, MsgMissingFields)
}
