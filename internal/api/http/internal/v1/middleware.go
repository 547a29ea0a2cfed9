package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/rei-kenpai/backend/pkg/logger"

	"go.uber.org/zap"
)

const (
	authorizationHeader = "Authorization"
	funeralHomeCtx      = "funeralHomeId"
)

func (h *Handler) funeralHomeIdentityMiddleware(c *gin.Context) {
	id, err := h.parseAuthHeader(c)
	if err != nil {
		if !errors.Is(err, jwt.ErrTokenExpired) {
			logger.Error("parse auth header failed", zap.Error(err))
		}
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	c.Set(funeralHomeCtx, id)
}

func (h *Handler) parseAuthHeader(c *gin.Context) (string, error) {
	header := c.GetHeader(authorizationHeader)
	if header == "" {
		return "", errors.New("empty auth header")
	}

	headerParts := strings.Split(header, " ")
	if len(headerParts) != 2 || headerParts[0] != "Bearer" {
		return "", errors.New("invalid auth header")
	}

	if len(headerParts[1]) == 0 {
		return "", errors.New("token is empty")
	}

	return h.tokenManager.Parse(headerParts[1])
}

func (h *Handler) getFuneralHomeUUID(c *gin.Context) (uuid.UUID, error) {
	id, ok := c.Get(funeralHomeCtx)
	if !ok {
		return uuid.Nil, errors.New("funeral home id not found")
	}

	//nolint:forcetypeassert
	parsed, err := uuid.Parse(id.(string))
	if err != nil {
		return uuid.Nil, errors.New("funeral home id is not a uuid")
	}

	return parsed, nil
}
