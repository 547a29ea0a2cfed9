package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/rei-kenpai/backend/internal/config"
	"github.com/rei-kenpai/backend/internal/service"
	"github.com/rei-kenpai/backend/pkg/auth"
)

type Handler struct {
	services     *service.Services
	tokenManager auth.TokenManager
	config       *config.Config
}

func NewHandler(
	services *service.Services,
	tokenManager auth.TokenManager,
	config *config.Config,
) *Handler {
	return &Handler{
		services:     services,
		tokenManager: tokenManager,
		config:       config,
	}
}

func (h *Handler) Init(api *gin.RouterGroup) {
	v1 := api.Group("v1")

	h.initAuthRoutes(v1)
	h.initKenpaiRoutes(v1)
	h.initPayoutRoutes(v1)
	h.initProjectRoutes(v1)
}
