package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) initPayoutRoutes(api *gin.RouterGroup) {
	payout := api.Group("/payout", h.funeralHomeIdentityMiddleware)

	payout.POST("/connect", h.payoutConnect)
	payout.GET("/status", h.payoutStatus)
}

func (h *Handler) payoutConnect(c *gin.Context) {
	homeID, err := h.getFuneralHomeUUID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	url, err := h.services.Payouts.Connect(c.Request.Context(), homeID)
	if err != nil {
		errorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (h *Handler) payoutStatus(c *gin.Context) {
	homeID, err := h.getFuneralHomeUUID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	status, err := h.services.Payouts.Status(c.Request.Context(), homeID)
	if err != nil {
		errorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}
