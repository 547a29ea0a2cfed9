package v1

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rei-kenpai/backend/internal/service"
	"github.com/rei-kenpai/backend/pkg/logger"

	"go.uber.org/zap"
)

func (h *Handler) initKenpaiRoutes(api *gin.RouterGroup) {
	kenpai := api.Group("/kenpai")

	kenpai.POST("/checkout", h.kenpaiCheckout)
	kenpai.POST("/webhook", h.kenpaiWebhook)
}

type checkoutRequest struct {
	Amount    int64  `json:"amount" binding:"required,min=1"`
	DonorName string `json:"donor_name" binding:"required"`
	ProjectID string `json:"project_id" binding:"required"`
	Slug      string `json:"slug" binding:"required"`
	Message   string `json:"message"`
}

func (h *Handler) kenpaiCheckout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c)
		return
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		badRequestResponse(c)
		return
	}

	result, err := h.services.Kenpai.CreateCheckout(c.Request.Context(), service.CheckoutInput{
		Amount:    req.Amount,
		DonorName: req.DonorName,
		ProjectID: projectID,
		Slug:      req.Slug,
		Message:   req.Message,
	})
	if err != nil {
		errorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessionId": result.SessionID, "url": result.URL})
}

// The webhook body is the raw processor event; binding-style validation does
// not apply here.
func (h *Handler) kenpaiWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		errorResponseWith(c, http.StatusBadRequest, MsgMissingFields)
		return
	}

	if err := h.services.Kenpai.HandleWebhook(c.Request.Context(), payload); err != nil {
		logger.Error("webhook processing failed", zap.Error(err))
		errorResponseWith(c, http.StatusBadRequest, MsgUnknownError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
