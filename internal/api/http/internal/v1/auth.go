package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rei-kenpai/backend/internal/service"
)

func (h *Handler) initAuthRoutes(api *gin.RouterGroup) {
	auth := api.Group("/auth")

	auth.POST("/register/send-code", h.registerSendCode)
	auth.POST("/register/verify", h.registerVerify)
	auth.POST("/login", h.login)

	auth.POST("/password-reset/send-code", h.passwordResetSendCode)
	auth.POST("/password-reset/verify-code", h.passwordResetVerifyCode)
	auth.POST("/password-reset/update", h.passwordResetUpdate)

	auth.POST("/email-change/send-code", h.funeralHomeIdentityMiddleware, h.emailChangeSendCode)
	auth.POST("/email-change/verify", h.funeralHomeIdentityMiddleware, h.emailChangeVerify)
}

type registerSendCodeRequest struct {
	Email           string `json:"email" binding:"required,email"`
	FuneralHomeName string `json:"funeral_home_name" binding:"required,homename"`
}

func (h *Handler) registerSendCode(c *gin.Context) {
	var req registerSendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c)
		return
	}

	if err := h.services.Verifications.IssueRegisterCode(c.Request.Context(), req.Email, req.FuneralHomeName); err != nil {
		errorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type registerVerifyRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Code     string `json:"code" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) registerVerify(c *gin.Context) {
	var req registerVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c)
		return
	}

	home, err := h.services.Verifications.RedeemRegisterCode(c.Request.Context(), req.Email, req.Code, req.Password)
	if err != nil {
		errorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "funeral_home": home})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Success         bool      `json:"success"`
	FuneralHomeID   uuid.UUID `json:"funeral_home_id"`
	FuneralHomeName string    `json:"funeral_home_name"`
	AccessToken     string    `json:"access_token"`
	RefreshToken    uuid.UUID `json:"refresh_token"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c)
		return
	}

	result, err := h.services.Auth.Login(c.Request.Context(), req.Email, req.Password, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		if errors.Is(err, service.ErrHomeNotFound) {
			errorResponseWith(c, http.StatusUnauthorized, MsgBadCredentials)
			return
		}
		errorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Success:         true,
		FuneralHomeID:   result.FuneralHome.ID,
		FuneralHomeName: result.FuneralHome.Name,
		AccessToken:     result.Tokens.AccessToken,
		RefreshToken:    result.Tokens.RefreshToken,
	})
}

type passwordResetSendCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *Handler) passwordResetSendCode(c *gin.Context) {
	var req passwordResetSendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c)
		return
	}

	if err := h.services.Verifications.IssuePasswordResetCode(c.Request.Context(), req.Email); err != nil {
		errorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type passwordResetVerifyCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

func (h *Handler) passwordResetVerifyCode(c *gin.Context) {
	var req passwordResetVerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c)
		return
	}

	if err := h.services.Verifications.CheckPasswordResetCode(c.Request.Context(), req.Email, req.Code); err != nil {
		errorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type passwordResetUpdateRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

func (h *Handler) passwordResetUpdate(c *gin.Context) {
	var req passwordResetUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c)
		return
	}

	if err := h.services.Verifications.RedeemPasswordResetCode(c.Request.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		errorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type emailChangeSendCodeRequest struct {
	NewEmail string `json:"new_email" binding:"required,email"`
}

func (h *Handler) emailChangeSendCode(c *gin.Context) {
	var req emailChangeSendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c)
		return
	}

	homeID, err := h.getFuneralHomeUUID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	if err := h.services.Verifications.IssueEmailChangeCode(c.Request.Context(), homeID, req.NewEmail); err != nil {
		errorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type emailChangeVerifyRequest struct {
	NewEmail string `json:"new_email" binding:"required,email"`
	Code     string `json:"code" binding:"required"`
}

func (h *Handler) emailChangeVerify(c *gin.Context) {
	var req emailChangeVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c)
		return
	}

	homeID, err := h.getFuneralHomeUUID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	if err := h.services.Verifications.RedeemEmailChangeCode(c.Request.Context(), homeID, req.NewEmail, req.Code); err != nil {
		errorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
