package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-iot/attendance-service/internal/services"
	"github.com/campus-iot/attendance-service/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	session, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context()); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Logged out"})
}

// Session returns the active session, or 204 when nobody is logged in.
func (h *AuthHandler) Session(c *gin.Context) {
	session, err := h.authService.CurrentSession(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	if session == nil {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, session)
}
