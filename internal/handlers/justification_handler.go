package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-iot/attendance-service/internal/services"
	"github.com/campus-iot/attendance-service/internal/utils"
)

type JustificationHandler struct {
	BaseHandler
	justificationService services.JustificationService
}

func NewJustificationHandler(justificationService services.JustificationService, logger utils.Logger) *JustificationHandler {
	return &JustificationHandler{
		BaseHandler:          NewBaseHandler(logger),
		justificationService: justificationService,
	}
}

func (h *JustificationHandler) ListJustifications(c *gin.Context) {
	justifications, err := h.justificationService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, justifications)
}

func (h *JustificationHandler) GetJustification(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	just, err := h.justificationService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, just)
}

func (h *JustificationHandler) CreateJustification(c *gin.Context) {
	var req services.CreateJustificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	just, err := h.justificationService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, just)
}

func (h *JustificationHandler) DeleteJustification(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	h.LogRequest(c, "Deleting justification", "justification_id", id)

	if err := h.justificationService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
