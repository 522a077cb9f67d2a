package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campus-iot/attendance-service/internal/services"
	"github.com/campus-iot/attendance-service/internal/utils"
)

type ClassroomHandler struct {
	BaseHandler
	classroomService services.ClassroomService
}

func NewClassroomHandler(classroomService services.ClassroomService, logger utils.Logger) *ClassroomHandler {
	return &ClassroomHandler{
		BaseHandler:      NewBaseHandler(logger),
		classroomService: classroomService,
	}
}

func (h *ClassroomHandler) ListClassrooms(c *gin.Context) {
	rooms, err := h.classroomService.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, rooms)
}

func (h *ClassroomHandler) GetClassroom(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	room, err := h.classroomService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, room)
}

func (h *ClassroomHandler) CreateClassroom(c *gin.Context) {
	var req services.CreateClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	room, err := h.classroomService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, room)
}

func (h *ClassroomHandler) UpdateClassroom(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var req services.UpdateClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	h.LogRequest(c, "Updating classroom", "classroom_id", id)

	room, err := h.classroomService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, room)
}

func (h *ClassroomHandler) DeleteClassroom(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	h.LogRequest(c, "Deleting classroom", "classroom_id", id)

	if err := h.classroomService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// MarkSeen records a device heartbeat. Readers POST here on every scan.
func (h *ClassroomHandler) MarkSeen(c *gin.Context) {
	var req struct {
		DeviceID string `json:"device_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	if err := h.classroomService.MarkSeen(c.Request.Context(), req.DeviceID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Device activity recorded"})
}

// ProvisioningQR serves the pairing QR for a classroom as a PNG.
func (h *ClassroomHandler) ProvisioningQR(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	size := 256
	if sizeStr := c.Query("size"); sizeStr != "" {
		if parsed, err := strconv.Atoi(sizeStr); err == nil && parsed > 0 && parsed <= 2048 {
			size = parsed
		}
	}

	png, err := h.classroomService.ProvisioningQR(c.Request.Context(), id, size)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
