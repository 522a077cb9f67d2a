package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campus-iot/attendance-service/internal/services"
	"github.com/campus-iot/attendance-service/internal/utils"
)

type AttendanceHandler struct {
	BaseHandler
	attendanceService services.AttendanceService
	exportService     services.ExportService
}

func NewAttendanceHandler(attendanceService services.AttendanceService, exportService services.ExportService, logger utils.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		BaseHandler:       NewBaseHandler(logger),
		attendanceService: attendanceService,
		exportService:     exportService,
	}
}

// ListAttendance lists attendance records with optional role, status and
// search filters.
func (h *AttendanceHandler) ListAttendance(c *gin.Context) {
	req := services.ListAttendanceRequest{
		Role:   c.Query("role"),
		Status: c.Query("status"),
		Search: c.Query("search"),
	}

	records, err := h.attendanceService.List(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

func (h *AttendanceHandler) GetAttendance(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	record, err := h.attendanceService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *AttendanceHandler) CreateAttendance(c *gin.Context) {
	var req services.CreateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	record, err := h.attendanceService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

// UpdateAttendance applies a partial update; unknown fields are ignored.
func (h *AttendanceHandler) UpdateAttendance(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	h.LogRequest(c, "Updating attendance record", "record_id", id)

	record, err := h.attendanceService.Update(c.Request.Context(), id, patch)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *AttendanceHandler) ClearAttendance(c *gin.Context) {
	h.LogRequest(c, "Clearing attendance records")

	if err := h.attendanceService.DeleteAll(c.Request.Context()); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Attendance records cleared"})
}

// ScanQR registers a check-in from a scanned QR payload. Failures that the
// person at the reader can act on come back as 4xx with a readable message.
func (h *AttendanceHandler) ScanQR(c *gin.Context) {
	var req services.QRScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	record, err := h.attendanceService.CheckInByQR(c.Request.Context(), req.Payload)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

func (h *AttendanceHandler) ExportCSV(c *gin.Context) {
	projection := c.DefaultQuery("projection", services.ProjectionAll)

	data, err := h.exportService.ExportCSV(c.Request.Context(), projection)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("attendance_%s_%s.csv", projection, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

func (h *AttendanceHandler) ExportXLSX(c *gin.Context) {
	projection := c.DefaultQuery("projection", services.ProjectionAll)

	data, err := h.exportService.ExportXLSX(c.Request.Context(), projection)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("attendance_%s_%s.xlsx", projection, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
