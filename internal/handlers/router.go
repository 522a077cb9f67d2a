package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-iot/attendance-service/internal/services"
	"github.com/campus-iot/attendance-service/internal/utils"
)

type HandlerManager struct {
	serviceManager       services.ServiceManager
	attendanceHandler    *AttendanceHandler
	justificationHandler *JustificationHandler
	userHandler          *UserHandler
	classroomHandler     *ClassroomHandler
	authHandler          *AuthHandler
	dashboardHandler     *DashboardHandler
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		serviceManager:       serviceManager,
		attendanceHandler:    NewAttendanceHandler(serviceManager.Attendance(), serviceManager.Export(), logger),
		justificationHandler: NewJustificationHandler(serviceManager.Justification(), logger),
		userHandler:          NewUserHandler(serviceManager.User(), logger),
		classroomHandler:     NewClassroomHandler(serviceManager.Classroom(), logger),
		authHandler:          NewAuthHandler(serviceManager.Auth(), logger),
		dashboardHandler:     NewDashboardHandler(serviceManager.Dashboard(), logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	{
		attendance := v1.Group("/attendance")
		{
			attendance.GET("", hm.attendanceHandler.ListAttendance)
			attendance.POST("", hm.attendanceHandler.CreateAttendance)
			attendance.GET("/:id", hm.attendanceHandler.GetAttendance)
			attendance.PATCH("/:id", hm.attendanceHandler.UpdateAttendance)
			attendance.DELETE("", hm.attendanceHandler.ClearAttendance)

			attendance.POST("/qr", hm.attendanceHandler.ScanQR)
			attendance.GET("/export/csv", hm.attendanceHandler.ExportCSV)
			attendance.GET("/export/xlsx", hm.attendanceHandler.ExportXLSX)
		}

		justifications := v1.Group("/justifications")
		{
			justifications.GET("", hm.justificationHandler.ListJustifications)
			justifications.POST("", hm.justificationHandler.CreateJustification)
			justifications.GET("/:id", hm.justificationHandler.GetJustification)
			justifications.DELETE("/:id", hm.justificationHandler.DeleteJustification)
		}

		users := v1.Group("/users")
		{
			users.GET("", hm.userHandler.ListUsers)
			users.POST("", hm.userHandler.CreateUser)
			users.GET("/:id", hm.userHandler.GetUser)
			users.PUT("/:id", hm.userHandler.UpdateUser)
			users.DELETE("/:id", hm.userHandler.DeleteUser)
		}

		classrooms := v1.Group("/classrooms")
		{
			classrooms.GET("", hm.classroomHandler.ListClassrooms)
			classrooms.POST("", hm.classroomHandler.CreateClassroom)
			classrooms.POST("/seen", hm.classroomHandler.MarkSeen)
			classrooms.GET("/:id", hm.classroomHandler.GetClassroom)
			classrooms.PUT("/:id", hm.classroomHandler.UpdateClassroom)
			classrooms.DELETE("/:id", hm.classroomHandler.DeleteClassroom)
			classrooms.GET("/:id/qr", hm.classroomHandler.ProvisioningQR)
		}

		auth := v1.Group("/auth")
		{
			auth.POST("/login", hm.authHandler.Login)
			auth.POST("/logout", hm.authHandler.Logout)
			auth.GET("/session", hm.authHandler.Session)
		}

		dashboard := v1.Group("/dashboard")
		{
			dashboard.GET("/summary", hm.dashboardHandler.GetSummary)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "attendance-service",
		})
	})
}
