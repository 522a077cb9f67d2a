package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/campus-iot/attendance-service/internal/events"
	"github.com/campus-iot/attendance-service/internal/identity"
	"github.com/campus-iot/attendance-service/internal/repositories"
	"github.com/campus-iot/attendance-service/internal/validator"
)

// ServiceManager wires and owns the lifecycle of every domain service.
type ServiceManager interface {
	Initialize(ctx context.Context) error

	Attendance() AttendanceService
	Justification() JustificationService
	User() UserService
	Classroom() ClassroomService
	Auth() AuthService
	Dashboard() DashboardService
	Export() ExportService

	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// ServiceManagerConfig carries the cross-service settings.
type ServiceManagerConfig struct {
	// EntryCutoff ("HH:MM") classifies check-in entries as on-time vs late.
	EntryCutoff string
}

type serviceManager struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	provider  identity.Provider
	issuer    *identity.TokenIssuer
	logger    *slog.Logger
	validator *validator.Validator
	config    ServiceManagerConfig

	attendanceService    AttendanceService
	justificationService JustificationService
	userService          UserService
	classroomService     ClassroomService
	authService          AuthService
	dashboardService     DashboardService
	exportService        ExportService

	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

func NewServiceManager(repo repositories.Repository, publisher events.EventPublisher, provider identity.Provider, issuer *identity.TokenIssuer, logger *slog.Logger, v *validator.Validator, config ServiceManagerConfig) ServiceManager {
	return &serviceManager{
		repo:      repo,
		publisher: publisher,
		provider:  provider,
		issuer:    issuer,
		logger:    logger,
		validator: v,
		config:    config,
	}
}

func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	sm.attendanceService = NewAttendanceService(sm.repo, sm.publisher, sm.logger, sm.validator, sm.config.EntryCutoff)
	sm.justificationService = NewJustificationService(sm.repo, sm.publisher, sm.logger, sm.validator)
	sm.userService = NewUserService(sm.repo, sm.logger, sm.validator)
	sm.classroomService = NewClassroomService(sm.repo, sm.logger, sm.validator)
	sm.authService = NewAuthService(sm.repo, sm.provider, sm.issuer, sm.logger, sm.validator)
	sm.dashboardService = NewDashboardService(sm.repo, sm.logger)
	sm.exportService = NewExportService(sm.repo, sm.logger)

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")
	return nil
}

func (sm *serviceManager) get(name string, ok bool) {
	if !ok {
		panic(fmt.Sprintf("%s service not initialized", name))
	}
}

func (sm *serviceManager) Attendance() AttendanceService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("attendance", sm.attendanceService != nil)
	return sm.attendanceService
}

func (sm *serviceManager) Justification() JustificationService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("justification", sm.justificationService != nil)
	return sm.justificationService
}

func (sm *serviceManager) User() UserService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("user", sm.userService != nil)
	return sm.userService
}

func (sm *serviceManager) Classroom() ClassroomService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("classroom", sm.classroomService != nil)
	return sm.classroomService
}

func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("auth", sm.authService != nil)
	return sm.authService
}

func (sm *serviceManager) Dashboard() DashboardService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("dashboard", sm.dashboardService != nil)
	return sm.dashboardService
}

func (sm *serviceManager) Export() ExportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("export", sm.exportService != nil)
	return sm.exportService
}

func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}
	if err := sm.repo.Ping(ctx); err != nil {
		return fmt.Errorf("store health check failed: %w", err)
	}
	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if sm.publisher != nil {
		if err := sm.publisher.Close(); err != nil {
			sm.logger.Error("Failed to close event publisher", "error", err)
		}
	}
	if err := sm.repo.Close(); err != nil {
		sm.logger.Error("Failed to close store", "error", err)
	}

	sm.shutdown = true
	sm.logger.Info("Service manager shut down completed")
	return nil
}
