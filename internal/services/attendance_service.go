package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/campus-iot/attendance-service/internal/events"
	"github.com/campus-iot/attendance-service/internal/models"
	"github.com/campus-iot/attendance-service/internal/repositories"
	"github.com/campus-iot/attendance-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

type CreateAttendanceRequest = validator.CreateAttendanceRequest
type QRScanRequest = validator.QRScanRequest

// ListAttendanceRequest carries the optional conjunctive filters.
type ListAttendanceRequest struct {
	Role   string `json:"role"`
	Status string `json:"status"`
	Search string `json:"search"`
}

// ===== SERVICE INTERFACE =====

type AttendanceService interface {
	List(ctx context.Context, req ListAttendanceRequest) ([]*models.AttendanceRecord, error)
	Get(ctx context.Context, id string) (*models.AttendanceRecord, error)
	Create(ctx context.Context, req *CreateAttendanceRequest) (*models.AttendanceRecord, error)
	// Update shallow-merges patch over the stored record.
	Update(ctx context.Context, id string, patch map[string]any) (*models.AttendanceRecord, error)
	// DeleteAll clears the collection. Confirmation is a UI concern.
	DeleteAll(ctx context.Context) error
	// CheckInByQR registers one attendance event from a scanned payload
	// of the form "<national-id>|<device-id>".
	CheckInByQR(ctx context.Context, payload string) (*models.AttendanceRecord, error)
}

// ===== SERVICE IMPLEMENTATION =====

type attendanceService struct {
	repo        repositories.Repository
	publisher   events.EventPublisher
	logger      *slog.Logger
	validator   *validator.Validator
	entryCutoff string // "HH:MM"; entries after this are late
}

func NewAttendanceService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, v *validator.Validator, entryCutoff string) AttendanceService {
	if entryCutoff == "" {
		entryCutoff = "08:00"
	}
	return &attendanceService{
		repo:        repo,
		publisher:   publisher,
		logger:      logger,
		validator:   v,
		entryCutoff: entryCutoff,
	}
}

func (s *attendanceService) List(ctx context.Context, req ListAttendanceRequest) ([]*models.AttendanceRecord, error) {
	filters := repositories.AttendanceFilters{Search: req.Search}
	if req.Role != "" {
		role := models.UserRole(req.Role)
		filters.Role = &role
	}
	if req.Status != "" {
		status := models.AttendanceStatus(req.Status)
		filters.Status = &status
	}
	return s.repo.Attendance().List(ctx, filters)
}

func (s *attendanceService) Get(ctx context.Context, id string) (*models.AttendanceRecord, error) {
	record, err := s.repo.Attendance().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get attendance record: %w", err)
	}
	return record, nil
}

func (s *attendanceService) Create(ctx context.Context, req *CreateAttendanceRequest) (*models.AttendanceRecord, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	now := time.Now()
	record := &models.AttendanceRecord{
		ID:         uuid.NewString(),
		Name:       req.Name,
		NationalID: req.NationalID,
		Role:       models.UserRole(req.Role),
		Group:      req.Group,
		Classroom:  req.Classroom,
		Kind:       models.AttendanceKind(req.Kind),
		Date:       req.Date,
		Time:       req.Time,
		Status:     models.AttendanceStatus(req.Status),
		DeviceID:   req.DeviceID,
		CreatedAt:  now,
	}
	if record.Date == "" {
		record.Date = now.Format(models.DateLayout)
	}
	if record.Time == "" {
		record.Time = now.Format(models.TimeLayout)
	}

	if err := s.repo.Attendance().Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create attendance record: %w", err)
	}

	s.publish(ctx, events.TypeAttendanceRecorded, map[string]any{
		"record_id": record.ID,
		"kind":      record.Kind,
		"status":    record.Status,
	})
	return record, nil
}

func (s *attendanceService) Update(ctx context.Context, id string, patch map[string]any) (*models.AttendanceRecord, error) {
	record, err := s.repo.Attendance().Update(ctx, id, patch)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to update attendance record: %w", err)
	}
	return record, nil
}

func (s *attendanceService) DeleteAll(ctx context.Context) error {
	if err := s.repo.Attendance().DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear attendance records: %w", err)
	}
	s.publish(ctx, events.TypeAttendanceCleared, nil)
	return nil
}

func (s *attendanceService) CheckInByQR(ctx context.Context, payload string) (*models.AttendanceRecord, error) {
	nationalID, deviceID, ok := strings.Cut(strings.TrimSpace(payload), "|")
	if !ok || nationalID == "" || deviceID == "" {
		return nil, ErrMalformedQRPayload
	}

	user, err := s.repo.User().GetByNationalID(ctx, nationalID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to resolve scanned user: %w", err)
	}

	room, err := s.repo.Classroom().GetByDeviceID(ctx, deviceID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrClassroomNotFound
		}
		return nil, fmt.Errorf("failed to resolve scanning device: %w", err)
	}

	if err := s.repo.Classroom().MarkSeen(ctx, deviceID); err != nil {
		s.logger.Warn("failed to mark device seen", "device_id", deviceID, "error", err)
	}

	now := time.Now()
	today := now.Format(models.DateLayout)

	hasEntry, err := s.repo.Attendance().HasEntryOn(ctx, user.NationalID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing entries: %w", err)
	}

	kind := models.KindEntry
	status := s.entryStatus(now)
	if hasEntry {
		kind = models.KindExit
		status = models.StatusCompletedSchedule
	}

	record := &models.AttendanceRecord{
		ID:         uuid.NewString(),
		Name:       user.Name,
		NationalID: user.NationalID,
		Role:       user.Role,
		Group:      user.Group,
		Classroom:  room.Code,
		Kind:       kind,
		Date:       today,
		Time:       now.Format(models.TimeLayout),
		Status:     status,
		DeviceID:   deviceID,
		CreatedAt:  now,
	}
	if err := s.repo.Attendance().Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to register qr check-in: %w", err)
	}

	s.publish(ctx, events.TypeQRCheckIn, map[string]any{
		"record_id":   record.ID,
		"national_id": record.NationalID,
		"device_id":   deviceID,
		"kind":        kind,
	})
	return record, nil
}

// entryStatus classifies an entry against the configured cutoff. An
// unparseable cutoff never blocks a check-in; it falls back to on-time.
func (s *attendanceService) entryStatus(now time.Time) models.AttendanceStatus {
	cutoff, err := time.Parse(models.TimeLayout, s.entryCutoff)
	if err != nil {
		s.logger.Warn("invalid entry cutoff", "cutoff", s.entryCutoff)
		return models.StatusOnTime
	}
	arrived, err := time.Parse(models.TimeLayout, now.Format(models.TimeLayout))
	if err != nil || !arrived.After(cutoff) {
		return models.StatusOnTime
	}
	return models.StatusLate
}

func (s *attendanceService) publish(ctx context.Context, eventType string, data map[string]any) {
	if s.publisher == nil {
		return
	}
	event := events.Event{Type: eventType, Data: data}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", "type", eventType, "error", err)
	}
}
