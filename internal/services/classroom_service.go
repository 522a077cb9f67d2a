package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/campus-iot/attendance-service/internal/models"
	"github.com/campus-iot/attendance-service/internal/repositories"
	"github.com/campus-iot/attendance-service/internal/validator"
)

type CreateClassroomRequest = validator.CreateClassroomRequest
type UpdateClassroomRequest = validator.UpdateClassroomRequest

type ClassroomService interface {
	List(ctx context.Context, search string) ([]*models.Classroom, error)
	Get(ctx context.Context, id string) (*models.Classroom, error)
	Create(ctx context.Context, req *CreateClassroomRequest) (*models.Classroom, error)
	Update(ctx context.Context, id string, req *UpdateClassroomRequest) (*models.Classroom, error)
	Delete(ctx context.Context, id string) error
	// MarkSeen records a heartbeat from the room's device.
	MarkSeen(ctx context.Context, deviceID string) error
	// ProvisioningQR renders a PNG QR code a device displays so users can
	// pair their app with the room.
	ProvisioningQR(ctx context.Context, id string, size int) ([]byte, error)
}

type classroomService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewClassroomService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) ClassroomService {
	return &classroomService{repo: repo, logger: logger, validator: v}
}

func (s *classroomService) List(ctx context.Context, search string) ([]*models.Classroom, error) {
	return s.repo.Classroom().List(ctx, repositories.ClassroomFilters{Search: search})
}

func (s *classroomService) Get(ctx context.Context, id string) (*models.Classroom, error) {
	room, err := s.repo.Classroom().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrClassroomNotFound
		}
		return nil, fmt.Errorf("failed to get classroom: %w", err)
	}
	return room, nil
}

func (s *classroomService) Create(ctx context.Context, req *CreateClassroomRequest) (*models.Classroom, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}
	if other, err := s.repo.Classroom().GetByDeviceID(ctx, req.DeviceID); err == nil && other != nil {
		return nil, ErrAlreadyExists
	} else if err != nil && !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to check device id: %w", err)
	}

	status := models.ClassroomStatus(req.Status)
	if status == "" {
		status = models.ClassroomActive
	}
	now := time.Now()
	room := &models.Classroom{
		ID:        uuid.NewString(),
		Code:      req.Code,
		DeviceID:  req.DeviceID,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Classroom().Create(ctx, room); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to create classroom: %w", err)
	}
	return room, nil
}

func (s *classroomService) Update(ctx context.Context, id string, req *UpdateClassroomRequest) (*models.Classroom, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	existing, err := s.repo.Classroom().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrClassroomNotFound
		}
		return nil, fmt.Errorf("failed to load classroom: %w", err)
	}
	if other, err := s.repo.Classroom().GetByDeviceID(ctx, req.DeviceID); err == nil && other.ID != id {
		return nil, ErrAlreadyExists
	} else if err != nil && !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to check device id: %w", err)
	}

	existing.Code = req.Code
	existing.DeviceID = req.DeviceID
	if req.Status != "" {
		existing.Status = models.ClassroomStatus(req.Status)
	}
	existing.UpdatedAt = time.Now()

	updated, err := s.repo.Classroom().Update(ctx, id, existing)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrClassroomNotFound
		}
		return nil, fmt.Errorf("failed to update classroom: %w", err)
	}
	return updated, nil
}

func (s *classroomService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Classroom().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete classroom: %w", err)
	}
	return nil
}

func (s *classroomService) MarkSeen(ctx context.Context, deviceID string) error {
	if err := s.repo.Classroom().MarkSeen(ctx, deviceID); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrClassroomNotFound
		}
		return fmt.Errorf("failed to mark classroom seen: %w", err)
	}
	return nil
}

func (s *classroomService) ProvisioningQR(ctx context.Context, id string, size int) ([]byte, error) {
	room, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		size = 256
	}
	png, err := qrcode.Encode(room.DeviceID, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to render classroom qr: %w", err)
	}
	return png, nil
}
