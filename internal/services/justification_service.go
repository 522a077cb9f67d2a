package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/campus-iot/attendance-service/internal/events"
	"github.com/campus-iot/attendance-service/internal/models"
	"github.com/campus-iot/attendance-service/internal/repositories"
	"github.com/campus-iot/attendance-service/internal/validator"
)

type CreateJustificationRequest = validator.CreateJustificationRequest

type JustificationService interface {
	List(ctx context.Context) ([]*models.Justification, error)
	Get(ctx context.Context, id string) (*models.Justification, error)
	Create(ctx context.Context, req *CreateJustificationRequest) (*models.Justification, error)
	// Delete removes the justification only. Any record it marked as
	// justified keeps that status.
	Delete(ctx context.Context, id string) error
}

type justificationService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewJustificationService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) JustificationService {
	return &justificationService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

func (s *justificationService) List(ctx context.Context) ([]*models.Justification, error) {
	return s.repo.Justification().List(ctx)
}

func (s *justificationService) Get(ctx context.Context, id string) (*models.Justification, error) {
	just, err := s.repo.Justification().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrJustificationNotFound
		}
		return nil, fmt.Errorf("failed to get justification: %w", err)
	}
	return just, nil
}

func (s *justificationService) Create(ctx context.Context, req *CreateJustificationRequest) (*models.Justification, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	just := &models.Justification{
		ID:           uuid.NewString(),
		RecordID:     req.RecordID,
		UserID:       req.UserID,
		Reason:       req.Reason,
		Reference:    req.Reference,
		DocumentDate: req.DocumentDate,
		CreatedAt:    time.Now(),
	}
	if req.AttachmentName != "" || req.AttachmentURL != "" {
		attachment, err := json.Marshal(models.JustificationAttachment{
			Name: req.AttachmentName,
			URL:  req.AttachmentURL,
			Mime: req.AttachmentMime,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to encode attachment: %w", err)
		}
		just.Attachment = attachment
	}

	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.Justification().Create(ctx, just); err != nil {
			return fmt.Errorf("failed to create justification: %w", err)
		}
		return s.markRecordJustified(ctx, txRepo, just)
	})
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		event := events.Event{
			Type: events.TypeJustificationCreated,
			Data: map[string]any{"justification_id": just.ID},
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish event", "type", event.Type, "error", err)
		}
	}
	return just, nil
}

// markRecordJustified flips the linked record to justified. An unresolvable
// record id is skipped without failing the creation.
func (s *justificationService) markRecordJustified(ctx context.Context, repo repositories.Repository, just *models.Justification) error {
	if just.RecordID == nil || *just.RecordID == "" {
		return nil
	}
	patch := map[string]any{"status": string(models.StatusJustified)}
	if _, err := repo.Attendance().Update(ctx, *just.RecordID, patch); err != nil {
		if repositories.IsNotFoundError(err) {
			s.logger.Warn("justified record not found, skipping status update",
				"justification_id", just.ID, "record_id", *just.RecordID)
			return nil
		}
		return fmt.Errorf("failed to mark record justified: %w", err)
	}
	return nil
}

func (s *justificationService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Justification().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete justification: %w", err)
	}
	return nil
}
