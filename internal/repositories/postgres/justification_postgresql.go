package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/campus-iot/attendance-service/internal/models"
	"github.com/campus-iot/attendance-service/internal/repositories"
)

type JustificationPostgreSQL struct {
	db *gorm.DB
}

func NewJustificationPostgreSQL(db *gorm.DB) repositories.JustificationRepository {
	return &JustificationPostgreSQL{db: db}
}

func (j *JustificationPostgreSQL) List(ctx context.Context) ([]*models.Justification, error) {
	var justs []*models.Justification
	if err := j.db.WithContext(ctx).Order("created_at DESC").Find(&justs).Error; err != nil {
		return nil, fmt.Errorf("failed to list justifications: %w", err)
	}
	return justs, nil
}

func (j *JustificationPostgreSQL) GetByID(ctx context.Context, id string) (*models.Justification, error) {
	var just models.Justification
	if err := j.db.WithContext(ctx).First(&just, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get justification: %w", err)
	}
	return &just, nil
}

func (j *JustificationPostgreSQL) Create(ctx context.Context, just *models.Justification) error {
	if err := j.db.WithContext(ctx).Create(just).Error; err != nil {
		return fmt.Errorf("failed to create justification: %w", err)
	}
	return nil
}

// Delete is idempotent; removing an unknown id is not an error.
func (j *JustificationPostgreSQL) Delete(ctx context.Context, id string) error {
	if err := j.db.WithContext(ctx).Delete(&models.Justification{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete justification: %w", err)
	}
	return nil
}
