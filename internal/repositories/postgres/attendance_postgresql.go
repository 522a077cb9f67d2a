package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/campus-iot/attendance-service/internal/cache"
	"github.com/campus-iot/attendance-service/internal/models"
	"github.com/campus-iot/attendance-service/internal/repositories"
)

type AttendancePostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.Manager
}

func NewAttendancePostgreSQL(db *gorm.DB, cacheManager *cache.Manager) repositories.AttendanceRepository {
	return &AttendancePostgreSQL{db: db, cacheManager: cacheManager}
}

func (a *AttendancePostgreSQL) List(ctx context.Context, filters repositories.AttendanceFilters) ([]*models.AttendanceRecord, error) {
	query := a.db.WithContext(ctx).Model(&models.AttendanceRecord{})
	query = applyAttendanceFilters(query, filters)

	var records []*models.AttendanceRecord
	if err := query.Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	return records, nil
}

func applyAttendanceFilters(query *gorm.DB, filters repositories.AttendanceFilters) *gorm.DB {
	if filters.Role != nil {
		query = query.Where("role = ?", *filters.Role)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.Search != "" {
		pattern := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(national_id) LIKE ?", pattern, pattern)
	}
	return query
}

func (a *AttendancePostgreSQL) GetByID(ctx context.Context, id string) (*models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	if err := a.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get attendance record: %w", err)
	}
	return &record, nil
}

func (a *AttendancePostgreSQL) Create(ctx context.Context, record *models.AttendanceRecord) error {
	if err := a.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create attendance record: %w", err)
	}
	cache.SafeInvalidate(ctx, a.cacheManager.Summary, "*")
	return nil
}

// Update applies a shallow merge: patch columns overwrite, everything else
// is retained. GORM map updates give exactly that semantics.
func (a *AttendancePostgreSQL) Update(ctx context.Context, id string, patch map[string]any) (*models.AttendanceRecord, error) {
	if _, err := a.GetByID(ctx, id); err != nil {
		return nil, err
	}

	delete(patch, "id") // ids are immutable

	if len(patch) > 0 {
		if err := a.db.WithContext(ctx).
			Model(&models.AttendanceRecord{}).
			Where("id = ?", id).
			Updates(patch).Error; err != nil {
			return nil, fmt.Errorf("failed to update attendance record: %w", err)
		}
	}
	cache.SafeInvalidate(ctx, a.cacheManager.Summary, "*")

	return a.GetByID(ctx, id)
}

func (a *AttendancePostgreSQL) DeleteAll(ctx context.Context) error {
	if err := a.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&models.AttendanceRecord{}).Error; err != nil {
		return fmt.Errorf("failed to clear attendance records: %w", err)
	}
	cache.SafeInvalidate(ctx, a.cacheManager.Summary, "*")
	return nil
}

func (a *AttendancePostgreSQL) HasEntryOn(ctx context.Context, nationalID, date string) (bool, error) {
	var count int64
	if err := a.db.WithContext(ctx).
		Model(&models.AttendanceRecord{}).
		Where("national_id = ? AND date = ? AND kind = ?", nationalID, date, models.KindEntry).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count entries: %w", err)
	}
	return count > 0, nil
}
