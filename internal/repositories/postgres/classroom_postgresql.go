package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/campus-iot/attendance-service/internal/cache"
	"github.com/campus-iot/attendance-service/internal/models"
	"github.com/campus-iot/attendance-service/internal/repositories"
)

type ClassroomPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.Manager
}

func NewClassroomPostgreSQL(db *gorm.DB, cacheManager *cache.Manager) repositories.ClassroomRepository {
	return &ClassroomPostgreSQL{db: db, cacheManager: cacheManager}
}

func (c *ClassroomPostgreSQL) List(ctx context.Context, filters repositories.ClassroomFilters) ([]*models.Classroom, error) {
	query := c.db.WithContext(ctx).Model(&models.Classroom{})
	if filters.Search != "" {
		pattern := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where("LOWER(code) LIKE ? OR LOWER(device_id) LIKE ?", pattern, pattern)
	}

	var rooms []*models.Classroom
	if err := query.Order("code ASC").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list classrooms: %w", err)
	}
	return rooms, nil
}

func (c *ClassroomPostgreSQL) GetByID(ctx context.Context, id string) (*models.Classroom, error) {
	var room models.Classroom
	if err := c.db.WithContext(ctx).First(&room, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get classroom: %w", err)
	}
	return &room, nil
}

func (c *ClassroomPostgreSQL) GetByDeviceID(ctx context.Context, deviceID string) (*models.Classroom, error) {
	var room models.Classroom
	err := c.cacheManager.Classroom.CacheOrExecute(ctx, "device:"+deviceID, &room, cache.ClassroomCacheTTL, func() (interface{}, error) {
		var dbRoom models.Classroom
		if err := c.db.WithContext(ctx).First(&dbRoom, "device_id = ?", deviceID).Error; err != nil {
			return nil, err
		}
		return &dbRoom, nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get classroom by device: %w", err)
	}
	return &room, nil
}

func (c *ClassroomPostgreSQL) Create(ctx context.Context, room *models.Classroom) error {
	if err := c.db.WithContext(ctx).Create(room).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repositories.ErrDuplicate
		}
		return fmt.Errorf("failed to create classroom: %w", err)
	}
	return nil
}

func (c *ClassroomPostgreSQL) Update(ctx context.Context, id string, room *models.Classroom) (*models.Classroom, error) {
	existing, err := c.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	room.ID = existing.ID
	room.CreatedAt = existing.CreatedAt
	if err := c.db.WithContext(ctx).Save(room).Error; err != nil {
		return nil, fmt.Errorf("failed to update classroom: %w", err)
	}
	_ = c.cacheManager.Classroom.Delete(ctx, "device:"+existing.DeviceID, "device:"+room.DeviceID)
	return room, nil
}

func (c *ClassroomPostgreSQL) Delete(ctx context.Context, id string) error {
	existing, err := c.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil
		}
		return err
	}
	if err := c.db.WithContext(ctx).Delete(&models.Classroom{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete classroom: %w", err)
	}
	_ = c.cacheManager.Classroom.Delete(ctx, "device:"+existing.DeviceID)
	return nil
}

func (c *ClassroomPostgreSQL) MarkSeen(ctx context.Context, deviceID string) error {
	now := time.Now()
	if err := c.db.WithContext(ctx).
		Model(&models.Classroom{}).
		Where("device_id = ?", deviceID).
		Updates(map[string]any{
			"status":       models.ClassroomActive,
			"last_seen_at": now,
		}).Error; err != nil {
		return fmt.Errorf("failed to mark classroom seen: %w", err)
	}
	_ = c.cacheManager.Classroom.Delete(ctx, "device:"+deviceID)
	return nil
}
