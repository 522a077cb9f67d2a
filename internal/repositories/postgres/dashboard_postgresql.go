package postgres

import (
	"context"
	"fmt"
	"math"

	"gorm.io/gorm"

	"github.com/campus-iot/attendance-service/internal/cache"
	"github.com/campus-iot/attendance-service/internal/models"
	"github.com/campus-iot/attendance-service/internal/repositories"
)

type DashboardPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.Manager
}

func NewDashboardPostgreSQL(db *gorm.DB, cacheManager *cache.Manager) repositories.DashboardRepository {
	return &DashboardPostgreSQL{db: db, cacheManager: cacheManager}
}

// Summary counts the day's records and computes the on-time entry share.
// Punctuality is zero on days without entries.
func (d *DashboardPostgreSQL) Summary(ctx context.Context, date string) (*models.DashboardSummary, error) {
	var summary models.DashboardSummary
	err := d.cacheManager.Summary.CacheOrExecute(ctx, "day:"+date, &summary, cache.SummaryCacheTTL, func() (interface{}, error) {
		var result models.DashboardSummary

		total, err := d.countForDay(ctx, date, nil, nil)
		if err != nil {
			return nil, err
		}
		result.Total = int(total)

		entryKind := models.KindEntry
		entries, err := d.countForDay(ctx, date, &entryKind, nil)
		if err != nil {
			return nil, err
		}
		result.Entries = int(entries)

		exitKind := models.KindExit
		exits, err := d.countForDay(ctx, date, &exitKind, nil)
		if err != nil {
			return nil, err
		}
		result.Exits = int(exits)

		if entries > 0 {
			onTime := models.StatusOnTime
			punctual, err := d.countForDay(ctx, date, &entryKind, &onTime)
			if err != nil {
				return nil, err
			}
			result.Punctuality = int(math.Round(float64(punctual) / float64(entries) * 100))
		}

		return &result, nil
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (d *DashboardPostgreSQL) countForDay(ctx context.Context, date string, kind *models.AttendanceKind, status *models.AttendanceStatus) (int64, error) {
	query := d.db.WithContext(ctx).
		Model(&models.AttendanceRecord{}).
		Where("date = ?", date)
	if kind != nil {
		query = query.Where("kind = ?", *kind)
	}
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count records for %s: %w", date, err)
	}
	return count, nil
}
