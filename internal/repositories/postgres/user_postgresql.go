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

type UserPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.Manager
}

func NewUserPostgreSQL(db *gorm.DB, cacheManager *cache.Manager) repositories.UserRepository {
	return &UserPostgreSQL{db: db, cacheManager: cacheManager}
}

func (u *UserPostgreSQL) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, error) {
	query := u.db.WithContext(ctx).Model(&models.User{})
	if filters.Search != "" {
		pattern := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(national_id) LIKE ?", pattern, pattern)
	}

	var users []*models.User
	if err := query.Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (u *UserPostgreSQL) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := u.cacheManager.User.CacheOrExecute(ctx, "id:"+id, &user, cache.UserCacheTTL, func() (interface{}, error) {
		var dbUser models.User
		if err := u.db.WithContext(ctx).First(&dbUser, "id = ?", id).Error; err != nil {
			return nil, err
		}
		return &dbUser, nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (u *UserPostgreSQL) GetByNationalID(ctx context.Context, nationalID string) (*models.User, error) {
	var user models.User
	err := u.cacheManager.User.CacheOrExecute(ctx, "nid:"+nationalID, &user, cache.UserCacheTTL, func() (interface{}, error) {
		var dbUser models.User
		if err := u.db.WithContext(ctx).First(&dbUser, "national_id = ?", nationalID).Error; err != nil {
			return nil, err
		}
		return &dbUser, nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by national id: %w", err)
	}
	return &user, nil
}

func (u *UserPostgreSQL) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (u *UserPostgreSQL) Create(ctx context.Context, user *models.User) error {
	if err := u.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repositories.ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Update replaces every column of the stored user except the immutable id.
func (u *UserPostgreSQL) Update(ctx context.Context, id string, user *models.User) (*models.User, error) {
	existing, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.ID = existing.ID
	user.CreatedAt = existing.CreatedAt
	if err := u.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	u.invalidate(ctx, existing)
	return user, nil
}

func (u *UserPostgreSQL) Delete(ctx context.Context, id string) error {
	existing, err := u.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil // idempotent
		}
		return err
	}
	if err := u.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	u.invalidate(ctx, existing)
	return nil
}

func (u *UserPostgreSQL) invalidate(ctx context.Context, user *models.User) {
	_ = u.cacheManager.User.Delete(ctx, "id:"+user.ID, "nid:"+user.NationalID)
}
