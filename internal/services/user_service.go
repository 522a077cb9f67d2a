package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/campus-iot/attendance-service/internal/models"
	"github.com/campus-iot/attendance-service/internal/repositories"
	"github.com/campus-iot/attendance-service/internal/validator"
)

type CreateUserRequest = validator.CreateUserRequest
type UpdateUserRequest = validator.UpdateUserRequest

type UserService interface {
	List(ctx context.Context, search string) ([]*models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, req *CreateUserRequest) (*models.User, error)
	Update(ctx context.Context, id string, req *UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

type userService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewUserService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) UserService {
	return &userService{repo: repo, logger: logger, validator: v}
}

func (s *userService) List(ctx context.Context, search string) ([]*models.User, error) {
	return s.repo.User().List(ctx, repositories.UserFilters{Search: search})
}

func (s *userService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *userService) Create(ctx context.Context, req *CreateUserRequest) (*models.User, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}
	if err := s.checkDuplicates(ctx, "", req.NationalID, req.Email); err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		ID:         uuid.NewString(),
		Name:       req.Name,
		NationalID: req.NationalID,
		Role:       models.UserRole(req.Role),
		Group:      req.Group,
		Email:      req.Email,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.User().Create(ctx, user); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, id string, req *UpdateUserRequest) (*models.User, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	existing, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if err := s.checkDuplicates(ctx, id, req.NationalID, req.Email); err != nil {
		return nil, err
	}

	existing.Name = req.Name
	existing.NationalID = req.NationalID
	existing.Role = models.UserRole(req.Role)
	existing.Group = req.Group
	existing.Email = req.Email
	if req.Active != nil {
		existing.Active = *req.Active
	}
	existing.UpdatedAt = time.Now()

	updated, err := s.repo.User().Update(ctx, id, existing)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return updated, nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	if err := s.repo.User().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// checkDuplicates rejects a national ID or email already owned by a
// different user. selfID exempts the user being updated.
func (s *userService) checkDuplicates(ctx context.Context, selfID, nationalID, email string) error {
	if other, err := s.repo.User().GetByNationalID(ctx, nationalID); err == nil && other.ID != selfID {
		return ErrAlreadyExists
	} else if err != nil && !repositories.IsNotFoundError(err) {
		return fmt.Errorf("failed to check national id: %w", err)
	}

	if email == "" {
		return nil
	}
	if other, err := s.repo.User().GetByEmail(ctx, email); err == nil && other.ID != selfID {
		return ErrAlreadyExists
	} else if err != nil && !repositories.IsNotFoundError(err) {
		return fmt.Errorf("failed to check email: %w", err)
	}
	return nil
}
