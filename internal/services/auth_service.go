package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/campus-iot/attendance-service/internal/identity"
	"github.com/campus-iot/attendance-service/internal/models"
	"github.com/campus-iot/attendance-service/internal/repositories"
	"github.com/campus-iot/attendance-service/internal/validator"
)

type LoginRequest = validator.LoginRequest

type AuthService interface {
	// Login verifies credentials and replaces the active session.
	Login(ctx context.Context, req *LoginRequest) (*models.Session, error)
	// Logout clears the session slot; already-logged-out is not an error.
	Logout(ctx context.Context) error
	// CurrentSession returns the active session, or nil when logged out.
	CurrentSession(ctx context.Context) (*models.Session, error)
}

type authService struct {
	repo      repositories.Repository
	provider  identity.Provider
	issuer    *identity.TokenIssuer
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAuthService(repo repositories.Repository, provider identity.Provider, issuer *identity.TokenIssuer, logger *slog.Logger, v *validator.Validator) AuthService {
	return &authService{
		repo:      repo,
		provider:  provider,
		issuer:    issuer,
		logger:    logger,
		validator: v,
	}
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*models.Session, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	id, err := s.provider.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to verify credentials: %w", err)
	}

	issuedAt := time.Now()
	token, err := s.issuer.Issue(id, issuedAt)
	if err != nil {
		return nil, err
	}

	session := &models.Session{
		Token:    token,
		Username: id.Username,
		Role:     id.Role,
		IssuedAt: issuedAt,
	}
	if err := s.repo.Session().Set(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	s.logger.Info("user logged in", "username", id.Username, "role", id.Role)
	return session, nil
}

func (s *authService) Logout(ctx context.Context) error {
	if err := s.repo.Session().Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (s *authService) CurrentSession(ctx context.Context) (*models.Session, error) {
	session, err := s.repo.Session().Get(ctx)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return session, nil
}
