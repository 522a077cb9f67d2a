package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/campus-iot/attendance-service/internal/models"
	"github.com/campus-iot/attendance-service/internal/repositories"
)

type DashboardService interface {
	// Summary aggregates records for the given date ("2006-01-02").
	// An empty date means today.
	Summary(ctx context.Context, date string) (*models.DashboardSummary, error)
}

type dashboardService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewDashboardService(repo repositories.Repository, logger *slog.Logger) DashboardService {
	return &dashboardService{repo: repo, logger: logger}
}

func (s *dashboardService) Summary(ctx context.Context, date string) (*models.DashboardSummary, error) {
	if date == "" {
		date = time.Now().Format(models.DateLayout)
	} else if _, err := time.Parse(models.DateLayout, date); err != nil {
		return nil, fmt.Errorf("invalid summary date %q: %w", date, err)
	}

	summary, err := s.repo.Dashboard().Summary(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard summary: %w", err)
	}
	return summary, nil
}
