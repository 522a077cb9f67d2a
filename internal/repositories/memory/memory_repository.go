// Package memory is the simulated backend: seeded in-process collections
// with configurable artificial latency, standing in for a real store during
// demos and tests.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/campus-iot/attendance-service/internal/models"
	"github.com/campus-iot/attendance-service/internal/repositories"
)

// MemoryRepository implements repositories.Repository over in-process
// slices. Every operation waits the configured latency first, mirroring the
// round-trip the other adapters pay.
type MemoryRepository struct {
	mu      sync.RWMutex
	latency time.Duration

	records        []*models.AttendanceRecord
	justifications []*models.Justification
	users          []*models.User
	classrooms     []*models.Classroom
	session        *models.Session
}

func NewMemoryRepository(latency time.Duration) *MemoryRepository {
	return &MemoryRepository{latency: latency}
}

func (r *MemoryRepository) Attendance() repositories.AttendanceRepository {
	return &attendanceMemory{repo: r}
}

func (r *MemoryRepository) Justification() repositories.JustificationRepository {
	return &justificationMemory{repo: r}
}

func (r *MemoryRepository) User() repositories.UserRepository {
	return &userMemory{repo: r}
}

func (r *MemoryRepository) Classroom() repositories.ClassroomRepository {
	return &classroomMemory{repo: r}
}

func (r *MemoryRepository) Session() repositories.SessionRepository {
	return &sessionMemory{repo: r}
}

func (r *MemoryRepository) Dashboard() repositories.DashboardRepository {
	return &dashboardMemory{repo: r}
}

// WithTransaction runs fn directly; the in-process store mutates under one
// lock per operation, so there is no transaction to compose.
func (r *MemoryRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(r)
}

func (r *MemoryRepository) Ping(ctx context.Context) error {
	return nil
}

func (r *MemoryRepository) Close() error {
	return nil
}

// delay simulates a storage round trip, honoring context cancellation.
func (r *MemoryRepository) delay(ctx context.Context) error {
	if r.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(r.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
