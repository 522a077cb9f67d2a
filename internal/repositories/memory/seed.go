package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/campus-iot/attendance-service/internal/models"
	"github.com/campus-iot/attendance-service/internal/repositories"
)

// Seed loads the fixed sample data set into empty collections. It is an
// explicit startup step, never triggered by reads, and is a no-op when the
// store already holds data.
func (r *MemoryRepository) Seed() {
	r.mu.Lock()
	defer r.mu.Unlock()

	today := time.Now().Format(models.DateLayout)

	if len(r.records) == 0 {
		r.records = []*models.AttendanceRecord{
			{
				ID: uuid.NewString(), Name: "Jeremy Valdés", NationalID: models.GenerateNationalID(),
				Role: models.RoleStudent, Group: "DSVIII", Classroom: "3-105",
				Kind: models.KindEntry, Date: today, Time: "07:55", Status: models.StatusOnTime,
				CreatedAt: time.Now(),
			},
			{
				ID: uuid.NewString(), Name: "Juan Pérez", NationalID: models.GenerateNationalID(),
				Role: models.RoleStudent, Group: "DSVIII", Classroom: "3-105",
				Kind: models.KindEntry, Date: today, Time: "08:10", Status: models.StatusLate,
				CreatedAt: time.Now(),
			},
			{
				ID: uuid.NewString(), Name: "Prof. Kexy Rodríguez", NationalID: models.GenerateNationalID(),
				Role: models.RoleTeacher, Classroom: "3-105",
				Kind: models.KindEntry, Date: today, Time: "07:00", Status: models.StatusOnTime,
				CreatedAt: time.Now(),
			},
		}
	}

	if len(r.users) == 0 {
		r.users = []*models.User{
			{
				ID: uuid.NewString(), Name: "Jeremy Valdés", NationalID: "8-1234-5678",
				Role: models.RoleStudent, Group: "1GS123", Email: "jeremy@utp.example",
				Active: true, CreatedAt: time.Now(),
			},
			{
				ID: uuid.NewString(), Name: "Prof. Ejemplo", NationalID: "4-9876-3456",
				Role: models.RoleTeacher, Email: "ejemplo@utp.example",
				Active: true, CreatedAt: time.Now(),
			},
		}
	}

	if len(r.classrooms) == 0 {
		r.classrooms = []*models.Classroom{
			{
				ID: uuid.NewString(), Code: "3-105", DeviceID: "ESP-105-A",
				Status: models.ClassroomActive, CreatedAt: time.Now(),
			},
			{
				ID: uuid.NewString(), Code: "3-201", DeviceID: "ESP-201-B",
				Status: models.ClassroomDisconnected, CreatedAt: time.Now(),
			},
		}
	}
}

// Manager adapts the memory store to the repositories.Manager lifecycle.
type Manager struct {
	latency time.Duration
	repo    *MemoryRepository
}

func NewManager(latency time.Duration) *Manager {
	return &Manager{latency: latency}
}

func (m *Manager) Initialize() error {
	m.repo = NewMemoryRepository(m.latency)
	m.repo.Seed()
	return nil
}

func (m *Manager) GetRepository() repositories.Repository {
	return m.repo
}

func (m *Manager) HealthCheck(ctx context.Context) error {
	if m.repo == nil {
		return fmt.Errorf("repository not initialized")
	}
	return m.repo.Ping(ctx)
}

func (m *Manager) Shutdown(ctx context.Context) error {
	return nil
}
