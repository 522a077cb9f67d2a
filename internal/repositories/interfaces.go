package repositories

import (
	"context"

	"github.com/campus-iot/attendance-service/internal/models"
)

// ===== FILTER STRUCTS =====

// AttendanceFilters narrows attendance listings. All present filters are
// conjunctive; a nil/empty field means "no constraint". Search matches the
// name or national ID case-insensitively as a substring.
type AttendanceFilters struct {
	Role   *models.UserRole         `json:"role"`
	Status *models.AttendanceStatus `json:"status"`
	Search string                   `json:"search"`
}

// UserFilters narrows user listings by name or national ID.
type UserFilters struct {
	Search string `json:"search"`
}

// ClassroomFilters narrows classroom listings by room code or device ID.
type ClassroomFilters struct {
	Search string `json:"search"`
}

// ===== ENTITY REPOSITORIES =====

type AttendanceRepository interface {
	List(ctx context.Context, filters AttendanceFilters) ([]*models.AttendanceRecord, error)
	GetByID(ctx context.Context, id string) (*models.AttendanceRecord, error)
	Create(ctx context.Context, record *models.AttendanceRecord) error
	// Update merges patch fields over the stored record; absent fields are
	// retained. Fails with a not-found error when id is unknown.
	Update(ctx context.Context, id string, patch map[string]any) (*models.AttendanceRecord, error)
	// DeleteAll clears the whole collection.
	DeleteAll(ctx context.Context) error

	// HasEntryOn reports whether the user already has an entry-kind record
	// for the given calendar date.
	HasEntryOn(ctx context.Context, nationalID, date string) (bool, error)
}

type JustificationRepository interface {
	List(ctx context.Context) ([]*models.Justification, error)
	GetByID(ctx context.Context, id string) (*models.Justification, error)
	Create(ctx context.Context, just *models.Justification) error
	// Delete is idempotent: deleting an unknown id succeeds.
	Delete(ctx context.Context, id string) error
}

type UserRepository interface {
	List(ctx context.Context, filters UserFilters) ([]*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByNationalID(ctx context.Context, nationalID string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, id string, user *models.User) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

type ClassroomRepository interface {
	List(ctx context.Context, filters ClassroomFilters) ([]*models.Classroom, error)
	GetByID(ctx context.Context, id string) (*models.Classroom, error)
	GetByDeviceID(ctx context.Context, deviceID string) (*models.Classroom, error)
	Create(ctx context.Context, room *models.Classroom) error
	Update(ctx context.Context, id string, room *models.Classroom) (*models.Classroom, error)
	Delete(ctx context.Context, id string) error
	// MarkSeen records device activity and flips the room to active.
	MarkSeen(ctx context.Context, deviceID string) error
}

// SessionRepository holds the single process-wide session slot.
type SessionRepository interface {
	Get(ctx context.Context) (*models.Session, error)
	Set(ctx context.Context, session *models.Session) error
	// Clear is idempotent.
	Clear(ctx context.Context) error
}

type DashboardRepository interface {
	// Summary aggregates records whose date equals the given calendar date.
	Summary(ctx context.Context, date string) (*models.DashboardSummary, error)
}
