package repositories

import "context"

// Repository aggregates every entity repository behind one contract so the
// postgres, memory, and remote adapters are interchangeable.
type Repository interface {
	Attendance() AttendanceRepository
	Justification() JustificationRepository
	User() UserRepository
	Classroom() ClassroomRepository
	Session() SessionRepository
	Dashboard() DashboardRepository

	// WithTransaction runs fn against a transactional view of the store.
	// Adapters without transaction support run fn directly; callers must
	// tolerate partial completion there.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	Ping(ctx context.Context) error
	Close() error
}

// Manager owns adapter lifecycle: connect/seed on Initialize, health checks,
// graceful shutdown.
type Manager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
