package postgres

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/campus-iot/attendance-service/internal/cache"
	"github.com/campus-iot/attendance-service/internal/repositories"
)

// PostgreSQLRepository implements repositories.Repository on GORM with
// optional Redis read-through caching.
type PostgreSQLRepository struct {
	db           *gorm.DB
	redisClient  *redis.Client
	cacheManager *cache.Manager

	attendance    repositories.AttendanceRepository
	justification repositories.JustificationRepository
	user          repositories.UserRepository
	classroom     repositories.ClassroomRepository
	session       repositories.SessionRepository
	dashboard     repositories.DashboardRepository
}

// RepositoryConfig holds initialization dependencies for the adapter.
type RepositoryConfig struct {
	DB          *gorm.DB
	RedisClient *redis.Client
}

func NewPostgreSQLRepository(config RepositoryConfig) repositories.Repository {
	cacheManager := cache.NewManager(config.RedisClient)

	repo := &PostgreSQLRepository{
		db:           config.DB,
		redisClient:  config.RedisClient,
		cacheManager: cacheManager,
	}

	repo.attendance = NewAttendancePostgreSQL(config.DB, cacheManager)
	repo.justification = NewJustificationPostgreSQL(config.DB)
	repo.user = NewUserPostgreSQL(config.DB, cacheManager)
	repo.classroom = NewClassroomPostgreSQL(config.DB, cacheManager)
	repo.session = NewSessionStore(config.RedisClient)
	repo.dashboard = NewDashboardPostgreSQL(config.DB, cacheManager)

	return repo
}

func (r *PostgreSQLRepository) Attendance() repositories.AttendanceRepository {
	return r.attendance
}

func (r *PostgreSQLRepository) Justification() repositories.JustificationRepository {
	return r.justification
}

func (r *PostgreSQLRepository) User() repositories.UserRepository {
	return r.user
}

func (r *PostgreSQLRepository) Classroom() repositories.ClassroomRepository {
	return r.classroom
}

func (r *PostgreSQLRepository) Session() repositories.SessionRepository {
	return r.session
}

func (r *PostgreSQLRepository) Dashboard() repositories.DashboardRepository {
	return r.dashboard
}

// WithTransaction runs fn against a repository bound to one database
// transaction. The session slot is shared; it does not participate in the
// transaction.
func (r *PostgreSQLRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := NewPostgreSQLRepository(RepositoryConfig{
			DB:          tx,
			RedisClient: r.redisClient,
		})
		return fn(txRepo)
	})
}

func (r *PostgreSQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying database: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (r *PostgreSQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying database: %w", err)
	}
	return sqlDB.Close()
}

// RepositoryManager wires adapter lifecycle for main.
type RepositoryManager struct {
	config RepositoryConfig
	repo   repositories.Repository
}

func NewRepositoryManager(config RepositoryConfig) *RepositoryManager {
	return &RepositoryManager{config: config}
}

func (m *RepositoryManager) Initialize() error {
	if m.config.DB == nil {
		return fmt.Errorf("database connection is required")
	}
	m.repo = NewPostgreSQLRepository(m.config)
	return nil
}

func (m *RepositoryManager) GetRepository() repositories.Repository {
	return m.repo
}

func (m *RepositoryManager) HealthCheck(ctx context.Context) error {
	if m.repo == nil {
		return fmt.Errorf("repository not initialized")
	}
	return m.repo.Ping(ctx)
}

func (m *RepositoryManager) Shutdown(ctx context.Context) error {
	if m.repo == nil {
		return nil
	}
	return m.repo.Close()
}
