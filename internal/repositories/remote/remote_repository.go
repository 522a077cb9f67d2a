package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/campus-iot/attendance-service/internal/models"
	"github.com/campus-iot/attendance-service/internal/repositories"
)

// RemoteRepository speaks the service's own REST contract. The justification
// side effect is NOT transactional here: creating a linked justification and
// patching its record are two independent requests, and callers must
// tolerate the justification landing while the status update is lost.
type RemoteRepository struct {
	client *Client

	// session lives client-side, like the original browser client kept it.
	sessionMu sync.RWMutex
	session   *models.Session
}

func NewRemoteRepository(baseURL string, timeout time.Duration) *RemoteRepository {
	return &RemoteRepository{client: NewClient(baseURL, timeout)}
}

func (r *RemoteRepository) Attendance() repositories.AttendanceRepository {
	return &attendanceRemote{client: r.client}
}

func (r *RemoteRepository) Justification() repositories.JustificationRepository {
	return &justificationRemote{client: r.client}
}

func (r *RemoteRepository) User() repositories.UserRepository {
	return &userRemote{client: r.client}
}

func (r *RemoteRepository) Classroom() repositories.ClassroomRepository {
	return &classroomRemote{client: r.client}
}

func (r *RemoteRepository) Session() repositories.SessionRepository {
	return &sessionRemote{repo: r}
}

func (r *RemoteRepository) Dashboard() repositories.DashboardRepository {
	return &dashboardRemote{client: r.client}
}

// WithTransaction runs fn directly; HTTP requests cannot share a
// transaction boundary.
func (r *RemoteRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(r)
}

func (r *RemoteRepository) Ping(ctx context.Context) error {
	return r.client.do(ctx, http.MethodGet, "/health", nil, nil, nil)
}

func (r *RemoteRepository) Close() error {
	return nil
}

// Login delegates the credential check to the remote service and returns
// the session it minted.
func (r *RemoteRepository) Login(ctx context.Context, username, password string) (*models.Session, error) {
	var session models.Session
	body := map[string]string{"username": username, "password": password}
	if err := r.client.do(ctx, http.MethodPost, "/api/v1/auth/login", nil, body, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// ===== ATTENDANCE =====

type attendanceRemote struct {
	client *Client
}

func (a *attendanceRemote) List(ctx context.Context, filters repositories.AttendanceFilters) ([]*models.AttendanceRecord, error) {
	query := url.Values{}
	if filters.Role != nil {
		query.Set("role", string(*filters.Role))
	}
	if filters.Status != nil {
		query.Set("status", string(*filters.Status))
	}
	if filters.Search != "" {
		query.Set("search", filters.Search)
	}

	var records []*models.AttendanceRecord
	if err := a.client.do(ctx, http.MethodGet, "/api/v1/attendance", query, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (a *attendanceRemote) GetByID(ctx context.Context, id string) (*models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	err := a.client.do(ctx, http.MethodGet, "/api/v1/attendance/"+id, nil, nil, &record)
	if err != nil {
		if IsStatus(err, http.StatusNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (a *attendanceRemote) Create(ctx context.Context, record *models.AttendanceRecord) error {
	return a.client.do(ctx, http.MethodPost, "/api/v1/attendance", nil, record, record)
}

func (a *attendanceRemote) Update(ctx context.Context, id string, patch map[string]any) (*models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	err := a.client.do(ctx, http.MethodPatch, "/api/v1/attendance/"+id, nil, patch, &record)
	if err != nil {
		if IsStatus(err, http.StatusNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (a *attendanceRemote) DeleteAll(ctx context.Context) error {
	return a.client.do(ctx, http.MethodDelete, "/api/v1/attendance", nil, nil, nil)
}

// HasEntryOn filters client-side, the way the browser client did: fetch the
// user's records and scan for an entry on the date.
func (a *attendanceRemote) HasEntryOn(ctx context.Context, nationalID, date string) (bool, error) {
	records, err := a.List(ctx, repositories.AttendanceFilters{Search: nationalID})
	if err != nil {
		return false, err
	}
	for _, r := range records {
		if r.NationalID == nationalID && r.Date == date && r.Kind == models.KindEntry {
			return true, nil
		}
	}
	return false, nil
}

// ===== JUSTIFICATIONS =====

type justificationRemote struct {
	client *Client
}

func (j *justificationRemote) List(ctx context.Context) ([]*models.Justification, error) {
	var justifications []*models.Justification
	if err := j.client.do(ctx, http.MethodGet, "/api/v1/justifications", nil, nil, &justifications); err != nil {
		return nil, err
	}
	return justifications, nil
}

func (j *justificationRemote) GetByID(ctx context.Context, id string) (*models.Justification, error) {
	var just models.Justification
	err := j.client.do(ctx, http.MethodGet, "/api/v1/justifications/"+id, nil, nil, &just)
	if err != nil {
		if IsStatus(err, http.StatusNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &just, nil
}

func (j *justificationRemote) Create(ctx context.Context, just *models.Justification) error {
	return j.client.do(ctx, http.MethodPost, "/api/v1/justifications", nil, just, just)
}

func (j *justificationRemote) Delete(ctx context.Context, id string) error {
	err := j.client.do(ctx, http.MethodDelete, "/api/v1/justifications/"+id, nil, nil, nil)
	if err != nil && IsStatus(err, http.StatusNotFound) {
		return nil // idempotent
	}
	return err
}

// ===== USERS =====

type userRemote struct {
	client *Client
}

func (u *userRemote) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, error) {
	query := url.Values{}
	if filters.Search != "" {
		query.Set("search", filters.Search)
	}
	var users []*models.User
	if err := u.client.do(ctx, http.MethodGet, "/api/v1/users", query, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (u *userRemote) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := u.client.do(ctx, http.MethodGet, "/api/v1/users/"+id, nil, nil, &user)
	if err != nil {
		if IsStatus(err, http.StatusNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (u *userRemote) GetByNationalID(ctx context.Context, nationalID string) (*models.User, error) {
	users, err := u.List(ctx, repositories.UserFilters{Search: nationalID})
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		if user.NationalID == nationalID {
			return user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (u *userRemote) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	users, err := u.List(ctx, repositories.UserFilters{})
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (u *userRemote) Create(ctx context.Context, user *models.User) error {
	err := u.client.do(ctx, http.MethodPost, "/api/v1/users", nil, user, user)
	if err != nil && IsStatus(err, http.StatusConflict) {
		return repositories.ErrDuplicate
	}
	return err
}

func (u *userRemote) Update(ctx context.Context, id string, user *models.User) (*models.User, error) {
	var updated models.User
	err := u.client.do(ctx, http.MethodPut, "/api/v1/users/"+id, nil, user, &updated)
	if err != nil {
		if IsStatus(err, http.StatusNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (u *userRemote) Delete(ctx context.Context, id string) error {
	err := u.client.do(ctx, http.MethodDelete, "/api/v1/users/"+id, nil, nil, nil)
	if err != nil && IsStatus(err, http.StatusNotFound) {
		return nil
	}
	return err
}

// ===== CLASSROOMS =====

type classroomRemote struct {
	client *Client
}

func (c *classroomRemote) List(ctx context.Context, filters repositories.ClassroomFilters) ([]*models.Classroom, error) {
	query := url.Values{}
	if filters.Search != "" {
		query.Set("search", filters.Search)
	}
	var classrooms []*models.Classroom
	if err := c.client.do(ctx, http.MethodGet, "/api/v1/classrooms", query, nil, &classrooms); err != nil {
		return nil, err
	}
	return classrooms, nil
}

func (c *classroomRemote) GetByID(ctx context.Context, id string) (*models.Classroom, error) {
	var room models.Classroom
	err := c.client.do(ctx, http.MethodGet, "/api/v1/classrooms/"+id, nil, nil, &room)
	if err != nil {
		if IsStatus(err, http.StatusNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (c *classroomRemote) GetByDeviceID(ctx context.Context, deviceID string) (*models.Classroom, error) {
	rooms, err := c.List(ctx, repositories.ClassroomFilters{Search: deviceID})
	if err != nil {
		return nil, err
	}
	for _, room := range rooms {
		if room.DeviceID == deviceID {
			return room, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (c *classroomRemote) Create(ctx context.Context, room *models.Classroom) error {
	err := c.client.do(ctx, http.MethodPost, "/api/v1/classrooms", nil, room, room)
	if err != nil && IsStatus(err, http.StatusConflict) {
		return repositories.ErrDuplicate
	}
	return err
}

func (c *classroomRemote) Update(ctx context.Context, id string, room *models.Classroom) (*models.Classroom, error) {
	var updated models.Classroom
	err := c.client.do(ctx, http.MethodPut, "/api/v1/classrooms/"+id, nil, room, &updated)
	if err != nil {
		if IsStatus(err, http.StatusNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (c *classroomRemote) Delete(ctx context.Context, id string) error {
	err := c.client.do(ctx, http.MethodDelete, "/api/v1/classrooms/"+id, nil, nil, nil)
	if err != nil && IsStatus(err, http.StatusNotFound) {
		return nil
	}
	return err
}

func (c *classroomRemote) MarkSeen(ctx context.Context, deviceID string) error {
	body := map[string]string{"device_id": deviceID}
	return c.client.do(ctx, http.MethodPost, "/api/v1/classrooms/seen", nil, body, nil)
}

// ===== SESSION =====

type sessionRemote struct {
	repo *RemoteRepository
}

func (s *sessionRemote) Get(ctx context.Context) (*models.Session, error) {
	s.repo.sessionMu.RLock()
	defer s.repo.sessionMu.RUnlock()
	if s.repo.session == nil {
		return nil, nil
	}
	copied := *s.repo.session
	return &copied, nil
}

func (s *sessionRemote) Set(ctx context.Context, session *models.Session) error {
	s.repo.sessionMu.Lock()
	defer s.repo.sessionMu.Unlock()
	copied := *session
	s.repo.session = &copied
	return nil
}

func (s *sessionRemote) Clear(ctx context.Context) error {
	s.repo.sessionMu.Lock()
	defer s.repo.sessionMu.Unlock()
	s.repo.session = nil
	return nil
}

// ===== DASHBOARD =====

type dashboardRemote struct {
	client *Client
}

func (d *dashboardRemote) Summary(ctx context.Context, date string) (*models.DashboardSummary, error) {
	query := url.Values{}
	query.Set("date", date)
	var summary models.DashboardSummary
	if err := d.client.do(ctx, http.MethodGet, "/api/v1/dashboard/summary", query, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// Manager adapts the remote client to the repositories.Manager lifecycle.
type Manager struct {
	baseURL string
	timeout time.Duration
	repo    *RemoteRepository
}

func NewManager(baseURL string, timeout time.Duration) *Manager {
	return &Manager{baseURL: baseURL, timeout: timeout}
}

func (m *Manager) Initialize() error {
	if m.baseURL == "" {
		return fmt.Errorf("remote base URL is required")
	}
	m.repo = NewRemoteRepository(m.baseURL, m.timeout)
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
