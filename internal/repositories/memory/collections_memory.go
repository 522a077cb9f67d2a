package memory

import (
	"context"
	"math"
	"time"

	"github.com/campus-iot/attendance-service/internal/models"
	"github.com/campus-iot/attendance-service/internal/repositories"
)

// ===== JUSTIFICATIONS =====

type justificationMemory struct {
	repo *MemoryRepository
}

func (j *justificationMemory) List(ctx context.Context) ([]*models.Justification, error) {
	if err := j.repo.delay(ctx); err != nil {
		return nil, err
	}
	j.repo.mu.RLock()
	defer j.repo.mu.RUnlock()

	out := make([]*models.Justification, 0, len(j.repo.justifications))
	for _, just := range j.repo.justifications {
		copied := *just
		out = append(out, &copied)
	}
	return out, nil
}

func (j *justificationMemory) GetByID(ctx context.Context, id string) (*models.Justification, error) {
	if err := j.repo.delay(ctx); err != nil {
		return nil, err
	}
	j.repo.mu.RLock()
	defer j.repo.mu.RUnlock()

	for _, just := range j.repo.justifications {
		if just.ID == id {
			copied := *just
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (j *justificationMemory) Create(ctx context.Context, just *models.Justification) error {
	if err := j.repo.delay(ctx); err != nil {
		return err
	}
	j.repo.mu.Lock()
	defer j.repo.mu.Unlock()

	copied := *just
	j.repo.justifications = append([]*models.Justification{&copied}, j.repo.justifications...)
	return nil
}

func (j *justificationMemory) Delete(ctx context.Context, id string) error {
	if err := j.repo.delay(ctx); err != nil {
		return err
	}
	j.repo.mu.Lock()
	defer j.repo.mu.Unlock()

	kept := j.repo.justifications[:0]
	for _, just := range j.repo.justifications {
		if just.ID != id {
			kept = append(kept, just)
		}
	}
	j.repo.justifications = kept
	return nil
}

// ===== USERS =====

type userMemory struct {
	repo *MemoryRepository
}

func (u *userMemory) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, error) {
	if err := u.repo.delay(ctx); err != nil {
		return nil, err
	}
	u.repo.mu.RLock()
	defer u.repo.mu.RUnlock()

	var out []*models.User
	for _, user := range u.repo.users {
		if filters.Search != "" && !containsFold(user.Name, filters.Search) && !containsFold(user.NationalID, filters.Search) {
			continue
		}
		copied := *user
		out = append(out, &copied)
	}
	return out, nil
}

func (u *userMemory) GetByID(ctx context.Context, id string) (*models.User, error) {
	if err := u.repo.delay(ctx); err != nil {
		return nil, err
	}
	u.repo.mu.RLock()
	defer u.repo.mu.RUnlock()

	for _, user := range u.repo.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (u *userMemory) GetByNationalID(ctx context.Context, nationalID string) (*models.User, error) {
	if err := u.repo.delay(ctx); err != nil {
		return nil, err
	}
	u.repo.mu.RLock()
	defer u.repo.mu.RUnlock()

	for _, user := range u.repo.users {
		if user.NationalID == nationalID {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (u *userMemory) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := u.repo.delay(ctx); err != nil {
		return nil, err
	}
	u.repo.mu.RLock()
	defer u.repo.mu.RUnlock()

	for _, user := range u.repo.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (u *userMemory) Create(ctx context.Context, user *models.User) error {
	if err := u.repo.delay(ctx); err != nil {
		return err
	}
	u.repo.mu.Lock()
	defer u.repo.mu.Unlock()

	for _, existing := range u.repo.users {
		if existing.NationalID == user.NationalID || (user.Email != "" && existing.Email == user.Email) {
			return repositories.ErrDuplicate
		}
	}
	copied := *user
	u.repo.users = append(u.repo.users, &copied)
	return nil
}

func (u *userMemory) Update(ctx context.Context, id string, user *models.User) (*models.User, error) {
	if err := u.repo.delay(ctx); err != nil {
		return nil, err
	}
	u.repo.mu.Lock()
	defer u.repo.mu.Unlock()

	for i, existing := range u.repo.users {
		if existing.ID != id {
			continue
		}
		copied := *user
		copied.ID = existing.ID
		copied.CreatedAt = existing.CreatedAt
		copied.UpdatedAt = time.Now()
		u.repo.users[i] = &copied
		result := copied
		return &result, nil
	}
	return nil, repositories.ErrNotFound
}

func (u *userMemory) Delete(ctx context.Context, id string) error {
	if err := u.repo.delay(ctx); err != nil {
		return err
	}
	u.repo.mu.Lock()
	defer u.repo.mu.Unlock()

	kept := u.repo.users[:0]
	for _, user := range u.repo.users {
		if user.ID != id {
			kept = append(kept, user)
		}
	}
	u.repo.users = kept
	return nil
}

// ===== CLASSROOMS =====

type classroomMemory struct {
	repo *MemoryRepository
}

func (c *classroomMemory) List(ctx context.Context, filters repositories.ClassroomFilters) ([]*models.Classroom, error) {
	if err := c.repo.delay(ctx); err != nil {
		return nil, err
	}
	c.repo.mu.RLock()
	defer c.repo.mu.RUnlock()

	var out []*models.Classroom
	for _, room := range c.repo.classrooms {
		if filters.Search != "" && !containsFold(room.Code, filters.Search) && !containsFold(room.DeviceID, filters.Search) {
			continue
		}
		copied := *room
		out = append(out, &copied)
	}
	return out, nil
}

func (c *classroomMemory) GetByID(ctx context.Context, id string) (*models.Classroom, error) {
	if err := c.repo.delay(ctx); err != nil {
		return nil, err
	}
	c.repo.mu.RLock()
	defer c.repo.mu.RUnlock()

	for _, room := range c.repo.classrooms {
		if room.ID == id {
			copied := *room
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (c *classroomMemory) GetByDeviceID(ctx context.Context, deviceID string) (*models.Classroom, error) {
	if err := c.repo.delay(ctx); err != nil {
		return nil, err
	}
	c.repo.mu.RLock()
	defer c.repo.mu.RUnlock()

	for _, room := range c.repo.classrooms {
		if room.DeviceID == deviceID {
			copied := *room
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (c *classroomMemory) Create(ctx context.Context, room *models.Classroom) error {
	if err := c.repo.delay(ctx); err != nil {
		return err
	}
	c.repo.mu.Lock()
	defer c.repo.mu.Unlock()

	for _, existing := range c.repo.classrooms {
		if existing.DeviceID == room.DeviceID {
			return repositories.ErrDuplicate
		}
	}
	copied := *room
	c.repo.classrooms = append(c.repo.classrooms, &copied)
	return nil
}

func (c *classroomMemory) Update(ctx context.Context, id string, room *models.Classroom) (*models.Classroom, error) {
	if err := c.repo.delay(ctx); err != nil {
		return nil, err
	}
	c.repo.mu.Lock()
	defer c.repo.mu.Unlock()

	for i, existing := range c.repo.classrooms {
		if existing.ID != id {
			continue
		}
		copied := *room
		copied.ID = existing.ID
		copied.CreatedAt = existing.CreatedAt
		copied.UpdatedAt = time.Now()
		c.repo.classrooms[i] = &copied
		result := copied
		return &result, nil
	}
	return nil, repositories.ErrNotFound
}

func (c *classroomMemory) Delete(ctx context.Context, id string) error {
	if err := c.repo.delay(ctx); err != nil {
		return err
	}
	c.repo.mu.Lock()
	defer c.repo.mu.Unlock()

	kept := c.repo.classrooms[:0]
	for _, room := range c.repo.classrooms {
		if room.ID != id {
			kept = append(kept, room)
		}
	}
	c.repo.classrooms = kept
	return nil
}

func (c *classroomMemory) MarkSeen(ctx context.Context, deviceID string) error {
	if err := c.repo.delay(ctx); err != nil {
		return err
	}
	c.repo.mu.Lock()
	defer c.repo.mu.Unlock()

	now := time.Now()
	for _, room := range c.repo.classrooms {
		if room.DeviceID == deviceID {
			room.Status = models.ClassroomActive
			room.LastSeenAt = &now
		}
	}
	return nil
}

// ===== SESSION =====

type sessionMemory struct {
	repo *MemoryRepository
}

func (s *sessionMemory) Get(ctx context.Context) (*models.Session, error) {
	if err := s.repo.delay(ctx); err != nil {
		return nil, err
	}
	s.repo.mu.RLock()
	defer s.repo.mu.RUnlock()

	if s.repo.session == nil {
		return nil, nil
	}
	copied := *s.repo.session
	return &copied, nil
}

func (s *sessionMemory) Set(ctx context.Context, session *models.Session) error {
	if err := s.repo.delay(ctx); err != nil {
		return err
	}
	s.repo.mu.Lock()
	defer s.repo.mu.Unlock()

	copied := *session
	s.repo.session = &copied
	return nil
}

func (s *sessionMemory) Clear(ctx context.Context) error {
	if err := s.repo.delay(ctx); err != nil {
		return err
	}
	s.repo.mu.Lock()
	defer s.repo.mu.Unlock()

	s.repo.session = nil
	return nil
}

// ===== DASHBOARD =====

type dashboardMemory struct {
	repo *MemoryRepository
}

func (d *dashboardMemory) Summary(ctx context.Context, date string) (*models.DashboardSummary, error) {
	if err := d.repo.delay(ctx); err != nil {
		return nil, err
	}
	d.repo.mu.RLock()
	defer d.repo.mu.RUnlock()

	var summary models.DashboardSummary
	var punctual int
	for _, r := range d.repo.records {
		if r.Date != date {
			continue
		}
		summary.Total++
		switch r.Kind {
		case models.KindEntry:
			summary.Entries++
			if r.Status == models.StatusOnTime {
				punctual++
			}
		case models.KindExit:
			summary.Exits++
		}
	}
	if summary.Entries > 0 {
		summary.Punctuality = int(math.Round(float64(punctual) / float64(summary.Entries) * 100))
	}
	return &summary, nil
}
