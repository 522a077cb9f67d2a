package memory

import (
	"context"

	"github.com/campus-iot/attendance-service/internal/models"
	"github.com/campus-iot/attendance-service/internal/repositories"
)

type attendanceMemory struct {
	repo *MemoryRepository
}

func (a *attendanceMemory) List(ctx context.Context, filters repositories.AttendanceFilters) ([]*models.AttendanceRecord, error) {
	if err := a.repo.delay(ctx); err != nil {
		return nil, err
	}
	a.repo.mu.RLock()
	defer a.repo.mu.RUnlock()

	var out []*models.AttendanceRecord
	for _, r := range a.repo.records {
		if filters.Role != nil && r.Role != *filters.Role {
			continue
		}
		if filters.Status != nil && r.Status != *filters.Status {
			continue
		}
		if filters.Search != "" && !containsFold(r.Name, filters.Search) && !containsFold(r.NationalID, filters.Search) {
			continue
		}
		copied := *r
		out = append(out, &copied)
	}
	return out, nil
}

func (a *attendanceMemory) GetByID(ctx context.Context, id string) (*models.AttendanceRecord, error) {
	if err := a.repo.delay(ctx); err != nil {
		return nil, err
	}
	a.repo.mu.RLock()
	defer a.repo.mu.RUnlock()

	for _, r := range a.repo.records {
		if r.ID == id {
			copied := *r
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

// Create prepends, keeping newest-first collection order.
func (a *attendanceMemory) Create(ctx context.Context, record *models.AttendanceRecord) error {
	if err := a.repo.delay(ctx); err != nil {
		return err
	}
	a.repo.mu.Lock()
	defer a.repo.mu.Unlock()

	copied := *record
	a.repo.records = append([]*models.AttendanceRecord{&copied}, a.repo.records...)
	return nil
}

func (a *attendanceMemory) Update(ctx context.Context, id string, patch map[string]any) (*models.AttendanceRecord, error) {
	if err := a.repo.delay(ctx); err != nil {
		return nil, err
	}
	a.repo.mu.Lock()
	defer a.repo.mu.Unlock()

	for _, r := range a.repo.records {
		if r.ID != id {
			continue
		}
		applyRecordPatch(r, patch)
		copied := *r
		return &copied, nil
	}
	return nil, repositories.ErrNotFound
}

// applyRecordPatch merges known patch columns over the record; the id is
// immutable and unknown keys are ignored.
func applyRecordPatch(r *models.AttendanceRecord, patch map[string]any) {
	for key, value := range patch {
		s, ok := value.(string)
		if !ok {
			continue
		}
		switch key {
		case "name":
			r.Name = s
		case "national_id":
			r.NationalID = s
		case "role":
			r.Role = models.UserRole(s)
		case "group":
			r.Group = s
		case "classroom":
			r.Classroom = s
		case "kind":
			r.Kind = models.AttendanceKind(s)
		case "date":
			r.Date = s
		case "time":
			r.Time = s
		case "status":
			r.Status = models.AttendanceStatus(s)
		case "device_id":
			r.DeviceID = s
		}
	}
}

func (a *attendanceMemory) DeleteAll(ctx context.Context) error {
	if err := a.repo.delay(ctx); err != nil {
		return err
	}
	a.repo.mu.Lock()
	defer a.repo.mu.Unlock()

	a.repo.records = nil
	return nil
}

func (a *attendanceMemory) HasEntryOn(ctx context.Context, nationalID, date string) (bool, error) {
	if err := a.repo.delay(ctx); err != nil {
		return false, err
	}
	a.repo.mu.RLock()
	defer a.repo.mu.RUnlock()

	for _, r := range a.repo.records {
		if r.NationalID == nationalID && r.Date == date && r.Kind == models.KindEntry {
			return true, nil
		}
	}
	return false, nil
}
