package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/campus-iot/attendance-service/internal/models"
	"github.com/campus-iot/attendance-service/internal/repositories"
)

func seededRepo(t *testing.T) *MemoryRepository {
	t.Helper()
	repo := NewMemoryRepository(0)
	repo.Seed()
	return repo
}

func TestAttendanceMemory_ListFilters(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		filters repositories.AttendanceFilters
		want    int
	}{
		{name: "no filters", filters: repositories.AttendanceFilters{}, want: 3},
		{name: "search matches case-insensitively", filters: repositories.AttendanceFilters{Search: "val"}, want: 1},
		{name: "role teacher", filters: roleFilter(models.RoleTeacher), want: 1},
		{name: "status late", filters: statusFilter(models.StatusLate), want: 1},
		{name: "search with no match", filters: repositories.AttendanceFilters{Search: "zzz"}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := repo.Attendance().List(ctx, tt.filters)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(records) != tt.want {
				t.Errorf("expected %d records, got %d", tt.want, len(records))
			}
		})
	}
}

func roleFilter(role models.UserRole) repositories.AttendanceFilters {
	return repositories.AttendanceFilters{Role: &role}
}

func statusFilter(status models.AttendanceStatus) repositories.AttendanceFilters {
	return repositories.AttendanceFilters{Status: &status}
}

func TestAttendanceMemory_UpdateMergesPatch(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()

	records, err := repo.Attendance().List(ctx, repositories.AttendanceFilters{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	target := records[0]

	updated, err := repo.Attendance().Update(ctx, target.ID, map[string]any{
		"status": string(models.StatusJustified),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Status != models.StatusJustified {
		t.Errorf("expected status justified, got %s", updated.Status)
	}
	// Fields absent from the patch are retained.
	if updated.Name != target.Name {
		t.Errorf("name changed on patch: %s -> %s", target.Name, updated.Name)
	}
	if updated.Time != target.Time {
		t.Errorf("time changed on patch: %s -> %s", target.Time, updated.Time)
	}
}

func TestAttendanceMemory_UpdateUnknownID(t *testing.T) {
	repo := seededRepo(t)

	_, err := repo.Attendance().Update(context.Background(), "missing", map[string]any{"status": "late"})
	if !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAttendanceMemory_CreatePrepends(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()

	record := &models.AttendanceRecord{
		ID: "new-1", Name: "Nuevo Estudiante", Role: models.RoleStudent,
		Kind: models.KindEntry, Date: "2026-08-28", Time: "07:30", Status: models.StatusOnTime,
	}
	if err := repo.Attendance().Create(ctx, record); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	records, err := repo.Attendance().List(ctx, repositories.AttendanceFilters{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if records[0].ID != "new-1" {
		t.Errorf("expected newest record first, got %s", records[0].ID)
	}
}

func TestAttendanceMemory_DeleteAll(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()

	if err := repo.Attendance().DeleteAll(ctx); err != nil {
		t.Fatalf("DeleteAll failed: %v", err)
	}
	records, err := repo.Attendance().List(ctx, repositories.AttendanceFilters{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected empty collection, got %d records", len(records))
	}
}

func TestJustificationMemory_DeleteIsIdempotent(t *testing.T) {
	repo := NewMemoryRepository(0)
	ctx := context.Background()

	just := &models.Justification{ID: "j-1", Reason: "medical appointment"}
	if err := repo.Justification().Create(ctx, just); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := repo.Justification().Delete(ctx, "j-1"); err != nil {
		t.Fatalf("first Delete failed: %v", err)
	}
	if err := repo.Justification().Delete(ctx, "j-1"); err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
}

func TestUserMemory_DuplicateNationalID(t *testing.T) {
	repo := seededRepo(t)

	err := repo.User().Create(context.Background(), &models.User{
		ID: "dup", Name: "Duplicado", NationalID: "8-1234-5678", Role: models.RoleStudent,
	})
	if !errors.Is(err, repositories.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestClassroomMemory_MarkSeen(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()

	if err := repo.Classroom().MarkSeen(ctx, "ESP-201-B"); err != nil {
		t.Fatalf("MarkSeen failed: %v", err)
	}

	room, err := repo.Classroom().GetByDeviceID(ctx, "ESP-201-B")
	if err != nil {
		t.Fatalf("GetByDeviceID failed: %v", err)
	}
	if room.Status != models.ClassroomActive {
		t.Errorf("expected room to flip active, got %s", room.Status)
	}
	if room.LastSeenAt == nil {
		t.Error("expected LastSeenAt to be set")
	}
}

func TestDashboardMemory_Summary(t *testing.T) {
	repo := NewMemoryRepository(0)
	ctx := context.Background()

	add := func(kind models.AttendanceKind, status models.AttendanceStatus) {
		t.Helper()
		err := repo.Attendance().Create(ctx, &models.AttendanceRecord{
			ID: models.GenerateNationalID(), Date: "2026-08-28", Kind: kind, Status: status,
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	add(models.KindEntry, models.StatusOnTime)
	add(models.KindEntry, models.StatusOnTime)
	add(models.KindEntry, models.StatusLate)
	add(models.KindExit, models.StatusCompletedSchedule)

	summary, err := repo.Dashboard().Summary(ctx, "2026-08-28")
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.Total != 4 || summary.Entries != 3 || summary.Exits != 1 {
		t.Errorf("unexpected counters: %+v", summary)
	}
	// 2 of 3 entries on time rounds to 67.
	if summary.Punctuality != 67 {
		t.Errorf("expected punctuality 67, got %d", summary.Punctuality)
	}
}

func TestDashboardMemory_SummaryNoEntries(t *testing.T) {
	repo := NewMemoryRepository(0)

	summary, err := repo.Dashboard().Summary(context.Background(), "2026-08-28")
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.Punctuality != 0 {
		t.Errorf("expected punctuality 0 with no entries, got %d", summary.Punctuality)
	}
}

func TestMemoryRepository_SeedIsIdempotent(t *testing.T) {
	repo := NewMemoryRepository(0)
	repo.Seed()
	repo.Seed()

	records, err := repo.Attendance().List(context.Background(), repositories.AttendanceFilters{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("expected seed to run once, got %d records", len(records))
	}
}

func TestMemoryRepository_DelayHonorsContext(t *testing.T) {
	repo := NewMemoryRepository(50 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Attendance().List(ctx, repositories.AttendanceFilters{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSessionMemory_Lifecycle(t *testing.T) {
	repo := NewMemoryRepository(0)
	ctx := context.Background()

	session, err := repo.Session().Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if session != nil {
		t.Fatal("expected no session before login")
	}

	if err := repo.Session().Set(ctx, &models.Session{Token: "tok", Username: "alice", Role: models.RoleAdmin}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	session, err = repo.Session().Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if session == nil || session.Username != "alice" {
		t.Fatalf("unexpected session: %+v", session)
	}

	if err := repo.Session().Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if err := repo.Session().Clear(ctx); err != nil {
		t.Fatalf("second Clear failed: %v", err)
	}
}
