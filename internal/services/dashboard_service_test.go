package services

import (
	"context"
	"testing"

	"github.com/campus-iot/attendance-service/internal/models"
	"github.com/campus-iot/attendance-service/internal/repositories/memory"
)

func TestDashboardService_Summary(t *testing.T) {
	repo := memory.NewMemoryRepository(0)
	svc := NewDashboardService(repo, testLogger())
	ctx := context.Background()

	add := func(date string, kind models.AttendanceKind, status models.AttendanceStatus) {
		t.Helper()
		err := repo.Attendance().Create(ctx, &models.AttendanceRecord{
			ID: models.GenerateNationalID(), Date: date, Kind: kind, Status: status,
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	add("2026-08-28", models.KindEntry, models.StatusOnTime)
	add("2026-08-28", models.KindEntry, models.StatusLate)
	add("2026-08-28", models.KindExit, models.StatusCompletedSchedule)
	add("2026-08-27", models.KindEntry, models.StatusOnTime)

	summary, err := svc.Summary(ctx, "2026-08-28")
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.Total != 3 {
		t.Errorf("records from other days leaked in: total %d", summary.Total)
	}
	if summary.Entries != 2 || summary.Exits != 1 {
		t.Errorf("unexpected counters: %+v", summary)
	}
	if summary.Punctuality != 50 {
		t.Errorf("expected punctuality 50, got %d", summary.Punctuality)
	}
}

func TestDashboardService_SummaryRejectsBadDate(t *testing.T) {
	repo := memory.NewMemoryRepository(0)
	svc := NewDashboardService(repo, testLogger())

	if _, err := svc.Summary(context.Background(), "28/08/2026"); err == nil {
		t.Fatal("expected an error for a malformed date")
	}
}

func TestDashboardService_SummaryDefaultsToToday(t *testing.T) {
	repo := memory.NewMemoryRepository(0)
	repo.Seed()
	svc := NewDashboardService(repo, testLogger())

	// Seed data is dated today, so the default window sees it.
	summary, err := svc.Summary(context.Background(), "")
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.Total != 3 {
		t.Errorf("expected the seeded records, got total %d", summary.Total)
	}
}
