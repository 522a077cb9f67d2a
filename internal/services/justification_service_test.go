package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/campus-iot/attendance-service/internal/events"
	"github.com/campus-iot/attendance-service/internal/models"
	"github.com/campus-iot/attendance-service/internal/repositories/memory"
	"github.com/campus-iot/attendance-service/internal/validator"
)

func newJustificationFixture(t *testing.T) (JustificationService, *memory.MemoryRepository, *events.MockEventPublisher) {
	t.Helper()
	repo := memory.NewMemoryRepository(0)
	publisher := events.NewMockEventPublisher(testLogger())
	svc := NewJustificationService(repo, publisher, testLogger(), validator.New())
	return svc, repo, publisher
}

func TestJustificationService_CreateMarksRecordJustified(t *testing.T) {
	svc, repo, publisher := newJustificationFixture(t)
	ctx := context.Background()

	record := &models.AttendanceRecord{
		ID: "r-1", Name: "Juan Pérez", Role: models.RoleStudent,
		Kind: models.KindEntry, Date: "2026-08-28", Time: "08:10", Status: models.StatusLate,
	}
	if err := repo.Attendance().Create(ctx, record); err != nil {
		t.Fatalf("seeding record failed: %v", err)
	}

	recordID := "r-1"
	just, err := svc.Create(ctx, &CreateJustificationRequest{
		RecordID: &recordID,
		Reason:   "medical appointment",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if just.ID == "" {
		t.Error("expected generated id")
	}

	updated, err := repo.Attendance().GetByID(ctx, "r-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if updated.Status != models.StatusJustified {
		t.Errorf("expected linked record justified, got %s", updated.Status)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.TypeJustificationCreated {
		t.Fatalf("expected one %s event, got %+v", events.TypeJustificationCreated, published)
	}
}

func TestJustificationService_CreateWithUnresolvableRecord(t *testing.T) {
	svc, _, _ := newJustificationFixture(t)

	recordID := "ghost"
	just, err := svc.Create(context.Background(), &CreateJustificationRequest{
		RecordID: &recordID,
		Reason:   "family emergency",
	})
	// An unknown record id is skipped, not treated as a failure.
	if err != nil {
		t.Fatalf("expected creation to succeed, got %v", err)
	}
	if just.RecordID == nil || *just.RecordID != "ghost" {
		t.Errorf("expected record link preserved, got %+v", just.RecordID)
	}
}

func TestJustificationService_CreateUnlinked(t *testing.T) {
	svc, repo, _ := newJustificationFixture(t)
	ctx := context.Background()

	just, err := svc.Create(ctx, &CreateJustificationRequest{
		Reason: "transport strike",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if just.RecordID != nil {
		t.Errorf("expected no record link, got %v", *just.RecordID)
	}

	stored, err := repo.Justification().GetByID(ctx, just.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if stored.Reason != "transport strike" {
		t.Errorf("unexpected stored reason %q", stored.Reason)
	}
}

func TestJustificationService_CreateStoresAttachment(t *testing.T) {
	svc, _, _ := newJustificationFixture(t)

	just, err := svc.Create(context.Background(), &CreateJustificationRequest{
		Reason:         "medical appointment",
		AttachmentName: "certificate.pdf",
		AttachmentURL:  "https://files.example/certificate.pdf",
		AttachmentMime: "application/pdf",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	var attachment models.JustificationAttachment
	if err := json.Unmarshal(just.Attachment, &attachment); err != nil {
		t.Fatalf("attachment is not valid JSON: %v", err)
	}
	if attachment.Name != "certificate.pdf" || attachment.Mime != "application/pdf" {
		t.Errorf("unexpected attachment %+v", attachment)
	}
}

func TestJustificationService_CreateRequiresReason(t *testing.T) {
	svc, _, _ := newJustificationFixture(t)

	_, err := svc.Create(context.Background(), &CreateJustificationRequest{})
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validation errors, got %v", err)
	}
}

func TestJustificationService_DeleteDoesNotRevertStatus(t *testing.T) {
	svc, repo, _ := newJustificationFixture(t)
	ctx := context.Background()

	record := &models.AttendanceRecord{
		ID: "r-2", Name: "Juan Pérez", Role: models.RoleStudent,
		Kind: models.KindEntry, Date: "2026-08-28", Time: "08:10", Status: models.StatusLate,
	}
	if err := repo.Attendance().Create(ctx, record); err != nil {
		t.Fatalf("seeding record failed: %v", err)
	}

	recordID := "r-2"
	just, err := svc.Create(ctx, &CreateJustificationRequest{RecordID: &recordID, Reason: "sick"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := svc.Delete(ctx, just.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	after, err := repo.Attendance().GetByID(ctx, "r-2")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if after.Status != models.StatusJustified {
		t.Errorf("deleting the justification must not revert the record, got %s", after.Status)
	}

	_, err = svc.Get(ctx, just.ID)
	if !errors.Is(err, ErrJustificationNotFound) {
		t.Fatalf("expected ErrJustificationNotFound after delete, got %v", err)
	}
}
