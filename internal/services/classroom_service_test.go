package services

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"testing"

	"github.com/campus-iot/attendance-service/internal/repositories/memory"
	"github.com/campus-iot/attendance-service/internal/validator"
)

func newClassroomFixture(t *testing.T) (ClassroomService, *memory.MemoryRepository) {
	t.Helper()
	repo := memory.NewMemoryRepository(0)
	return NewClassroomService(repo, testLogger(), validator.New()), repo
}

func TestClassroomService_CreateAndDuplicateDevice(t *testing.T) {
	svc, _ := newClassroomFixture(t)
	ctx := context.Background()

	room, err := svc.Create(ctx, &CreateClassroomRequest{Code: "3-105", DeviceID: "ESP-105-A"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if room.Status != "active" {
		t.Errorf("expected default active status, got %s", room.Status)
	}

	_, err = svc.Create(ctx, &CreateClassroomRequest{Code: "3-201", DeviceID: "ESP-105-A"})
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists for reused device, got %v", err)
	}
}

func TestClassroomService_MarkSeenUnknownDevice(t *testing.T) {
	svc, _ := newClassroomFixture(t)

	// The memory adapter treats unknown devices as a no-op; marking seen
	// never fails the scan path.
	if err := svc.MarkSeen(context.Background(), "ESP-999-Z"); err != nil {
		t.Fatalf("MarkSeen failed: %v", err)
	}
}

func TestClassroomService_ProvisioningQR(t *testing.T) {
	svc, _ := newClassroomFixture(t)
	ctx := context.Background()

	room, err := svc.Create(ctx, &CreateClassroomRequest{Code: "3-105", DeviceID: "ESP-105-A"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	data, err := svc.ProvisioningQR(ctx, room.ID, 128)
	if err != nil {
		t.Fatalf("ProvisioningQR failed: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("result is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 128 {
		t.Errorf("expected 128px image, got %d", img.Bounds().Dx())
	}
}

func TestClassroomService_ProvisioningQRUnknownRoom(t *testing.T) {
	svc, _ := newClassroomFixture(t)

	_, err := svc.ProvisioningQR(context.Background(), "missing", 128)
	if !errors.Is(err, ErrClassroomNotFound) {
		t.Fatalf("expected ErrClassroomNotFound, got %v", err)
	}
}

func TestClassroomService_UpdateDeviceConflict(t *testing.T) {
	svc, _ := newClassroomFixture(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, &CreateClassroomRequest{Code: "3-105", DeviceID: "ESP-105-A"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second, err := svc.Create(ctx, &CreateClassroomRequest{Code: "3-201", DeviceID: "ESP-201-B"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Moving the second room onto the first room's device conflicts.
	_, err = svc.Update(ctx, second.ID, &UpdateClassroomRequest{Code: "3-201", DeviceID: first.DeviceID})
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	// Keeping its own device is fine.
	updated, err := svc.Update(ctx, second.ID, &UpdateClassroomRequest{Code: "3-202", DeviceID: "ESP-201-B"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Code != "3-202" {
		t.Errorf("expected renamed room, got %s", updated.Code)
	}
}
