package remote

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campus-iot/attendance-service/internal/models"
	"github.com/campus-iot/attendance-service/internal/repositories"
)

func newTestRepo(t *testing.T, handler http.Handler) *RemoteRepository {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewRemoteRepository(server.URL, 5*time.Second)
}

func TestAttendanceListDecodesArray(t *testing.T) {
	var gotQuery string
	repo := newTestRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/attendance" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]*models.AttendanceRecord{
			{ID: "r1", Name: "Kexy Rodriguez", Kind: models.KindEntry},
			{ID: "r2", Name: "Jeremy Jimenez", Kind: models.KindExit},
		})
	}))

	role := models.RoleStudent
	records, err := repo.Attendance().List(t.Context(), repositories.AttendanceFilters{Role: &role, Search: "kexy"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ID != "r1" || records[1].Kind != models.KindExit {
		t.Errorf("records decoded wrong: %+v", records)
	}
	if gotQuery != "role=student&search=kexy" {
		t.Errorf("unexpected query %q", gotQuery)
	}
}

func TestGetByIDMapsNotFound(t *testing.T) {
	repo := newTestRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "record not found"})
	}))

	if _, err := repo.Attendance().GetByID(t.Context(), "missing"); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("attendance: expected ErrNotFound, got %v", err)
	}
	if _, err := repo.Justification().GetByID(t.Context(), "missing"); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("justification: expected ErrNotFound, got %v", err)
	}
	if _, err := repo.User().GetByID(t.Context(), "missing"); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("user: expected ErrNotFound, got %v", err)
	}
	if _, err := repo.Classroom().GetByID(t.Context(), "missing"); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("classroom: expected ErrNotFound, got %v", err)
	}
}

func TestCreateSendsBodyAndDecodesEcho(t *testing.T) {
	repo := newTestRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		var record models.AttendanceRecord
		if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if record.Name != "Kexy Rodriguez" {
			t.Errorf("request body lost the name: %+v", record)
		}
		record.ID = "assigned-by-server"
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(&record)
	}))

	record := &models.AttendanceRecord{Name: "Kexy Rodriguez", Kind: models.KindEntry}
	if err := repo.Attendance().Create(t.Context(), record); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if record.ID != "assigned-by-server" {
		t.Errorf("server-assigned ID not applied: %q", record.ID)
	}
}

func TestDeleteSwallowsNotFound(t *testing.T) {
	repo := newTestRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	if err := repo.Justification().Delete(t.Context(), "gone"); err != nil {
		t.Errorf("justification delete should be idempotent, got %v", err)
	}
	if err := repo.User().Delete(t.Context(), "gone"); err != nil {
		t.Errorf("user delete should be idempotent, got %v", err)
	}
	if err := repo.Classroom().Delete(t.Context(), "gone"); err != nil {
		t.Errorf("classroom delete should be idempotent, got %v", err)
	}
}

func TestCreateConflictBecomesDuplicate(t *testing.T) {
	repo := newTestRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"message": "already exists"})
	}))

	user := &models.User{Name: "Jeremy Jimenez", NationalID: "8-1234-5678"}
	if err := repo.User().Create(t.Context(), user); !errors.Is(err, repositories.ErrDuplicate) {
		t.Errorf("user: expected ErrDuplicate, got %v", err)
	}
	room := &models.Classroom{Code: "3-105", DeviceID: "ESP-105-A"}
	if err := repo.Classroom().Create(t.Context(), room); !errors.Is(err, repositories.ErrDuplicate) {
		t.Errorf("classroom: expected ErrDuplicate, got %v", err)
	}
}

func TestHasEntryOnScansFetchedRecords(t *testing.T) {
	repo := newTestRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("search"); got != "8-1234-5678" {
			t.Errorf("expected search by national ID, got %q", got)
		}
		json.NewEncoder(w).Encode([]*models.AttendanceRecord{
			{ID: "r1", NationalID: "8-1234-5678", Date: "2026-08-28", Kind: models.KindExit},
			{ID: "r2", NationalID: "8-1234-5678", Date: "2026-08-27", Kind: models.KindEntry},
		})
	}))

	has, err := repo.Attendance().HasEntryOn(t.Context(), "8-1234-5678", "2026-08-28")
	if err != nil {
		t.Fatalf("HasEntryOn failed: %v", err)
	}
	if has {
		t.Error("exit on the date must not count as an entry")
	}

	has, err = repo.Attendance().HasEntryOn(t.Context(), "8-1234-5678", "2026-08-27")
	if err != nil {
		t.Fatalf("HasEntryOn failed: %v", err)
	}
	if !has {
		t.Error("entry on 2026-08-27 should be found")
	}
}

func TestGetByDeviceIDFiltersClientSide(t *testing.T) {
	repo := newTestRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]*models.Classroom{
			{ID: "c1", Code: "3-104", DeviceID: "ESP-104-A"},
			{ID: "c2", Code: "3-105", DeviceID: "ESP-105-A"},
		})
	}))

	room, err := repo.Classroom().GetByDeviceID(t.Context(), "ESP-105-A")
	if err != nil {
		t.Fatalf("GetByDeviceID failed: %v", err)
	}
	if room.Code != "3-105" {
		t.Errorf("wrong room matched: %+v", room)
	}

	if _, err := repo.Classroom().GetByDeviceID(t.Context(), "ESP-999-Z"); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown device, got %v", err)
	}
}

func TestLoginDecodesSessionAndMapsUnauthorized(t *testing.T) {
	issued := time.Date(2026, 8, 28, 7, 30, 0, 0, time.UTC)
	repo := newTestRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Fatalf("decode credentials: %v", err)
		}
		if creds["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"})
			return
		}
		json.NewEncoder(w).Encode(&models.Session{
			Token:    "tok-1",
			Username: creds["username"],
			Role:     models.RoleAdmin,
			IssuedAt: issued,
		})
	}))

	session, err := repo.Login(t.Context(), "admin@utp.example", "secret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if session.Token != "tok-1" || session.Username != "admin@utp.example" || session.Role != models.RoleAdmin {
		t.Errorf("session decoded wrong: %+v", session)
	}

	_, err = repo.Login(t.Context(), "admin@utp.example", "wrong")
	if !IsStatus(err, http.StatusUnauthorized) {
		t.Fatalf("expected 401 RemoteError, got %v", err)
	}
	var re *RemoteError
	if !errors.As(err, &re) || re.Message != "invalid credentials" {
		t.Errorf("body message not parsed: %v", err)
	}
}

func TestSessionSlotIsClientSide(t *testing.T) {
	repo := newTestRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("session slot must not issue requests")
	}))

	sessions := repo.Session()
	got, err := sessions.Get(t.Context())
	if err != nil || got != nil {
		t.Fatalf("empty slot: got %v, %v", got, err)
	}

	if err := sessions.Set(t.Context(), &models.Session{Token: "tok", Username: "kexy@utp.example"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, err = sessions.Get(t.Context())
	if err != nil || got == nil || got.Token != "tok" {
		t.Fatalf("stored session lost: got %v, %v", got, err)
	}

	if err := sessions.Clear(t.Context()); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	got, _ = sessions.Get(t.Context())
	if got != nil {
		t.Error("cleared slot still holds a session")
	}
}

func TestDashboardSummaryPassesDate(t *testing.T) {
	repo := newTestRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("date"); got != "2026-08-28" {
			t.Errorf("date query lost: %q", got)
		}
		json.NewEncoder(w).Encode(&models.DashboardSummary{Total: 5, Entries: 3, Exits: 2, Punctuality: 67})
	}))

	summary, err := repo.Dashboard().Summary(t.Context(), "2026-08-28")
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.Punctuality != 67 {
		t.Errorf("summary decoded wrong: %+v", summary)
	}
}

func TestManagerLifecycle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	manager := NewManager("", time.Second)
	if err := manager.Initialize(); err == nil {
		t.Error("empty base URL must fail Initialize")
	}

	manager = NewManager(server.URL, time.Second)
	if err := manager.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if manager.GetRepository() == nil {
		t.Fatal("GetRepository returned nil after Initialize")
	}
	if err := manager.HealthCheck(t.Context()); err != nil {
		t.Errorf("HealthCheck failed: %v", err)
	}
	if err := manager.Shutdown(t.Context()); err != nil {
		t.Errorf("Shutdown failed: %v", err)
	}
}
