package identity

import (
	"testing"
	"time"

	"github.com/campus-iot/attendance-service/internal/models"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("attendance-service", "test-signing-key", time.Hour)

	id := &Identity{ID: "u-1", Name: "Kexy", Username: "kexy@utp.example", Role: models.RoleTeacher}
	token, err := issuer.Issue(id, time.Now())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	claims, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if claims.Subject != "kexy@utp.example" {
		t.Errorf("unexpected subject %s", claims.Subject)
	}
	if claims.Role != models.RoleTeacher {
		t.Errorf("unexpected role %s", claims.Role)
	}
	if claims.Issuer != "attendance-service" {
		t.Errorf("unexpected issuer %s", claims.Issuer)
	}
}

func TestTokenIssuer_RejectsWrongKey(t *testing.T) {
	issuer := NewTokenIssuer("attendance-service", "key-one", time.Hour)
	other := NewTokenIssuer("attendance-service", "key-two", time.Hour)

	token, err := issuer.Issue(&Identity{Username: "a", Role: models.RoleStudent}, time.Now())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := other.Parse(token); err == nil {
		t.Fatal("expected a signature error")
	}
}

func TestTokenIssuer_RejectsIssuerMismatch(t *testing.T) {
	issuer := NewTokenIssuer("service-a", "shared-key", time.Hour)
	other := NewTokenIssuer("service-b", "shared-key", time.Hour)

	token, err := issuer.Issue(&Identity{Username: "a", Role: models.RoleStudent}, time.Now())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := other.Parse(token); err == nil {
		t.Fatal("expected an issuer mismatch error")
	}
}

func TestTokenIssuer_RejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer("attendance-service", "test-signing-key", time.Minute)

	token, err := issuer.Issue(&Identity{Username: "a", Role: models.RoleStudent}, time.Now().Add(-2*time.Hour))
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := issuer.Parse(token); err == nil {
		t.Fatal("expected an expiry error")
	}
}

func TestStaticProvider(t *testing.T) {
	provider, err := NewStaticProvider("Admin@utp.example:secret:admin, kexy@utp.example:clave:teacher")
	if err != nil {
		t.Fatalf("NewStaticProvider failed: %v", err)
	}

	t.Run("authenticates case-insensitively", func(t *testing.T) {
		id, err := provider.Authenticate(t.Context(), "ADMIN@utp.example", "secret")
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if id.Role != models.RoleAdmin {
			t.Errorf("unexpected role %s", id.Role)
		}
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		if _, err := provider.Authenticate(t.Context(), "admin@utp.example", "nope"); err != ErrInvalidCredentials {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("rejects malformed allowlist", func(t *testing.T) {
		if _, err := NewStaticProvider("justauser"); err == nil {
			t.Fatal("expected a parse error")
		}
	})
}
