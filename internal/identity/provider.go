// Package identity abstracts credential verification behind a provider
// interface so the auth service never owns credentials itself.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/campus-iot/attendance-service/internal/models"
)

// ErrInvalidCredentials is returned when a provider rejects the pair.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Identity is what a provider knows about an authenticated principal.
type Identity struct {
	ID       string
	Name     string
	Username string
	Role     models.UserRole
}

// Provider verifies a username/password pair.
type Provider interface {
	Authenticate(ctx context.Context, username, password string) (*Identity, error)
}

// StaticProvider checks credentials against an allow-list loaded from
// configuration. It replaces the hard-coded demo logins of earlier
// iterations; credentials are never compiled in.
type StaticProvider struct {
	entries map[string]staticEntry
}

type staticEntry struct {
	password string
	role     models.UserRole
}

// NewStaticProvider parses "user:password:role" triples separated by
// commas, e.g. ALLOWLIST="alice@example:secret:admin,bob@example:pw:teacher".
func NewStaticProvider(allowlist string) (*StaticProvider, error) {
	entries := make(map[string]staticEntry)
	for _, triple := range strings.Split(allowlist, ",") {
		triple = strings.TrimSpace(triple)
		if triple == "" {
			continue
		}
		parts := strings.SplitN(triple, ":", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("malformed allowlist entry %q", triple)
		}
		username := strings.ToLower(strings.TrimSpace(parts[0]))
		entries[username] = staticEntry{
			password: parts[1],
			role:     models.UserRole(parts[2]),
		}
	}
	return &StaticProvider{entries: entries}, nil
}

func (p *StaticProvider) Authenticate(ctx context.Context, username, password string) (*Identity, error) {
	normalized := strings.ToLower(strings.TrimSpace(username))
	entry, ok := p.entries[normalized]
	if !ok || entry.password != password {
		return nil, ErrInvalidCredentials
	}
	return &Identity{
		ID:       normalized,
		Name:     normalized,
		Username: normalized,
		Role:     entry.role,
	}, nil
}
