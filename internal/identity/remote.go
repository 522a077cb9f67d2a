package identity

import (
	"context"
	"net/http"

	"github.com/campus-iot/attendance-service/internal/repositories/remote"
)

// RemoteProvider delegates the credential check to the remote attendance
// service. Transport failures and rejected credentials both surface here;
// only a 401 is mapped to ErrInvalidCredentials, everything else stays
// opaque to the caller.
type RemoteProvider struct {
	repo *remote.RemoteRepository
}

func NewRemoteProvider(repo *remote.RemoteRepository) *RemoteProvider {
	return &RemoteProvider{repo: repo}
}

func (p *RemoteProvider) Authenticate(ctx context.Context, username, password string) (*Identity, error) {
	session, err := p.repo.Login(ctx, username, password)
	if err != nil {
		if remote.IsStatus(err, http.StatusUnauthorized) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return &Identity{
		ID:       session.Username,
		Name:     session.Username,
		Username: session.Username,
		Role:     session.Role,
	}, nil
}
