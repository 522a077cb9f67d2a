package identity

import (
	"context"
	"fmt"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"

	"github.com/campus-iot/attendance-service/internal/models"
)

// CasdoorConfig holds the connection settings for the Casdoor IdP.
type CasdoorConfig struct {
	Endpoint         string
	ClientID         string
	ClientSecret     string
	Certificate      string
	OrganizationName string
	ApplicationName  string
}

// CasdoorProvider delegates credential checks to a Casdoor instance.
type CasdoorProvider struct {
	client *casdoorsdk.Client
}

func NewCasdoorProvider(config CasdoorConfig) *CasdoorProvider {
	client := casdoorsdk.NewClient(
		config.Endpoint,
		config.ClientID,
		config.ClientSecret,
		config.Certificate,
		config.OrganizationName,
		config.ApplicationName,
	)
	return &CasdoorProvider{client: client}
}

func (p *CasdoorProvider) Authenticate(ctx context.Context, username, password string) (*Identity, error) {
	user, err := p.client.GetUserByEmail(username)
	if err != nil {
		return nil, fmt.Errorf("casdoor lookup failed: %w", err)
	}
	if user == nil || user.Password != password {
		return nil, ErrInvalidCredentials
	}

	return &Identity{
		ID:       user.Id,
		Name:     user.DisplayName,
		Username: user.Email,
		Role:     roleFromCasdoor(user),
	}, nil
}

func roleFromCasdoor(user *casdoorsdk.User) models.UserRole {
	switch user.Tag {
	case "teacher":
		return models.RoleTeacher
	case "admin":
		return models.RoleAdmin
	default:
		return models.RoleStudent
	}
}
