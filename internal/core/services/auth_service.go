package services

import (
	"context"
	"strconv"
	"strings"

	"registros-gateway/internal/core/domain"
	"registros-gateway/internal/core/ports"
)

type authService struct {
	client ports.APIClient
}

func NewAuthService(client ports.APIClient) ports.AuthAPI {
	return &authService{client: client}
}

func (s *authService) Login(ctx context.Context, creds domain.Credentials) domain.Envelope {
	return s.client.Post(ctx, endpointLogin, creds)
}

func (s *authService) Logout(ctx context.Context) domain.Envelope {
	return s.client.Post(ctx, endpointLogout, nil)
}

func (s *authService) Profile(ctx context.Context) domain.Envelope {
	return s.client.Get(ctx, endpointProfile)
}

// UserFromLogin maps the login payload's embedded user, which already
// carries an explicit role.
func UserFromLogin(u domain.LoginUser) domain.User {
	return domain.User{
		ID:    strconv.Itoa(u.ID),
		Email: u.Email,
		Name:  u.Name,
		Role:  domain.Role(u.Role),
	}
}

// UserFromProfile maps the profile payload. The role is derived: staff or
// superuser accounts are admins, everyone else is a plain user. An empty
// assembled name falls back to the email.
func UserFromProfile(p domain.Profile) domain.User {
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name == "" {
		name = p.Email
	}
	role := domain.RoleUser
	if p.IsSuperuser || p.IsStaff {
		role = domain.RoleAdmin
	}
	return domain.User{
		ID:    strconv.Itoa(p.ID),
		Email: p.Email,
		Name:  name,
		Role:  role,
	}
}
