package ports

import (
	"context"

	"registros-gateway/internal/core/domain"
)

// AuthAPI exposes the backend's authentication endpoints.
type AuthAPI interface {
	Login(ctx context.Context, creds domain.Credentials) domain.Envelope
	Logout(ctx context.Context) domain.Envelope
	Profile(ctx context.Context) domain.Envelope
}
