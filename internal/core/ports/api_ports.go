package ports

import (
	"context"

	"registros-gateway/internal/core/domain"
)

// APIClient is the HTTP wrapper around the billing backend. Every call
// returns the uniform envelope; transport failures are folded into it and
// never surface as errors.
type APIClient interface {
	Get(ctx context.Context, endpoint string) domain.Envelope
	Post(ctx context.Context, endpoint string, body any) domain.Envelope
	Put(ctx context.Context, endpoint string, body any) domain.Envelope
	Patch(ctx context.Context, endpoint string, body any) domain.Envelope
	Delete(ctx context.Context, endpoint string) domain.Envelope

	// Download fetches a non-JSON document (the export endpoint).
	Download(ctx context.Context, endpoint string) ([]byte, error)
}

// TokenProvider hands out the current access token, if any.
type TokenProvider interface {
	AccessToken(ctx context.Context) (string, bool)
}
