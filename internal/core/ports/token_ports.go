package ports

import (
	"context"

	"registros-gateway/internal/core/domain"
)

// KeyValue is the single mutable storage slot shared by the token store and
// the preference endpoints. A missing key is not an error.
type KeyValue interface {
	Available() bool
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, keys ...string) error
}

// TokenStore persists the auth tokens and derived user cache.
type TokenStore interface {
	TokenProvider

	// Store writes both tokens and an expiry of now + the fixed TTL.
	Store(ctx context.Context, access, refresh string) error

	// HasValidToken reports whether a token and expiry are present and the
	// expiry has not passed. Always false when the storage is unavailable.
	HasValidToken(ctx context.Context) bool

	// Clear removes tokens, expiry and cached user data. Idempotent.
	Clear(ctx context.Context) error

	CacheUser(ctx context.Context, user *domain.User) error
	CachedUser(ctx context.Context) (*domain.User, bool)

	Theme(ctx context.Context) string
	SetTheme(ctx context.Context, theme string) error
}
