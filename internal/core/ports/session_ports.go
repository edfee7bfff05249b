package ports

import (
	"context"

	"registros-gateway/internal/core/domain"
)

// Session is the authentication state machine. Mutating calls are
// serialized by the implementation; subscribers receive the post-mutation
// snapshot synchronously.
type Session interface {
	// Init resolves the initial state from persisted tokens. Without a
	// valid token it settles on unauthenticated with no network call.
	Init(ctx context.Context)

	Login(ctx context.Context, email, password string) domain.LoginResult

	// Logout attempts a best-effort remote logout and always clears local
	// state.
	Logout(ctx context.Context)

	// HasRole reports whether the current user holds the role. An admin
	// satisfies every role check.
	HasRole(role domain.Role) bool

	State() domain.AuthState

	Subscribe(fn func(domain.AuthState)) (unsubscribe func())
}
