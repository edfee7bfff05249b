package services

import (
	"context"
	"log"
	"sort"
	"sync"

	"registros-gateway/internal/core/domain"
	"registros-gateway/internal/core/ports"
)

// SessionService owns the authentication state machine:
// loading -> authenticated(user) | unauthenticated.
//
// Mutating calls (Init, Login, Logout) are serialized so two overlapping
// logins cannot interleave their token writes and state transitions.
// Subscribers are notified synchronously with the post-mutation snapshot,
// in subscription order.
type SessionService struct {
	auth   ports.AuthAPI
	tokens ports.TokenStore

	opMu sync.Mutex // serializes state-mutating operations

	mu        sync.RWMutex
	state     domain.AuthState
	listeners map[int]func(domain.AuthState)
	nextID    int
}

func NewSessionService(auth ports.AuthAPI, tokens ports.TokenStore) *SessionService {
	return &SessionService{
		auth:      auth,
		tokens:    tokens,
		state:     domain.AuthState{IsLoading: true},
		listeners: map[int]func(domain.AuthState){},
	}
}

// Init resolves the session from persisted tokens. Without a valid token it
// settles on unauthenticated without touching the network; with one, the
// profile is fetched and any failure clears the tokens.
func (s *SessionService) Init(ctx context.Context) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if !s.tokens.HasValidToken(ctx) {
		s.set(domain.AuthState{})
		return
	}

	env := s.auth.Profile(ctx)
	if !env.Success {
		_ = s.tokens.Clear(ctx)
		s.set(domain.AuthState{})
		return
	}

	var profile domain.Profile
	if err := env.Decode(&profile); err != nil {
		_ = s.tokens.Clear(ctx)
		s.set(domain.AuthState{})
		return
	}

	user := UserFromProfile(profile)
	if err := s.tokens.CacheUser(ctx, &user); err != nil {
		log.Printf("session: caching user failed: %v", err)
	}
	s.set(domain.AuthState{User: &user, IsAuthenticated: true})
}

// Login authenticates against the backend. Every failure mode is converted
// into a LoginResult; nothing escapes to the caller. On success the order
// is fixed: store tokens, cache user, transition, notify.
func (s *SessionService) Login(ctx context.Context, email, password string) domain.LoginResult {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.setLoading()

	env := s.auth.Login(ctx, domain.Credentials{Email: email, Password: password})
	if !env.Success {
		s.set(domain.AuthState{})
		msg := env.Error
		if msg == "" {
			msg = domain.MsgInvalidLogin
		}
		return domain.LoginResult{Success: false, Error: msg}
	}

	var login domain.LoginResponse
	if err := env.Decode(&login); err != nil {
		s.set(domain.AuthState{})
		return domain.LoginResult{Success: false, Error: domain.MsgConnectionError}
	}

	if err := s.tokens.Store(ctx, login.AccessToken, login.RefreshToken); err != nil {
		s.set(domain.AuthState{})
		return domain.LoginResult{Success: false, Error: domain.MsgConnectionError}
	}

	user := UserFromLogin(login.User)
	if err := s.tokens.CacheUser(ctx, &user); err != nil {
		log.Printf("session: caching user failed: %v", err)
	}

	s.set(domain.AuthState{User: &user, IsAuthenticated: true})
	return domain.LoginResult{Success: true}
}

// Logout tells the backend best-effort; a failed remote call is logged and
// never blocks the local cleanup.
func (s *SessionService) Logout(ctx context.Context) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if env := s.auth.Logout(ctx); !env.Success {
		log.Printf("session: remote logout failed: %s", env.Error)
	}

	_ = s.tokens.Clear(ctx)
	s.set(domain.AuthState{})
}

func (s *SessionService) HasRole(role domain.Role) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state.User == nil {
		return false
	}
	return s.state.User.Role == role || s.state.User.Role == domain.RoleAdmin
}

// State returns a copy of the current snapshot.
func (s *SessionService) State() domain.AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe registers a listener for state changes and returns its
// unsubscribe function. Listeners run synchronously on the mutating
// goroutine.
func (s *SessionService) Subscribe(fn func(domain.AuthState)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *SessionService) setLoading() {
	s.mu.Lock()
	s.state.IsLoading = true
	state := s.state
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
}

func (s *SessionService) set(state domain.AuthState) {
	s.mu.Lock()
	s.state = state
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
}

// snapshotListeners returns the listeners in subscription order. Caller
// must hold mu.
func (s *SessionService) snapshotListeners() []func(domain.AuthState) {
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	fns := make([]func(domain.AuthState), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.listeners[id])
	}
	return fns
}
