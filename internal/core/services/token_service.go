package services

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"registros-gateway/internal/core/domain"
	"registros-gateway/internal/core/ports"
)

// Storage keys, one string slot each.
const (
	keyAccessToken  = "auth_token"
	keyRefreshToken = "refresh_token"
	keyTokenExpiry  = "token_expiry"
	keyUserData     = "user_data"
	keyTheme        = "theme"
)

// DefaultTokenTTL is the locally assumed token lifetime. The expiry is
// recomputed at storage time instead of decoding the token's own expiry;
// the backend contract keeps both at one hour.
const DefaultTokenTTL = time.Hour

type tokenService struct {
	kv  ports.KeyValue
	ttl time.Duration
	now func() time.Time
}

func NewTokenService(kv ports.KeyValue, ttl time.Duration) ports.TokenStore {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &tokenService{kv: kv, ttl: ttl, now: time.Now}
}

func (s *tokenService) Store(ctx context.Context, access, refresh string) error {
	if s.kv == nil || !s.kv.Available() {
		return domain.ErrStoreUnavailable
	}
	expiry := s.now().Add(s.ttl).UnixMilli()
	if err := s.kv.Set(ctx, keyAccessToken, access); err != nil {
		return err
	}
	if err := s.kv.Set(ctx, keyRefreshToken, refresh); err != nil {
		return err
	}
	return s.kv.Set(ctx, keyTokenExpiry, strconv.FormatInt(expiry, 10))
}

func (s *tokenService) HasValidToken(ctx context.Context) bool {
	if s.kv == nil || !s.kv.Available() {
		return false
	}
	token, ok, err := s.kv.Get(ctx, keyAccessToken)
	if err != nil || !ok || token == "" {
		return false
	}
	raw, ok, err := s.kv.Get(ctx, keyTokenExpiry)
	if err != nil || !ok {
		return false
	}
	expiry, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return false
	}
	return s.now().UnixMilli() < expiry
}

func (s *tokenService) AccessToken(ctx context.Context) (string, bool) {
	if !s.HasValidToken(ctx) {
		return "", false
	}
	token, ok, err := s.kv.Get(ctx, keyAccessToken)
	if err != nil || !ok {
		return "", false
	}
	return token, true
}

func (s *tokenService) Clear(ctx context.Context) error {
	if s.kv == nil || !s.kv.Available() {
		return nil
	}
	return s.kv.Del(ctx, keyAccessToken, keyRefreshToken, keyTokenExpiry, keyUserData)
}

func (s *tokenService) CacheUser(ctx context.Context, user *domain.User) error {
	if s.kv == nil || !s.kv.Available() {
		return domain.ErrStoreUnavailable
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, keyUserData, string(raw))
}

func (s *tokenService) CachedUser(ctx context.Context) (*domain.User, bool) {
	if s.kv == nil || !s.kv.Available() {
		return nil, false
	}
	raw, ok, err := s.kv.Get(ctx, keyUserData)
	if err != nil || !ok {
		return nil, false
	}
	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, false
	}
	return &user, true
}

func (s *tokenService) Theme(ctx context.Context) string {
	if s.kv == nil || !s.kv.Available() {
		return "light"
	}
	theme, ok, err := s.kv.Get(ctx, keyTheme)
	if err != nil || !ok || theme == "" {
		return "light"
	}
	return theme
}

func (s *tokenService) SetTheme(ctx context.Context, theme string) error {
	if s.kv == nil || !s.kv.Available() {
		return domain.ErrStoreUnavailable
	}
	return s.kv.Set(ctx, keyTheme, theme)
}
