package http

import (
	"net/http"
	"strings"

	"registros-gateway/internal/core/domain"
	"registros-gateway/internal/core/ports"
)

// RequireBearer rejects requests without a well-formed bearer header. The
// header's presence is all this layer checks; real authorization happens in
// the backend the request is forwarded to.
func RequireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if bearerToken(r.Header.Get("Authorization")) == "" {
			writeError(w, http.StatusUnauthorized, domain.MsgTokenRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// InjectBearer fills in the Authorization header on internal API and stats
// paths from the stored token, when the request carries none and a valid
// token exists. Best-effort convenience, not an access-control boundary;
// a no-op when the token store is unavailable.
func InjectBearer(tokens ports.TokenStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if internalAPIPath(r.URL.Path) && r.Header.Get("Authorization") == "" {
				if token, ok := tokens.AccessToken(r.Context()); ok {
					r.Header.Set("Authorization", "Bearer "+token)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func internalAPIPath(path string) bool {
	return strings.HasPrefix(path, "/registro/") || strings.Contains(path, "/stats")
}
