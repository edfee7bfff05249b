package http

import (
	"encoding/json"
	"net/http"

	"registros-gateway/internal/core/ports"
)

type AuthHandler struct {
	session       ports.Session
	loginRedirect string
}

func NewAuthHandler(session ports.Session, loginRedirect string) *AuthHandler {
	return &AuthHandler{session: session, loginRedirect: loginRedirect}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login godoc
// @Summary      Authenticates a user against the billing backend
// @Description  Stores the issued tokens and resolves the session user.
// @Tags         auth
// @Accept       json
// @Success      200
// @Failure      401
// @Router       /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email y contraseña son requeridos")
		return
	}

	result := h.session.Login(r.Context(), req.Email, req.Password)
	if !result.Success {
		writeJSON(w, http.StatusUnauthorized, result)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    h.session.State().User,
	})
}

// Logout godoc
// @Summary      Logs the authenticated user out
// @Description  Best-effort remote logout; local tokens are always cleared.
// @Tags         auth
// @Success      200
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.session.Logout(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"redirect": h.loginRedirect,
	})
}

// Session returns the current snapshot for the UI shell.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session.State())
}
