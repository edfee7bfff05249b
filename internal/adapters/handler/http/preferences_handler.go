package http

import (
	"encoding/json"
	"net/http"

	"registros-gateway/internal/core/ports"
)

type PreferencesHandler struct {
	tokens ports.TokenStore
}

func NewPreferencesHandler(tokens ports.TokenStore) *PreferencesHandler {
	return &PreferencesHandler{tokens: tokens}
}

type themePayload struct {
	Theme string `json:"theme"`
}

func (h *PreferencesHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, themePayload{Theme: h.tokens.Theme(r.Context())})
}

func (h *PreferencesHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req themePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Theme != "light" && req.Theme != "dark" {
		writeError(w, http.StatusBadRequest, "theme must be light or dark")
		return
	}
	if err := h.tokens.SetTheme(r.Context(), req.Theme); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to persist theme")
		return
	}
	writeJSON(w, http.StatusOK, req)
}
