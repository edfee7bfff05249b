package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"registros-gateway/internal/core/ports"
)

// NewHandler wires the proxy routes. InjectBearer fills in stored tokens on
// the internal API surface before RequireBearer checks for them, mirroring
// the request-hook behavior of the UI shell.
func NewHandler(session ports.Session, registros ports.RegistrosAPI, tokens ports.TokenStore, loginRedirect string) http.Handler {
	authHandler := NewAuthHandler(session, loginRedirect)
	dashboardHandler := NewDashboardHandler(registros)
	registroHandler := NewRegistroHandler(registros)
	exportHandler := NewExportHandler(registros)
	preferencesHandler := NewPreferencesHandler(tokens)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(InjectBearer(tokens))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.Get("/session", authHandler.Session)
	})

	r.Route("/dashboard", func(r chi.Router) {
		r.With(RequireBearer).Get("/stats", dashboardHandler.Stats)
	})

	r.Route("/registro/list", func(r chi.Router) {
		r.Use(RequireBearer)
		r.Get("/data", registroHandler.List)
		r.Post("/data", registroHandler.Create)
		r.Put("/data", registroHandler.Update)
		r.Delete("/data", registroHandler.Delete)
		r.Post("/bulk-delete", registroHandler.BulkDelete)
		r.Get("/asesores", registroHandler.Asesores)
		r.Get("/cuentas", registroHandler.Cuentas)
		r.Get("/export", exportHandler.Export)
	})

	r.Route("/preferences", func(r chi.Router) {
		r.Get("/theme", preferencesHandler.GetTheme)
		r.Put("/theme", preferencesHandler.SetTheme)
	})

	return r
}
