package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registros-gateway/internal/core/domain"
)

func postJSON(t *testing.T, app *TestApp, path string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := app.Client.Post(app.Server.URL+path, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

// TestGatewayFlow covers the whole lifecycle: login -> list -> create ->
// stats -> export -> logout, with tokens persisted in redis and injected on
// the proxy routes.
func TestGatewayFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	// Unauthenticated requests are rejected before reaching the backend.
	resp, err := app.Client.Get(app.Server.URL + "/registro/list/data")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Login. The gateway stores the issued tokens in redis.
	resp = postJSON(t, app, "/auth/login", map[string]string{
		"email":    "admin@servicio.com",
		"password": "admin123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var loginResp struct {
		Success bool        `json:"success"`
		User    domain.User `json:"user"`
	}
	decodeBody(t, resp, &loginResp)
	require.True(t, loginResp.Success)
	assert.Equal(t, domain.RoleAdmin, loginResp.User.Role)

	// The session endpoint reflects the authenticated user.
	resp, err = app.Client.Get(app.Server.URL + "/auth/session")
	require.NoError(t, err)
	var state domain.AuthState
	decodeBody(t, resp, &state)
	require.True(t, state.IsAuthenticated)
	assert.Equal(t, "admin@servicio.com", state.User.Email)

	// Listing now works without a client-side header: the stored token is
	// injected on the proxy routes.
	resp, err = app.Client.Get(app.Server.URL + "/registro/list/data")
	require.NoError(t, err)
	var page domain.RegistroPage
	decodeBody(t, resp, &page)
	assert.Equal(t, 0, page.Total)

	// Create two adjustments.
	for _, form := range []domain.RegistroForm{
		{
			IDCuenta:          "CTA-001",
			IDAcuerdoServicio: "AS-22",
			IDCargoFacturable: "CF-9",
			FechaAjuste:       "2026-08-15",
			AsesorQueAjusto:   "María López",
			ValorAjustado:     -150.5,
			Justificacion:     "Cobro duplicado",
		},
		{
			IDCuenta:          "CTA-002",
			IDAcuerdoServicio: "AS-23",
			IDCargoFacturable: "CF-1",
			FechaAjuste:       "2026-08-16",
			AsesorQueAjusto:   "Juan Pérez",
			ValorAjustado:     450,
			Justificacion:     "Ajuste por promoción",
		},
	} {
		resp = postJSON(t, app, "/registro/list/data", form)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var created domain.Registro
		decodeBody(t, resp, &created)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, form.IDCuenta, created.IDCuenta)
	}

	// Incomplete forms are rejected locally.
	resp = postJSON(t, app, "/registro/list/data", domain.RegistroForm{IDCuenta: "CTA-003"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp, err = app.Client.Get(app.Server.URL + "/registro/list/data")
	require.NoError(t, err)
	decodeBody(t, resp, &page)
	require.Equal(t, 2, page.Total)

	// Dashboard aggregates, reshaped from the backend stats.
	resp, err = app.Client.Get(app.Server.URL + "/dashboard/stats")
	require.NoError(t, err)
	var stats domain.DashboardStats
	decodeBody(t, resp, &stats)
	assert.Equal(t, 2, stats.TotalRegistros)
	assert.Equal(t, 450.0, stats.ValorPositivo)
	assert.Equal(t, 150.5, stats.ValorNegativo)
	assert.Equal(t, 75, stats.EficienciaPromedio)

	// CSV export from the live listing.
	resp, err = app.Client.Get(app.Server.URL + "/registro/list/export")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "registros_ajustes_")

	var csv bytes.Buffer
	_, err = csv.ReadFrom(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	lines := strings.Split(csv.String(), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID Cuenta,"))
	assert.Contains(t, lines[1], `"María López"`)

	// Logout clears the stored tokens; the proxy routes lock again.
	resp = postJSON(t, app, "/auth/logout", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = app.Client.Get(app.Server.URL + "/registro/list/data")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// TestGatewayLoginRejected checks that backend auth failures surface with
// the backend's own message.
func TestGatewayLoginRejected(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	resp := postJSON(t, app, "/auth/login", map[string]string{
		"email":    "admin@servicio.com",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var result domain.LoginResult
	decodeBody(t, resp, &result)
	assert.False(t, result.Success)
	assert.Equal(t, "Credenciales inválidas", result.Error)
}

// TestGatewayTokenSurvivesRestart rebuilds the gateway stack over the same
// redis instance and checks the session is resolved from the persisted token.
func TestGatewayTokenSurvivesRestart(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	resp := postJSON(t, app, "/auth/login", map[string]string{
		"email":    "admin@servicio.com",
		"password": "admin123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	restarted := app.restartGateway(t)
	defer restarted.Close()

	resp, err := app.Client.Get(restarted.URL + "/auth/session")
	require.NoError(t, err)
	var state domain.AuthState
	decodeBody(t, resp, &state)
	assert.True(t, state.IsAuthenticated, "session restored from redis-persisted tokens")
}
