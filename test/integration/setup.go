package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"registros-gateway/internal/adapters/backend"
	handler "registros-gateway/internal/adapters/handler/http"
	"registros-gateway/internal/adapters/storage/redis"
	"registros-gateway/internal/core/domain"
	"registros-gateway/internal/core/ports"
	"registros-gateway/internal/core/services"
)

const jwtSecret = "test-secret"

func setupRedisContainer(ctx context.Context) (testcontainers.Container, *goredis.Client, error) {
	container, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start redis container: %w", err)
	}

	connStr, err := container.ConnectionString(ctx)
	if err != nil {
		return nil, nil, err
	}

	opts, err := goredis.ParseURL(connStr)
	if err != nil {
		return nil, nil, err
	}

	return container, goredis.NewClient(opts), nil
}

// fakeBackend is an in-memory stand-in for the billing backend: JWT login,
// bearer-guarded registro endpoints, Django-style error payloads.
type fakeBackend struct {
	mu      sync.Mutex
	nextID  int
	records []domain.RegistroRecord
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{nextID: 1}
}

func (b *fakeBackend) mintToken(t *testing.T) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":   "1",
		"email": "admin@servicio.com",
		"exp":   time.Now().Add(15 * time.Minute).Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(jwtSecret))
	require.NoError(t, err)
	return signed
}

func (b *fakeBackend) authorized(r *http.Request) bool {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return false
	}
	_, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "), func(*jwt.Token) (any, error) {
		return []byte(jwtSecret), nil
	})
	return err == nil
}

func (b *fakeBackend) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds domain.Credentials
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds.Password != "admin123" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Credenciales inválidas"})
			return
		}
		writeJSON(w, http.StatusOK, domain.LoginResponse{
			AccessToken:  b.mintToken(t),
			RefreshToken: "refresh-token",
			User:         domain.LoginUser{ID: 1, Email: creds.Email, Name: "Admin", Role: "admin"},
		})
	})

	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "sesión cerrada"})
	})

	mux.HandleFunc("GET /auth/profile", func(w http.ResponseWriter, r *http.Request) {
		if !b.authorized(r) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Token inválido"})
			return
		}
		writeJSON(w, http.StatusOK, domain.Profile{
			ID: 1, Email: "admin@servicio.com", FirstName: "Admin", IsStaff: true,
		})
	})

	mux.HandleFunc("/api/registros/", func(w http.ResponseWriter, r *http.Request) {
		if !b.authorized(r) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Token inválido"})
			return
		}

		switch {
		case r.URL.Path == "/api/registros/stats":
			b.serveStats(w)
		case r.URL.Path == "/api/registros/" && r.Method == http.MethodGet:
			b.serveList(w)
		case r.URL.Path == "/api/registros/" && r.Method == http.MethodPost:
			b.serveCreate(w, r)
		case r.Method == http.MethodDelete:
			b.serveDelete(w, r)
		default:
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "No encontrado"})
		}
	})

	return mux
}

func (b *fakeBackend) serveList(w http.ResponseWriter) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, domain.RegistroPage{Registros: b.records, Total: len(b.records)})
}

func (b *fakeBackend) serveCreate(w http.ResponseWriter, r *http.Request) {
	var form domain.RegistroForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Payload inválido"})
		return
	}

	b.mu.Lock()
	record := domain.RegistroRecord{
		ID:                b.nextID,
		IDCuenta:          form.IDCuenta,
		IDAcuerdoServicio: form.IDAcuerdoServicio,
		IDCargoFacturable: form.IDCargoFacturable,
		FechaAjuste:       form.FechaAjuste,
		AsesorQueAjusto:   form.AsesorQueAjusto,
		ValorAjustado:     form.ValorAjustado,
		ObsAdicional:      form.ObsAdicional,
		Justificacion:     form.Justificacion,
		CreatedAt:         time.Now().UTC().Format(time.RFC3339),
		Usuario:           1,
	}
	b.nextID++
	b.records = append(b.records, record)
	b.mu.Unlock()

	writeJSON(w, http.StatusCreated, record)
}

func (b *fakeBackend) serveDelete(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	id, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "ID inválido"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i, record := range b.records {
		if record.ID == id {
			b.records = append(b.records[:i], b.records[i+1:]...)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "No encontrado"})
}

func (b *fakeBackend) serveStats(w http.ResponseWriter) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var stats domain.RegistroStats
	stats.TotalRegistros = len(b.records)
	for _, record := range b.records {
		stats.ValorNeto += record.ValorAjustado
		if record.ValorAjustado >= 0 {
			stats.TotalValorPositivo += record.ValorAjustado
		} else {
			stats.TotalValorNegativo += record.ValorAjustado
		}
	}
	writeJSON(w, http.StatusOK, stats)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type TestApp struct {
	Server         *httptest.Server
	Client         *http.Client
	Backend        *httptest.Server
	Tokens         ports.TokenStore
	RedisClient    *goredis.Client
	RedisContainer testcontainers.Container
}

func setupTestApp(t *testing.T) *TestApp {
	ctx := context.Background()

	container, redisClient, err := setupRedisContainer(ctx)
	require.NoError(t, err)

	fake := newFakeBackend()
	backendServer := httptest.NewServer(fake.handler(t))

	kv := redis.New(redisClient, "registros-test:")
	tokens := services.NewTokenService(kv, time.Hour)
	client := backend.New(backendServer.URL, 5*time.Second, tokens)
	session := services.NewSessionService(services.NewAuthService(client), tokens)
	registros := services.NewRegistrosService(client)
	session.Init(ctx)

	router := handler.NewHandler(session, registros, tokens, "/auth/login")
	server := httptest.NewServer(router)

	return &TestApp{
		Server:         server,
		Client:         server.Client(),
		Backend:        backendServer,
		Tokens:         tokens,
		RedisClient:    redisClient,
		RedisContainer: container,
	}
}

// restartGateway builds a fresh gateway stack over the same redis instance
// and backend, simulating a process restart.
func (app *TestApp) restartGateway(t *testing.T) *httptest.Server {
	t.Helper()

	kv := redis.New(app.RedisClient, "registros-test:")
	tokens := services.NewTokenService(kv, time.Hour)
	client := backend.New(app.Backend.URL, 5*time.Second, tokens)
	session := services.NewSessionService(services.NewAuthService(client), tokens)
	registros := services.NewRegistrosService(client)
	session.Init(context.Background())

	return httptest.NewServer(handler.NewHandler(session, registros, tokens, "/auth/login"))
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.Backend.Close()
	_ = app.RedisClient.Close()
	if err := app.RedisContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}
