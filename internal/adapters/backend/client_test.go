package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registros-gateway/internal/core/domain"
)

type staticTokens struct {
	token string
}

func (s staticTokens) AccessToken(context.Context) (string, bool) {
	return s.token, s.token != ""
}

func jsonHandler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func TestGetSuccess(t *testing.T) {
	server := httptest.NewServer(jsonHandler(http.StatusOK, `{"total": 3}`))
	defer server.Close()

	client := New(server.URL, time.Second, nil)
	env := client.Get(context.Background(), "/api/registros/")

	require.True(t, env.Success)
	assert.JSONEq(t, `{"total": 3}`, string(env.Data))
	assert.Empty(t, env.Error)
}

func TestRequestHeaders(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		jsonHandler(http.StatusOK, `{}`)(w, r)
	}))
	defer server.Close()

	client := New(server.URL, time.Second, staticTokens{token: "tok-123"})
	client.Post(context.Background(), "/auth/login", map[string]string{"email": "a@b.com"})

	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.Equal(t, "Bearer tok-123", got.Get("Authorization"))
	assert.NotEmpty(t, got.Get("X-Request-ID"))
}

func TestNoBearerWithoutToken(t *testing.T) {
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		jsonHandler(http.StatusOK, `{}`)(w, r)
	}))
	defer server.Close()

	client := New(server.URL, time.Second, staticTokens{})
	client.Get(context.Background(), "/auth/profile")

	assert.Empty(t, auth)
}

func TestTransportFailure(t *testing.T) {
	client := New("http://127.0.0.1:1", 100*time.Millisecond, nil)

	env := client.Get(context.Background(), "/api/registros/")

	require.False(t, env.Success)
	assert.Equal(t, domain.MsgConnectionError, env.Error)
}

func TestNonJSONResponseWrapped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<h1>hola</h1>"))
	}))
	defer server.Close()

	client := New(server.URL, time.Second, nil)
	env := client.Get(context.Background(), "/")

	require.True(t, env.Success)
	assert.JSONEq(t, `{"message": "<h1>hola</h1>"}`, string(env.Data))
}

func TestEmptyJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(server.URL, time.Second, nil)
	env := client.Get(context.Background(), "/")

	require.True(t, env.Success)
	assert.Equal(t, json.RawMessage("null"), env.Data)
}

func TestInvalidJSONBody(t *testing.T) {
	server := httptest.NewServer(jsonHandler(http.StatusBadGateway, `{"broken`))
	defer server.Close()

	client := New(server.URL, time.Second, nil)
	env := client.Get(context.Background(), "/")

	require.False(t, env.Success)
	assert.Contains(t, env.Error, domain.MsgConnectionError)
	assert.Contains(t, env.Error, "502")
}

func TestErrorResolution(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "explicit error field",
			body: `{"error": "Cuenta bloqueada"}`,
			want: "Cuenta bloqueada",
		},
		{
			name: "message field",
			body: `{"message": "Sesión expirada"}`,
			want: "Sesión expirada",
		},
		{
			name: "detail field",
			body: `{"detail": "No encontrado"}`,
			want: "No encontrado",
		},
		{
			name: "error wins over detail",
			body: `{"detail": "secundario", "error": "principal"}`,
			want: "principal",
		},
		{
			name: "non_field_errors joined",
			body: `{"non_field_errors": ["Primero", "Segundo"]}`,
			want: "Primero, Segundo",
		},
		{
			name: "field errors in sorted field order",
			body: `{"valor_ajustado": ["Debe ser numérico"], "id_cuenta": ["Requerido", "Inválido"]}`,
			want: "id_cuenta: Requerido, Inválido; valor_ajustado: Debe ser numérico",
		},
		{
			name: "non_field_errors beats field errors",
			body: `{"non_field_errors": ["General"], "id_cuenta": ["Requerido"]}`,
			want: "General",
		},
		{
			name: "unrecognized payload",
			body: `{"weird": 42}`,
			want: domain.MsgUnknownError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(jsonHandler(http.StatusBadRequest, tt.body))
			defer server.Close()

			client := New(server.URL, time.Second, nil)
			env := client.Get(context.Background(), "/")

			require.False(t, env.Success)
			assert.Equal(t, tt.want, env.Error)
			assert.JSONEq(t, tt.body, string(env.Data), "error responses keep the raw payload")
		})
	}
}

func TestDownload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte("a,b,c"))
	}))
	defer server.Close()

	client := New(server.URL, time.Second, nil)
	data, err := client.Download(context.Background(), "/api/registros/export/?format=csv")

	require.NoError(t, err)
	assert.Equal(t, "a,b,c", string(data))
}

func TestDownloadErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := New(server.URL, time.Second, nil)
	_, err := client.Download(context.Background(), "/api/registros/export/")

	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.MsgExportError)
	assert.Contains(t, err.Error(), "403")
}

func TestDownloadTransportError(t *testing.T) {
	client := New("http://127.0.0.1:1", 100*time.Millisecond, nil)

	_, err := client.Download(context.Background(), "/api/registros/export/")

	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.MsgExportConnError)
}

func TestBaseURLTrailingSlash(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		jsonHandler(http.StatusOK, `{}`)(w, r)
	}))
	defer server.Close()

	client := New(server.URL+"/", time.Second, nil)
	client.Get(context.Background(), "/auth/profile")

	assert.Equal(t, "/auth/profile", path)
}
