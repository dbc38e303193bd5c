package edge_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/hireflow/internal/config"
	"github.com/dmitrymomot/hireflow/internal/edge"
)

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"path":       r.URL.Path,
			"query":      r.URL.RawQuery,
			"tenant":     r.Header.Get("X-Tenant-Subdomain"),
			"request_id": r.Header.Get("X-Request-ID"),
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func staticDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o600))
	return dir
}

func newEdge(t *testing.T, cfg config.Edge) http.Handler {
	t.Helper()

	if cfg.BackendHealth == "" {
		cfg.BackendHealth = "/health"
	}
	h, err := edge.New(cfg)
	require.NoError(t, err)
	return h
}

func TestEdgeProxiesAPI(t *testing.T) {
	t.Parallel()

	backend := newBackend(t)
	h := newEdge(t, config.Edge{
		BackendURL: backend.URL,
		StaticDir:  staticDir(t),
		BaseDomain: "hireflow.io",
	})

	req := httptest.NewRequest(http.MethodGet, "/api/jobs?skip=0&limit=10", nil)
	req.Host = "acme.hireflow.io"
	req.Header.Set("X-Request-ID", "req-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "/api/jobs", got["path"])
	require.Equal(t, "skip=0&limit=10", got["query"])
	require.Equal(t, "acme", got["tenant"])
	require.Equal(t, "req-1", got["request_id"])
	require.Equal(t, "req-1", rec.Header().Get("X-Request-ID"))
}

func TestEdgeAPISubdomain(t *testing.T) {
	t.Parallel()

	h := newEdge(t, config.Edge{
		BackendURL: newBackend(t).URL,
		StaticDir:  staticDir(t),
		BaseDomain: "hireflow.io",
	})

	req := httptest.NewRequest(http.MethodGet, "/docs", nil)
	req.Host = "api.hireflow.io"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var got map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "/docs", got["path"])
	require.Empty(t, got["tenant"])
}

func TestEdgeBackendDown(t *testing.T) {
	t.Parallel()

	backend := httptest.NewServer(http.NotFoundHandler())
	backend.Close()

	h := newEdge(t, config.Edge{BackendURL: backend.URL, StaticDir: staticDir(t)})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/jobs", nil))
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "NETWORK_ERROR", body["code"])
	require.Equal(t, "Impossible de contacter le serveur. Vérifiez votre connexion internet.", body["detail"])

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, "unavailable: backend", rec.Body.String())
}

func TestEdgeGuardsDashboards(t *testing.T) {
	t.Parallel()

	h := newEdge(t, config.Edge{BackendURL: newBackend(t).URL, StaticDir: staticDir(t)})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/users", nil))
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/auth/choice", rec.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: "token"})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "app")
}

func TestEdgeStaticFiles(t *testing.T) {
	t.Parallel()

	h := newEdge(t, config.Edge{BackendURL: newBackend(t).URL, StaticDir: staticDir(t)})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/app.js", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "console.log(1)", rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/choice", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "<html>app</html>", rec.Body.String())
}

func TestEdgeOperationalEndpoints(t *testing.T) {
	t.Parallel()

	backend := newBackend(t)
	h := newEdge(t, config.Edge{BackendURL: backend.URL, StaticDir: staticDir(t)})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "hireflow_edge_http_requests_total")
}

func TestEdgeConfigErrors(t *testing.T) {
	t.Parallel()

	_, err := edge.New(config.Edge{BackendURL: "http://localhost:8000"})
	require.ErrorIs(t, err, edge.ErrNoFrontend)

	_, err = edge.New(config.Edge{BackendURL: "localhost", StaticDir: "."})
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}
