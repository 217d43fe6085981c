package httpserver

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *HTTPServerConfig {
	return &HTTPServerConfig{
		ListenAddr:               "127.0.0.1:0",
		Log:                      slog.New(slog.NewTextHandler(io.Discard, nil)),
		DrainDuration:            time.Millisecond,
		GracefulShutdownDuration: time.Second,
		ReadTimeout:              time.Second,
		WriteTimeout:             time.Second,
	}
}

func TestDiagnosticsEndpoints(t *testing.T) {
	srv, err := New(testConfig())
	require.NoError(t, err)

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	rec := get("/livez")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"alive"}`, rec.Body.String())

	require.Equal(t, http.StatusOK, get("/readyz").Code)

	rec = get("/drain")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"draining"}`, rec.Body.String())
	require.Equal(t, http.StatusServiceUnavailable, get("/readyz").Code)

	// Draining twice reports the current state instead of toggling.
	rec = get("/drain")
	assert.JSONEq(t, `{"status":"already draining"}`, rec.Body.String())

	rec = get("/undrain")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, http.StatusOK, get("/readyz").Code)
}

func TestListenAndClose(t *testing.T) {
	srv, err := New(testConfig())
	require.NoError(t, err)

	ready := make(chan struct{})
	require.NoError(t, srv.Listen(func() { close(ready) }))

	select {
	case <-ready:
	case <-time.After(time.Second):
		t.Fatal("onReady was not invoked")
	}
	require.NotEmpty(t, srv.Addr())

	resp, err := http.Get("http://" + srv.Addr() + "/livez")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, srv.Close())
	require.NoError(t, srv.Close(), "closing twice must not fail")
}

func TestCloseWithoutListen(t *testing.T) {
	srv, err := New(testConfig())
	require.NoError(t, err)
	require.NoError(t, srv.Close())
}

func TestScopeRoutesAreServed(t *testing.T) {
	srv, err := New(testConfig())
	require.NoError(t, err)

	scope := srv.Scope()
	require.NotNil(t, scope)
	scope.Get("/scoped", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/scoped", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestServeDocs(t *testing.T) {
	assetDir := t.TempDir()
	descriptor := `{"openapi":"3.0.3"}`
	require.NoError(t, os.WriteFile(filepath.Join(assetDir, "swagger.json"), []byte(descriptor), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(assetDir, "index.html"), []byte("<html>docs</html>"), 0o644))

	srv, err := New(testConfig())
	require.NoError(t, err)
	srv.ServeDocs("/docs", assetDir, "/swagger.json")

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	rec := get("/swagger.json")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, descriptor, rec.Body.String())

	rec = get("/docs")
	require.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/docs/", rec.Header().Get("Location"))

	rec = get("/docs/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "docs")

	rec = get("/docs/swagger.json")
	require.Equal(t, http.StatusOK, rec.Code)
}
