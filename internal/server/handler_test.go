package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-tangra/go-tangra-mainboard/internal/config"
	"github.com/go-tangra/go-tangra-mainboard/internal/server"
	"github.com/go-tangra/go-tangra-mainboard/internal/store"
)

func newTestServer(t *testing.T, apiSecret string) http.Handler {
	t.Helper()

	db, err := store.New(filepath.Join(t.TempDir(), "boards.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{
		Listen:     "127.0.0.1:0",
		FormFactor: "ATX",
		ApiSecret:  apiSecret,
	}
	return server.New(cfg, db, "test", log.NewStdLogger(testWriter{t}), nil)
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

func doJSON(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded), "body: %s", w.Body.String())
	}
	return w, decoded
}

func TestListComponents(t *testing.T) {
	srv := newTestServer(t, "")

	w, body := doJSON(t, srv, http.MethodGet, "/api/v1/components", "")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "ATX", body["form_factor"])
	assert.Equal(t, float64(45), body["count"])
	assert.Len(t, body["components"], 45)
}

func TestListComponents_FormFactorQuery(t *testing.T) {
	srv := newTestServer(t, "")

	w, body := doJSON(t, srv, http.MethodGet, "/api/v1/components?form_factor=E-ATX", "")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "E-ATX", body["form_factor"])
	assert.Len(t, body["components"], 45)
}

func TestComponentStatus(t *testing.T) {
	srv := newTestServer(t, "")

	w, body := doJSON(t, srv, http.MethodGet, "/api/v1/status", "")
	require.Equal(t, http.StatusOK, w.Code)

	statuses, ok := body["statuses"].(map[string]any)
	require.True(t, ok)
	// 45 components collapse to one entry per kind.
	assert.Len(t, statuses, 18)
	assert.Equal(t, "operational", statuses["RAM Slot"])
	assert.Equal(t, "operational", statuses["CPU Socket"])
}

func TestDiagnostics_NotImplemented(t *testing.T) {
	srv := newTestServer(t, "")

	w, body := doJSON(t, srv, http.MethodGet, "/api/v1/diagnostics", "")
	require.Equal(t, http.StatusNotImplemented, w.Code)
	assert.Equal(t, "TELEMETRY_UNIMPLEMENTED", body["reason"])
}

func TestBoardLifecycle(t *testing.T) {
	srv := newTestServer(t, "")

	// Register.
	w, created := doJSON(t, srv, http.MethodPost, "/api/v1/boards", `{"form_factor":"E-ATX"}`)
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "E-ATX", created["form_factor"])
	assert.Equal(t, float64(45), created["component_count"])
	assert.Equal(t, float64(18), created["kind_count"])

	// Get the full snapshot back.
	w, got := doJSON(t, srv, http.MethodGet, "/api/v1/boards/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	snap, ok := got["board"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "E-ATX", snap["form_factor"])
	assert.Len(t, snap["groups"], 18)

	// List.
	w, listed := doJSON(t, srv, http.MethodGet, "/api/v1/boards", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), listed["total_count"])

	// Delete, then the board is gone.
	w, _ = doJSON(t, srv, http.MethodDelete, "/api/v1/boards/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, srv, http.MethodGet, "/api/v1/boards/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegisterBoard_DefaultFormFactor(t *testing.T) {
	srv := newTestServer(t, "")

	w, created := doJSON(t, srv, http.MethodPost, "/api/v1/boards", `{}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "ATX", created["form_factor"])
}

func TestGetBoard_NotFound(t *testing.T) {
	srv := newTestServer(t, "")

	w, body := doJSON(t, srv, http.MethodGet, "/api/v1/boards/nope", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "BOARD_NOT_FOUND", body["reason"])
}

func TestApiSecret(t *testing.T) {
	srv := newTestServer(t, "hunter2")

	// Missing key.
	w, body := doJSON(t, srv, http.MethodGet, "/api/v1/components", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "MISSING_API_KEY", body["reason"])

	// Wrong key.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/components", nil)
	req.Header.Set("X-API-Key", "wrong")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Correct key.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/components", nil)
	req.Header.Set("X-API-Key", "hunter2")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Health bypasses auth.
	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, "")

	w, body := doJSON(t, srv, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test", body["version"])
}
