package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/caprate-cli/internal/dataset"
)

func newTestRouter(t *testing.T) (http.Handler, *dataset.Store, string) {
	t.Helper()

	outDir := t.TempDir()
	dashDir := t.TempDir()

	st, err := dataset.NewStore(outDir)
	require.NoError(t, err)

	return newRouter(st, dashDir), st, dashDir
}

func TestServeHealth(t *testing.T) {
	r, _, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServeDataNotGenerated(t *testing.T) {
	r, _, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/data", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServeDataNoCache(t *testing.T) {
	r, st, _ := newTestRouter(t)

	require.NoError(t, os.WriteFile(st.DataPath(), []byte(`{"summary":{}}`), 0644))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/data", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{"summary":{}}`, rec.Body.String())
}

func TestServeMetadata(t *testing.T) {
	r, st, _ := newTestRouter(t)

	require.NoError(t, os.WriteFile(st.MetadataPath(), []byte(`{"processing":{}}`), 0644))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/metadata", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"processing":{}}`, rec.Body.String())
}

func TestServeStaticDashboard(t *testing.T) {
	r, _, dashDir := newTestRouter(t)

	require.NoError(t, os.WriteFile(filepath.Join(dashDir, "index.html"), []byte("<html>dash</html>"), 0644))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/index.html", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "dash")
}
