package http

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendbook/search-backend/pkg/e"
	"github.com/trendbook/search-backend/pkg/logger"
)

func TestToHTTPResponse(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"missing fields", e.Wrap("user_id", e.ErrMissingFields), http.StatusBadRequest},
		{"no detections", e.ErrNoDetections, http.StatusBadRequest},
		{"unknown currency", e.ErrUnknownCurrency, http.StatusBadRequest},
		{"detection not found", e.ErrDetectionNotFound, http.StatusNotFound},
		{"search not found", e.Wrap("op", e.ErrSearchNotFound), http.StatusNotFound},
		{"no embedding", e.ErrNoProductEmbedding, http.StatusNotFound},
		{"unknown legal doc", e.ErrUnknownLegalDoc, http.StatusNotFound},
		{"unclassified", os.ErrPermission, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _ := ToHTTPResponse(tt.err)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestLegalHandlerServesKnownDocument(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "privacy_policy.md"), []byte("# Privacy"), 0o644))

	r := chi.NewRouter()
	r.Get("/legal/{doc}", NewLegalHandler(dir, logger.NewSlogLogger()).getDocument)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/legal/privacy-policy", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "# Privacy", rec.Body.String())
}

func TestLegalHandlerRejectsUnknownDocument(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/legal/{doc}", NewLegalHandler(t.TempDir(), logger.NewSlogLogger()).getDocument)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/legal/../etc/passwd", nil))
	assert.NotEqual(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/legal/imprint", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
