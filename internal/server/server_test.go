package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atikulmunna/logreport/internal/model"
	"github.com/atikulmunna/logreport/internal/output"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.log")
	content := "2024-04-29 10:00:00,123 INFO django.requests: \"GET /a HTTP/1.1\" 200 1\n" +
		"2024-04-29 10:00:01,123 ERROR django.requests: \"GET /b HTTP/1.1\" 500 1\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	return New(Config{Paths: []string{path}, Logger: logr.Discard()})
}

func get(t *testing.T, s *Server, url string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	return rec
}

func TestHealthz(t *testing.T) {
	rec := get(t, newTestServer(t), "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestTextReport(t *testing.T) {
	rec := get(t, newTestServer(t), "/report")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "Total requests: 2\n"), body)
	assert.Contains(t, body, "/b                  0       0       0       1       0       ")
}

func TestJSONReport(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/report?kind=handlers")
	require.Equal(t, http.StatusOK, rec.Code)

	var doc output.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.NotNil(t, doc.Table)
	assert.Equal(t, 2, doc.Table.Total)
	assert.Len(t, doc.Table.Rows, 2)
	assert.EqualValues(t, 1, doc.Stats.LevelCounts[model.LevelError])
	assert.EqualValues(t, 1, doc.Stats.LevelCounts[model.LevelInfo])
	assert.Contains(t, rec.Body.String(), `"level_counts"`)
}

func TestUnknownReportKind(t *testing.T) {
	rec := get(t, newTestServer(t), "/report?kind=bogus")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown report kind: bogus")
	assert.NotContains(t, rec.Body.String(), "Total requests")
}

func TestListReports(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/reports")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"reports":["handlers"]}`, rec.Body.String())
}
