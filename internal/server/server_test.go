package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airdist/internal/config"
	"airdist/internal/server"
)

type pairResult struct {
	Place1     string  `json:"place1"`
	Place2     string  `json:"place2"`
	DistanceKm float64 `json:"distance_km"`
}

type runResponse struct {
	Pairs      []pairResult `json:"pairs"`
	AverageKm  float64      `json:"average_km"`
	Closest    pairResult   `json:"closest_pair"`
	ResultFile string       `json:"result_file"`
}

func newTestRouter(t *testing.T) (*gin.Engine, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		UploadDir: t.TempDir(),
		OutputDir: t.TempDir(),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return server.New(cfg, logger).Router(), cfg
}

func postForm(router *gin.Engine, form string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/run", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRunWithCount(t *testing.T) {
	router, cfg := newTestRouter(t)

	rec := postForm(router, "count=4")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp runResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Len(t, resp.Pairs, 6)
	assert.Greater(t, resp.AverageKm, 0.0)
	assert.NotEmpty(t, resp.Closest.Place1)
	assert.NotEmpty(t, resp.Closest.Place2)

	require.NotEmpty(t, resp.ResultFile)
	_, err := os.Stat(filepath.Join(cfg.OutputDir, resp.ResultFile))
	assert.NoError(t, err)
}

func TestRunCountTooSmall(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := postForm(router, "count=1")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRunCountNotInteger(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := postForm(router, "count=three")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRunWithoutInput(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := postForm(router, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRunWithCSVUpload(t *testing.T) {
	router, _ := newTestRouter(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("input_file", "places.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("Name,Latitude,Longitude\n" +
		"LHR,51.4706,-0.4619\n" +
		"SYD,-33.9461,151.1772\n" +
		"JFK,40.6413,-73.7781\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/run", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp runResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Pairs, 3)
	assert.Equal(t, "LHR", resp.Pairs[0].Place1)
	assert.Equal(t, "SYD", resp.Pairs[0].Place2)
	assert.InDelta(t, 17016, resp.Pairs[0].DistanceKm, 17016*0.001)
}

func TestRunWithBadUpload(t *testing.T) {
	router, _ := newTestRouter(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("input_file", "places.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("Name,Latitude\nLHR,51.4706\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/run", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDownloadResult(t *testing.T) {
	router, cfg := newTestRouter(t)

	rec := postForm(router, "count=3")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp runResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ResultFile)
	require.FileExists(t, filepath.Join(cfg.OutputDir, resp.ResultFile))

	dl := httptest.NewRecorder()
	router.ServeHTTP(dl, httptest.NewRequest(http.MethodGet, "/download-result/"+resp.ResultFile, nil))
	assert.Equal(t, http.StatusOK, dl.Code)
	assert.NotEmpty(t, dl.Body.Bytes())
}

func TestDownloadMissingResult(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/download-result/nope.xlsx", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthz(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	// One successful run so the analysis counters have samples.
	require.Equal(t, http.StatusOK, postForm(router, "count=3").Code)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "airdist_analyses_total")
	assert.Contains(t, rec.Body.String(), "airdist_pairs_computed_total")
}

func TestRequestIDHeader(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
