package handlers

import (
	"Produce-Scan-Backend/domain"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubScanService struct {
	startResult   domain.StartSessionResult
	singleResult  domain.SingleScanResult
	batchResult   domain.BatchScanResult
	sessionResult domain.SessionResult
	recentResult  domain.RecentScansResult
	tipsResult    domain.StorageTipsResult

	gotImages []string
	gotLimit  int
	gotUserID *uint
}

func (s *stubScanService) StartSession(_ context.Context, userID *uint) domain.StartSessionResult {
	s.gotUserID = userID
	return s.startResult
}

func (s *stubScanService) ScanSingle(_ context.Context, _, _ string, _ *uint) domain.SingleScanResult {
	return s.singleResult
}

func (s *stubScanService) ScanBatch(_ context.Context, images []string, _ string, _ *uint) domain.BatchScanResult {
	s.gotImages = images
	return s.batchResult
}

func (s *stubScanService) GetSessionResults(_ context.Context, _ string, _ *uint, _ bool) domain.SessionResult {
	return s.sessionResult
}

func (s *stubScanService) GetRecent(_ context.Context, userID *uint, limit int) domain.RecentScansResult {
	s.gotUserID = userID
	s.gotLimit = limit
	return s.recentResult
}

func (s *stubScanService) GetStorageTips(_ context.Context, _ string) domain.StorageTipsResult {
	return s.tipsResult
}

func (s *stubScanService) PurgeOldSessions(_ context.Context, _ int) error {
	return nil
}

func newScanTestApp(service *stubScanService) *fiber.App {
	app := fiber.New()
	handler := NewScanHandler(service, validator.New())

	// Stand-in for the JWT middleware
	authed := func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(1))
		return c.Next()
	}

	app.Get("/api/scan/health", handler.Health)
	app.Post("/api/scan/storage-tips", handler.StorageTips)
	app.Post("/api/scan/start-session", authed, handler.StartSession)
	app.Post("/api/scan/single", authed, handler.ScanSingle)
	app.Post("/api/scan/batch", authed, handler.ScanBatch)
	app.Get("/api/scan/session/:session_id", authed, handler.GetSessionResults)
	app.Get("/api/scan/recent", authed, handler.GetRecent)

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return resp, parsed
}

func TestHealth(t *testing.T) {
	app := newScanTestApp(&stubScanService{})

	resp, body := doJSON(t, app, http.MethodGet, "/api/scan/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "Produce Scan API", body["service"])
}

func TestStartSession(t *testing.T) {
	service := &stubScanService{
		startResult: domain.StartSessionResult{Success: true, SessionID: "abc12345"},
	}
	app := newScanTestApp(service)

	resp, body := doJSON(t, app, http.MethodPost, "/api/scan/start-session", "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "abc12345", body["session_id"])
	require.NotNil(t, service.gotUserID)
	assert.Equal(t, uint(1), *service.gotUserID)
}

func TestScanSingle_MissingFields(t *testing.T) {
	app := newScanTestApp(&stubScanService{})

	resp, body := doJSON(t, app, http.MethodPost, "/api/scan/single", `{"image_data": "abc"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "image_data and session_id are required", body["error"])
}

func TestScanBatch_Validation(t *testing.T) {
	cases := []struct {
		name      string
		body      string
		wantError string
	}{
		{"missing images", `{"session_id": "abc12345"}`, "images (array) and session_id are required"},
		{"missing session", `{"images": ["img1"]}`, "images (array) and session_id are required"},
		{"empty images", `{"images": [], "session_id": "abc12345"}`, "images cannot be empty"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newScanTestApp(&stubScanService{})

			resp, body := doJSON(t, app, http.MethodPost, "/api/scan/batch", tc.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tc.wantError, body["error"])
		})
	}
}

func TestScanBatch_Success(t *testing.T) {
	service := &stubScanService{
		batchResult: domain.BatchScanResult{
			Success:   true,
			SessionID: "abc12345",
			Scans:     []domain.ScanRecord{{ScanID: "scantoken001", ProduceName: "Apple"}},
			Summary:   &domain.BatchScanSummary{TotalScanned: 1, HealthyCount: 1},
		},
	}
	app := newScanTestApp(service)

	resp, body := doJSON(t, app, http.MethodPost, "/api/scan/batch",
		`{"images": ["img1"], "session_id": "abc12345"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, []string{"img1"}, service.gotImages)

	summary := body["summary"].(map[string]any)
	assert.Equal(t, float64(1), summary["total_scanned"])
	assert.Equal(t, float64(1), summary["healthy_count"])
}

func TestScanBatch_ServiceFailure(t *testing.T) {
	service := &stubScanService{
		batchResult: domain.BatchScanResult{Success: false, Error: "Session abc12345 not found"},
	}
	app := newScanTestApp(service)

	resp, body := doJSON(t, app, http.MethodPost, "/api/scan/batch",
		`{"images": ["img1"], "session_id": "abc12345"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Session abc12345 not found", body["error"])
}

func TestGetSessionResults_StatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		result     domain.SessionResult
		wantStatus int
	}{
		{
			"success",
			domain.SessionResult{Success: true},
			http.StatusOK,
		},
		{
			"not found",
			domain.SessionResult{Success: false, Error: "Session abc12345 not found"},
			http.StatusNotFound,
		},
		{
			"unauthorized",
			domain.SessionResult{Success: false, Error: domain.ErrUnauthorizedSession.Error()},
			http.StatusForbidden,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newScanTestApp(&stubScanService{sessionResult: tc.result})

			resp, _ := doJSON(t, app, http.MethodGet, "/api/scan/session/abc12345", "")
			assert.Equal(t, tc.wantStatus, resp.StatusCode)
		})
	}
}

func TestGetRecent_LimitHandling(t *testing.T) {
	cases := []struct {
		query     string
		wantLimit int
	}{
		{"", 50},
		{"?limit=10", 10},
		{"?limit=500", 100},
		{"?limit=abc", 50},
		{"?limit=-1", 50},
	}

	for _, tc := range cases {
		t.Run("limit "+tc.query, func(t *testing.T) {
			service := &stubScanService{recentResult: domain.RecentScansResult{Success: true}}
			app := newScanTestApp(service)

			resp, _ := doJSON(t, app, http.MethodGet, "/api/scan/recent"+tc.query, "")
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tc.wantLimit, service.gotLimit)
		})
	}
}

func TestStorageTips(t *testing.T) {
	service := &stubScanService{
		tipsResult: domain.StorageTipsResult{
			Success:         true,
			Produce:         "Banana",
			Recommendations: "Keep at room temperature.",
		},
	}
	app := newScanTestApp(service)

	resp, body := doJSON(t, app, http.MethodPost, "/api/scan/storage-tips", `{"produce_name": "Banana"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Banana", body["produce"])

	resp, body = doJSON(t, app, http.MethodPost, "/api/scan/storage-tips", `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "produce_name is required", body["error"])
}
