package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"match-list-service/config"
	"match-list-service/models"
)

func newTestServer() *Server {
	cfg := &config.Config{Port: "8080"}
	return NewServer(cfg, nil, NewHub())
}

func testResult() *models.CategorizedChanges {
	return &models.CategorizedChanges{
		RunID:        "run-1",
		RunTimestamp: time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC),
		Changes: []models.MatchChangeDetail{
			{
				MatchID:  "1001",
				Category: models.CategoryTimeChange,
				Priority: models.PriorityHigh,
			},
		},
		TotalChanges: 1,
		ByCategory:   map[models.ChangeCategory]int{models.CategoryTimeChange: 1},
		ByPriority:   map[models.ChangePriority]int{models.PriorityHigh: 1},
	}
}

func TestHandleHealthSimple(t *testing.T) {
	s := newTestServer()

	rec := httptest.NewRecorder()
	s.handleHealthSimple(rec, httptest.NewRequest("GET", "/api/health/simple", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "OK" {
		t.Errorf("Expected OK body, got %q", rec.Body.String())
	}
}

func TestHandleHealthIncludesLastRun(t *testing.T) {
	s := newTestServer()
	s.RecordRun(testResult())

	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest("GET", "/api/health", nil))

	var response map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if response["status"] != "ok" {
		t.Errorf("Expected status ok, got %v", response["status"])
	}
	if response["runs_completed"].(float64) != 1 {
		t.Errorf("Expected 1 run completed, got %v", response["runs_completed"])
	}
	lastRun, ok := response["last_run"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected last_run in response, got %v", response)
	}
	if lastRun["run_id"] != "run-1" {
		t.Errorf("Expected run-1, got %v", lastRun["run_id"])
	}
}

func TestHandleGetLatestRun(t *testing.T) {
	s := newTestServer()

	rec := httptest.NewRecorder()
	s.handleGetLatestRun(rec, httptest.NewRequest("GET", "/api/changes/latest", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 before first run, got %d", rec.Code)
	}

	s.RecordRun(testResult())

	rec = httptest.NewRecorder()
	s.handleGetLatestRun(rec, httptest.NewRequest("GET", "/api/changes/latest", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var result models.CategorizedChanges
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if result.TotalChanges != 1 {
		t.Errorf("Expected 1 change, got %d", result.TotalChanges)
	}
}

func TestHandleGetChangesWithoutDatabase(t *testing.T) {
	s := newTestServer()

	rec := httptest.NewRecorder()
	s.handleGetChanges(rec, httptest.NewRequest("GET", "/api/changes", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 without database store, got %d", rec.Code)
	}
}

func TestHandleGetStatsFileMode(t *testing.T) {
	s := newTestServer()
	s.RecordRun(testResult())

	rec := httptest.NewRecorder()
	s.handleGetStats(rec, httptest.NewRequest("GET", "/api/stats", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var stats map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if stats["last_run_changes"].(float64) != 1 {
		t.Errorf("Expected last_run_changes 1, got %v", stats["last_run_changes"])
	}
}
