package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

////////////////////////////////////////////////////////////////////////////////
// INTEGRATION TEST SUITE
//
// These tests validate the service end-to-end:
//
//   Client → HTTP API → Auth → Postgres → Engine → Response
//
// The service must already be running with an initialized database (for
// example via docker compose plus `punch init admin`).
//
// Optional environment overrides:
//
//   BASE_URL   default http://localhost:8080
//   API_KEY    default punch-key-123
//   PROJECT_ID default 1
//
// The punch tests toggle the project's real state, so each test restores
// the in/out alternation it consumed.
////////////////////////////////////////////////////////////////////////////////

func baseURL() string {
	if v := os.Getenv("BASE_URL"); v != "" {
		return v
	}
	return "http://localhost:8080"
}

func apiKey() string {
	if v := os.Getenv("API_KEY"); v != "" {
		return v
	}
	return "punch-key-123"
}

func projectID() string {
	if v := os.Getenv("PROJECT_ID"); v != "" {
		return v
	}
	return "1"
}

// waitReady polls /ready until DB + server are ready.
// Prevents flaky failures when containers are still booting.
func waitReady(t *testing.T) {
	t.Helper()

	client := &http.Client{Timeout: 2 * time.Second}
	deadline := time.Now().Add(30 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(baseURL() + "/ready")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(300 * time.Millisecond)
	}

	t.Fatalf("service not ready after 30s")
}

// httpGet performs a GET request with optional API key.
func httpGet(t *testing.T, key string, path string) (int, []byte) {
	t.Helper()

	req, _ := http.NewRequest("GET", baseURL()+path, nil)
	if key != "" {
		req.Header.Set("X-API-Key", key)
	}

	resp, err := (&http.Client{Timeout: 5 * time.Second}).Do(req)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}

// postJSON performs a POST with JSON body and optional idempotency key.
func postJSON(t *testing.T, key, idemKey, path string, payload any) (int, []byte) {
	t.Helper()

	b, _ := json.Marshal(payload)

	req, _ := http.NewRequest("POST", baseURL()+path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	if key != "" {
		req.Header.Set("X-API-Key", key)
	}
	if idemKey != "" {
		req.Header.Set("Idempotency-Key", idemKey)
	}

	resp, err := (&http.Client{Timeout: 5 * time.Second}).Do(req)
	if err != nil {
		t.Fatalf("POST %s failed: %v", path, err)
	}
	defer resp.Body.Close()

	out, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, out
}

func punchPath() string {
	return fmt.Sprintf("/projects/%s/punch", projectID())
}

func reportPath() string {
	return fmt.Sprintf("/projects/%s/report", projectID())
}

// punch submits one punch in the given direction with a fresh idempotency key.
func punch(t *testing.T, direction string) (int, []byte) {
	t.Helper()
	return postJSON(t, apiKey(), uuid.New().String(), punchPath(),
		map[string]any{"direction": direction})
}

type summary struct {
	NextDirection string `json:"next_direction"`
	Days          []struct {
		Date  string `json:"date"`
		Gross string `json:"gross"`
		Net   string `json:"net"`
	} `json:"days"`
	Weeks []struct {
		Year  int    `json:"iso_year"`
		Week  int    `json:"iso_week"`
		Gross string `json:"gross"`
		Net   string `json:"net"`
	} `json:"weeks"`
	RecentEvents []struct {
		ID    int64  `json:"id"`
		Type  string `json:"type"`
		Clock string `json:"clock"`
	} `json:"recent_events"`
}

// getSummary fetches and parses the report.
func getSummary(t *testing.T) summary {
	t.Helper()

	s, b := httpGet(t, apiKey(), reportPath())
	if s != http.StatusOK {
		t.Fatalf("report expected 200 got %d: %s", s, b)
	}
	var r summary
	if err := json.Unmarshal(b, &r); err != nil {
		t.Fatalf("invalid report JSON: %v", err)
	}
	return r
}

// opposite flips a punch direction.
func opposite(direction string) string {
	if direction == "in" {
		return "out"
	}
	return "in"
}

////////////////////////////////////////////////////////////////////////////////
// HEALTH & READINESS TESTS
////////////////////////////////////////////////////////////////////////////////

// Health endpoint = liveness check (server process running).
func TestHealth_ReturnsOK(t *testing.T) {
	s, _ := httpGet(t, "", "/health")
	if s != http.StatusOK {
		t.Fatalf("health expected 200 got %d", s)
	}
}

// Ready endpoint = dependency readiness (DB reachable).
func TestReady_ReturnsOK(t *testing.T) {
	waitReady(t)
	s, _ := httpGet(t, "", "/ready")
	if s != http.StatusOK {
		t.Fatalf("ready expected 200 got %d", s)
	}
}

////////////////////////////////////////////////////////////////////////////////
// PUNCH CONTRACT TESTS
////////////////////////////////////////////////////////////////////////////////

// Request without API key must be rejected.
func TestPunch_UnauthorizedWithoutAPIKey(t *testing.T) {
	waitReady(t)

	s, _ := postJSON(t, "", uuid.New().String(), punchPath(),
		map[string]any{"direction": "in"})
	if s != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", s)
	}
}

// Unknown direction should return 400.
func TestPunch_BadRequestOnInvalidDirection(t *testing.T) {
	waitReady(t)

	s, _ := postJSON(t, apiKey(), uuid.New().String(), punchPath(),
		map[string]any{"direction": "sideways"})
	if s != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", s)
	}
}

// Unknown project should return 404, not leak other users' data.
func TestPunch_UnknownProjectNotFound(t *testing.T) {
	waitReady(t)

	s, _ := postJSON(t, apiKey(), uuid.New().String(), "/projects/999999/punch",
		map[string]any{"direction": "in"})
	if s != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", s)
	}
}

////////////////////////////////////////////////////////////////////////////////
// CORE SYSTEM BEHAVIOR TESTS
////////////////////////////////////////////////////////////////////////////////

// The report's structural invariants hold regardless of event history.
func TestReport_ShapeInvariants(t *testing.T) {
	waitReady(t)

	r := getSummary(t)

	if r.NextDirection != "in" && r.NextDirection != "out" {
		t.Fatalf("bad next_direction %q", r.NextDirection)
	}
	if len(r.Weeks) != 6 {
		t.Fatalf("expected 6 weeks got %d", len(r.Weeks))
	}
	// The daily series covers the current ISO week: Monday=1 ... Sunday=7.
	wantDays := (int(time.Now().Weekday())+6)%7 + 1
	if len(r.Days) != wantDays {
		t.Fatalf("expected %d days got %d", wantDays, len(r.Days))
	}
	if len(r.RecentEvents) > 10 {
		t.Fatalf("recent_events overflow: %d", len(r.RecentEvents))
	}
}

// Punching in the expected direction succeeds; repeating it must conflict.
func TestPunch_EnforcesAlternation(t *testing.T) {
	waitReady(t)

	next := getSummary(t).NextDirection

	if s, b := punch(t, next); s != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", s, b)
	}

	// Same direction again is now inconsistent with the stored state.
	if s, _ := punch(t, next); s != http.StatusConflict {
		t.Fatalf("expected 409 got %d", s)
	}

	// Restore the alternation for subsequent tests.
	if s, _ := punch(t, opposite(next)); s != http.StatusCreated {
		t.Fatalf("restore punch expected 201 got %d", s)
	}
}

// A retried punch with the same Idempotency-Key must not append twice.
func TestPunch_IdempotentRetry(t *testing.T) {
	waitReady(t)

	next := getSummary(t).NextDirection
	key := uuid.New().String()
	payload := map[string]any{"direction": next}

	if s, b := postJSON(t, apiKey(), key, punchPath(), payload); s != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", s, b)
	}

	s, b := postJSON(t, apiKey(), key, punchPath(), payload)
	if s != http.StatusOK {
		t.Fatalf("retry expected 200 got %d: %s", s, b)
	}
	var resp struct {
		Duplicate bool `json:"duplicate"`
	}
	if err := json.Unmarshal(b, &resp); err != nil || !resp.Duplicate {
		t.Fatalf("retry should report duplicate: %s", b)
	}

	// The state machine advanced exactly once.
	if got := getSummary(t).NextDirection; got != opposite(next) {
		t.Fatalf("expected next %q got %q", opposite(next), got)
	}

	// Restore the alternation.
	if s, _ := punch(t, opposite(next)); s != http.StatusCreated {
		t.Fatalf("restore punch expected 201 got %d", s)
	}
}
