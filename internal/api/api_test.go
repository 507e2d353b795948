package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/neuroautomation/neuro-backend/internal/core"
)

func newTestAPI(state StateReader) *API {
	a := NewAPI(state, Config{AllowedOrigins: []string{"*"}}, zap.NewNop())
	a.now = func() time.Time { return time.Date(2025, 3, 4, 5, 6, 7, 890_000_000, time.UTC) }
	return a
}

func serve(a *API, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	a.Router().ServeHTTP(w, req)
	return w
}

func TestHealthHandler(t *testing.T) {
	states := []core.ConnectivityState{
		core.ConnectivityUninitialized,
		core.ConnectivityConnected,
		core.ConnectivityDisconnected,
	}
	for _, s := range states {
		t.Run(s.String(), func(t *testing.T) {
			c := core.NewConnectivity()
			c.Resolve(s)
			w := serve(newTestAPI(c), "GET", "/health")

			if w.Code != http.StatusOK {
				t.Errorf("expected status 200, got %d", w.Code)
			}
			if w.Body.String() != "OK" {
				t.Errorf("expected body OK, got %s", w.Body.String())
			}
			if ct := w.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
				t.Errorf("expected text/plain, got %s", ct)
			}
		})
	}
}

func TestHealthHandler_Head(t *testing.T) {
	for _, path := range []string{"/health", "/api/health", "/"} {
		t.Run(path, func(t *testing.T) {
			w := serve(newTestAPI(core.NewConnectivity()), "HEAD", path)
			if w.Code != http.StatusOK {
				t.Errorf("expected status 200 for HEAD %s, got %d", path, w.Code)
			}
		})
	}
}

func TestTrailingSlash(t *testing.T) {
	a := newTestAPI(core.NewConnectivity())

	w := serve(a, "GET", "/health/")
	if w.Code != http.StatusOK || w.Body.String() != "OK" {
		t.Errorf("expected 200 OK for /health/, got %d %q", w.Code, w.Body.String())
	}

	w = serve(a, "GET", "/api/health/")
	if w.Code != http.StatusOK {
		t.Errorf("expected status 200 for /api/health/, got %d", w.Code)
	}
	var resp StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %s", err)
	}
	if resp.Status != HealthyLabel {
		t.Errorf("expected status %s, got %s", HealthyLabel, resp.Status)
	}
}

func TestRootHandler(t *testing.T) {
	w := serve(newTestAPI(core.NewConnectivity()), "GET", "/")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp RootResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %s", err)
	}
	if resp.Status != "operational" {
		t.Errorf("expected status operational, got %s", resp.Status)
	}
	if resp.Version != "1.0.0" {
		t.Errorf("expected version 1.0.0, got %s", resp.Version)
	}
	if resp.Message != ServiceMessage {
		t.Errorf("unexpected message %q", resp.Message)
	}
	if resp.Timestamp != "2025-03-04T05:06:07.890Z" {
		t.Errorf("unexpected timestamp %s", resp.Timestamp)
	}
	if _, err := time.Parse(time.RFC3339Nano, resp.Timestamp); err != nil {
		t.Errorf("timestamp is not ISO-8601: %s", err)
	}
}

func TestRootHandler_TimestampIsUTC(t *testing.T) {
	a := newTestAPI(core.NewConnectivity())
	loc := time.FixedZone("UTC+2", 2*60*60)
	a.now = func() time.Time { return time.Date(2025, 3, 4, 7, 6, 7, 0, loc) }

	var resp RootResponse
	if err := json.Unmarshal(serve(a, "GET", "/").Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %s", err)
	}
	if resp.Timestamp != "2025-03-04T05:06:07.000Z" {
		t.Errorf("expected UTC timestamp, got %s", resp.Timestamp)
	}
}

func TestStatusHandler(t *testing.T) {
	tests := []struct {
		name     string
		state    core.ConnectivityState
		database string
	}{
		{"before connect resolves", core.ConnectivityUninitialized, "Disconnected"},
		{"after successful connect", core.ConnectivityConnected, "Connected"},
		{"after failed connect", core.ConnectivityDisconnected, "Disconnected"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := core.NewConnectivity()
			c.Resolve(tt.state)
			w := serve(newTestAPI(c), "GET", "/api/health")

			if w.Code != http.StatusOK {
				t.Errorf("expected status 200, got %d", w.Code)
			}
			var resp StatusResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to parse response: %s", err)
			}
			if resp.Status != "✅ Healthy" {
				t.Errorf("expected healthy label, got %s", resp.Status)
			}
			if resp.Database != tt.database {
				t.Errorf("expected database %s, got %s", tt.database, resp.Database)
			}
			if resp.Timestamp == "" {
				t.Error("expected timestamp")
			}
		})
	}
}

func TestNotFound(t *testing.T) {
	w := serve(newTestAPI(core.NewConnectivity()), "GET", "/nope")

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %s", err)
	}
	if resp.Code != "NEURO_NOT_FOUND" {
		t.Errorf("expected code NEURO_NOT_FOUND, got %s", resp.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	w := serve(newTestAPI(core.NewConnectivity()), "POST", "/health")

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", w.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %s", err)
	}
	if resp.Code != "NEURO_METHOD_NOT_ALLOWED" {
		t.Errorf("expected code NEURO_METHOD_NOT_ALLOWED, got %s", resp.Code)
	}
}

func TestCORS(t *testing.T) {
	a := newTestAPI(core.NewConnectivity())

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	a.Router().ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected Access-Control-Allow-Origin *, got %q", got)
	}
}

func TestCORS_Preflight(t *testing.T) {
	a := newTestAPI(core.NewConnectivity())

	req := httptest.NewRequest("OPTIONS", "/api/health", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	a.Router().ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204 preflight, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected Access-Control-Allow-Origin *, got %q", got)
	}
}

func TestOptions_WithoutPreflightHeaders(t *testing.T) {
	a := newTestAPI(core.NewConnectivity())

	for _, path := range []string{"/health", "/nope"} {
		req := httptest.NewRequest("OPTIONS", path, nil)
		req.Header.Set("Origin", "https://app.example.com")
		w := httptest.NewRecorder()
		a.Router().ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("expected 204 for OPTIONS %s, got %d", path, w.Code)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("expected Access-Control-Allow-Origin *, got %q", got)
		}
		if w.Body.Len() != 0 {
			t.Errorf("expected empty body, got %q", w.Body.String())
		}
	}
}

func TestRequestIDHeader(t *testing.T) {
	w := serve(newTestAPI(core.NewConnectivity()), "GET", "/health")
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	data := map[string]string{"key": "value"}
	WriteJSON(w, http.StatusOK, data)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %s", err)
	}
	if resp["key"] != "value" {
		t.Errorf("expected key=value, got %v", resp)
	}
}

func TestConfigAddr(t *testing.T) {
	cfg := Config{Host: "0.0.0.0", Port: 3000}
	if got := cfg.Addr(); got != "0.0.0.0:3000" {
		t.Errorf("expected 0.0.0.0:3000, got %s", got)
	}
}
