package app

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/frudas24/touchwave/gesture"
	"github.com/frudas24/touchwave/internal/config"
	"github.com/frudas24/touchwave/internal/trace"
)

// newTestApp builds an app over a throwaway data dir.
func newTestApp(t *testing.T, traceEnabled bool) *App {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Config{
		ListenAddr:   "127.0.0.1:0",
		DataDir:      dir,
		ProfilesPath: filepath.Join(dir, "profiles.yaml"),
		Profile:      "default",
		TraceEnabled: traceEnabled,
		TraceDir:     filepath.Join(dir, "traces"),
		MaxSurfaces:  8,
		LogLevel:     "info",
	}
	log := logrus.New()
	log.SetOutput(io.Discard)

	a, err := New(cfg, log)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(func() {
		if err := a.Stop(); err != nil {
			t.Errorf("stop app: %v", err)
		}
	})
	return a
}

// TestNew_RejectsUnknownProfile verifies startup fails when the configured
// default profile does not exist.
func TestNew_RejectsUnknownProfile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Config{
		DataDir:      dir,
		ProfilesPath: filepath.Join(dir, "profiles.yaml"),
		Profile:      "nope",
		MaxSurfaces:  8,
	}
	log := logrus.New()
	log.SetOutput(io.Discard)

	if _, err := New(cfg, log); err == nil {
		t.Fatalf("expected error for unknown profile")
	}
}

// TestHandleState_ReportsSettings verifies /api/state exposes profiles and
// the tracing flag.
func TestHandleState_ReportsSettings(t *testing.T) {
	a := newTestApp(t, false)

	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	rec := httptest.NewRecorder()
	a.handleState(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp stateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.DefaultProfile != "default" || resp.Tracing {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if len(resp.Profiles) < 3 {
		t.Fatalf("expected builtin profiles, got %v", resp.Profiles)
	}
	if len(resp.Surfaces) != 0 {
		t.Fatalf("expected no surfaces, got %v", resp.Surfaces)
	}
}

// TestHandleTraces_DisabledReturns404 verifies trace endpoints report when
// recording is off.
func TestHandleTraces_DisabledReturns404(t *testing.T) {
	a := newTestApp(t, false)

	rec := httptest.NewRecorder()
	a.handleTraces(rec, httptest.NewRequest(http.MethodGet, "/api/traces", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for traces, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	a.handleReplay(rec, httptest.NewRequest(http.MethodGet, "/api/replay?trace=x", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for replay, got %d", rec.Code)
	}
}

// TestHandleReplay_RoundTrip verifies a recorded swipe replays into the same
// gesture through the API.
func TestHandleReplay_RoundTrip(t *testing.T) {
	a := newTestApp(t, true)

	frames := []trace.Frame{
		{Op: trace.OpBegin, At: 0, Points: []gesture.ContactPoint{{X: 0, Y: 0, Timestamp: 0}}},
		{Op: trace.OpMove, At: 100, Points: []gesture.ContactPoint{{X: 100, Y: 0, Timestamp: 100}}},
		{Op: trace.OpEnd, At: 100},
	}
	for _, f := range frames {
		if err := a.traces.Append("rec-1", f); err != nil {
			t.Fatalf("append frame: %v", err)
		}
	}

	rec := httptest.NewRecorder()
	a.handleReplay(rec, httptest.NewRequest(http.MethodGet, "/api/replay?trace=rec-1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp replayResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Trace != "rec-1" || resp.Profile != "default" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if len(resp.Events) != 1 || resp.Events[0].Gesture != "swipe" || resp.Events[0].Direction != "right" {
		t.Fatalf("unexpected events: %+v", resp.Events)
	}

	list := httptest.NewRecorder()
	a.handleTraces(list, httptest.NewRequest(http.MethodGet, "/api/traces", nil))
	if list.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", list.Code)
	}
	var ids []string
	if err := json.Unmarshal(list.Body.Bytes(), &ids); err != nil {
		t.Fatalf("decode ids: %v", err)
	}
	if len(ids) != 1 || ids[0] != "rec-1" {
		t.Fatalf("unexpected ids: %v", ids)
	}
}

// TestHandleReplay_ValidatesInput verifies parameter handling.
func TestHandleReplay_ValidatesInput(t *testing.T) {
	a := newTestApp(t, true)

	rec := httptest.NewRecorder()
	a.handleReplay(rec, httptest.NewRequest(http.MethodGet, "/api/replay", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing trace, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	a.handleReplay(rec, httptest.NewRequest(http.MethodGet, "/api/replay?trace=ghost", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown trace, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	a.handleReplay(rec, httptest.NewRequest(http.MethodGet, "/api/replay?trace=ghost&profile=bogus", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown profile, got %d", rec.Code)
	}
}

// TestRegisterRoutes_WiresAPI verifies the mux serves the API paths.
func TestRegisterRoutes_WiresAPI(t *testing.T) {
	a := newTestApp(t, false)

	mux := http.NewServeMux()
	a.RegisterRoutes(mux, "")

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/state", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /api/state, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/favicon.ico", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 from favicon, got %d", rec.Code)
	}
}
