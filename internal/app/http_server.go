// Package app wires HTTP, transports, and gesture surface state together.
package app

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/frudas24/touchwave/internal/surface"
	"github.com/frudas24/touchwave/internal/trace"
	"github.com/frudas24/touchwave/internal/transport"
	"github.com/frudas24/touchwave/internal/web"
)

// RegisterRoutes wires API, websocket, and static handlers onto the mux.
func (a *App) RegisterRoutes(mux *http.ServeMux, staticDir string) {
	if staticDir == "" {
		staticDir = filepath.Join("internal", "web", "static")
	}

	mux.HandleFunc("/api/state", a.handleState)
	mux.HandleFunc("/api/profiles", a.handleProfiles)
	mux.HandleFunc("/api/traces", a.handleTraces)
	mux.HandleFunc("/api/replay", a.handleReplay)
	mux.Handle("/ws/touch", a.Touch())
	mux.Handle("/ws/signal", a.Signal())
	mux.HandleFunc("/favicon.ico", handleFavicon)

	mux.Handle("/", staticFileServer(staticDir, a.log))
}

type stateResponse struct {
	Profiles       []string       `json:"profiles"`
	DefaultProfile string         `json:"defaultProfile"`
	Tracing        bool           `json:"tracing"`
	Surfaces       []surface.Info `json:"surfaces"`
}

type replayResponse struct {
	Trace   string                     `json:"trace"`
	Profile string                     `json:"profile"`
	Events  []transport.GestureMessage `json:"events"`
}

// handleState returns active surfaces and server settings.
func (a *App) handleState(w http.ResponseWriter, _ *http.Request) {
	resp := stateResponse{
		Profiles:       a.profiles.Names(),
		DefaultProfile: a.cfg.Profile,
		Tracing:        a.traces != nil,
		Surfaces:       a.surfaces.Snapshot(),
	}
	writeJSON(w, resp)
}

// handleProfiles returns every known profile with its thresholds.
func (a *App) handleProfiles(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, a.profiles.Profiles)
}

// handleTraces lists recorded trace identifiers.
func (a *App) handleTraces(w http.ResponseWriter, _ *http.Request) {
	if a.traces == nil {
		http.Error(w, "tracing disabled", http.StatusNotFound)
		return
	}
	ids, err := a.traces.List()
	if err != nil {
		a.log.WithError(err).Error("trace listing failed")
		http.Error(w, "failed to list traces", http.StatusInternalServerError)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, ids)
}

// handleReplay reruns a recorded trace through the classifier, optionally
// under a different profile, and returns the resulting gestures.
func (a *App) handleReplay(w http.ResponseWriter, r *http.Request) {
	if a.traces == nil {
		http.Error(w, "tracing disabled", http.StatusNotFound)
		return
	}
	traceID := r.URL.Query().Get("trace")
	if traceID == "" {
		http.Error(w, "trace parameter required", http.StatusBadRequest)
		return
	}
	profileName := r.URL.Query().Get("profile")
	if profileName == "" {
		profileName = a.cfg.Profile
	}
	cfg, ok := a.profiles.Resolve(profileName)
	if !ok {
		http.Error(w, "unknown profile", http.StatusBadRequest)
		return
	}

	frames, err := a.traces.Read(traceID)
	if err != nil {
		a.log.WithError(err).Error("trace read failed")
		http.Error(w, "failed to read trace", http.StatusInternalServerError)
		return
	}
	if len(frames) == 0 {
		http.Error(w, "trace not found", http.StatusNotFound)
		return
	}

	events := trace.Replay(frames, cfg)
	resp := replayResponse{
		Trace:   traceID,
		Profile: profileName,
		Events:  make([]transport.GestureMessage, 0, len(events)),
	}
	for _, ev := range events {
		resp.Events = append(resp.Events, transport.EncodeEvent(ev))
	}
	writeJSON(w, resp)
}

// writeJSON encodes a response body, ignoring late write errors.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// staticFileServer returns a handler for static assets, preferring disk then embed.
func staticFileServer(staticDir string, log logrus.FieldLogger) http.Handler {
	if staticDir != "" {
		if info, err := os.Stat(staticDir); err == nil && info.IsDir() {
			return http.FileServer(http.Dir(staticDir))
		}
	}

	embedded, err := web.StaticFS()
	if err != nil {
		log.Errorf("static assets unavailable: %v", err)
		return http.NotFoundHandler()
	}
	return http.FileServer(http.FS(embedded))
}

// handleFavicon avoids noisy 404s for the default browser request.
func handleFavicon(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
