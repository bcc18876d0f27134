// Package app wires HTTP, transports, and gesture surface state together.
package app

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/frudas24/touchwave/internal/config"
	"github.com/frudas24/touchwave/internal/profile"
	"github.com/frudas24/touchwave/internal/surface"
	"github.com/frudas24/touchwave/internal/trace"
	"github.com/frudas24/touchwave/internal/transport"
)

// App coordinates the HTTP API, the touch transports, and surface state.
type App struct {
	cfg      config.Config
	log      logrus.FieldLogger
	profiles profile.Set
	surfaces *surface.Registry
	traces   *trace.Store // nil when tracing is disabled

	touch  *transport.Server
	peers  *transport.Peers
	signal *transport.SignalServer
}

// New creates a new application with its dependencies wired.
func New(cfg config.Config, log logrus.FieldLogger) (*App, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	profiles, err := profile.Load(cfg.ProfilesPath)
	if err != nil {
		return nil, err
	}
	if _, ok := profiles.Resolve(cfg.Profile); !ok {
		return nil, fmt.Errorf("profile %q not found in %s", cfg.Profile, cfg.ProfilesPath)
	}

	surfaces, err := surface.NewRegistry(cfg.MaxSurfaces, log)
	if err != nil {
		return nil, err
	}

	var traces *trace.Store
	if cfg.TraceEnabled {
		traces, err = trace.Open(cfg.TraceDir)
		if err != nil {
			surfaces.Close()
			return nil, err
		}
		log.WithField("dir", cfg.TraceDir).Info("trace recording enabled")
	}

	app := &App{
		cfg:      cfg,
		log:      log,
		profiles: profiles,
		surfaces: surfaces,
		traces:   traces,
	}

	host := &transport.Host{
		Surfaces:       surfaces,
		Profiles:       profiles,
		DefaultProfile: cfg.Profile,
		Traces:         traces,
		Log:            log,
	}
	app.touch = transport.NewServer(host, cfg.AllowAnyOrigin)
	app.peers = transport.NewPeers(host)
	app.signal = transport.NewSignalServer(app.peers, cfg.AllowAnyOrigin, log)

	return app, nil
}

// Stop tears down transports, surfaces, and storage.
func (a *App) Stop() error {
	a.peers.Close()
	a.surfaces.Close()
	if a.traces != nil {
		if err := a.traces.Close(); err != nil {
			return fmt.Errorf("close trace store: %w", err)
		}
	}
	return nil
}

// Touch returns the websocket touch handler.
func (a *App) Touch() *transport.Server {
	return a.touch
}

// Signal returns the WebRTC signaling handler.
func (a *App) Signal() *transport.SignalServer {
	return a.signal
}
