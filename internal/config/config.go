// Package config loads environment configuration for touchwave.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	defaultListenAddr  = "0.0.0.0:8797"
	defaultDataDir     = "./data"
	defaultProfile     = "default"
	defaultMaxSurfaces = 64
	defaultLogLevel    = "info"
)

// Config holds runtime configuration values.
type Config struct {
	ListenAddr     string
	DataDir        string
	ProfilesPath   string
	Profile        string
	TraceEnabled   bool
	TraceDir       string
	MaxSurfaces    int
	AllowAnyOrigin bool
	LogLevel       string
}

// Load reads configuration from ./data/.env and environment variables.
// Variables already present in the environment win over the file.
func Load() (Config, error) {
	cfg := Config{
		ListenAddr:   defaultListenAddr,
		DataDir:      defaultDataDir,
		ProfilesPath: filepath.Join(defaultDataDir, "profiles.yaml"),
		Profile:      defaultProfile,
		TraceDir:     filepath.Join(defaultDataDir, "trace"),
		MaxSurfaces:  defaultMaxSurfaces,
		LogLevel:     defaultLogLevel,
	}

	if err := godotenv.Load(filepath.Join(cfg.DataDir, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	cfg.ListenAddr = envString("LISTEN_ADDR", cfg.ListenAddr)
	cfg.DataDir = envString("DATA_DIR", cfg.DataDir)
	cfg.ProfilesPath = envString("PROFILES_PATH", filepath.Join(cfg.DataDir, "profiles.yaml"))
	cfg.Profile = envString("PROFILE", cfg.Profile)
	cfg.TraceEnabled = envBool("TRACE_ENABLED", cfg.TraceEnabled)
	cfg.TraceDir = envString("TRACE_DIR", filepath.Join(cfg.DataDir, "trace"))
	cfg.AllowAnyOrigin = envBool("ALLOW_ANY_ORIGIN", cfg.AllowAnyOrigin)

	maxSurfaces, err := envInt("MAX_SURFACES", cfg.MaxSurfaces)
	if err != nil {
		return Config{}, err
	}
	if maxSurfaces <= 0 {
		return Config{}, fmt.Errorf("MAX_SURFACES must be > 0")
	}
	cfg.MaxSurfaces = maxSurfaces

	cfg.LogLevel = strings.ToLower(envString("LOG_LEVEL", cfg.LogLevel))
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL must be a valid level: %w", err)
	}

	return cfg, nil
}

// envString returns an env override when present, otherwise a default.
func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// envInt returns an int env override when present, otherwise a default.
func envInt(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}

// envBool returns a bool env override when present, otherwise a default.
func envBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}
