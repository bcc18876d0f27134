// Package profile stores named threshold presets for the gesture engine.
package profile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads a profile set from disk. A missing file returns the builtin
// presets so a fresh install works without any setup.
func Load(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Builtin(), nil
		}
		return Set{}, fmt.Errorf("read profiles: %w", err)
	}
	var s Set
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Set{}, fmt.Errorf("parse profiles %s: %w", path, err)
	}
	if s.Profiles == nil {
		s.Profiles = map[string]Thresholds{}
	}
	return s, nil
}

// Save writes the profile set to disk, creating parent directories as
// needed.
func Save(path string, s Set) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode profiles: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}
