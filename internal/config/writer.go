package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	yaml "gopkg.in/yaml.v3"
)

// ProjectFile is the shape of the project config scaffold written by
// project init and read back by viper on later invocations.
type ProjectFile struct {
	Project ProjectSection `yaml:"project"`
}

// ProjectSection holds the project-level settings recorded at init time.
type ProjectSection struct {
	Plan      string   `yaml:"plan,omitempty"`
	Framework string   `yaml:"framework,omitempty"`
	Deps      []string `yaml:"deps,omitempty"`
}

// WriteProjectFile writes the config scaffold. An existing file is left
// untouched: init must never clobber configuration the user has edited.
func WriteProjectFile(fs afero.Fs, path string, cfg ProjectFile) (created bool, err error) {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return false, fmt.Errorf("failed to check config file %s: %w", path, err)
	}
	if exists {
		return false, nil
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("failed to create config directory %s: %w", dir, err)
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return false, fmt.Errorf("failed to marshal project config: %w", err)
	}
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return false, fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return true, nil
}
