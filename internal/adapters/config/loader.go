// Package config provides the optional dupes.yaml settings loader.
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/dupes/internal/core/domain"
	"go.trai.ch/dupes/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// configFile mirrors the dupes.yaml schema. All fields are optional;
// anything unset falls back to the built-in defaults.
type configFile struct {
	Registry    string `yaml:"registry"`
	Timeout     string `yaml:"timeout"`
	Concurrency int    `yaml:"concurrency"`
	Offline     bool   `yaml:"offline"`
}

// Load discovers dupes.yaml upward from cwd and returns the resolved
// settings. When no file exists, the defaults are returned unchanged.
func (l *Loader) Load(cwd string) (domain.Settings, error) {
	settings := domain.DefaultSettings()

	path, found := l.findConfiguration(cwd)
	if !found {
		return settings, nil
	}

	//nolint:gosec // Path is discovered relative to the user's working directory.
	data, err := os.ReadFile(path)
	if err != nil {
		return settings, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var file configFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return settings, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}

	if file.Registry != "" {
		settings.Registry = file.Registry
	}
	if file.Timeout != "" {
		timeout, err := time.ParseDuration(file.Timeout)
		if err != nil {
			parseErr := zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
			return settings, zerr.With(zerr.With(parseErr, "path", path), "timeout", file.Timeout)
		}
		settings.Timeout = timeout
	}
	if file.Concurrency > 0 {
		settings.Concurrency = file.Concurrency
	}
	if file.Offline {
		settings.Offline = true
	}

	l.logger.Debug("loaded settings from " + path)
	return settings, nil
}

// findConfiguration walks up from cwd looking for dupes.yaml.
func (l *Loader) findConfiguration(cwd string) (string, bool) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			return "", false
		}
		currentDir = parentDir
	}
}
