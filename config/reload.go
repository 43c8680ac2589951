package config

import (
	"log/slog"
	"reflect"
)

// Reloader re-reads a config file and reports whether its content changed.
// A file that fails to load leaves the current document in place.
type Reloader struct {
	path    string
	current *Config
}

func NewReloader(path string, initial *Config) *Reloader {
	if initial == nil {
		initial = Default()
	}
	return &Reloader{path: path, current: initial}
}

// Current returns the last successfully loaded document.
func (r *Reloader) Current() *Config { return r.current }

// Reload reads the file again. It returns the new document and true only
// when the parsed content differs from the current one.
func (r *Reloader) Reload() (*Config, bool, error) {
	cfg, err := Load(r.path)
	if err != nil {
		return r.current, false, err
	}
	if reflect.DeepEqual(cfg, r.current) {
		return r.current, false, nil
	}
	r.current = cfg
	slog.Info("config loaded", "path", r.path, "strategy", cfg.Strategy, "combatMode", cfg.Mode())
	return cfg, true, nil
}
