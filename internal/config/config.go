package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// Dir is the DDEV project directory the plugin config lives in.
	Dir        = ".ddev"
	ConfigFile = "opencode.yaml"
)

// Config is the plugin's per-project configuration. Everything has a
// working default; the file is optional.
type Config struct {
	Version string `yaml:"version"`
	// HostOnly lists extra first tokens that must always run on the host,
	// on top of the built-in git/gh/docker/ddev set.
	HostOnly []string `yaml:"host_only"`
	// Debug enables debug-level log output.
	Debug bool `yaml:"debug,omitempty"`
	// LogFile overrides where plugin logs are written. Empty means the
	// default file under the user config dir.
	LogFile string `yaml:"log_file,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{Version: "1"}
}

// Load reads config from .ddev/opencode.yaml relative to projectDir.
// A missing file yields the defaults, not an error.
func Load(projectDir string) (*Config, error) {
	path := filepath.Join(projectDir, Dir, ConfigFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes config to .ddev/opencode.yaml relative to projectDir.
func Save(projectDir string, cfg *Config) error {
	dir := filepath.Join(projectDir, Dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	path := filepath.Join(dir, ConfigFile)
	return os.WriteFile(path, data, 0o644)
}

// Exists returns true if .ddev/opencode.yaml exists.
func Exists(projectDir string) bool {
	path := filepath.Join(projectDir, Dir, ConfigFile)
	_, err := os.Stat(path)
	return err == nil
}
