package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Settings holds user-configurable options.
type Settings struct {
	ControllerURL    string `yaml:"controllerUrl"`    // external controller base URL
	Secret           string `yaml:"secret"`           // controller API secret
	Favicons         bool   `yaml:"favicons"`         // resolve site icons for inspected hosts
	HighlightChanges bool   `yaml:"highlightChanges"` // color new/closed connections
	DockerResolve    bool   `yaml:"dockerResolve"`    // map client IPs to container names
	ProcessLookup    bool   `yaml:"processLookup"`    // enrich local connections with process names
	RetainClosed     int    `yaml:"retainClosed"`     // closed connections kept in the table
}

// DefaultSettings returns the default settings.
func DefaultSettings() *Settings {
	return &Settings{
		ControllerURL:    "http://127.0.0.1:9090",
		Favicons:         true,
		HighlightChanges: true,
		DockerResolve:    true,
		ProcessLookup:    true,
		RetainClosed:     50,
	}
}

// settingsPath returns the path to the settings file.
func settingsPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "proxymon", "settings.yaml"), nil
}

// LoadSettings loads settings from disk, returning defaults if not found.
func LoadSettings() (*Settings, error) {
	path, err := settingsPath()
	if err != nil {
		return DefaultSettings(), nil
	}

	// #nosec G304 - path is constructed from trusted sources
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return DefaultSettings(), err
	}

	settings := DefaultSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return DefaultSettings(), err
	}
	if settings.RetainClosed < 0 {
		settings.RetainClosed = 0
	}

	return settings, nil
}

// SaveSettings writes settings to disk.
func SaveSettings(s *Settings) error {
	path, err := settingsPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// CurrentSettings holds the loaded settings (singleton).
var CurrentSettings *Settings

// InitSettings initializes the global settings.
func InitSettings() error {
	settings, err := LoadSettings()
	if err != nil {
		return err
	}
	CurrentSettings = settings
	return nil
}

func init() {
	CurrentSettings = DefaultSettings()
}
