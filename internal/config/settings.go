package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userSettingsDir    = ".config/composectl"
	projectSettingsDir = ".composectl"
	settingsFileName   = "config.yaml"
)

// Settings holds tool-level configuration, as opposed to the compose file
// which describes services. Settings are layered: defaults, then the user
// file under the home directory, then the project file under the working
// directory.
type Settings struct {
	Runtime RuntimeSettings `yaml:"runtime"`
}

// RuntimeSettings configures how the external container runtime is driven.
type RuntimeSettings struct {
	// Binary is the runtime executable looked up on PATH.
	Binary string `yaml:"binary,omitempty"`
	// StopTimeout bounds a graceful stop before escalating to a kill.
	StopTimeout Duration `yaml:"stopTimeout,omitempty"`
	// KillRetryDelay is the pause before the single kill retry.
	KillRetryDelay Duration `yaml:"killRetryDelay,omitempty"`
}

// Duration wraps time.Duration so settings files can use human-readable
// values like "10s" or "500ms".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := time.ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", node.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// DefaultSettings returns the built-in settings layer.
func DefaultSettings() Settings {
	return Settings{
		Runtime: RuntimeSettings{
			Binary:         "container",
			StopTimeout:    Duration(10 * time.Second),
			KillRetryDelay: Duration(500 * time.Millisecond),
		},
	}
}

// LoadSettings loads the tool settings by layering default, user, and
// project files. Missing files are fine; a present but unparsable file
// is an error.
func LoadSettings() (Settings, error) {
	settings := DefaultSettings()

	userPath, err := getUserSettingsPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not determine user settings path: %v\n", err)
	} else {
		if _, err := os.Stat(userPath); !os.IsNotExist(err) {
			userSettings, err := loadSettingsFromFile(userPath)
			if err != nil {
				return Settings{}, fmt.Errorf("error loading user settings from %s: %w", userPath, err)
			}
			settings = mergeSettings(settings, userSettings)
		}
	}

	projectPath, err := getProjectSettingsPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not determine project settings path: %v\n", err)
	} else {
		if _, err := os.Stat(projectPath); !os.IsNotExist(err) {
			projectSettings, err := loadSettingsFromFile(projectPath)
			if err != nil {
				return Settings{}, fmt.Errorf("error loading project settings from %s: %w", projectPath, err)
			}
			settings = mergeSettings(settings, projectSettings)
		}
	}

	return settings, nil
}

var getUserSettingsPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userSettingsDir, settingsFileName), nil
}

var getProjectSettingsPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectSettingsDir, settingsFileName), nil
}

func loadSettingsFromFile(filePath string) (Settings, error) {
	var settings Settings
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Settings{}, err
	}
	err = yaml.Unmarshal(data, &settings)
	if err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// mergeSettings merges 'overlay' into 'base'; only fields explicitly set
// in the overlay replace the base values.
func mergeSettings(base, overlay Settings) Settings {
	merged := base

	if overlay.Runtime.Binary != "" {
		merged.Runtime.Binary = overlay.Runtime.Binary
	}
	if overlay.Runtime.StopTimeout != 0 {
		merged.Runtime.StopTimeout = overlay.Runtime.StopTimeout
	}
	if overlay.Runtime.KillRetryDelay != 0 {
		merged.Runtime.KillRetryDelay = overlay.Runtime.KillRetryDelay
	}

	return merged
}
