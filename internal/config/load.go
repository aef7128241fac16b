package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	// Explicit path takes priority
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile(*flagLevelsPath)
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, errors.Wrapf(err, "loading config from %s", configPath)
		}
	}

	applyFlags(cfg)

	return cfg, nil
}

// findConfigFile looks for config in the working directory, then in
// levelsPath and each of its parents, so a config kept next to custom_levels/
// or at the project root is found from anywhere. The user config directory
// is tried last.
func findConfigFile(levelsPath string) string {
	candidates := []string{filepath.Join(".", FileName)}
	if levelsPath != "" {
		if dir, err := filepath.Abs(levelsPath); err == nil {
			for {
				candidates = append(candidates, filepath.Join(dir, FileName))
				parent := filepath.Dir(dir)
				if parent == dir {
					break
				}
				dir = parent
			}
		}
	}
	candidates = append(candidates, filepath.Join(ConfigDir(), FileName))

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "GoalLevels")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "GoalLevels")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "goal-levels")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "goal-levels")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
