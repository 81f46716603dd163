package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPaths lists config files from highest to lowest priority
var ConfigPaths = []string{
	"./.jim.yaml",
	"~/.config/jim/config.yaml",
	"/etc/jim/config.yaml",
}

// Loader layers configuration files over the defaults
type Loader struct {
	configPaths []string
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
	}
}

// LoadConfig builds the configuration from defaults, then files (or
// customPath alone), then JIM_* environment variables, and validates it.
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	config := DefaultConfig()

	if customPath != "" {
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if err := l.loadFromFile(config, customPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		// lowest priority first so later files win
		for i := len(l.configPaths) - 1; i >= 0; i-- {
			expandedPath := ExpandPath(l.configPaths[i])
			if fileExists(expandedPath) {
				if err := l.loadFromFile(config, expandedPath); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: Failed to load config from %s: %v\n", expandedPath, err)
				}
			}
		}
	}

	if err := l.applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadFromFile decodes path over config. Keys present in the file replace
// the current value, including zero values such as "timeout: 0s"; absent
// keys keep it. A file that fails to parse leaves config untouched.
func (l *Loader) loadFromFile(config *Config, path string) error {
	// #nosec G304 - the path comes from the user's flag or the fixed search list
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	next := *config
	next.Upload.Extensions = append([]string(nil), config.Upload.Extensions...)
	if err := yaml.Unmarshal(data, &next); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	*config = next
	return nil
}

// applyEnvOverrides applies JIM_* variables; JIM_UPLOAD_EXTENSIONS is comma separated
func (l *Loader) applyEnvOverrides(config *Config) error {
	envMappings := map[string]func(string) error{
		"JIM_SERVICE_BASE_URL":    func(v string) error { config.Service.BaseURL = v; return nil },
		"JIM_SERVICE_SUBMIT_PATH": func(v string) error { config.Service.SubmitPath = v; return nil },
		"JIM_SERVICE_LIVE_PATH":   func(v string) error { config.Service.LivePath = v; return nil },
		"JIM_SERVICE_STATIC_PATH": func(v string) error { config.Service.StaticPath = v; return nil },

		"JIM_UPLOAD_DEFAULT_EXERCISE": func(v string) error { config.Upload.DefaultExercise = v; return nil },
		"JIM_UPLOAD_TIMEOUT":          func(v string) error { return parseDuration(v, &config.Upload.Timeout) },

		"JIM_LIVE_DEFAULT_EXERCISE": func(v string) error { config.Live.DefaultExercise = v; return nil },
		"JIM_LIVE_TIMEOUT":          func(v string) error { return parseDuration(v, &config.Live.Timeout) },

		"JIM_OUTPUT_DEFAULT_FORMAT": func(v string) error { config.Output.DefaultFormat = v; return nil },
		"JIM_OUTPUT_COLOR_MODE":     func(v string) error { config.Output.ColorMode = v; return nil },
		"JIM_OUTPUT_THEME":          func(v string) error { config.Output.Theme = v; return nil },
		"JIM_OUTPUT_VERBOSE":        func(v string) error { return parseBool(v, &config.Output.Verbose) },
		"JIM_OUTPUT_LOG_FILE":       func(v string) error { config.Output.LogFile = v; return nil },

		"JIM_WATCH_DEBOUNCE": func(v string) error { return parseDuration(v, &config.Watch.Debounce) },
	}

	for envVar, setter := range envMappings {
		if value := os.Getenv(envVar); value != "" {
			if err := setter(value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar, err)
			}
		}
	}

	if exts := os.Getenv("JIM_UPLOAD_EXTENSIONS"); exts != "" {
		config.Upload.Extensions = strings.Split(exts, ",")
		for i, ext := range config.Upload.Extensions {
			config.Upload.Extensions[i] = strings.TrimSpace(ext)
		}
	}

	return nil
}

// GetConfigPaths returns the expanded search paths
func GetConfigPaths() []string {
	paths := make([]string, 0, len(ConfigPaths))
	for _, path := range ConfigPaths {
		paths = append(paths, ExpandPath(path))
	}
	return paths
}

// FindConfigFile returns the highest priority config file that exists
func FindConfigFile() (string, bool) {
	for _, path := range ConfigPaths {
		expandedPath := ExpandPath(path)
		if fileExists(expandedPath) {
			return expandedPath, true
		}
	}
	return "", false
}

// validateConfigPath rejects files the loader cannot parse as YAML
func validateConfigPath(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("config file must have .yaml or .yml extension")
	}
	return nil
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func parseBool(s string, dst *bool) error {
	val, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseDuration(s string, dst *time.Duration) error {
	val, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}
