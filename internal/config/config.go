package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/yildizm/jim/internal/exercise"
)

// Config holds the complete application configuration
type Config struct {
	Version string        `yaml:"version" json:"version"`
	Service ServiceConfig `yaml:"service" json:"service"`
	Upload  UploadConfig  `yaml:"upload" json:"upload"`
	Live    LiveConfig    `yaml:"live" json:"live"`
	Output  OutputConfig  `yaml:"output" json:"output"`
	Watch   WatchConfig   `yaml:"watch" json:"watch"`
}

// ServiceConfig locates the analysis service
type ServiceConfig struct {
	BaseURL    string `yaml:"base_url" json:"base_url"`       // service root, e.g. http://localhost:5000
	SubmitPath string `yaml:"submit_path" json:"submit_path"` // video submission endpoint
	LivePath   string `yaml:"live_path" json:"live_path"`     // live session endpoint
	StaticPath string `yaml:"static_path" json:"static_path"` // processed video prefix
}

// UploadConfig configures the upload workflow
type UploadConfig struct {
	DefaultExercise string        `yaml:"default_exercise" json:"default_exercise"`
	Extensions      []string      `yaml:"extensions" json:"extensions"` // picker filter, never re-checked by the workflow
	Timeout         time.Duration `yaml:"timeout" json:"timeout"`       // 0 disables the timeout
}

// LiveConfig configures the live session workflow
type LiveConfig struct {
	DefaultExercise string        `yaml:"default_exercise" json:"default_exercise"`
	Timeout         time.Duration `yaml:"timeout" json:"timeout"`
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // text|json|markdown|csv
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	Theme         string `yaml:"theme" json:"theme"`                   // default|high-contrast|minimal
	Verbose       bool   `yaml:"verbose" json:"verbose"`
	LogFile       string `yaml:"log_file" json:"log_file"` // diagnostic log while the TUI owns the terminal
}

// WatchConfig configures the directory watcher
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce" json:"debounce"` // wait for writes to settle before submitting
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Service: ServiceConfig{
			BaseURL:    "http://localhost:5000",
			SubmitPath: "/",
			LivePath:   "/live",
			StaticPath: "/static/",
		},
		Upload: UploadConfig{
			DefaultExercise: "",
			Extensions:      []string{".mp4", ".avi", ".mov"},
			Timeout:         5 * time.Minute,
		},
		Live: LiveConfig{
			DefaultExercise: "",
			Timeout:         30 * time.Second,
		},
		Output: OutputConfig{
			DefaultFormat: "text",
			ColorMode:     "auto",
			Theme:         "default",
			Verbose:       false,
			LogFile:       "~/.cache/jim/jim.log",
		},
		Watch: WatchConfig{
			Debounce: 2 * time.Second,
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateServiceConfig(); err != nil {
		return err
	}
	if err := c.validateExerciseDefaults(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	if err := c.validateTimeoutConfig(); err != nil {
		return err
	}
	return nil
}

// validateServiceConfig validates service-related configuration
func (c *Config) validateServiceConfig() error {
	if c.Service.BaseURL == "" {
		return fmt.Errorf("service base_url must be set")
	}
	u, err := url.Parse(c.Service.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid service base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid service base_url: %s (scheme must be http or https)", c.Service.BaseURL)
	}
	for name, path := range map[string]string{
		"submit_path": c.Service.SubmitPath,
		"live_path":   c.Service.LivePath,
		"static_path": c.Service.StaticPath,
	} {
		if !strings.HasPrefix(path, "/") {
			return fmt.Errorf("service %s must start with '/': %q", name, path)
		}
	}
	return nil
}

// validateExerciseDefaults validates configured default exercise types
func (c *Config) validateExerciseDefaults() error {
	if c.Upload.DefaultExercise != "" {
		if _, err := exercise.Parse(c.Upload.DefaultExercise); err != nil {
			return fmt.Errorf("upload default_exercise: %w", err)
		}
	}
	if c.Live.DefaultExercise != "" {
		if _, err := exercise.Parse(c.Live.DefaultExercise); err != nil {
			return fmt.Errorf("live default_exercise: %w", err)
		}
	}
	for _, ext := range c.Upload.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("upload extension must start with '.': %q", ext)
		}
	}
	return nil
}

// validateOutputConfig validates output-related configuration
func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"json":     true,
			"text":     true,
			"markdown": true,
			"csv":      true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: json, text, markdown, csv)", c.Output.DefaultFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	if c.Output.Theme != "" {
		validThemes := map[string]bool{
			"default":       true,
			"high-contrast": true,
			"minimal":       true,
		}
		if !validThemes[c.Output.Theme] {
			return fmt.Errorf("invalid theme: %s (must be one of: default, high-contrast, minimal)", c.Output.Theme)
		}
	}
	return nil
}

// validateTimeoutConfig validates timeout-related configuration
func (c *Config) validateTimeoutConfig() error {
	if c.Upload.Timeout < 0 {
		return fmt.Errorf("upload timeout must be non-negative")
	}
	if c.Live.Timeout < 0 {
		return fmt.Errorf("live timeout must be non-negative")
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch debounce must be non-negative")
	}
	return nil
}

// UploadExercise returns the configured default upload exercise, if any
func (c *Config) UploadExercise() exercise.Type {
	t, err := exercise.Parse(c.Upload.DefaultExercise)
	if err != nil {
		return ""
	}
	return t
}

// LiveExercise returns the configured default live exercise, if any
func (c *Config) LiveExercise() exercise.Type {
	t, err := exercise.Parse(c.Live.DefaultExercise)
	if err != nil {
		return ""
	}
	return t
}
