package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"scrollnav/internal/logging"
	"scrollnav/internal/navigation"

	"gopkg.in/yaml.v3"
)

// Config holds all scrollnav configuration. It is created once at startup
// and treated as immutable afterwards.
type Config struct {
	Name string `yaml:"name"`

	// Sections in display order.
	Sections []SectionConfig `yaml:"sections"`

	// Document is an optional markdown file split into sections at level-2
	// headings. When set it supplies the section bodies.
	Document string `yaml:"document,omitempty"`

	UI      UIConfig      `yaml:"ui"`
	Browser BrowserConfig `yaml:"browser"`
	Logging LoggingConfig `yaml:"logging"`

	// path of the file this config was loaded from, for resolving relative paths
	path string
}

// SectionConfig describes one landing page section.
type SectionConfig struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	Color string `yaml:"color,omitempty"` // header accent, any lipgloss color
	Body  string `yaml:"body,omitempty"`  // inline markdown
	File  string `yaml:"file,omitempty"`  // markdown file, relative to the config file
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level      string          `yaml:"level"`  // debug, info, warn, error
	Format     string          `yaml:"format"` // json, console
	File       string          `yaml:"file"`   // empty disables logging
	Categories map[string]bool `yaml:"categories,omitempty"`
}

// Options converts to logging options.
func (l LoggingConfig) Options() logging.Options {
	return logging.Options{
		Level:      l.Level,
		Format:     l.Format,
		File:       l.File,
		Categories: l.Categories,
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:     "scrollnav",
		Sections: DefaultSections(),
		UI:       DefaultUIConfig(),
		Browser:  DefaultBrowserConfig(),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.path = path

	// A document without a sections key takes its sections from the
	// document instead of the built-in landing page.
	var keys struct {
		Sections *[]SectionConfig `yaml:"sections"`
	}
	if err := yaml.Unmarshal(data, &keys); err == nil && keys.Sections == nil && cfg.Document != "" {
		cfg.Sections = nil
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Path returns the file the config was loaded from, or "".
func (c *Config) Path() string {
	return c.path
}

// Resolve makes p absolute relative to the config file's directory.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.path == "" {
		return p
	}
	return filepath.Join(filepath.Dir(c.path), p)
}

// Validate checks the section list.
func (c *Config) Validate() error {
	if c.Document != "" && len(c.Sections) == 0 {
		// Sections come from the document headings.
		return nil
	}
	if err := navigation.ValidateSections(c.NavigationSections()); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// NavigationSections converts the configured sections for the engine.
func (c *Config) NavigationSections() []navigation.Section {
	out := make([]navigation.Section, 0, len(c.Sections))
	for _, s := range c.Sections {
		out = append(out, navigation.Section{ID: s.ID, Title: s.Title})
	}
	return out
}

// ContentFiles returns every file the rendered content depends on.
func (c *Config) ContentFiles() []string {
	var files []string
	if c.path != "" {
		files = append(files, c.path)
	}
	if c.Document != "" {
		files = append(files, c.Resolve(c.Document))
	}
	for _, s := range c.Sections {
		if s.File != "" {
			files = append(files, c.Resolve(s.File))
		}
	}
	return files
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if theme := os.Getenv("SCROLLNAV_THEME"); theme != "" {
		c.UI.Theme = theme
	}
	if os.Getenv("SCROLLNAV_DARK_MODE") == "1" {
		c.UI.Theme = ThemeDark
	}
	if level := os.Getenv("SCROLLNAV_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if file := os.Getenv("SCROLLNAV_LOG_FILE"); file != "" {
		c.Logging.File = file
	}
	if url := os.Getenv("SCROLLNAV_DEBUGGER_URL"); url != "" {
		c.Browser.DebuggerURL = url
	}
}

func parseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
