package config

import "time"

// BrowserConfig configures live page sessions for `scrollnav browse`.
type BrowserConfig struct {
	// DebuggerURL attaches to a running Chrome; empty launches one.
	DebuggerURL       string `yaml:"debugger_url,omitempty"`
	Headless          bool   `yaml:"headless"`
	ViewportWidth     int    `yaml:"viewport_width"`
	ViewportHeight    int    `yaml:"viewport_height"`
	NavigationTimeout string `yaml:"navigation_timeout"`
}

// DefaultBrowserConfig returns sensible defaults.
func DefaultBrowserConfig() BrowserConfig {
	return BrowserConfig{
		Headless:          true,
		ViewportWidth:     1280,
		ViewportHeight:    800,
		NavigationTimeout: "30s",
	}
}

// GetNavigationTimeout returns the page load timeout.
func (b BrowserConfig) GetNavigationTimeout() time.Duration {
	return parseDuration(b.NavigationTimeout, 30*time.Second)
}
