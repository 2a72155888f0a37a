package config

import "time"

// Theme names accepted by UIConfig.Theme.
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// UIConfig holds terminal pager configuration.
type UIConfig struct {
	// Theme is auto, dark or light.
	Theme string `yaml:"theme"`

	// SmoothScroll animates ScrollToSection; off jumps straight to the target.
	SmoothScroll bool `yaml:"smooth_scroll"`

	// ScrollStep is the delay between animation frames.
	ScrollStep string `yaml:"scroll_step"`

	// ResizeDebounce delays re-wrapping content after the terminal is resized.
	ResizeDebounce string `yaml:"resize_debounce"`

	// FullHeightSections pads every section to at least one viewport.
	FullHeightSections bool `yaml:"full_height_sections"`

	// WordWrap caps the markdown wrap width (0 = terminal width).
	WordWrap int `yaml:"word_wrap,omitempty"`
}

// DefaultUIConfig returns sensible UI defaults.
func DefaultUIConfig() UIConfig {
	return UIConfig{
		Theme:              ThemeAuto,
		SmoothScroll:       true,
		ScrollStep:         "16ms",
		ResizeDebounce:     "150ms",
		FullHeightSections: true,
		WordWrap:           100,
	}
}

// GetScrollStep returns the animation frame delay.
func (u UIConfig) GetScrollStep() time.Duration {
	return parseDuration(u.ScrollStep, 16*time.Millisecond)
}

// GetResizeDebounce returns the resize debounce duration.
func (u UIConfig) GetResizeDebounce() time.Duration {
	return parseDuration(u.ResizeDebounce, 150*time.Millisecond)
}
