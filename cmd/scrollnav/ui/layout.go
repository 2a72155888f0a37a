package ui

// Layout constants for the pager chrome
const (
	HeaderHeight = 1
	FooterHeight = 2

	// Navigation rail: dot, fill glyph and padding; titles are added on wide terminals.
	RailCompactWidth = 4
	RailMaxLabel     = 24
	DotSpacing       = 2

	// Responsive breakpoints
	MinimumTerminalWidth  = 40
	MinimumTerminalHeight = 10
	CompactModeWidth      = 100
)

// LayoutConfig provides computed layout dimensions based on terminal size
type LayoutConfig struct {
	TerminalWidth  int
	TerminalHeight int
	IsCompact      bool
	RailWidth      int
}

// NewLayoutConfig creates a layout configuration for the given terminal
// size; labelWidth is the widest section title.
func NewLayoutConfig(width, height, labelWidth int) LayoutConfig {
	l := LayoutConfig{
		TerminalWidth:  width,
		TerminalHeight: height,
		IsCompact:      width < CompactModeWidth,
		RailWidth:      RailCompactWidth,
	}
	if !l.IsCompact {
		if labelWidth > RailMaxLabel {
			labelWidth = RailMaxLabel
		}
		l.RailWidth += labelWidth + 1
	}
	return l
}

// ContentWidth returns the viewport width left of the rail
func (l LayoutConfig) ContentWidth() int {
	if w := l.TerminalWidth - l.RailWidth; w > 1 {
		return w
	}
	return 1
}

// ContentHeight returns the viewport height between header and footer
func (l LayoutConfig) ContentHeight() int {
	if h := l.TerminalHeight - HeaderHeight - FooterHeight; h > 1 {
		return h
	}
	return 1
}

// RailTop returns the first dot row (terminal coordinates) for n sections,
// centering the dots in the content area.
func (l LayoutConfig) RailTop(n int) int {
	span := (n-1)*DotSpacing + 1
	top := (l.ContentHeight() - span) / 2
	if top < 0 {
		top = 0
	}
	return HeaderHeight + top
}

// DotAt returns the section index of the dot at terminal cell (x, y), or -1.
func (l LayoutConfig) DotAt(x, y, n int) int {
	if x < l.ContentWidth() || n == 0 {
		return -1
	}
	row := y - l.RailTop(n)
	if row < 0 || row%DotSpacing != 0 {
		return -1
	}
	if i := row / DotSpacing; i < n {
		return i
	}
	return -1
}
