package content

import (
	"strings"

	"scrollnav/internal/config"
	"scrollnav/internal/logging"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"
)

// Renderer renders section markdown for the terminal.
type Renderer struct {
	theme string
	width int
	term  *glamour.TermRenderer
}

// NewRenderer creates a glamour renderer for theme (auto, dark, light) that
// wraps at width columns.
func NewRenderer(theme string, width int) (*Renderer, error) {
	if width < 20 {
		width = 20
	}
	style := glamour.WithAutoStyle()
	switch theme {
	case config.ThemeDark, config.ThemeLight:
		style = glamour.WithStylePath(theme)
	}
	term, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return nil, err
	}
	return &Renderer{theme: theme, width: width, term: term}, nil
}

// Width returns the wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Render renders markdown, falling back to the raw text when glamour fails.
// A nil renderer returns the raw text.
func (r *Renderer) Render(markdown string) string {
	if r == nil || r.term == nil {
		return markdown
	}
	out, err := r.term.Render(markdown)
	if err != nil {
		logging.Get(logging.CategoryContent).Warn("render failed, using raw markdown: %v", err)
		return markdown
	}
	return out
}

// renderLines renders and splits into lines with outer blank lines trimmed.
func (r *Renderer) renderLines(markdown string) []string {
	out := strings.Trim(r.Render(markdown), "\n")
	lines := strings.Split(out, "\n")
	start, end := 0, len(lines)
	for start < end && blank(lines[start]) {
		start++
	}
	for end > start && blank(lines[end-1]) {
		end--
	}
	return lines[start:end]
}

func blank(line string) bool {
	return strings.TrimSpace(ansi.Strip(line)) == ""
}
