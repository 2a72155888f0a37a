package ui

import (
	"strings"

	"scrollnav/internal/navigation"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// fillGlyphs show section progress from empty to full.
var fillGlyphs = []rune(" ▁▂▃▄▅▆▇█")

// fillGlyph maps a 0-100 progress value to a glyph.
func fillGlyph(progress float64) string {
	if progress <= 0 {
		return string(fillGlyphs[0])
	}
	i := int(progress / 100 * float64(len(fillGlyphs)-1))
	if i < 1 {
		i = 1
	}
	if i > len(fillGlyphs)-1 {
		i = len(fillGlyphs) - 1
	}
	return string(fillGlyphs[i])
}

// renderRail draws one line per content row: a dot per section with its
// progress fill, and the title when the layout is wide.
func renderRail(sections []navigation.Section, st navigation.State, layout LayoutConfig, styles Styles) string {
	height := layout.ContentHeight()
	rows := make([]string, height)
	blank := strings.Repeat(" ", layout.RailWidth)
	for i := range rows {
		rows[i] = blank
	}

	top := layout.RailTop(len(sections)) - HeaderHeight
	labelWidth := layout.RailWidth - RailCompactWidth - 1
	for i, s := range sections {
		row := top + i*DotSpacing
		if row < 0 || row >= height {
			continue
		}

		dot := styles.DotIdle.Render("○")
		label := styles.DotLabel
		if s.ID == st.CurrentSectionID {
			dot = styles.DotActive.Render("●")
			label = styles.DotActive
		}
		line := " " + dot + styles.DotFill.Render(fillGlyph(st.Progress(s.ID))) + " "
		if !layout.IsCompact && labelWidth > 0 {
			title := s.Title
			if title == "" {
				title = s.ID
			}
			line += label.Render(ansi.Truncate(title, labelWidth, "…"))
		}
		rows[row] = lipgloss.NewStyle().Width(layout.RailWidth).MaxWidth(layout.RailWidth).Render(line)
	}
	return strings.Join(rows, "\n")
}

// WidestTitle returns the display width of the longest section title.
func WidestTitle(sections []navigation.Section) int {
	w := 0
	for _, s := range sections {
		title := s.Title
		if title == "" {
			title = s.ID
		}
		if tw := lipgloss.Width(title); tw > w {
			w = tw
		}
	}
	return w
}
