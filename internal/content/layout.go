package content

import (
	"strings"

	"scrollnav/internal/navigation"

	"github.com/charmbracelet/lipgloss"
)

// Block is one laid-out section.
type Block struct {
	Source   Source
	Geometry navigation.Geometry
	Lines    []string
}

// Layout is the whole document as terminal lines. Section geometry is in
// lines: OffsetTop is the first line of the section, Height its line count.
type Layout struct {
	blocks []Block
	index  map[string]int
	lines  []string
}

// LayoutOptions controls how sources are laid out.
type LayoutOptions struct {
	// MinSectionHeight pads shorter sections with blank lines (full-height
	// sections pass the viewport height here).
	MinSectionHeight int
}

// Build renders sources and computes section geometry.
func Build(sources []Source, r *Renderer, opts LayoutOptions) *Layout {
	l := &Layout{index: make(map[string]int, len(sources))}

	for _, src := range sources {
		lines := []string{renderHeader(src), ""}
		lines = append(lines, r.renderLines(src.Markdown)...)
		lines = append(lines, "")
		for len(lines) < opts.MinSectionHeight {
			lines = append(lines, "")
		}

		b := Block{
			Source: src,
			Geometry: navigation.Geometry{
				OffsetTop: float64(len(l.lines)),
				Height:    float64(len(lines)),
			},
			Lines: lines,
		}
		l.index[src.Section.ID] = len(l.blocks)
		l.blocks = append(l.blocks, b)
		l.lines = append(l.lines, lines...)
	}
	return l
}

func renderHeader(src Source) string {
	style := lipgloss.NewStyle().Bold(true)
	if src.Color != "" {
		style = style.Foreground(lipgloss.Color(src.Color))
	}
	title := src.Section.Title
	if title == "" {
		title = src.Section.ID
	}
	return style.Render("▍ " + strings.ToUpper(title))
}

// SectionGeometry returns the geometry of id; unknown ids are not found.
func (l *Layout) SectionGeometry(id string) (navigation.Geometry, bool) {
	if l == nil {
		return navigation.Geometry{}, false
	}
	i, ok := l.index[id]
	if !ok {
		return navigation.Geometry{}, false
	}
	return l.blocks[i].Geometry, true
}

// Blocks returns the laid-out sections in order.
func (l *Layout) Blocks() []Block {
	return l.blocks
}

// Sections returns the navigation sections in layout order.
func (l *Layout) Sections() []navigation.Section {
	if l == nil {
		return nil
	}
	out := make([]navigation.Section, len(l.blocks))
	for i, b := range l.blocks {
		out[i] = b.Source.Section
	}
	return out
}

// Len returns the total line count.
func (l *Layout) Len() int {
	if l == nil {
		return 0
	}
	return len(l.lines)
}

// Content returns the document joined for a viewport.
func (l *Layout) Content() string {
	return strings.Join(l.lines, "\n")
}

// Metrics returns a geometry reading at offset with a viewport of height lines.
func (l *Layout) Metrics(offset, height float64) navigation.Metrics {
	m := navigation.Metrics{
		Sections:       make(map[string]navigation.Geometry, len(l.blocks)),
		ScrollOffset:   offset,
		ViewportHeight: height,
	}
	for _, b := range l.blocks {
		m.Sections[b.Source.Section.ID] = b.Geometry
	}
	return m
}

// MaxOffset returns the largest scroll offset that still fills a viewport
// of height lines.
func (l *Layout) MaxOffset(height int) int {
	if max := l.Len() - height; max > 0 {
		return max
	}
	return 0
}

// Viewport is a headless navigation.Host over a layout: ScrollTo jumps.
type Viewport struct {
	Layout *Layout
	Offset int
	Height int
}

// SectionGeometry implements navigation.GeometryProvider.
func (v *Viewport) SectionGeometry(id string) (navigation.Geometry, bool) {
	return v.Layout.SectionGeometry(id)
}

// ScrollOffset implements navigation.GeometryProvider.
func (v *Viewport) ScrollOffset() float64 { return float64(v.Offset) }

// ViewportHeight implements navigation.GeometryProvider.
func (v *Viewport) ViewportHeight() float64 { return float64(v.Height) }

// ScrollTo implements navigation.Host, clamped to the scrollable range.
func (v *Viewport) ScrollTo(offset float64) {
	o := int(offset)
	if o < 0 {
		o = 0
	}
	if max := v.Layout.MaxOffset(v.Height); o > max {
		o = max
	}
	v.Offset = o
}
