package navigation

import "math"

// Metrics is one geometry reading taken at event time.
// A section missing from Sections could not be resolved by the host.
type Metrics struct {
	Sections       map[string]Geometry
	ScrollOffset   float64
	ViewportHeight float64
}

// State is a derived snapshot. Consumers must not mutate it.
type State struct {
	CurrentSectionID string             `json:"current_section_id"`
	SectionProgress  map[string]float64 `json:"section_progress"`
}

// Progress returns the completion percentage for id, 0 when unknown.
func (s State) Progress(id string) float64 {
	return s.SectionProgress[id]
}

// Clone returns a deep copy.
func (s State) Clone() State {
	progress := make(map[string]float64, len(s.SectionProgress))
	for id, p := range s.SectionProgress {
		progress[id] = p
	}
	return State{CurrentSectionID: s.CurrentSectionID, SectionProgress: progress}
}

func initialState(sections []Section) State {
	progress := make(map[string]float64, len(sections))
	for _, s := range sections {
		progress[s.ID] = 0
	}
	return State{CurrentSectionID: sections[0].ID, SectionProgress: progress}
}

// Derive computes a snapshot from geometry alone.
//
// Progress uses viewport overlap: a section is in view when
// scroll+viewport > start and scroll < end. The current section uses point
// containment of the raw scroll offset, first match in order wins, and
// previous is kept when nothing contains it. The two tests disagree near
// boundaries; dot highlighting and fill height depend on that split.
func Derive(sections []Section, m Metrics, previous string) State {
	state := State{
		CurrentSectionID: previous,
		SectionProgress:  make(map[string]float64, len(sections)),
	}

	scroll, viewport := m.ScrollOffset, m.ViewportHeight
	metricsUsable := finite(scroll) && finite(viewport)

	matched := false
	for _, s := range sections {
		state.SectionProgress[s.ID] = 0

		g, ok := m.Sections[s.ID]
		if !ok || !g.usable() || !metricsUsable {
			continue
		}

		state.SectionProgress[s.ID] = visibleProgress(g, scroll, viewport)

		if !matched && g.Contains(scroll) {
			state.CurrentSectionID = s.ID
			matched = true
		}
	}
	return state
}

func visibleProgress(g Geometry, scroll, viewport float64) float64 {
	start, end := g.OffsetTop, g.End()
	if !(scroll+viewport > start && scroll < end) {
		return 0
	}
	visibleStart := math.Max(scroll, start)
	visibleEnd := math.Min(scroll+viewport, end)
	return clamp((visibleEnd-visibleStart)/g.Height*100, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(math.Max(v, lo), hi)
}
