package navigation

import (
	"sync"

	"scrollnav/internal/logging"
)

// GeometryProvider reads layout synchronously at event time.
type GeometryProvider interface {
	// SectionGeometry returns false when the section cannot be resolved.
	SectionGeometry(id string) (Geometry, bool)
	ScrollOffset() float64
	ViewportHeight() float64
}

// Host is the environment the engine runs in: it measures sections and
// performs smooth scrolls. ScrollTo is fire-and-forget.
type Host interface {
	GeometryProvider
	ScrollTo(offset float64)
}

// Engine owns the navigation state for a fixed, ordered list of sections.
type Engine struct {
	sections []Section
	index    map[string]int
	host     Host

	mu    sync.RWMutex
	state State
}

// New creates an engine. host may be nil, in which case commands are no-ops
// and only ComputeState drives the state.
func New(sections []Section, host Host) (*Engine, error) {
	if err := ValidateSections(sections); err != nil {
		return nil, err
	}

	owned := make([]Section, len(sections))
	copy(owned, sections)

	index := make(map[string]int, len(owned))
	for i, s := range owned {
		index[s.ID] = i
	}

	return &Engine{
		sections: owned,
		index:    index,
		host:     host,
		state:    initialState(owned),
	}, nil
}

// Sections returns a copy of the configured sections in order.
func (e *Engine) Sections() []Section {
	out := make([]Section, len(e.sections))
	copy(out, e.sections)
	return out
}

// Index returns the position of id, or -1.
func (e *Engine) Index(id string) int {
	if i, ok := e.index[id]; ok {
		return i
	}
	return -1
}

// Current returns the id of the active section.
func (e *Engine) Current() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.CurrentSectionID
}

// Snapshot returns a copy of the latest state.
func (e *Engine) Snapshot() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.Clone()
}

// ComputeState derives and stores a new snapshot from metrics.
func (e *Engine) ComputeState(m Metrics) State {
	e.mu.Lock()
	prev := e.state.CurrentSectionID
	next := Derive(e.sections, m, prev)
	e.state = next
	e.mu.Unlock()

	if next.CurrentSectionID != prev {
		logging.NavigationDebug("current section %s -> %s (offset=%.1f viewport=%.1f)",
			prev, next.CurrentSectionID, m.ScrollOffset, m.ViewportHeight)
	}
	return next.Clone()
}

// Measure reads the host's geometry for every section.
func (e *Engine) Measure() Metrics {
	m := Metrics{Sections: make(map[string]Geometry, len(e.sections))}
	if e.host == nil {
		return m
	}
	m.ScrollOffset = e.host.ScrollOffset()
	m.ViewportHeight = e.host.ViewportHeight()
	for _, s := range e.sections {
		if g, ok := e.host.SectionGeometry(s.ID); ok {
			m.Sections[s.ID] = g
		} else {
			logging.Get(logging.CategoryGeometry).Debug("section %s not resolvable", s.ID)
		}
	}
	return m
}

// Refresh measures the host and recomputes. Without a host it returns the
// current snapshot unchanged.
func (e *Engine) Refresh() State {
	if e.host == nil {
		return e.Snapshot()
	}
	return e.ComputeState(e.Measure())
}

// ScrollToSection asks the host to smooth-scroll to the section's top and
// marks it current right away. Unknown or unresolvable ids are ignored; the
// UI may hand us stale ids mid-transition.
func (e *Engine) ScrollToSection(id string) bool {
	if _, known := e.index[id]; !known || e.host == nil {
		return false
	}
	g, ok := e.host.SectionGeometry(id)
	if !ok {
		logging.NavigationDebug("scroll to %s ignored: not resolvable", id)
		return false
	}

	e.host.ScrollTo(g.OffsetTop)

	e.mu.Lock()
	e.state.CurrentSectionID = id
	e.mu.Unlock()

	logging.NavigationDebug("scroll to %s at %.1f", id, g.OffsetTop)
	return true
}

// GoToNext scrolls to the section after the current one.
func (e *Engine) GoToNext() bool {
	i := e.Index(e.Current())
	if i < 0 || i >= len(e.sections)-1 {
		return false
	}
	return e.ScrollToSection(e.sections[i+1].ID)
}

// GoToPrevious scrolls to the section before the current one.
func (e *Engine) GoToPrevious() bool {
	i := e.Index(e.Current())
	if i <= 0 {
		return false
	}
	return e.ScrollToSection(e.sections[i-1].ID)
}
