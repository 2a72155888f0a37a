// Package navigation tracks where the reader is among an ordered list of
// full-height sections, purely from scroll geometry, and moves between them.
package navigation

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfiguration is returned at construction for an unusable section list.
var ErrInvalidConfiguration = errors.New("invalid navigation configuration")

// Section is one full-height block of page content.
type Section struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
}

// Geometry is the document-relative vertical extent of a section.
type Geometry struct {
	OffsetTop float64 `json:"offset_top"`
	Height    float64 `json:"height"`
}

// End returns OffsetTop + Height.
func (g Geometry) End() float64 {
	return g.OffsetTop + g.Height
}

// usable reports whether the geometry can take part in a computation.
func (g Geometry) usable() bool {
	return finite(g.OffsetTop) && finite(g.Height) && g.Height > 0
}

// Contains reports whether offset falls in [OffsetTop, End).
func (g Geometry) Contains(offset float64) bool {
	return g.usable() && offset >= g.OffsetTop && offset < g.End()
}

// ValidateSections checks the list is non-empty with unique, non-empty ids.
func ValidateSections(sections []Section) error {
	if len(sections) == 0 {
		return fmt.Errorf("%w: no sections", ErrInvalidConfiguration)
	}
	seen := make(map[string]struct{}, len(sections))
	for i, s := range sections {
		if s.ID == "" {
			return fmt.Errorf("%w: section %d has an empty id", ErrInvalidConfiguration, i)
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("%w: duplicate section id %q", ErrInvalidConfiguration, s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
