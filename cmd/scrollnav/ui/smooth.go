package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// scrollFrameMsg advances a smooth scroll; frames from an older animation
// carry a stale generation and are dropped.
type scrollFrameMsg struct {
	gen int
}

// animator eases the viewport toward a target offset. Starting a new
// animation supersedes the running one, so the last request wins.
type animator struct {
	step   time.Duration
	gen    int
	target int
	active bool
	kick   bool
}

func (a *animator) start(target int) {
	a.gen++
	a.target = target
	a.active = true
	a.kick = true
}

// stop cancels the running animation; its pending frame becomes stale.
func (a *animator) stop() {
	if a.active {
		a.gen++
		a.active = false
	}
	a.kick = false
}

// frame schedules the next frame for the current generation.
func (a *animator) frame() tea.Cmd {
	gen := a.gen
	return tea.Tick(a.step, func(time.Time) tea.Msg {
		return scrollFrameMsg{gen: gen}
	})
}

// takeKick returns the first frame of a just-started animation, once.
func (a *animator) takeKick() tea.Cmd {
	if !a.kick {
		return nil
	}
	a.kick = false
	return a.frame()
}

// next returns the offset after one frame from cur: a third of the remaining
// distance, at least one line.
func (a *animator) next(cur int) int {
	d := a.target - cur
	s := d / 3
	if s == 0 {
		s = d
	}
	return cur + s
}
