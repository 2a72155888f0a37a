package ui

import (
	"errors"
	"strings"
	"testing"

	"scrollnav/internal/config"
	"scrollnav/internal/content"
	"scrollnav/internal/navigation"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSources() []content.Source {
	return []content.Source{
		{Section: navigation.Section{ID: "hero", Title: "Welcome Screen"}, Markdown: "hello\nworld"},
		{Section: navigation.Section{ID: "advantages", Title: "Communication Benefits"}, Markdown: "fast\nsecure\nsimple"},
		{Section: navigation.Section{ID: "legal-section", Title: "Terms and Policies"}, Markdown: "terms"},
	}
}

// newTestModel returns a mounted 80x24 pager: each section is padded to the
// 21-line viewport, so sections start at 0, 21 and 42.
func newTestModel(t *testing.T, smooth bool) *Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Name = "Test"
	cfg.UI.Theme = config.ThemeDark
	cfg.UI.SmoothScroll = smooth

	m, err := NewModel(cfg, testSources(), WithPlainText())
	require.NoError(t, err)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	t.Cleanup(m.Close)
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// settle runs animation frames until the scroll finishes.
func settle(t *testing.T, m *Model) {
	t.Helper()
	for i := 0; m.anim.active; i++ {
		require.Less(t, i, 100, "animation did not finish")
		m.Update(scrollFrameMsg{gen: m.anim.gen})
	}
}

func TestPager_MountComputesState(t *testing.T) {
	m := newTestModel(t, false)

	assert.True(t, m.ready)
	assert.Equal(t, 21, m.viewport.Height)
	assert.Equal(t, 63, m.layout.Len())
	assert.Equal(t, "hero", m.State().CurrentSectionID)
	assert.InDelta(t, 100.0, m.State().Progress("hero"), 1e-9)
	assert.Equal(t, 0.0, m.State().Progress("advantages"))
	assert.Equal(t, 1, m.events.Len(), "engine subscribed on mount")
}

func TestPager_NewModelRejectsInvalidSections(t *testing.T) {
	_, err := NewModel(nil, nil)
	assert.True(t, errors.Is(err, navigation.ErrInvalidConfiguration))

	dup := testSources()
	dup[1].Section.ID = "hero"
	_, err = NewModel(nil, dup)
	assert.True(t, errors.Is(err, navigation.ErrInvalidConfiguration))
}

func TestPager_NextAndPreviousJump(t *testing.T) {
	m := newTestModel(t, false)

	_, cmd := m.Update(runes("n"))
	assert.Nil(t, cmd, "jump scroll needs no frames")
	assert.Equal(t, 21, m.viewport.YOffset)
	assert.Equal(t, "advantages", m.State().CurrentSectionID)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 42, m.viewport.YOffset)
	assert.Equal(t, "legal-section", m.State().CurrentSectionID)

	m.Update(runes("n"))
	assert.Equal(t, 42, m.viewport.YOffset, "next at the last section is a no-op")

	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, "advantages", m.State().CurrentSectionID)
	m.Update(runes("p"))
	m.Update(runes("p"))
	assert.Equal(t, 0, m.viewport.YOffset)
	assert.Equal(t, "hero", m.State().CurrentSectionID)
}

func TestPager_NumberKeysJump(t *testing.T) {
	m := newTestModel(t, false)

	m.Update(runes("3"))
	assert.Equal(t, "legal-section", m.State().CurrentSectionID)

	m.Update(runes("9"))
	assert.Equal(t, "legal-section", m.State().CurrentSectionID, "out of range digit is ignored")

	m.Update(runes("1"))
	assert.Equal(t, "hero", m.State().CurrentSectionID)
}

func TestPager_SmoothScrollAnimates(t *testing.T) {
	m := newTestModel(t, true)

	_, cmd := m.Update(runes("n"))
	require.NotNil(t, cmd, "smooth scroll schedules a frame")
	assert.Equal(t, 0, m.viewport.YOffset, "nothing moves before the first frame")
	assert.Equal(t, "advantages", m.State().CurrentSectionID, "current is set optimistically")

	settle(t, m)
	assert.Equal(t, 21, m.viewport.YOffset)
	assert.Equal(t, "advantages", m.State().CurrentSectionID)
}

func TestPager_SmoothScrollLastRequestWins(t *testing.T) {
	m := newTestModel(t, true)

	m.Update(runes("2"))
	stale := m.anim.gen
	m.Update(runes("3"))
	require.NotEqual(t, stale, m.anim.gen)

	_, cmd := m.Update(scrollFrameMsg{gen: stale})
	assert.Nil(t, cmd)
	assert.Equal(t, 0, m.viewport.YOffset, "stale frame is dropped")

	settle(t, m)
	assert.Equal(t, 42, m.viewport.YOffset)
	assert.Equal(t, "legal-section", m.State().CurrentSectionID)
}

func TestPager_ManualScrollCancelsAnimation(t *testing.T) {
	m := newTestModel(t, true)

	m.Update(runes("3"))
	gen := m.anim.gen
	m.Update(runes("j"))
	assert.False(t, m.anim.active)
	assert.Equal(t, 1, m.viewport.YOffset)

	_, cmd := m.Update(scrollFrameMsg{gen: gen})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.viewport.YOffset)
}

func TestPager_ScrollKeysUpdateProgress(t *testing.T) {
	m := newTestModel(t, false)

	m.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Equal(t, 21, m.viewport.YOffset)
	assert.Equal(t, "advantages", m.State().CurrentSectionID)

	m.Update(runes("k"))
	assert.Equal(t, 20, m.viewport.YOffset)
	assert.Equal(t, "hero", m.State().CurrentSectionID)
	// one line of hero is still on screen
	assert.InDelta(t, 100.0/21.0, m.State().Progress("hero"), 1e-9)
	assert.InDelta(t, 100.0*20/21, m.State().Progress("advantages"), 1e-9)

	m.Update(runes("G"))
	assert.Equal(t, 42, m.viewport.YOffset)
	m.Update(runes("g"))
	assert.Equal(t, 0, m.viewport.YOffset)
}

func TestPager_MouseWheelAndDotClick(t *testing.T) {
	m := newTestModel(t, false)

	m.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	assert.Equal(t, wheelLines, m.viewport.YOffset)

	n := len(m.engine.Sections())
	y := m.layoutCfg.RailTop(n) + 2*DotSpacing
	m.Update(tea.MouseMsg{X: m.layoutCfg.ContentWidth(), Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, "legal-section", m.State().CurrentSectionID)
	assert.Equal(t, 42, m.viewport.YOffset)

	m.Update(tea.MouseMsg{X: 0, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, "legal-section", m.State().CurrentSectionID, "click in content does nothing")
}

func TestPager_FooterHidesControlsAtBoundaries(t *testing.T) {
	m := newTestModel(t, false)

	prev, next := m.controls()
	assert.Empty(t, prev)
	assert.Contains(t, next, "Communication Benefits")

	m.Update(runes("3"))
	prev, next = m.controls()
	assert.Contains(t, prev, "Communication Benefits")
	assert.Empty(t, next)

	view := m.View()
	assert.Contains(t, view, "Terms and Policies")
	assert.Equal(t, 24, strings.Count(view, "\n")+1)
}

func TestPager_ViewFillsTerminal(t *testing.T) {
	tests := []struct {
		name   string
		height int
		help   bool
	}{
		{name: "pager", height: 24},
		{name: "help", height: 24, help: true},
		{name: "short help", height: 12, help: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, false)
			m.Update(tea.WindowSizeMsg{Width: 80, Height: tt.height})
			if tt.help {
				m.Update(runes("?"))
				require.True(t, m.help.ShowAll)
			}

			lines := strings.Split(m.View(), "\n")
			assert.Len(t, lines, tt.height)
			assert.Contains(t, lines[0], "Test · Welcome Screen")
		})
	}
}

func TestPager_TooSmallTerminal(t *testing.T) {
	m := newTestModel(t, false)

	m.Update(tea.WindowSizeMsg{Width: 30, Height: 8})
	view := m.View()
	assert.Contains(t, view, "too small")
	assert.NotContains(t, view, "Welcome Screen")
	assert.Len(t, strings.Split(view, "\n"), 8)

	m.Update(tea.WindowSizeMsg{Width: MinimumTerminalWidth, Height: MinimumTerminalHeight})
	assert.NotContains(t, m.View(), "too small")
}

func TestPager_ResizeRelayoutKeepsSection(t *testing.T) {
	m := newTestModel(t, false)
	m.Update(runes("2"))

	m.Update(tea.WindowSizeMsg{Width: 80, Height: 14})
	assert.Equal(t, 11, m.viewport.Height)
	g, ok := m.layout.SectionGeometry("advantages")
	require.True(t, ok)
	assert.Equal(t, navigation.Geometry{OffsetTop: 11, Height: 11}, g)
	assert.Equal(t, 11, m.viewport.YOffset)
	assert.Equal(t, "advantages", m.State().CurrentSectionID)
}

func TestPager_DebouncedResizeUsesSender(t *testing.T) {
	m := newTestModel(t, false)
	sent := make(chan tea.Msg, 1)
	m.SetSender(func(msg tea.Msg) { sent <- msg })

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	assert.Equal(t, 63, m.layout.Len(), "layout waits for the burst to settle")

	msg := <-sent
	m.Update(msg)
	assert.Equal(t, 27*3, m.layout.Len())
	assert.False(t, m.layoutCfg.IsCompact)
}

func TestPager_ReloadRejectsChangedSections(t *testing.T) {
	m := newTestModel(t, false)

	changed := testSources()[:2]
	m.Update(ReloadMsg{Sources: changed})
	assert.Contains(t, m.notice, "restart")
	assert.Len(t, m.sources, 3)

	updated := testSources()
	updated[0].Markdown = strings.Repeat("line\n", 30)
	m.Update(ReloadMsg{Sources: updated})
	assert.Empty(t, m.notice)
	g, ok := m.layout.SectionGeometry("hero")
	require.True(t, ok)
	assert.Greater(t, g.Height, 21.0)

	m.Update(ReloadMsg{Err: errors.New("boom")})
	assert.Contains(t, m.notice, "boom")
}

func TestPager_QuitReleasesSubscription(t *testing.T) {
	m := newTestModel(t, false)

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Equal(t, 0, m.events.Len())
}

func TestFillGlyph(t *testing.T) {
	assert.Equal(t, " ", fillGlyph(0))
	assert.Equal(t, "▁", fillGlyph(1))
	assert.Equal(t, "█", fillGlyph(100))
	assert.Equal(t, "█", fillGlyph(250))
}

func TestLayoutConfig_DotAt(t *testing.T) {
	l := NewLayoutConfig(80, 24, 10)
	require.True(t, l.IsCompact)
	top := l.RailTop(3)

	assert.Equal(t, 0, l.DotAt(l.ContentWidth(), top, 3))
	assert.Equal(t, 1, l.DotAt(l.ContentWidth()+1, top+DotSpacing, 3))
	assert.Equal(t, -1, l.DotAt(l.ContentWidth(), top+1, 3))
	assert.Equal(t, -1, l.DotAt(0, top, 3))
	assert.Equal(t, -1, l.DotAt(l.ContentWidth(), top+3*DotSpacing, 3))

	wide := NewLayoutConfig(140, 40, 40)
	assert.Equal(t, RailCompactWidth+RailMaxLabel+1, wide.RailWidth)
}
