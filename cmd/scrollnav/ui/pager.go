package ui

import (
	"fmt"
	"strings"

	"scrollnav/internal/config"
	"scrollnav/internal/content"
	"scrollnav/internal/logging"
	"scrollnav/internal/navigation"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// wheelLines is how far one mouse wheel notch scrolls.
const wheelLines = 3

// ReloadMsg carries freshly loaded sources after the content changed on disk.
type ReloadMsg struct {
	Sources []content.Source
	Err     error
}

// relayoutMsg arrives once a burst of resizes has settled.
type relayoutMsg struct {
	width, height int
}

var (
	_ tea.Model       = (*Model)(nil)
	_ navigation.Host = (*Model)(nil)
)

// Option configures a Model.
type Option func(*Model)

// WithPlainText disables markdown rendering; bodies are shown as written.
func WithPlainText() Option {
	return func(m *Model) { m.plain = true }
}

// Model is the pager. It is the navigation engine's host: geometry comes
// from the laid-out document and the scroll offset is the viewport's.
type Model struct {
	cfg     *config.Config
	sources []content.Source

	engine  *navigation.Engine
	events  *navigation.Dispatcher
	release func()
	state   navigation.State

	layout    *content.Layout
	layoutCfg LayoutConfig
	renderer  *content.Renderer
	plain     bool

	viewport viewport.Model
	progress progress.Model
	help     help.Model
	keys     KeyMap
	styles   Styles

	anim    animator
	resizer *ResizeDebouncer
	send    func(tea.Msg)

	width, height int
	ready         bool
	notice        string
}

// NewModel creates a pager over sources. It fails when the sources do not
// form a valid section list.
func NewModel(cfg *config.Config, sources []content.Source, opts ...Option) (*Model, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	styles := NewStyles(ResolveTheme(cfg.UI.Theme))

	m := &Model{
		cfg:      cfg,
		sources:  sources,
		events:   navigation.NewDispatcher(),
		viewport: viewport.New(0, 0),
		progress: progress.New(
			progress.WithSolidFill(string(styles.Theme.Accent)),
			progress.WithoutPercentage(),
		),
		help:    help.New(),
		keys:    DefaultKeyMap(),
		styles:  styles,
		anim:    animator{step: cfg.UI.GetScrollStep()},
		resizer: NewResizeDebouncer(cfg.UI.GetResizeDebounce()),
	}
	m.viewport.MouseWheelEnabled = false
	for _, opt := range opts {
		opt(m)
	}

	engine, err := navigation.New(content.Sections(sources), m)
	if err != nil {
		return nil, err
	}
	m.engine = engine
	m.state = engine.Snapshot()
	return m, nil
}

// SetSender lets debounced work re-enter the update loop, typically
// tea.Program.Send. Without a sender resizes re-layout immediately.
func (m *Model) SetSender(send func(tea.Msg)) {
	m.send = send
}

// Engine returns the navigation engine.
func (m *Model) Engine() *navigation.Engine {
	return m.engine
}

// State returns the last navigation state the pager observed.
func (m *Model) State() navigation.State {
	return m.state
}

// Close releases the engine subscription and pending work. Safe to call twice.
func (m *Model) Close() {
	if m.release != nil {
		m.release()
	}
	m.resizer.Cancel()
	m.anim.stop()
}

// SectionGeometry implements navigation.GeometryProvider.
func (m *Model) SectionGeometry(id string) (navigation.Geometry, bool) {
	return m.layout.SectionGeometry(id)
}

// ScrollOffset implements navigation.GeometryProvider.
func (m *Model) ScrollOffset() float64 {
	return float64(m.viewport.YOffset)
}

// ViewportHeight implements navigation.GeometryProvider.
func (m *Model) ViewportHeight() float64 {
	return float64(m.viewport.Height)
}

// ScrollTo implements navigation.Host. With smooth scrolling the viewport
// eases toward offset over several frames; a later call retargets it.
func (m *Model) ScrollTo(offset float64) {
	target := int(offset)
	if !m.cfg.UI.SmoothScroll {
		m.anim.stop()
		m.setOffset(target)
		return
	}
	if max := m.layout.MaxOffset(m.viewport.Height); target > max {
		target = max
	}
	if target < 0 {
		target = 0
	}
	m.anim.start(target)
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case relayoutMsg:
		if msg.width == m.width && msg.height == m.height {
			m.relayout()
			m.events.Emit(navigation.Event{Kind: navigation.EventResize})
		}

	case ReloadMsg:
		m.reload(msg)

	case scrollFrameMsg:
		cmd = m.advance(msg)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.Close()
			return m, tea.Quit
		}
		m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
	}

	if kick := m.anim.takeKick(); kick != nil {
		cmd = kick
	}
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	if !m.ready {
		return
	}
	switch {
	case key.Matches(msg, m.keys.Next):
		m.navigate(m.engine.GoToNext)
	case key.Matches(msg, m.keys.Previous):
		m.navigate(m.engine.GoToPrevious)
	case key.Matches(msg, m.keys.Jump):
		i := int(msg.Runes[0] - '1')
		if sections := m.engine.Sections(); i < len(sections) {
			id := sections[i].ID
			m.navigate(func() bool { return m.engine.ScrollToSection(id) })
		}
	case key.Matches(msg, m.keys.Down):
		m.scrollBy(1)
	case key.Matches(msg, m.keys.Up):
		m.scrollBy(-1)
	case key.Matches(msg, m.keys.PageDown):
		m.scrollBy(m.viewport.Height)
	case key.Matches(msg, m.keys.PageUp):
		m.scrollBy(-m.viewport.Height)
	case key.Matches(msg, m.keys.Top):
		m.scrollBy(-m.viewport.YOffset)
	case key.Matches(msg, m.keys.Bottom):
		m.scrollBy(m.layout.MaxOffset(m.viewport.Height) - m.viewport.YOffset)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if !m.ready || msg.Action != tea.MouseActionPress {
		return
	}
	switch msg.Button {
	case tea.MouseButtonWheelDown:
		m.scrollBy(wheelLines)
	case tea.MouseButtonWheelUp:
		m.scrollBy(-wheelLines)
	case tea.MouseButtonLeft:
		sections := m.engine.Sections()
		if i := m.layoutCfg.DotAt(msg.X, msg.Y, len(sections)); i >= 0 {
			id := sections[i].ID
			m.navigate(func() bool { return m.engine.ScrollToSection(id) })
			return
		}
		if msg.Y != m.height-FooterHeight {
			return
		}
		prev, next := m.controls()
		switch {
		case prev != "" && msg.X < lipgloss.Width(prev):
			m.navigate(m.engine.GoToPrevious)
		case next != "" && msg.X >= m.width-lipgloss.Width(next):
			m.navigate(m.engine.GoToNext)
		}
	}
}

// navigate runs an engine command and picks up its optimistic state.
func (m *Model) navigate(cmd func() bool) {
	from := m.engine.Current()
	if cmd() {
		m.state = m.engine.Snapshot()
		logging.UI("navigate %s -> %s", from, m.state.CurrentSectionID)
	}
}

// scrollBy is a manual scroll; it cancels any running animation.
func (m *Model) scrollBy(lines int) {
	m.anim.stop()
	m.setOffset(m.viewport.YOffset + lines)
}

// setOffset moves the viewport and reports a scroll when it actually moved.
func (m *Model) setOffset(offset int) bool {
	before := m.viewport.YOffset
	m.viewport.SetYOffset(offset)
	if m.viewport.YOffset == before {
		return false
	}
	m.events.Emit(navigation.Event{Kind: navigation.EventScroll})
	return true
}

func (m *Model) advance(msg scrollFrameMsg) tea.Cmd {
	if !m.anim.active || msg.gen != m.anim.gen {
		return nil
	}
	moved := m.setOffset(m.anim.next(m.viewport.YOffset))
	if !moved || m.viewport.YOffset == m.anim.target {
		m.anim.active = false
		return nil
	}
	return m.anim.frame()
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.layoutCfg = NewLayoutConfig(width, height, WidestTitle(content.Sections(m.sources)))
	m.help.Width = width

	if !m.ready {
		m.relayout()
		m.release = m.engine.Activate(m.events, func(st navigation.State) { m.state = st })
		m.ready = true
		logging.UIDebug("mounted at %dx%d, %d lines", width, height, m.layout.Len())
		return
	}

	m.viewport.Width = m.layoutCfg.ContentWidth()
	m.viewport.Height = m.layoutCfg.ContentHeight()
	m.events.Emit(navigation.Event{Kind: navigation.EventResize})

	if m.send == nil {
		m.relayout()
		m.events.Emit(navigation.Event{Kind: navigation.EventResize})
		return
	}
	send := m.send
	m.resizer.Resize(width, height, func(w, h int) {
		send(relayoutMsg{width: w, height: h})
	})
}

// relayout re-renders for the current size, keeping the reading position
// within the current section.
func (m *Model) relayout() {
	anchorID, frac := m.anchor()

	m.viewport.Width = m.layoutCfg.ContentWidth()
	m.viewport.Height = m.layoutCfg.ContentHeight()

	minHeight := 0
	if m.cfg.UI.FullHeightSections {
		minHeight = m.viewport.Height
	}
	m.layout = content.Build(m.sources, m.rendererFor(m.viewport.Width), content.LayoutOptions{
		MinSectionHeight: minHeight,
	})
	m.viewport.SetContent(m.layout.Content())

	if g, ok := m.layout.SectionGeometry(anchorID); ok {
		m.viewport.SetYOffset(int(g.OffsetTop + frac*g.Height))
	}
	m.anim.stop()
}

// anchor returns the current section and how far into it the viewport is.
func (m *Model) anchor() (string, float64) {
	id := m.state.CurrentSectionID
	g, ok := m.layout.SectionGeometry(id)
	if !ok || g.Height <= 0 {
		return "", 0
	}
	frac := (float64(m.viewport.YOffset) - g.OffsetTop) / g.Height
	if frac < 0 || frac >= 1 {
		frac = 0
	}
	return id, frac
}

func (m *Model) rendererFor(contentWidth int) *content.Renderer {
	if m.plain {
		return nil
	}
	width := contentWidth - 2
	if ww := m.cfg.UI.WordWrap; ww > 0 && ww < width {
		width = ww
	}
	if m.renderer != nil && m.renderer.Width() == width {
		return m.renderer
	}
	theme := config.ThemeLight
	if m.styles.Theme.IsDark {
		theme = config.ThemeDark
	}
	r, err := content.NewRenderer(theme, width)
	if err != nil {
		logging.Get(logging.CategoryContent).Warn("markdown renderer unavailable: %v", err)
		return nil
	}
	m.renderer = r
	return r
}

// reload swaps in new content. A change to the section ids or their order
// is rejected: the engine's section list is fixed for its lifetime.
func (m *Model) reload(msg ReloadMsg) {
	log := logging.Get(logging.CategoryUI)
	if msg.Err != nil {
		m.notice = "reload failed: " + msg.Err.Error()
		log.Warn("reload failed: %v", msg.Err)
		return
	}
	if !sameSections(m.engine.Sections(), content.Sections(msg.Sources)) {
		m.notice = "sections changed; restart to apply"
		log.Warn("reload rejected: section list changed")
		return
	}

	m.sources = msg.Sources
	m.notice = ""
	m.renderer = nil
	if !m.ready {
		return
	}
	m.layoutCfg = NewLayoutConfig(m.width, m.height, WidestTitle(content.Sections(m.sources)))
	m.relayout()
	m.events.Emit(navigation.Event{Kind: navigation.EventResize})
	log.Info("reloaded %d sections", len(m.sources))
}

func sameSections(a, b []navigation.Section) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}

// controls returns the previous and next footer labels; a label is empty at
// the matching boundary.
func (m *Model) controls() (prev, next string) {
	sections := content.Sections(m.sources)
	i := m.engine.Index(m.state.CurrentSectionID)
	if i > 0 {
		prev = m.styles.Control.Render("↑ " + sections[i-1].Title)
	}
	if i >= 0 && i < len(sections)-1 {
		next = m.styles.Control.Render(sections[i+1].Title + " ↓")
	}
	return prev, next
}

func (m *Model) currentTitle() string {
	for _, s := range content.Sections(m.sources) {
		if s.ID == m.state.CurrentSectionID {
			return s.Title
		}
	}
	return m.state.CurrentSectionID
}

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return "loading…"
	}
	if m.width < MinimumTerminalWidth || m.height < MinimumTerminalHeight {
		return m.tooSmallView()
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.headerView(), m.bodyView(), m.footerView())
}

func (m *Model) headerView() string {
	pct := m.state.Progress(m.state.CurrentSectionID)
	left := m.styles.Header.Render(m.cfg.Name + " · " + m.currentTitle())
	right := m.styles.Muted.Render(fmt.Sprintf(" %3.0f%%", pct))

	barWidth := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 1
	if barWidth < 10 {
		barWidth = 10
	}
	m.progress.Width = barWidth
	return lipgloss.NewStyle().MaxWidth(m.width).Render(left + " " + m.progress.ViewAs(pct/100) + right)
}

func (m *Model) bodyView() string {
	if m.help.ShowAll {
		h := m.layoutCfg.ContentHeight()
		return lipgloss.NewStyle().
			Width(m.width).
			Height(h).
			MaxWidth(m.width).
			MaxHeight(h).
			Padding(1, 2).
			Render(m.help.View(m.keys))
	}
	rail := renderRail(m.layout.Sections(), m.state, m.layoutCfg, m.styles)
	return lipgloss.JoinHorizontal(lipgloss.Top, m.viewport.View(), rail)
}

func (m *Model) footerView() string {
	prev, next := m.controls()
	gap := m.width - lipgloss.Width(prev) - lipgloss.Width(next)
	if gap < 1 {
		gap = 1
	}
	controls := prev + strings.Repeat(" ", gap) + next

	status := m.help.ShortHelpView(m.keys.ShortHelp())
	if m.notice != "" {
		status = m.styles.Notice.Render(m.notice)
	}
	return controls + "\n" + m.styles.Footer.Render(status)
}

// tooSmallView replaces the pager below the minimum terminal size.
func (m *Model) tooSmallView() string {
	msg := fmt.Sprintf("terminal too small (min %dx%d)", MinimumTerminalWidth, MinimumTerminalHeight)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		m.styles.Notice.Render(ansi.Truncate(msg, m.width, "…")))
}
