// Package browser hosts the navigation engine on a live page driven over the
// DevTools protocol.
package browser

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"scrollnav/internal/config"
	"scrollnav/internal/logging"
	"scrollnav/internal/navigation"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/google/uuid"
	"github.com/ysmood/gson"
)

// Scripts evaluated in the page. Each is a function expression; rod passes
// the Go arguments through.
const (
	geometryJS = `(id) => {
		const el = document.getElementById(id);
		if (!el) return null;
		return {top: el.offsetTop, height: el.offsetHeight};
	}`
	scrollOffsetJS   = `() => window.scrollY`
	viewportHeightJS = `() => window.innerHeight`
	scrollToJS       = `(top) => window.scrollTo({top: top, behavior: 'smooth'})`

	listenJS = `(binding) => {
		const notify = (kind) => () => window[binding](kind);
		const handlers = {scroll: notify('scroll'), resize: notify('resize')};
		window.addEventListener('scroll', handlers.scroll, {passive: true});
		window.addEventListener('resize', handlers.resize, {passive: true});
		window['__' + binding] = handlers;
	}`
	unlistenJS = `(binding) => {
		const handlers = window['__' + binding];
		if (!handlers) return;
		window.removeEventListener('scroll', handlers.scroll);
		window.removeEventListener('resize', handlers.resize);
		delete window['__' + binding];
	}`
)

// ErrClosed is returned for operations on a closed session.
var ErrClosed = errors.New("browser session closed")

// Session is one page under navigation. It implements navigation.Host and
// navigation.EventSource.
type Session struct {
	ID        string
	URL       string
	TargetID  string
	CreatedAt time.Time

	cfg      config.BrowserConfig
	browser  *rod.Browser
	page     *rod.Page
	launched *launcher.Launcher

	mu     sync.Mutex
	subs   map[string]func()
	closed bool
}

var (
	_ navigation.Host        = (*Session)(nil)
	_ navigation.EventSource = (*Session)(nil)
)

// Open connects to cfg.DebuggerURL, or launches a browser when it is empty,
// and loads url in a new page.
func Open(ctx context.Context, cfg config.BrowserConfig, url string) (*Session, error) {
	log := logging.Get(logging.CategoryBrowser)

	s := &Session{
		ID:        uuid.NewString(),
		URL:       url,
		CreatedAt: time.Now(),
		cfg:       cfg,
		subs:      make(map[string]func()),
	}

	controlURL := cfg.DebuggerURL
	if controlURL == "" {
		s.launched = launcher.New().Headless(cfg.Headless)
		u, err := s.launched.Launch()
		if err != nil {
			return nil, fmt.Errorf("launch browser: %w", err)
		}
		controlURL = u
		log.Info("launched browser (headless=%v)", cfg.Headless)
	}

	s.browser = rod.New().ControlURL(controlURL).Context(ctx)
	if err := s.browser.Connect(); err != nil {
		s.cleanupLauncher()
		return nil, fmt.Errorf("connect to browser: %w", err)
	}

	page, err := s.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("create page: %w", err)
	}
	s.page = page
	s.TargetID = string(page.TargetID)

	if err := (proto.EmulationSetDeviceMetricsOverride{
		Width:             cfg.ViewportWidth,
		Height:            cfg.ViewportHeight,
		DeviceScaleFactor: 1.0,
	}).Call(page); err != nil {
		log.Warn("failed to set viewport: %v", err)
	}

	nav := page.Timeout(cfg.GetNavigationTimeout())
	if err := nav.Navigate(url); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("navigate to %s: %w", url, err)
	}
	if err := nav.WaitLoad(); err != nil {
		log.Warn("page load did not complete: %v", err)
	}

	log.With("session", s.ID).Info("opened %s (target %s)", url, s.TargetID)
	return s, nil
}

// SectionGeometry implements navigation.GeometryProvider. Missing elements
// and evaluation failures are not found.
func (s *Session) SectionGeometry(id string) (navigation.Geometry, bool) {
	res, err := s.eval(geometryJS, id)
	if err != nil {
		logging.Get(logging.CategoryGeometry).Debug("geometry of %s: %v", id, err)
		return navigation.Geometry{}, false
	}
	return geometryFromJSON(res)
}

// ScrollOffset implements navigation.GeometryProvider. Failures read as
// NaN, which the engine treats as unusable metrics.
func (s *Session) ScrollOffset() float64 {
	return s.number(scrollOffsetJS)
}

// ViewportHeight implements navigation.GeometryProvider.
func (s *Session) ViewportHeight() float64 {
	return s.number(viewportHeightJS)
}

// ScrollTo implements navigation.Host with the page's smooth scrolling.
func (s *Session) ScrollTo(offset float64) {
	if _, err := s.eval(scrollToJS, offset); err != nil {
		logging.Get(logging.CategoryBrowser).Warn("scroll to %.0f failed: %v", offset, err)
	}
}

// Subscribe implements navigation.EventSource. Page scroll and resize
// events reach fn through an exposed binding; fn runs on rod's event
// goroutine.
func (s *Session) Subscribe(fn func(navigation.Event)) func() {
	log := logging.Get(logging.CategoryBrowser).With("session", s.ID)
	noop := func() {}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return noop
	}
	s.mu.Unlock()

	binding := bindingName()
	stop, err := s.page.Expose(binding, func(arg gson.JSON) (interface{}, error) {
		fn(navigation.Event{Kind: parseEventKind(arg.Str())})
		return nil, nil
	})
	if err != nil {
		log.Error("expose %s: %v", binding, err)
		return noop
	}
	if _, err := s.eval(listenJS, binding); err != nil {
		log.Error("install listeners: %v", err)
		_ = stop()
		return noop
	}
	log.Debug("listening via %s", binding)

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			if _, err := s.eval(unlistenJS, binding); err != nil {
				log.Debug("remove listeners: %v", err)
			}
			if err := stop(); err != nil {
				log.Debug("stop binding: %v", err)
			}
			s.mu.Lock()
			delete(s.subs, binding)
			s.mu.Unlock()
		})
	}

	s.mu.Lock()
	s.subs[binding] = unsubscribe
	s.mu.Unlock()
	return unsubscribe
}

// Close removes remaining subscriptions, closes the page and, when the
// browser was launched by Open, the browser too.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	subs := make([]func(), 0, len(s.subs))
	for _, unsub := range s.subs {
		subs = append(subs, unsub)
	}
	s.mu.Unlock()

	for _, unsub := range subs {
		unsub()
	}

	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	var err error
	if s.page != nil {
		err = s.page.Close()
	}
	if s.launched != nil && s.browser != nil {
		if cerr := s.browser.Close(); err == nil {
			err = cerr
		}
	}
	s.cleanupLauncher()
	logging.Get(logging.CategoryBrowser).Info("session %s closed", s.ID)
	return err
}

func (s *Session) cleanupLauncher() {
	if s.launched != nil {
		s.launched.Kill()
		s.launched.Cleanup()
	}
}

func (s *Session) eval(js string, args ...interface{}) (gson.JSON, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed || s.page == nil {
		return gson.New(nil), ErrClosed
	}
	res, err := s.page.Eval(js, args...)
	if err != nil {
		return gson.New(nil), err
	}
	return res.Value, nil
}

func (s *Session) number(js string) float64 {
	res, err := s.eval(js)
	if err != nil {
		logging.Get(logging.CategoryGeometry).Debug("eval %q: %v", js, err)
		return math.NaN()
	}
	return res.Num()
}

// geometryFromJSON decodes {top, height}; null means the element is missing.
func geometryFromJSON(v gson.JSON) (navigation.Geometry, bool) {
	if v.Nil() {
		return navigation.Geometry{}, false
	}
	top, ok := v.Gets("top")
	if !ok {
		return navigation.Geometry{}, false
	}
	height, ok := v.Gets("height")
	if !ok {
		return navigation.Geometry{}, false
	}
	return navigation.Geometry{OffsetTop: top.Num(), Height: height.Num()}, true
}

func parseEventKind(s string) navigation.EventKind {
	if s == navigation.EventResize.String() {
		return navigation.EventResize
	}
	return navigation.EventScroll
}

func bindingName() string {
	return "scrollnav_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
