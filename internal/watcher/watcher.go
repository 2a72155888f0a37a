// Package watcher reports settled changes to the config and content files
// so the pager can re-render without a restart.
package watcher

import (
	"context"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"scrollnav/internal/logging"

	"github.com/fsnotify/fsnotify"
)

// Stats tracks watcher activity.
type Stats struct {
	Events        int
	Notifications int
	Errors        int
	LastEventPath string
	LastEventTime time.Time
}

// ContentWatcher watches a fixed set of files. Parent directories are
// watched so editors that save by rename are still seen.
type ContentWatcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	files       map[string]struct{}
	dirs        []string
	onChange    func(paths []string)
	debounceMap map[string]time.Time
	debounceDur time.Duration
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
	stats       Stats
}

// New creates a watcher for files. onChange receives the settled paths,
// sorted, once they have been quiet for debounce.
func New(files []string, debounce time.Duration, onChange func(paths []string)) (*ContentWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}

	cw := &ContentWatcher{
		watcher:     w,
		files:       make(map[string]struct{}, len(files)),
		onChange:    onChange,
		debounceMap: make(map[string]time.Time),
		debounceDur: debounce,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}

	seen := make(map[string]struct{})
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			abs = f
		}
		cw.files[abs] = struct{}{}
		dir := filepath.Dir(abs)
		if _, ok := seen[dir]; !ok {
			seen[dir] = struct{}{}
			cw.dirs = append(cw.dirs, dir)
		}
	}
	return cw, nil
}

// Start begins watching. Non-blocking; the loop runs until Stop or ctx ends.
func (cw *ContentWatcher) Start(ctx context.Context) error {
	cw.mu.Lock()
	if cw.running {
		cw.mu.Unlock()
		return nil
	}
	cw.running = true
	cw.mu.Unlock()

	log := logging.Get(logging.CategoryWatcher)
	for _, dir := range cw.dirs {
		if err := cw.watcher.Add(dir); err != nil {
			log.Warn("watch %s failed: %v", dir, err)
			continue
		}
		log.Debug("watching %s", dir)
	}

	go cw.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the loop to exit. Safe to call more
// than once and after ctx cancellation.
func (cw *ContentWatcher) Stop() {
	cw.mu.Lock()
	if !cw.running {
		cw.mu.Unlock()
		_ = cw.watcher.Close()
		return
	}
	cw.running = false
	cw.mu.Unlock()

	close(cw.stopCh)
	<-cw.doneCh

	if err := cw.watcher.Close(); err != nil {
		logging.Get(logging.CategoryWatcher).Error("error closing watcher: %v", err)
	}
}

// Stats returns a copy of the activity counters.
func (cw *ContentWatcher) Stats() Stats {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	return cw.stats
}

func (cw *ContentWatcher) run(ctx context.Context) {
	defer close(cw.doneCh)

	tick := cw.debounceDur / 4
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	debounceTicker := time.NewTicker(tick)
	defer debounceTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-cw.stopCh:
			return
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			cw.handleEvent(event)
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			logging.Get(logging.CategoryWatcher).Error("watcher error: %v", err)
			cw.mu.Lock()
			cw.stats.Errors++
			cw.mu.Unlock()
		case <-debounceTicker.C:
			cw.flush()
		}
	}
}

func (cw *ContentWatcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
		return
	}
	path, err := filepath.Abs(event.Name)
	if err != nil {
		path = event.Name
	}
	if _, ok := cw.files[path]; !ok {
		return
	}

	cw.mu.Lock()
	cw.stats.Events++
	cw.stats.LastEventPath = path
	cw.stats.LastEventTime = time.Now()
	cw.debounceMap[path] = time.Now()
	cw.mu.Unlock()
}

// flush delivers paths that have settled past the debounce window.
func (cw *ContentWatcher) flush() {
	cw.mu.Lock()
	now := time.Now()
	var settled []string
	for path, at := range cw.debounceMap {
		if now.Sub(at) >= cw.debounceDur {
			settled = append(settled, path)
			delete(cw.debounceMap, path)
		}
	}
	if len(settled) > 0 {
		cw.stats.Notifications++
	}
	cw.mu.Unlock()

	if len(settled) == 0 || cw.onChange == nil {
		return
	}
	sort.Strings(settled)
	logging.Get(logging.CategoryWatcher).Info("content changed: %v", settled)
	cw.onChange(settled)
}
