// Package logging provides config-driven categorized logging for scrollnav.
// Output goes to a log file through zap; with no file configured every
// logger is a no-op so the terminal UI is never written over.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot       Category = "boot"       // Startup, flag and config resolution
	CategoryConfig     Category = "config"     // Config load, validation, reload
	CategoryNavigation Category = "navigation" // Engine state transitions and commands
	CategoryGeometry   Category = "geometry"   // Section geometry readings
	CategoryContent    Category = "content"    // Markdown splitting and rendering
	CategoryUI         Category = "ui"         // Pager events, resize, key handling
	CategoryWatcher    Category = "watcher"    // File change notifications
	CategoryBrowser    Category = "browser"    // Live page sessions
)

// Options mirrors config.LoggingConfig so this package stays import-free.
type Options struct {
	Level      string          // debug, info, warn, error
	Format     string          // json, console
	File       string          // empty disables logging
	Categories map[string]bool // missing categories are enabled
}

// Logger is a category-scoped printf-style wrapper around a zap logger.
type Logger struct {
	category Category
	sugar    *zap.SugaredLogger
}

var (
	mu      sync.RWMutex
	base    = zap.NewNop()
	opts    Options
	loggers = make(map[Category]*Logger)
	runID   = uuid.NewString()
)

// Initialize builds the process logger from options.
// Safe to call again on config reload; previous loggers are flushed.
func Initialize(o Options) error {
	if o.File == "" {
		install(zap.NewNop(), o)
		return nil
	}

	level, err := zapcore.ParseLevel(defaultString(o.Level, "info"))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", o.Level, err)
	}

	if err := os.MkdirAll(filepath.Dir(o.File), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	cfg := zap.NewProductionConfig()
	if o.Format == "console" {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{o.File}
	cfg.ErrorOutputPaths = []string{o.File}
	cfg.DisableStacktrace = true
	cfg.InitialFields = map[string]interface{}{"run_id": runID}

	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	install(l, o)
	return nil
}

// InitializeWithLogger installs an existing zap logger (tests, embedding).
func InitializeWithLogger(l *zap.Logger, o Options) {
	if l == nil {
		l = zap.NewNop()
	}
	install(l.With(zap.String("run_id", runID)), o)
}

func install(l *zap.Logger, o Options) {
	mu.Lock()
	defer mu.Unlock()
	_ = base.Sync()
	base = l
	opts = o
	loggers = make(map[Category]*Logger)
}

// RunID returns the correlation id attached to every entry of this process.
func RunID() string {
	return runID
}

// IsCategoryEnabled returns whether a specific category is enabled
func IsCategoryEnabled(category Category) bool {
	mu.RLock()
	defer mu.RUnlock()

	if opts.Categories == nil {
		return true
	}
	enabled, exists := opts.Categories[string(category)]
	if !exists {
		return true
	}
	return enabled
}

// Get returns (or creates) a logger for the given category.
// Disabled categories get a no-op logger.
func Get(category Category) *Logger {
	if !IsCategoryEnabled(category) {
		return &Logger{category: category, sugar: zap.NewNop().Sugar()}
	}

	mu.RLock()
	if l, ok := loggers[category]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[category]; ok {
		return l
	}
	l := &Logger{
		category: category,
		sugar:    base.Named(string(category)).Sugar(),
	}
	loggers[category] = l
	return l
}

// With returns a logger carrying extra key/value fields.
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{category: l.category, sugar: l.sugar.With(keysAndValues...)}
}

func (l *Logger) Debug(format string, args ...interface{}) { l.sugar.Debugf(format, args...) }
func (l *Logger) Info(format string, args ...interface{})  { l.sugar.Infof(format, args...) }
func (l *Logger) Warn(format string, args ...interface{})  { l.sugar.Warnf(format, args...) }
func (l *Logger) Error(format string, args ...interface{}) { l.sugar.Errorf(format, args...) }

// Sync flushes buffered entries (call at shutdown).
func Sync() error {
	mu.RLock()
	defer mu.RUnlock()
	return base.Sync()
}

// CloseAll flushes and resets to the no-op logger.
func CloseAll() {
	install(zap.NewNop(), Options{})
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// =============================================================================
// CONVENIENCE FUNCTIONS
// =============================================================================

// Boot logs to the boot category
func Boot(format string, args ...interface{}) {
	Get(CategoryBoot).Info(format, args...)
}

// Navigation logs to the navigation category
func Navigation(format string, args ...interface{}) {
	Get(CategoryNavigation).Info(format, args...)
}

// NavigationDebug logs debug to the navigation category
func NavigationDebug(format string, args ...interface{}) {
	Get(CategoryNavigation).Debug(format, args...)
}

// UI logs to the ui category
func UI(format string, args ...interface{}) {
	Get(CategoryUI).Info(format, args...)
}

// UIDebug logs debug to the ui category
func UIDebug(format string, args ...interface{}) {
	Get(CategoryUI).Debug(format, args...)
}
