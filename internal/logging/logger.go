// Package logging provides config-driven categorized logging for stacksort.
// Every category is a named child of one zap root logger; categories switched
// off in the config get a no-op logger.
package logging

import (
	"fmt"
	"sync"
	"time"

	"stacksort/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot     Category = "boot"     // CLI startup, config loading
	CategorySort     Category = "sort"     // partitioning
	CategoryCompress Category = "compress" // log compression passes
	CategoryCheck    Category = "check"    // checking external op lists
	CategoryBench    Category = "bench"    // concurrent benchmark runs
	CategoryReplay   Category = "replay"   // interactive replay
)

var (
	mu      sync.RWMutex
	root    = zap.NewNop()
	cfg     config.LoggingConfig
	loggers = make(map[Category]*zap.Logger)
)

// Initialize builds the root logger from c. verbose forces debug level.
// fields are attached to every entry.
func Initialize(c config.LoggingConfig, verbose bool, fields ...zap.Field) (*zap.Logger, error) {
	level := c.EffectiveLevel()
	if verbose {
		level = "debug"
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	if c.Format == "console" {
		zc.Encoding = "console"
		zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	logger, err := zc.Build(zap.Fields(fields...))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	Use(logger, c)
	Get(CategoryBoot).Debug("logging initialized",
		zap.String("level", lvl.String()),
		zap.String("format", zc.Encoding))
	return logger, nil
}

// Use installs logger as the root with the category toggles of c.
func Use(logger *zap.Logger, c config.LoggingConfig) {
	mu.Lock()
	defer mu.Unlock()
	root = logger
	cfg = c
	loggers = make(map[Category]*zap.Logger)
}

// IsCategoryEnabled returns whether a specific category is enabled
func IsCategoryEnabled(category Category) bool {
	mu.RLock()
	defer mu.RUnlock()
	return cfg.IsCategoryEnabled(string(category))
}

// Get returns (or creates) the logger for the given category.
func Get(category Category) *zap.Logger {
	if !IsCategoryEnabled(category) {
		return zap.NewNop()
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
	l := root.Named(string(category))
	loggers[category] = l
	return l
}

// Sync flushes the root logger.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = root.Sync()
}

// Timer helps measure operation duration
type Timer struct {
	category Category
	op       string
	start    time.Time
}

// StartTimer begins timing an operation
func StartTimer(category Category, operation string) *Timer {
	return &Timer{
		category: category,
		op:       operation,
		start:    time.Now(),
	}
}

// Stop ends the timer and logs the duration
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	Get(t.category).Debug("completed", zap.String("op", t.op), zap.Duration("elapsed", elapsed))
	return elapsed
}

// StopWithInfo ends the timer and logs at info level
func (t *Timer) StopWithInfo() time.Duration {
	elapsed := time.Since(t.start)
	Get(t.category).Info("completed", zap.String("op", t.op), zap.Duration("elapsed", elapsed))
	return elapsed
}

// StopWithThreshold logs warning if duration exceeds threshold
func (t *Timer) StopWithThreshold(threshold time.Duration) time.Duration {
	elapsed := time.Since(t.start)
	if elapsed > threshold {
		Get(t.category).Warn("slow operation",
			zap.String("op", t.op),
			zap.Duration("elapsed", elapsed),
			zap.Duration("threshold", threshold))
	} else {
		Get(t.category).Debug("completed", zap.String("op", t.op), zap.Duration("elapsed", elapsed))
	}
	return elapsed
}
