// Package logger owns the process-wide zap logger used by the sandbox engine.
// Components accept an explicit *zap.Logger through their builder options. The session
// and the engine fall back to a Named child of L() when none is supplied; everything
// below them stays silent unless handed a logger.
package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	global = zap.NewNop()
)

// New builds a console logger. Verbose loggers use the development config (debug level,
// caller info); otherwise a production config at info level is used.
//
// Parameters:
//   - verbose: true to enable debug output
//
// Returns:
//   - *zap.Logger: the configured logger
//   - error: error if the zap config could not be built
func New(verbose bool) (*zap.Logger, error) {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg.Build()
}

// Set replaces the global logger. Passing nil restores the no-op logger.
//
// Parameters:
//   - l: the logger to install
func Set(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		l = zap.NewNop()
	}
	global = l
}

// L returns the global logger.
//
// Returns:
//   - *zap.Logger: the current global logger (never nil)
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// Named returns a child of the global logger with the given name.
func Named(name string) *zap.Logger {
	return L().Named(name)
}
