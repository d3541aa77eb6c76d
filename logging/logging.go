// Package logging - process-wide logger shared by the image test helpers.
//
// By default nothing is logged. Tests and the imgcheck command install a real
// logger with SetLogger.
package logging

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// loggerPtr stores the active logger. Accessed atomically so that SetLogger
// can race with logging from parallel tests.
var loggerPtr atomic.Pointer[zap.Logger]

func init() {
	loggerPtr.Store(zap.NewNop())
}

// SetLogger installs the logger used by every package of the module.
// Pass nil to restore the silent default.
//
// Log levels used:
//   - Debug: raw and normalized conformity values, dumped file paths.
//   - Warn: fixture files with unknown extensions.
//
// Arguments:
// - l: The logger to install.
//
// Returns:
// - None.
//
// @example
// logging.SetLogger(zaptest.NewLogger(t))
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	loggerPtr.Store(l)
}

// Logger returns the currently installed logger.
func Logger() *zap.Logger {
	return loggerPtr.Load()
}

// Or returns l when it is non-nil and the process-wide logger otherwise.
func Or(l *zap.Logger) *zap.Logger {
	if l != nil {
		return l
	}
	return Logger()
}

// NewDevelopment builds a console logger for command line use. Debug output is
// enabled only when debug is true.
func NewDevelopment(debug bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	cfg.DisableStacktrace = true
	return cfg.Build()
}
