// Package logging builds the process-wide zap logger.
package logging

import (
	"go.uber.org/zap"
)

// New returns a development logger (console, debug level) when development is true and a JSON
// production logger otherwise. The result also replaces zap's globals so packages that are handed
// a nil logger fall back to it through zap.L().
func New(development bool) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if development {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}

// OrGlobal returns logger, or the global zap logger when logger is nil.
func OrGlobal(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.L()
	}
	return logger
}

// Critical logs msg at error level tagged severity=critical. zap has no level above error that
// does not panic or exit, so alerting keys off the field instead.
func Critical(logger *zap.Logger, msg string, fields ...zap.Field) {
	OrGlobal(logger).Error(msg, append(fields, zap.String("severity", "critical"))...)
}
