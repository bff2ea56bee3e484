package logger

import corelogger "github.com/kilianp07/tower/core/logger"

type Logger = corelogger.Logger

// NopLogger discards everything. Services default to it when no logger is given.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any)         {}
func (NopLogger) Debugw(string, map[string]any) {}
func (NopLogger) Infof(string, ...any)          {}
func (NopLogger) Warnf(string, ...any)          {}
func (NopLogger) Errorf(string, ...any)         {}

// New returns the zerolog logger of a component, writing to the output set
// with SetOutput.
func New(component string) Logger {
	return NewZerologLogger(component)
}
