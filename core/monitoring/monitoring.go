// Package monitoring defines the error reporting hook used by the service.
package monitoring

import "time"

// Monitor reports errors that are logged but not returned to a caller,
// such as failed journal writes or invariant violations.
type Monitor interface {
	CaptureException(err error, tags map[string]string)
	// Recover must be deferred directly. It reports a panic and re-raises it.
	Recover()
	Flush(timeout time.Duration)
}

type NopMonitor struct{}

func (NopMonitor) CaptureException(error, map[string]string) {}
func (NopMonitor) Recover()                                  {}
func (NopMonitor) Flush(time.Duration)                       {}
