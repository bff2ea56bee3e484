package monitoring

import (
	"errors"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremon "github.com/kilianp07/tower/core/monitoring"
)

func TestNewWithoutDSN(t *testing.T) {
	m, err := New(Config{})
	require.NoError(t, err)
	assert.IsType(t, coremon.NopMonitor{}, m)
	m.CaptureException(errors.New("ignored"), nil)
	m.Flush(time.Millisecond)
}

func TestNewRejectsBadDSN(t *testing.T) {
	_, err := New(Config{DSN: "not a dsn"})
	assert.Error(t, err)
}

func TestRecoverReraises(t *testing.T) {
	m := &sentryMonitor{hub: sentry.NewHub(nil, sentry.NewScope())}
	defer func() {
		r := recover()
		assert.Equal(t, "boom", r)
	}()
	func() {
		defer m.Recover()
		panic("boom")
	}()
}
