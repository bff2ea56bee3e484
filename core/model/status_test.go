package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusRoundTrip(t *testing.T) {
	all := []Status{Scheduled{}, Delayed{}}
	for _, r := range Reasons() {
		all = append(all, Unscheduled{Reason: r})
	}
	for _, s := range all {
		got, err := ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestStatusAssigned(t *testing.T) {
	assert.True(t, IsAssigned(Scheduled{}))
	assert.True(t, IsAssigned(Delayed{}))
	assert.False(t, IsAssigned(Unscheduled{Reason: ReasonBrokenChain}))

	r, ok := ReasonOf(Unscheduled{Reason: ReasonAirportCurfew})
	assert.True(t, ok)
	assert.Equal(t, ReasonAirportCurfew, r)

	assert.Equal(t, Status(Scheduled{}), AssignedStatus(0))
	assert.Equal(t, Status(Delayed{}), AssignedStatus(5))
}

func TestParseReasonAcceptsTitle(t *testing.T) {
	r, err := ParseReason("MaxDelayExceeded")
	require.NoError(t, err)
	assert.Equal(t, ReasonMaxDelayExceeded, r)
	_, err = ParseReason("fuel")
	assert.Error(t, err)
}
