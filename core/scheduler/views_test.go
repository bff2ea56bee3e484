package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/tower/core/model"
)

func ids(views []FlightView) []string {
	out := make([]string, len(views))
	for i, v := range views {
		out[i] = v.ID
	}
	return out
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter("2", "u")
	require.NoError(t, err)
	assert.Equal(t, Filter{Day: 2, Status: "unscheduled"}, f)

	f, err = ParseFilter("broken_chain")
	require.NoError(t, err)
	require.NotNil(t, f.Reason)
	assert.Equal(t, model.ReasonBrokenChain, *f.Reason)

	_, err = ParseFilter("0")
	assert.Error(t, err)
	_, err = ParseFilter("bogus")
	assert.Error(t, err)
}

func TestListFlightsFilters(t *testing.T) {
	s := alphaChain(t, DefaultOptions())
	_, err := s.Delay("FL-101", 200)
	require.NoError(t, err)

	assert.Equal(t, []string{"FL-101", "FL-102", "FL-201"}, ids(s.ListFlights(Filter{})))
	assert.Equal(t, []string{"FL-101"}, ids(s.ListFlights(Filter{Status: "delayed"})))
	assert.Empty(t, s.ListFlights(Filter{Status: "scheduled"}))

	broken := model.ReasonBrokenChain
	assert.Equal(t, []string{"FL-102", "FL-201"}, ids(s.ListFlights(Filter{Status: "unscheduled", Reason: &broken})))
	assert.Empty(t, s.ListFlights(Filter{Day: 2}))

	v, err := s.Flight("FL-102")
	require.NoError(t, err)
	assert.Equal(t, "unscheduled", v.Status)
	assert.Equal(t, "broken_chain", v.Reason)
	assert.Equal(t, "", v.Aircraft)
	assert.Equal(t, unscheduled(model.ReasonBrokenChain), v.State())

	_, err = s.Flight("nope")
	assert.ErrorIs(t, err, ErrUnknownFlight)
}

func TestStats(t *testing.T) {
	s := twoTails(t)
	_, err := s.Delay("FL-201", 10)
	require.NoError(t, err)
	_, err = s.Delay("FL-102", 30) // FL-201 no longer chains
	require.NoError(t, err)

	st := s.Stats()
	assert.Equal(t, 3, st.Total)
	assert.Equal(t, 1, st.Scheduled)
	assert.Equal(t, 1, st.Delayed)
	assert.Equal(t, 1, st.Unscheduled)
	assert.Equal(t, 1, st.ByReason[model.ReasonBrokenChain])
	assert.Equal(t, 0, st.ByReason[model.ReasonWaiting])
	assert.Equal(t, 2, st.Assigned())
	assert.InDelta(t, 33.3, st.Share(st.Scheduled), 0.1)
	assert.InDelta(t, 30, st.MeanDelay, 1e-9)
	assert.Zero(t, st.StdDevDelay)

	_, err = s.Delay("FL-101", 10)
	require.NoError(t, err)
	st = s.Stats()
	assert.InDelta(t, 20, st.MeanDelay, 1e-9)
	assert.InDelta(t, 14.142, st.StdDevDelay, 1e-3)
}
