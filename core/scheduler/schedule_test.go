package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/tower/core/model"
)

func TestBuildGreedyByAircraftID(t *testing.T) {
	s := mustLoad(t,
		[]model.Flight{
			flight("F3", "KRK", "WAW", 200, 260),
			flight("F2", "WAW", "GDN", 100, 170),
			flight("F1", "WAW", "KRK", 100, 160),
		},
		[]model.Aircraft{{ID: "A2", Location: "WAW"}, {ID: "A1", Location: "WAW"}},
		airports("WAW", "KRK", "GDN"),
		DefaultOptions(),
	)

	ac := s.Aircraft()
	require.Len(t, ac, 2)
	assert.Equal(t, "A1", ac[0].ID)
	assert.Equal(t, []string{"F1", "F3"}, ac[0].Rotation)
	assert.Equal(t, model.Tail{Location: "WAW", Ready: 290}, ac[0].Tail)
	assert.Equal(t, []string{"F2"}, ac[1].Rotation)

	for _, id := range []string{"F1", "F2", "F3"} {
		assert.Equal(t, model.Status(model.Scheduled{}), statusOf(t, s, id), id)
	}
}

func TestBuildLeavesUnclaimedWaiting(t *testing.T) {
	s := mustLoad(t,
		[]model.Flight{
			flight("F1", "WAW", "KRK", 100, 160),
			flight("F2", "GDN", "WAW", 100, 160),
			flight("F3", "KRK", "WAW", 170, 230), // inside MTT after F1
		},
		[]model.Aircraft{{ID: "A1", Location: "WAW"}},
		airports("WAW", "KRK", "GDN"),
		DefaultOptions(),
	)
	assert.Equal(t, model.Status(model.Scheduled{}), statusOf(t, s, "F1"))
	assert.Equal(t, unscheduled(model.ReasonWaiting), statusOf(t, s, "F2"))
	assert.Equal(t, unscheduled(model.ReasonWaiting), statusOf(t, s, "F3"))
}

func TestBuildRespectsAvailabilityAndPerfectFitMTT(t *testing.T) {
	s := mustLoad(t,
		[]model.Flight{
			flight("F1", "WAW", "KRK", 100, 160),
			flight("F2", "WAW", "KRK", 200, 260),
			flight("F3", "KRK", "WAW", 290, 350),
		},
		[]model.Aircraft{{ID: "A1", Location: "WAW", AvailableFrom: 150}},
		airports("WAW", "KRK"),
		DefaultOptions(),
	)
	assert.Equal(t, unscheduled(model.ReasonWaiting), statusOf(t, s, "F1"))
	assert.Equal(t, model.Status(model.Scheduled{}), statusOf(t, s, "F2"))
	assert.Equal(t, model.Status(model.Scheduled{}), statusOf(t, s, "F3"), "departure exactly at arrival+MTT chains")
}

func TestBuildTieBreaksByFlightID(t *testing.T) {
	s := mustLoad(t,
		[]model.Flight{
			flight("FL-B", "WAW", "KRK", 100, 160),
			flight("FL-A", "WAW", "GDN", 100, 160),
		},
		[]model.Aircraft{{ID: "A1", Location: "WAW"}},
		airports("WAW", "KRK", "GDN"),
		DefaultOptions(),
	)
	assert.Equal(t, []string{"FL-A"}, s.Aircraft()[0].Rotation)
}

func TestBuildSkipsBlockedFlights(t *testing.T) {
	aps := airports("WAW", "KRK")
	aps[1].Curfews = []model.Window{{Start: 150, End: 200}}
	s := mustLoad(t,
		[]model.Flight{
			flight("F1", "WAW", "KRK", 100, 160), // lands during curfew
			flight("F2", "WAW", "KRK", 200, 260),
			flight("F3", "KRK", "WAW", 400, 460),
		},
		[]model.Aircraft{{ID: "A1", Location: "WAW", Maintenance: []model.Maintenance{
			{Window: model.Window{Start: 420, End: 430}},
		}}},
		aps,
		DefaultOptions(),
	)
	assert.Equal(t, []string{"F2"}, s.Aircraft()[0].Rotation)
	assert.Equal(t, unscheduled(model.ReasonWaiting), statusOf(t, s, "F1"))
	assert.Equal(t, unscheduled(model.ReasonWaiting), statusOf(t, s, "F3"))
}

func TestBuildMultiDayRotation(t *testing.T) {
	s := mustLoad(t,
		[]model.Flight{
			flight("F1", "WAW", "JFK", 1300, 1900), // crosses midnight
			flight("F2", "JFK", "WAW", 2000, 2600),
			flight("F3", "WAW", "KRK", 2900, 2960),
		},
		[]model.Aircraft{{ID: "A1", Location: "WAW"}},
		airports("WAW", "JFK", "KRK"),
		DefaultOptions(),
	)
	assert.Equal(t, []string{"F1", "F2", "F3"}, s.Aircraft()[0].Rotation)
	assert.Equal(t, "DAY3 01:50", s.Aircraft()[0].Tail.Ready.String())
}

func TestLoadRejectsInvalidScenarios(t *testing.T) {
	base := func() ([]model.Flight, []model.Aircraft, []model.Airport) {
		return []model.Flight{flight("F1", "WAW", "KRK", 100, 160)},
			[]model.Aircraft{{ID: "A1", Location: "WAW"}},
			airports("WAW", "KRK")
	}
	cases := map[string]func(f []model.Flight, a []model.Aircraft, ap []model.Airport) ([]model.Flight, []model.Aircraft, []model.Airport){
		"duplicate flight": func(f []model.Flight, a []model.Aircraft, ap []model.Airport) ([]model.Flight, []model.Aircraft, []model.Airport) {
			return append(f, flight("F1", "KRK", "WAW", 300, 360)), a, ap
		},
		"duplicate aircraft": func(f []model.Flight, a []model.Aircraft, ap []model.Airport) ([]model.Flight, []model.Aircraft, []model.Airport) {
			return f, append(a, model.Aircraft{ID: "A1", Location: "KRK"}), ap
		},
		"duplicate airport": func(f []model.Flight, a []model.Aircraft, ap []model.Airport) ([]model.Flight, []model.Aircraft, []model.Airport) {
			return f, a, append(ap, model.Airport{ID: "WAW"})
		},
		"dangling destination": func(f []model.Flight, a []model.Aircraft, ap []model.Airport) ([]model.Flight, []model.Aircraft, []model.Airport) {
			return append(f, flight("F2", "WAW", "GDN", 300, 360)), a, ap
		},
		"dangling aircraft location": func(f []model.Flight, a []model.Aircraft, ap []model.Airport) ([]model.Flight, []model.Aircraft, []model.Airport) {
			return f, append(a, model.Aircraft{ID: "A2", Location: "GDN"}), ap
		},
		"dangling maintenance location": func(f []model.Flight, a []model.Aircraft, ap []model.Airport) ([]model.Flight, []model.Aircraft, []model.Airport) {
			a[0].Maintenance = []model.Maintenance{{Window: model.Window{Start: 1, End: 2}, Location: "GDN"}}
			return f, a, ap
		},
		"zero duration": func(f []model.Flight, a []model.Aircraft, ap []model.Airport) ([]model.Flight, []model.Aircraft, []model.Airport) {
			return append(f, flight("F2", "WAW", "KRK", 300, 300)), a, ap
		},
		"empty curfew": func(f []model.Flight, a []model.Aircraft, ap []model.Airport) ([]model.Flight, []model.Aircraft, []model.Airport) {
			ap[0].Curfews = []model.Window{{Start: 10, End: 10}}
			return f, a, ap
		},
		"empty id": func(f []model.Flight, a []model.Aircraft, ap []model.Airport) ([]model.Flight, []model.Aircraft, []model.Airport) {
			return append(f, flight(" ", "WAW", "KRK", 300, 360)), a, ap
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			f, a, ap := mutate(base())
			_, err := Load(f, a, ap, DefaultOptions())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidScenario)
			assert.Equal(t, "invalid_scenario", KindOf(err))
		})
	}

	_, err := Load(nil, nil, nil, Options{MTT: -1})
	assert.ErrorIs(t, err, ErrInvalidScenario)
}

func TestLoadCopiesInput(t *testing.T) {
	aps := airports("WAW", "KRK")
	aps[0].Curfews = []model.Window{{Start: 1000, End: 1100}}
	s := mustLoad(t, []model.Flight{flight("F1", "WAW", "KRK", 100, 160)},
		[]model.Aircraft{{ID: "A1", Location: "WAW"}}, aps, DefaultOptions())
	aps[0].Curfews[0].Start = 0
	got := s.Airports()
	require.Equal(t, "WAW", got[1].ID)
	assert.Equal(t, model.Minute(1000), got[1].Curfews[0].Start)
}
