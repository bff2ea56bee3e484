package scheduler

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kilianp07/tower/core/model"
)

func flight(id, from, to string, dep, arr model.Minute) model.Flight {
	return model.Flight{ID: id, Origin: from, Destination: to, Departure: dep, Arrival: arr}
}

func airports(ids ...string) []model.Airport {
	out := make([]model.Airport, len(ids))
	for i, id := range ids {
		out[i] = model.Airport{ID: id}
	}
	return out
}

func mustLoad(t *testing.T, flights []model.Flight, aircraft []model.Aircraft, aps []model.Airport, opts Options) *Schedule {
	t.Helper()
	s, err := Load(flights, aircraft, aps, opts)
	require.NoError(t, err)
	require.NoError(t, s.Check())
	return s
}

func statusOf(t *testing.T, s *Schedule, id string) model.Status {
	t.Helper()
	fi, err := s.lookupFlight(id)
	require.NoError(t, err)
	return s.flights[fi].Status
}

func unscheduled(r model.Reason) model.Status { return model.Unscheduled{Reason: r} }

// alphaChain is a single aircraft flying WAW -> KRK -> GDN -> WAW.
func alphaChain(t *testing.T, opts Options) *Schedule {
	return mustLoad(t,
		[]model.Flight{
			flight("FL-101", "WAW", "KRK", 300, 360),
			flight("FL-102", "KRK", "GDN", 400, 460),
			flight("FL-201", "GDN", "WAW", 500, 560),
		},
		[]model.Aircraft{{ID: "ALPHA", Location: "WAW"}},
		airports("WAW", "KRK", "GDN"),
		opts,
	)
}

// fleet generates a stress scenario in the shape of the scenario generator:
// each aircraft has a feasible chain of legs through random airports.
func fleet(seed int64, nAirports, nAircraft, legs int) ([]model.Flight, []model.Aircraft, []model.Airport) {
	rng := rand.New(rand.NewSource(seed))
	aps := make([]model.Airport, nAirports)
	for i := range aps {
		aps[i] = model.Airport{ID: fmt.Sprintf("AP_%d", i)}
	}
	var flights []model.Flight
	var aircraft []model.Aircraft
	n := 1
	for i := 0; i < nAircraft; i++ {
		loc := aps[rng.Intn(nAirports)].ID
		aircraft = append(aircraft, model.Aircraft{ID: fmt.Sprintf("AC_%03d", i), Location: loc})
		now := model.Minute(60 + rng.Intn(241))
		for l := 0; l < legs; l++ {
			dest := loc
			for dest == loc {
				dest = aps[rng.Intn(nAirports)].ID
			}
			dur := model.Minute(60 + rng.Intn(121))
			flights = append(flights, flight(fmt.Sprintf("FL_%d", n), loc, dest, now, now+dur))
			n++
			loc = dest
			now += dur + 30 + model.Minute(30+rng.Intn(91))
		}
	}
	return flights, aircraft, aps
}
