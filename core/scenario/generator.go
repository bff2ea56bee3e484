package scenario

import (
	"fmt"
	"math/rand"

	"github.com/kilianp07/tower/core/model"
)

// GenConfig sizes a generated stress scenario.
type GenConfig struct {
	Airports int          `json:"airports"`
	Aircraft int          `json:"aircraft"`
	Legs     int          `json:"legs"`
	MTT      model.Minute `json:"mtt"`
	Seed     int64        `json:"seed"`
}

// SetDefaults applies the stress test sizing.
func (c *GenConfig) SetDefaults() {
	if c.Airports == 0 {
		c.Airports = 300
	}
	if c.Aircraft == 0 {
		c.Aircraft = 500
	}
	if c.Legs == 0 {
		c.Legs = 10
	}
	if c.MTT == 0 {
		c.MTT = 30
	}
	if c.Seed == 0 {
		c.Seed = 1
	}
}

// Validate checks the sizing is usable.
func (c GenConfig) Validate() error {
	if c.Airports < 2 {
		return fmt.Errorf("generator needs at least 2 airports, got %d", c.Airports)
	}
	if c.Aircraft < 1 || c.Legs < 1 {
		return fmt.Errorf("generator needs aircraft and legs, got %d and %d", c.Aircraft, c.Legs)
	}
	if c.MTT < 0 {
		return fmt.Errorf("negative mtt %d", c.MTT)
	}
	return nil
}

// Generate builds a scenario where every aircraft has a feasible chain of
// legs: departures start in [60,300], legs last [60,180] minutes and ground
// time is mtt plus [30,120] minutes.
func Generate(cfg GenConfig) *File {
	rng := rand.New(rand.NewSource(cfg.Seed))
	mtt := cfg.MTT
	f := &File{}
	for i := 0; i < cfg.Airports; i++ {
		f.Airports = append(f.Airports, Airport{ID: fmt.Sprintf("AP_%d", i), MTT: &mtt})
	}
	n := 1
	for i := 0; i < cfg.Aircraft; i++ {
		loc := f.Airports[rng.Intn(cfg.Airports)].ID
		f.Aircraft = append(f.Aircraft, Aircraft{ID: fmt.Sprintf("AC_%d", i), InitialLocationID: loc})
		now := model.Minute(60 + rng.Intn(241))
		for l := 0; l < cfg.Legs; l++ {
			dest := loc
			for dest == loc {
				dest = f.Airports[rng.Intn(cfg.Airports)].ID
			}
			dur := model.Minute(60 + rng.Intn(121))
			f.Flights = append(f.Flights, Flight{
				ID:            fmt.Sprintf("FL_%d", n),
				OriginID:      loc,
				DestinationID: dest,
				DepartureTime: now,
				ArrivalTime:   now + dur,
			})
			n++
			loc = dest
			now += dur + mtt + model.Minute(30+rng.Intn(91))
		}
	}
	return f
}
