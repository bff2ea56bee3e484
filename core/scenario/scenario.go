// Package scenario reads and writes scenario files and turns them into a
// loaded schedule.
package scenario

import (
	"github.com/kilianp07/tower/core/model"
	"github.com/kilianp07/tower/core/scheduler"
)

// Airport is the file form of an airport. Disruptions holds curfews as
// [from, to] pairs and is merged with Curfews.
type Airport struct {
	ID          string            `json:"id" yaml:"id"`
	MTT         *model.Minute     `json:"mtt,omitempty" yaml:"mtt,omitempty"`
	Curfews     []model.Window    `json:"curfews,omitempty" yaml:"curfews,omitempty"`
	Disruptions [][2]model.Minute `json:"disruptions,omitempty" yaml:"disruptions,omitempty"`
}

// Unavailability is a maintenance window in file form.
type Unavailability struct {
	From       model.Minute `json:"from" yaml:"from"`
	To         model.Minute `json:"to" yaml:"to"`
	LocationID string       `json:"location_id,omitempty" yaml:"location_id,omitempty"`
}

// Aircraft is the file form of an aircraft. Disruptions is an alias of Maintenance.
type Aircraft struct {
	ID                string           `json:"id" yaml:"id"`
	InitialLocationID string           `json:"initial_location_id" yaml:"initial_location_id"`
	AvailableFrom     model.Minute     `json:"available_from,omitempty" yaml:"available_from,omitempty"`
	Maintenance       []Unavailability `json:"maintenance,omitempty" yaml:"maintenance,omitempty"`
	Disruptions       []Unavailability `json:"disruptions,omitempty" yaml:"disruptions,omitempty"`
}

// Flight is the file form of a flight. Assignment fields found in exported
// files are accepted and ignored.
type Flight struct {
	ID            string       `json:"id" yaml:"id"`
	OriginID      string       `json:"origin_id" yaml:"origin_id"`
	DestinationID string       `json:"destination_id" yaml:"destination_id"`
	DepartureTime model.Minute `json:"departure_time" yaml:"departure_time"`
	ArrivalTime   model.Minute `json:"arrival_time" yaml:"arrival_time"`
	Delay         model.Minute `json:"delay,omitempty" yaml:"delay,omitempty"`
	AircraftID    *string      `json:"aircraft_id,omitempty" yaml:"aircraft_id,omitempty"`
	Status        any          `json:"status,omitempty" yaml:"status,omitempty"`
}

// File is a complete scenario.
type File struct {
	MTT      *model.Minute `json:"mtt,omitempty" yaml:"mtt,omitempty"`
	MaxDelay *model.Minute `json:"max_delay,omitempty" yaml:"max_delay,omitempty"`
	Airports []Airport     `json:"airports" yaml:"airports"`
	Aircraft []Aircraft    `json:"aircraft" yaml:"aircraft"`
	Flights  []Flight      `json:"flights" yaml:"flights"`
}

// Options resolves engine options: file-level values win, then the largest
// airport mtt, then defaults.
func (f *File) Options(defaults scheduler.Options) scheduler.Options {
	opts := defaults
	if f.MTT != nil {
		opts.MTT = *f.MTT
	} else {
		found := false
		for _, ap := range f.Airports {
			if ap.MTT != nil && (!found || *ap.MTT > opts.MTT) {
				opts.MTT = *ap.MTT
				found = true
			}
		}
	}
	if f.MaxDelay != nil {
		opts.MaxDelay = *f.MaxDelay
	}
	return opts
}

// Entities converts the file into engine inputs.
func (f *File) Entities() ([]model.Flight, []model.Aircraft, []model.Airport) {
	airports := make([]model.Airport, len(f.Airports))
	for i, ap := range f.Airports {
		curfews := append([]model.Window(nil), ap.Curfews...)
		for _, d := range ap.Disruptions {
			curfews = append(curfews, model.Window{Start: d[0], End: d[1]})
		}
		airports[i] = model.Airport{ID: ap.ID, Curfews: curfews}
	}
	aircraft := make([]model.Aircraft, len(f.Aircraft))
	for i, ac := range f.Aircraft {
		var mw []model.Maintenance
		for _, u := range append(append([]Unavailability(nil), ac.Maintenance...), ac.Disruptions...) {
			mw = append(mw, model.Maintenance{Window: model.Window{Start: u.From, End: u.To}, Location: u.LocationID})
		}
		aircraft[i] = model.Aircraft{
			ID:            ac.ID,
			Location:      ac.InitialLocationID,
			AvailableFrom: ac.AvailableFrom,
			Maintenance:   mw,
		}
	}
	flights := make([]model.Flight, len(f.Flights))
	for i, fl := range f.Flights {
		flights[i] = model.Flight{
			ID:          fl.ID,
			Origin:      fl.OriginID,
			Destination: fl.DestinationID,
			Departure:   fl.DepartureTime,
			Arrival:     fl.ArrivalTime,
			Delay:       fl.Delay,
		}
	}
	return flights, aircraft, airports
}

// Build loads the scenario into a new schedule.
func (f *File) Build(defaults scheduler.Options) (*scheduler.Schedule, error) {
	flights, aircraft, airports := f.Entities()
	return scheduler.Load(flights, aircraft, airports, f.Options(defaults))
}
