package model

// Flight is a scheduled leg between two airports. Departure and Arrival are the
// scheduled times; the actual times are shifted by the cumulative Delay.
type Flight struct {
	ID          string
	Origin      string
	Destination string
	Departure   Minute
	Arrival     Minute
	Delay       Minute
	// Aircraft is set iff Status is Scheduled or Delayed.
	Aircraft string
	Status   Status
}

// ActualDeparture is the scheduled departure shifted by the delay.
func (f Flight) ActualDeparture() Minute { return f.Departure + f.Delay }

// ActualArrival is the scheduled arrival shifted by the delay.
func (f Flight) ActualArrival() Minute { return f.Arrival + f.Delay }

// Duration is invariant under delay.
func (f Flight) Duration() Minute { return f.Arrival - f.Departure }

// Window returns the actual [departure, arrival) interval.
func (f Flight) Window() Window {
	return Window{Start: f.ActualDeparture(), End: f.ActualArrival()}
}

// Assigned reports whether the flight currently belongs to a rotation.
func (f Flight) Assigned() bool { return IsAssigned(f.Status) }

// Touches reports whether the flight departs from or arrives at airport.
func (f Flight) Touches(airport string) bool {
	return f.Origin == airport || f.Destination == airport
}
