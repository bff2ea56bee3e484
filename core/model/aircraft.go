package model

// Maintenance grounds an aircraft during a window. When Location is set the
// window only applies to flights touching that airport.
type Maintenance struct {
	Window
	Location string `json:"location,omitempty"`
}

// Applies reports whether the maintenance window blocks flight f.
func (m Maintenance) Applies(f Flight) bool {
	if m.Location != "" && !f.Touches(m.Location) {
		return false
	}
	return f.Window().Overlaps(m.Window)
}

// Aircraft is a tail available for rotations.
type Aircraft struct {
	ID            string
	Location      string
	AvailableFrom Minute
	Maintenance   []Maintenance
}

// Tail is the position of an aircraft after the last leg of its rotation.
type Tail struct {
	Location string `json:"location"`
	Ready    Minute `json:"ready"`
}

// InitialTail is the synthetic predecessor used for the first leg.
func (a Aircraft) InitialTail() Tail {
	return Tail{Location: a.Location, Ready: a.AvailableFrom}
}

// TailAfter returns the tail left by flying f with the given minimum turn time.
func TailAfter(f Flight, mtt Minute) Tail {
	return Tail{Location: f.Destination, Ready: f.ActualArrival() + mtt}
}

// Accepts reports whether next can be flown from this tail.
func (t Tail) Accepts(next Flight) bool {
	return t.Location == next.Origin && next.ActualDeparture() >= t.Ready
}
