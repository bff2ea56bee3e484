package model

import (
	"fmt"
	"strings"
)

// Reason explains why a flight is not assigned to any aircraft.
type Reason uint8

const (
	// ReasonWaiting is used for flights never assigned or with no identifiable cause.
	ReasonWaiting Reason = iota
	ReasonMaxDelayExceeded
	ReasonAirportCurfew
	ReasonAircraftMaintenance
	// ReasonBrokenChain marks flights orphaned by the removal of an earlier leg.
	ReasonBrokenChain
)

var reasonNames = [...]string{
	ReasonWaiting:             "waiting",
	ReasonMaxDelayExceeded:    "max_delay_exceeded",
	ReasonAirportCurfew:       "airport_curfew",
	ReasonAircraftMaintenance: "aircraft_maintenance",
	ReasonBrokenChain:         "broken_chain",
}

var reasonTitles = [...]string{
	ReasonWaiting:             "Waiting",
	ReasonMaxDelayExceeded:    "MaxDelayExceeded",
	ReasonAirportCurfew:       "AirportCurfew",
	ReasonAircraftMaintenance: "AircraftMaintenance",
	ReasonBrokenChain:         "BrokenChain",
}

// Reasons lists every reason in declaration order.
func Reasons() []Reason {
	return []Reason{ReasonWaiting, ReasonMaxDelayExceeded, ReasonAirportCurfew, ReasonAircraftMaintenance, ReasonBrokenChain}
}

// String returns the snake_case wire name.
func (r Reason) String() string {
	if int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return fmt.Sprintf("reason(%d)", r)
}

// Title returns the CamelCase display name.
func (r Reason) Title() string {
	if int(r) < len(reasonTitles) {
		return reasonTitles[r]
	}
	return r.String()
}

// ParseReason accepts the wire name or the display name, case-insensitively.
func ParseReason(s string) (Reason, error) {
	for _, r := range Reasons() {
		if strings.EqualFold(s, reasonNames[r]) || strings.EqualFold(s, reasonTitles[r]) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown reason %q", s)
}

// Status is the closed set of flight states: Scheduled, Delayed or Unscheduled.
// Only types of this package implement it; match it with a type switch.
type Status interface {
	isStatus()
	String() string
}

// Scheduled means assigned with zero delay.
type Scheduled struct{}

// Delayed means assigned with a positive cumulative delay.
type Delayed struct{}

// Unscheduled means not assigned, for the given reason.
type Unscheduled struct{ Reason Reason }

func (Scheduled) isStatus()   {}
func (Delayed) isStatus()     {}
func (Unscheduled) isStatus() {}

func (Scheduled) String() string     { return "scheduled" }
func (Delayed) String() string       { return "delayed" }
func (u Unscheduled) String() string { return "unscheduled:" + u.Reason.String() }

// IsAssigned reports whether s is Scheduled or Delayed.
func IsAssigned(s Status) bool {
	switch s.(type) {
	case Scheduled, Delayed:
		return true
	default:
		return false
	}
}

// ReasonOf returns the unscheduled reason of s, if any.
func ReasonOf(s Status) (Reason, bool) {
	u, ok := s.(Unscheduled)
	return u.Reason, ok
}

// AssignedStatus returns the assigned status matching the cumulative delay.
func AssignedStatus(delay Minute) Status {
	if delay > 0 {
		return Delayed{}
	}
	return Scheduled{}
}

// ParseStatus parses the String form of a status.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(s) {
	case "scheduled":
		return Scheduled{}, nil
	case "delayed":
		return Delayed{}, nil
	}
	if rest, ok := strings.CutPrefix(strings.ToLower(s), "unscheduled:"); ok {
		r, err := ParseReason(rest)
		if err != nil {
			return nil, err
		}
		return Unscheduled{Reason: r}, nil
	}
	return nil, fmt.Errorf("unknown status %q", s)
}

// MarshalText encodes the reason by its wire name.
func (r Reason) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// UnmarshalText decodes a wire or display name.
func (r *Reason) UnmarshalText(b []byte) error {
	v, err := ParseReason(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
