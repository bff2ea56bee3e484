package scheduler

import "errors"

var (
	// ErrUnknownFlight is returned when a flight id is not part of the schedule.
	ErrUnknownFlight = errors.New("unknown flight")
	// ErrUnknownAircraft is returned when an aircraft id is not part of the schedule.
	ErrUnknownAircraft = errors.New("unknown aircraft")
	// ErrUnknownAirport is returned when an airport id is not part of the schedule.
	ErrUnknownAirport = errors.New("unknown airport")
	// ErrInvalidInterval is returned for empty windows and for delays that are
	// non-positive or would overflow the flight's times.
	ErrInvalidInterval = errors.New("invalid interval")
	// ErrInvalidScenario is returned when a scenario cannot be loaded.
	ErrInvalidScenario = errors.New("invalid scenario")
)

// KindOf maps an engine error to a stable snake_case name.
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnknownFlight):
		return "unknown_flight"
	case errors.Is(err, ErrUnknownAircraft):
		return "unknown_aircraft"
	case errors.Is(err, ErrUnknownAirport):
		return "unknown_airport"
	case errors.Is(err, ErrInvalidInterval):
		return "invalid_interval"
	case errors.Is(err, ErrInvalidScenario):
		return "invalid_scenario"
	default:
		return "internal"
	}
}
