package model

import (
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay is the length of a scenario day.
const MinutesPerDay Minute = 1440

// Minute is an absolute point in time expressed in minutes since the scenario epoch.
type Minute int64

// Day returns the 1-based scenario day containing m.
func (m Minute) Day() int { return int(m/MinutesPerDay) + 1 }

// String renders m as "DAY<d> HH:MM".
func (m Minute) String() string {
	rem := m % MinutesPerDay
	return fmt.Sprintf("DAY%d %02d:%02d", m.Day(), rem/60, rem%60)
}

// ParseMinute accepts either a bare integer ("1530") or the "DAY2 01:30" form.
func ParseMinute(s string) (Minute, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("negative time %d", n)
		}
		return Minute(n), nil
	}
	upper := strings.ToUpper(s)
	if !strings.HasPrefix(upper, "DAY") {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	var day, hh, mm int
	if _, err := fmt.Sscanf(upper, "DAY%d %d:%d", &day, &hh, &mm); err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if day < 1 || hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	return Minute(day-1)*MinutesPerDay + Minute(hh*60+mm), nil
}

// Window is the half-open interval [Start, End).
type Window struct {
	Start Minute `json:"start" yaml:"start"`
	End   Minute `json:"end" yaml:"end"`
}

// Valid reports whether the window is non-empty.
func (w Window) Valid() bool { return w.Start < w.End }

// Contains reports whether t falls inside [Start, End).
func (w Window) Contains(t Minute) bool { return t >= w.Start && t < w.End }

// Overlaps reports whether the two half-open windows intersect.
func (w Window) Overlaps(o Window) bool { return w.Start < o.End && w.End > o.Start }

func (w Window) String() string { return w.Start.String() + " - " + w.End.String() }
