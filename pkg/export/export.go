// Package export writes the flight table in CSV or JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kilianp07/tower/core/scheduler"
)

// Format is an export encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat accepts "csv" or "json", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatCSV, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q", s)
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatJSON {
		return "application/json"
	}
	return "text/csv"
}

// Write encodes flights to w in the given format.
func Write(w io.Writer, f Format, flights []scheduler.FlightView) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, flights)
	case FormatJSON:
		return WriteJSON(w, flights)
	default:
		return fmt.Errorf("unknown export format %q", f)
	}
}

// WriteJSON writes the flights to w as an indented JSON array.
func WriteJSON(w io.Writer, flights []scheduler.FlightView) error {
	if flights == nil {
		flights = []scheduler.FlightView{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(flights)
}

var csvHeader = []string{
	"id", "origin", "destination", "departure", "arrival", "delay",
	"actual_departure", "actual_arrival", "aircraft", "status", "reason",
}

// WriteCSV writes the flights to w in CSV format. Times use the DAYd HH:MM
// form and the delay is in minutes.
func WriteCSV(w io.Writer, flights []scheduler.FlightView) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, f := range flights {
		rec := []string{
			f.ID,
			f.Origin,
			f.Destination,
			f.Departure.String(),
			f.Arrival.String(),
			strconv.FormatInt(int64(f.Delay), 10),
			f.ActualDeparture.String(),
			f.ActualArrival.String(),
			f.Aircraft,
			f.Status,
			f.Reason,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
