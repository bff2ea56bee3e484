package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinuteString(t *testing.T) {
	cases := map[Minute]string{
		0:    "DAY1 00:00",
		300:  "DAY1 05:00",
		1439: "DAY1 23:59",
		1440: "DAY2 00:00",
		3005: "DAY3 02:05",
	}
	for m, want := range cases {
		if got := m.String(); got != want {
			t.Fatalf("Minute(%d).String() = %q, want %q", int64(m), got, want)
		}
	}
}

func TestParseMinute(t *testing.T) {
	m, err := ParseMinute("1530")
	require.NoError(t, err)
	assert.Equal(t, Minute(1530), m)

	m, err = ParseMinute("day2 01:30")
	require.NoError(t, err)
	assert.Equal(t, Minute(1440+90), m)

	for _, bad := range []string{"", "-5", "DAY0 01:00", "DAY1 24:00", "noon"} {
		_, err := ParseMinute(bad)
		assert.Error(t, err, bad)
	}
}

func TestWindowOverlaps(t *testing.T) {
	w := Window{Start: 100, End: 200}
	assert.True(t, w.Overlaps(Window{Start: 150, End: 250}))
	assert.True(t, w.Overlaps(Window{Start: 0, End: 101}))
	assert.False(t, w.Overlaps(Window{Start: 200, End: 300}), "touching end is not an overlap")
	assert.False(t, w.Overlaps(Window{Start: 0, End: 100}))
	assert.True(t, w.Contains(100))
	assert.False(t, w.Contains(200))
}

func TestMaintenanceLocation(t *testing.T) {
	f := Flight{Origin: "KRK", Destination: "WRO", Departure: 100, Arrival: 200}
	grounded := Maintenance{Window: Window{Start: 150, End: 160}}
	assert.True(t, grounded.Applies(f))

	elsewhere := Maintenance{Window: Window{Start: 150, End: 160}, Location: "WAW"}
	assert.False(t, elsewhere.Applies(f))

	here := Maintenance{Window: Window{Start: 150, End: 160}, Location: "WRO"}
	assert.True(t, here.Applies(f))

	f.Delay = 100
	assert.False(t, here.Applies(f), "delayed window no longer overlaps")
}

func TestTailAccepts(t *testing.T) {
	prev := Flight{Origin: "WAW", Destination: "KRK", Departure: 0, Arrival: 60}
	tail := TailAfter(prev, 30)
	assert.True(t, tail.Accepts(Flight{Origin: "KRK", Departure: 90}))
	assert.False(t, tail.Accepts(Flight{Origin: "KRK", Departure: 89}))
	assert.False(t, tail.Accepts(Flight{Origin: "GDN", Departure: 500}))
}
