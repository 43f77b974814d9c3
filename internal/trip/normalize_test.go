package trip_test

import (
	"testing"
	"time"

	"github.com/esnupy/lafa/internal/trip"
	"github.com/esnupy/lafa/internal/week"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

func testCalendar(t *testing.T) *week.Calendar {
	t.Helper()
	// Wednesday 2025-06-11 noon in Mexico City.
	loc, err := time.LoadLocation("America/Mexico_City")
	require.NoError(t, err)
	cal, err := week.NewCalendar("America/Mexico_City", fixedClock{
		at: time.Date(2025, 6, 11, 12, 0, 0, 0, loc),
	})
	require.NoError(t, err)
	return cal
}

func normalizeOne(t *testing.T, row trip.RawTripRow) trip.NormalizedRow {
	t.Helper()
	kept, filtered := trip.NewNormalizer(testCalendar(t)).Normalize([]trip.RawTripRow{row})
	require.Len(t, kept, 1)
	require.Zero(t, filtered)
	return kept[0]
}

func TestNormalize_CurrencyCells(t *testing.T) {
	cases := []struct {
		name string
		cell any
		want string
	}{
		{"plain float", 245.5, "245.50"},
		{"currency string", "$1,234.56", "1234.56"},
		{"spaces", " $ 89.9 ", "89.90"},
		{"empty string", "", "0.00"},
		{"garbage", "N/A", "0.00"},
		{"nil cell", nil, "0.00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			row := normalizeOne(t, trip.RawTripRow{
				DriverID: 1001.0,
				TripID:   "T-1",
				Date:     "2025-06-10",
				Cost:     tc.cell,
			})
			assert.Equal(t, tc.want, row.Cost.StringFixed(2))
		})
	}
}

func TestNormalize_TimeCells(t *testing.T) {
	cases := []struct {
		name string
		cell any
		want string
	}{
		{"serial half day", 0.5, "12:00:00"},
		{"serial rounds to minute", 0.25347222, "06:05:00"}, // 6:04:59.99...
		{"serial near full day wraps to midnight", 0.9999, "00:00:00"}, // 23:59.86 rounds to 24:00
		{"serial last rendered minute", 0.99926, "23:59:00"},
		{"string short hour", "9:05", "09:05:00"},
		{"string with seconds", "23:59:59", "23:59:59"},
		{"out of range", "25:00", "00:00:00"},
		{"garbage", "noon", "00:00:00"},
		{"nil cell", nil, "00:00:00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			row := normalizeOne(t, trip.RawTripRow{
				DriverID:  1001.0,
				TripID:    "T-1",
				Date:      "2025-06-10",
				StartTime: tc.cell,
			})
			assert.Equal(t, tc.want, row.StartTime)
		})
	}
}

func TestNormalize_DateCells(t *testing.T) {
	// Serial 45818 days after 1899-12-30 is 2025-06-10.
	row := normalizeOne(t, trip.RawTripRow{DriverID: 1001.0, TripID: "T-1", Date: 45818.0})
	assert.Equal(t, "2025-06-10", week.FormatDate(row.Date))
	assert.Equal(t, "2025-06-09", week.FormatDate(row.WeekStart))

	row = normalizeOne(t, trip.RawTripRow{DriverID: 1001.0, TripID: "T-2", Date: "2025-06-08"})
	assert.Equal(t, "2025-06-08", week.FormatDate(row.Date))
	assert.Equal(t, "2025-06-02", week.FormatDate(row.WeekStart))

	// Unparseable falls back to today in the fleet zone.
	row = normalizeOne(t, trip.RawTripRow{DriverID: 1001.0, TripID: "T-3", Date: "pronto"})
	assert.Equal(t, "2025-06-11", week.FormatDate(row.Date))
}

func TestNormalize_FiltersRowsMissingIdentifiers(t *testing.T) {
	rows := []trip.RawTripRow{
		{DriverID: 1001.0, TripID: "T-1", Date: "2025-06-10"},
		{TripID: "T-2", Date: "2025-06-10"},          // no driver id
		{DriverID: 1002.0, Date: "2025-06-10"},       // no trip id
		{DriverID: "", TripID: "", Date: "whatever"}, // both blank
		{DriverID: "1003", TripID: "T-5"},            // digit-string driver id kept
	}

	kept, filtered := trip.NewNormalizer(testCalendar(t)).Normalize(rows)

	assert.Len(t, kept, 2)
	assert.Equal(t, 3, filtered)
	assert.Equal(t, int64(1001), kept[0].PlatformDriverID)
	assert.Equal(t, int64(1003), kept[1].PlatformDriverID)
}
