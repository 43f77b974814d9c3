package week_test

import (
	"testing"
	"time"

	"github.com/esnupy/lafa/internal/week"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

func newCalendar(t *testing.T, at time.Time) *week.Calendar {
	t.Helper()
	cal, err := week.NewCalendar("America/Mexico_City", fixedClock{at: at})
	require.NoError(t, err)
	return cal
}

func TestStartOfWeek_MondayIsItsOwnStart(t *testing.T) {
	cal := newCalendar(t, time.Time{})

	// Wednesday 2025-06-11.
	d := time.Date(2025, 6, 11, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-06-09", week.FormatDate(cal.StartOfWeek(d)))

	// Monday maps to itself.
	mon := time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-06-09", week.FormatDate(cal.StartOfWeek(mon)))
}

func TestStartOfWeek_SundayBelongsToThePrecedingMonday(t *testing.T) {
	cal := newCalendar(t, time.Time{})

	sun := time.Date(2025, 6, 15, 12, 0, 0, 0, time.FixedZone("CST", -6*3600))
	assert.Equal(t, "2025-06-09", week.FormatDate(cal.StartOfWeek(sun)))
}

func TestStartOfWeek_ConvertsToFleetZoneBeforeReadingWeekday(t *testing.T) {
	cal := newCalendar(t, time.Time{})

	// 2025-06-09 03:00 UTC is still Sunday 2025-06-08 in Mexico City
	// (UTC-6), so the week is the one starting 2025-06-02.
	early := time.Date(2025, 6, 9, 3, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-06-02", week.FormatDate(cal.StartOfWeek(early)))

	// A few hours later local midnight has passed and the same UTC day
	// lands in the next week.
	later := time.Date(2025, 6, 9, 7, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-06-09", week.FormatDate(cal.StartOfWeek(later)))
}

func TestCurrentWeekStartAndToday_UseTheFixedClock(t *testing.T) {
	// Friday 2025-03-07 23:30 in Mexico City.
	loc, err := time.LoadLocation("America/Mexico_City")
	require.NoError(t, err)
	cal := newCalendar(t, time.Date(2025, 3, 7, 23, 30, 0, 0, loc))

	assert.Equal(t, "2025-03-07", week.FormatDate(cal.Today()))
	assert.Equal(t, "2025-03-03", week.FormatDate(cal.CurrentWeekStart()))
	assert.Equal(t, "2025-03-05", week.FormatDate(cal.DaysAgo(2)))
}

func TestPrevNext(t *testing.T) {
	mon := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "2025-06-02", week.FormatDate(week.Prev(mon)))
	assert.Equal(t, "2025-06-16", week.FormatDate(week.Next(mon)))
}

func TestParseDate_RoundTrips(t *testing.T) {
	d, err := week.ParseDate("2025-12-29")
	require.NoError(t, err)
	assert.Equal(t, "2025-12-29", week.FormatDate(d))

	_, err = week.ParseDate("29/12/2025")
	assert.Error(t, err)
}

func TestNewCalendar_RejectsUnknownZone(t *testing.T) {
	_, err := week.NewCalendar("Mars/Olympus_Mons", nil)
	assert.Error(t, err)
}
