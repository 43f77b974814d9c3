// Package week centralizes the Monday-start week arithmetic the whole
// back office runs on. Every week identifier in the system is the plain
// calendar date of a Monday, computed in one fixed civil timezone so a
// server running in UTC never shifts a trip or shift into the wrong week.
package week

import (
	"os"
	"time"
)

// DateLayout is the wire format for week starts and trip dates.
const DateLayout = "2006-01-02"

// DefaultTimezone is the civil zone the fleet operates in.
const DefaultTimezone = "America/Mexico_City"

// Clock abstracts "now" so tests can pin a fixed instant.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall clock.
func SystemClock() Clock { return systemClock{} }

// Calendar computes week boundaries in a fixed civil timezone.
type Calendar struct {
	loc   *time.Location
	clock Clock
}

// NewCalendar builds a calendar for the given zone name. An empty name
// falls back to FLEET_TIMEZONE, then DefaultTimezone.
func NewCalendar(tzName string, clock Clock) (*Calendar, error) {
	if tzName == "" {
		tzName = os.Getenv("FLEET_TIMEZONE")
	}
	if tzName == "" {
		tzName = DefaultTimezone
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, err
	}
	if clock == nil {
		clock = SystemClock()
	}
	return &Calendar{loc: loc, clock: clock}, nil
}

// MustCalendar is NewCalendar for wiring paths where the zone is static.
func MustCalendar(tzName string, clock Clock) *Calendar {
	c, err := NewCalendar(tzName, clock)
	if err != nil {
		panic(err)
	}
	return c
}

// Location exposes the fixed civil zone.
func (c *Calendar) Location() *time.Location { return c.loc }

// Today returns the current civil date in the fixed zone, as a plain
// date (midnight UTC, no offset).
func (c *Calendar) Today() time.Time {
	return civilDate(c.clock.Now().In(c.loc))
}

// StartOfWeek returns the Monday of the week containing t. The instant
// is converted into the fixed zone before the day-of-week is read;
// computing on the server zone instead is exactly the off-by-one-day
// bug this package exists to prevent.
func (c *Calendar) StartOfWeek(t time.Time) time.Time {
	d := civilDate(t.In(c.loc))
	diff := mondayDiff(d.Weekday())
	return d.AddDate(0, 0, diff)
}

// CurrentWeekStart is StartOfWeek for "now".
func (c *Calendar) CurrentWeekStart() time.Time {
	return c.StartOfWeek(c.clock.Now())
}

// StartOfWeekDate is StartOfWeek for a plain date (already zone-free).
func (c *Calendar) StartOfWeekDate(d time.Time) time.Time {
	d = civilDate(d)
	return d.AddDate(0, 0, mondayDiff(d.Weekday()))
}

// DaysAgo returns the civil date n days before today in the fixed zone.
func (c *Calendar) DaysAgo(n int) time.Time {
	return c.Today().AddDate(0, 0, -n)
}

// Prev returns the Monday one week before weekStart.
func Prev(weekStart time.Time) time.Time {
	return weekStart.AddDate(0, 0, -7)
}

// Next returns the Monday one week after weekStart.
func Next(weekStart time.Time) time.Time {
	return weekStart.AddDate(0, 0, 7)
}

// FormatDate renders a plain date as YYYY-MM-DD.
func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}

// ParseDate parses YYYY-MM-DD into a plain date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// civilDate strips time-of-day and zone, keeping only the calendar date.
func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// mondayDiff maps a weekday to the day offset back to Monday.
func mondayDiff(wd time.Weekday) int {
	if wd == time.Sunday {
		return -6
	}
	return int(time.Monday - wd)
}
