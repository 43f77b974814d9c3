package trip

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/esnupy/lafa/internal/week"

	"github.com/shopspring/decimal"
)

// Spreadsheet date serials count days from this epoch.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?$`)

var currencyCleaner = strings.NewReplacer("$", "", ",", "", " ", "", " ", "")

// NormalizedRow is one spreadsheet row after cell parsing, before the
// driver id has been resolved against the directory.
type NormalizedRow struct {
	PlatformDriverID int64
	ExternalTripID   string
	Date             time.Time
	StartTime        string
	EndTime          string
	Cost             decimal.Decimal
	Tip              decimal.Decimal
	PickupLat        *float64
	PickupLng        *float64
	WeekStart        time.Time
}

// Normalizer turns raw heterogeneous cells into canonical trip rows.
type Normalizer struct {
	cal *week.Calendar
}

func NewNormalizer(cal *week.Calendar) *Normalizer {
	return &Normalizer{cal: cal}
}

// Normalize parses every row and drops the ones missing a driver id or
// trip id. Dropping is silent; the caller reports received vs kept
// counts for diagnostics.
func (n *Normalizer) Normalize(rows []RawTripRow) (kept []NormalizedRow, filtered int) {
	kept = make([]NormalizedRow, 0, len(rows))
	for _, raw := range rows {
		driverID, ok := parsePlatformID(raw.DriverID)
		if !ok {
			filtered++
			continue
		}
		tripID := cellString(raw.TripID)
		if tripID == "" {
			filtered++
			continue
		}

		date := n.parseDate(raw.Date)
		kept = append(kept, NormalizedRow{
			PlatformDriverID: driverID,
			ExternalTripID:   tripID,
			Date:             date,
			StartTime:        parseClock(raw.StartTime),
			EndTime:          parseClock(raw.EndTime),
			Cost:             parseCurrency(raw.Cost),
			Tip:              parseCurrency(raw.Tip),
			PickupLat:        cellFloat(raw.PickupLat),
			PickupLng:        cellFloat(raw.PickupLng),
			WeekStart:        n.cal.StartOfWeekDate(date),
		})
	}
	return kept, filtered
}

// parseCurrency strips the currency symbol, thousands separators and
// whitespace. Anything unparseable is 0.00.
func parseCurrency(v any) decimal.Decimal {
	switch cell := v.(type) {
	case float64:
		return decimal.NewFromFloat(cell).Round(2)
	case string:
		cleaned := currencyCleaner.Replace(strings.TrimSpace(cell))
		if cleaned == "" {
			return decimal.Zero.Round(2)
		}
		d, err := decimal.NewFromString(cleaned)
		if err != nil {
			return decimal.Zero.Round(2)
		}
		return d.Round(2)
	default:
		return decimal.Zero.Round(2)
	}
}

// parseClock accepts a fractional-day serial (1.0 = 24h, rounded to the
// nearest minute) or an H:MM[:SS] string; anything else is 00:00:00.
// A serial that rounds to the full day wraps to 00:00:00: the clock
// only carries the time of day, the trip date carries the day.
func parseClock(v any) string {
	switch cell := v.(type) {
	case float64:
		if cell < 0 {
			return "00:00:00"
		}
		minutes := int(math.Round(cell * 24 * 60))
		minutes %= 24 * 60
		return fmt.Sprintf("%02d:%02d:00", minutes/60, minutes%60)
	case string:
		m := clockPattern.FindStringSubmatch(strings.TrimSpace(cell))
		if m == nil {
			return "00:00:00"
		}
		hh, _ := strconv.Atoi(m[1])
		mm, _ := strconv.Atoi(m[2])
		ss := 0
		if m[3] != "" {
			ss, _ = strconv.Atoi(m[3])
		}
		if hh > 23 || mm > 59 || ss > 59 {
			return "00:00:00"
		}
		return fmt.Sprintf("%02d:%02d:%02d", hh, mm, ss)
	default:
		return "00:00:00"
	}
}

// parseDate accepts a spreadsheet day serial or a date string; missing
// or unparseable cells fall back to today in the fleet zone.
func (n *Normalizer) parseDate(v any) time.Time {
	switch cell := v.(type) {
	case float64:
		if cell <= 0 {
			return n.cal.Today()
		}
		return serialEpoch.AddDate(0, 0, int(cell))
	case string:
		s := strings.TrimSpace(cell)
		if s == "" {
			return n.cal.Today()
		}
		for _, layout := range []string{week.DateLayout, "02/01/2006", "2/1/2006", "2006/01/02"} {
			if d, err := time.Parse(layout, s); err == nil {
				return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
			}
		}
		return n.cal.Today()
	default:
		return n.cal.Today()
	}
}

// parsePlatformID reads the external driver id, which arrives numeric
// or as a digit string.
func parsePlatformID(v any) (int64, bool) {
	switch cell := v.(type) {
	case float64:
		if cell <= 0 {
			return 0, false
		}
		return int64(cell), true
	case string:
		s := strings.TrimSpace(cell)
		if s == "" {
			return 0, false
		}
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil || id <= 0 {
			return 0, false
		}
		return id, true
	default:
		return 0, false
	}
}

func cellString(v any) string {
	switch cell := v.(type) {
	case string:
		return strings.TrimSpace(cell)
	case float64:
		return strconv.FormatFloat(cell, 'f', -1, 64)
	default:
		return ""
	}
}

func cellFloat(v any) *float64 {
	switch cell := v.(type) {
	case float64:
		return &cell
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}
