package timeutil

import (
	"time"
)

// Paris is the company's local time zone (CET/CEST)
var Paris *time.Location

func init() {
	var err error
	Paris, err = time.LoadLocation("Europe/Paris")
	if err != nil {
		// Fallback: fixed CET if tzdata not available
		Paris = time.FixedZone("CET", 1*60*60)
	}
}

// Now returns the current time in Paris local time
func Now() time.Time {
	return time.Now().In(Paris)
}

// ToLocal converts any time to Paris local time
func ToLocal(t time.Time) time.Time {
	return t.In(Paris)
}

// ParseLocal parses a time string in Paris local time
func ParseLocal(layout, value string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, value, Paris)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// StartOfDay returns 00:00:00 Paris time for the given time
func StartOfDay(t time.Time) time.Time {
	local := t.In(Paris)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, Paris)
}

// EndOfDay returns 23:59:59.999999999 Paris time for the given time
func EndOfDay(t time.Time) time.Time {
	local := t.In(Paris)
	return time.Date(local.Year(), local.Month(), local.Day(), 23, 59, 59, 999999999, Paris)
}

// StartOfMonth returns the first day of the month at 00:00:00 Paris time
func StartOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, Paris)
}

// EndOfMonth returns the last day of the month at 23:59:59 Paris time
func EndOfMonth(year int, month time.Month) time.Time {
	return StartOfMonth(year, month).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// IsWorkingDay reports whether t falls on Monday through Friday
func IsWorkingDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// WorkingDaysOfYear returns every Monday-Friday date of the year in order,
// at midnight Paris time.
func WorkingDaysOfYear(year int) []time.Time {
	days := make([]time.Time, 0, 262)
	d := time.Date(year, time.January, 1, 0, 0, 0, 0, Paris)
	for d.Year() == year {
		if IsWorkingDay(d) {
			days = append(days, d)
		}
		d = d.AddDate(0, 0, 1)
	}
	return days
}

// Common layouts
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04"
	DateTimeLayout = "2006-01-02 15:04:05"
	DisplayLayout  = "02 Jan 2006, 15:04"
)
