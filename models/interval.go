package models

import (
	"fmt"
	"time"
)

// Interval is a half-open time interval [Start, End).
type Interval struct {
	Start time.Time `bson:"start" json:"start"`
	End   time.Time `bson:"end" json:"end"`
}

// Overlaps reports whether two half-open intervals intersect.
// Touching intervals (a.End == b.Start) do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Valid reports whether Start is strictly before End.
func (iv Interval) Valid() bool {
	return iv.Start.Before(iv.End)
}

// ClockWindow is a wall-clock window ("HH:MM" pair) with no date attached.
// Both boundaries are zero-padded 24h strings, so they compare lexicographically.
type ClockWindow struct {
	StartTime string `bson:"start_time" json:"startTime"`
	EndTime   string `bson:"end_time" json:"endTime"`
}

// On materializes the window onto a calendar date, producing a concrete interval
// in the date's location.
func (w ClockWindow) On(date time.Time) Interval {
	return Interval{
		Start: clockOnDate(w.StartTime, date),
		End:   clockOnDate(w.EndTime, date),
	}
}

// Validate checks both boundaries are well-formed clock times and ordered.
func (w ClockWindow) Validate() error {
	if err := ValidateClockTime(w.StartTime); err != nil {
		return err
	}
	if err := ValidateClockTime(w.EndTime); err != nil {
		return err
	}
	if w.StartTime >= w.EndTime {
		return fmt.Errorf("start time %q must be before end time %q", w.StartTime, w.EndTime)
	}
	return nil
}

// ValidateClockTime checks s is a zero-padded 24h "HH:MM" string.
func ValidateClockTime(s string) error {
	if len(s) != 5 || s[2] != ':' {
		return fmt.Errorf("invalid clock time %q: want \"HH:MM\"", s)
	}
	h, m, ok := parseClockDigits(s)
	if !ok || h > 23 || m > 59 {
		return fmt.Errorf("invalid clock time %q: want \"HH:MM\"", s)
	}
	return nil
}

// FormatClock renders an instant's wall-clock time as "HH:MM".
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}

// DateOnly truncates an instant to midnight of its calendar day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func clockOnDate(clock string, date time.Time) time.Time {
	h, m, ok := parseClockDigits(clock)
	if !ok {
		return DateOnly(date)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, date.Location())
}

func parseClockDigits(s string) (hour, minute int, ok bool) {
	if len(s) != 5 || s[2] != ':' {
		return 0, 0, false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, 0, false
		}
	}
	hour = int(s[0]-'0')*10 + int(s[1]-'0')
	minute = int(s[3]-'0')*10 + int(s[4]-'0')
	return hour, minute, true
}
