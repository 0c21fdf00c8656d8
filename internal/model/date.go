package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Date is a calendar date as the backend sends it: either an RFC3339
// timestamp, a "YYYY-MM-DD" string, or a [year, month, day] triple.
// The latter two forms are pinned to local noon so that marshalling
// round-trips never shift the day across timezones.
type Date struct {
	time.Time
}

// NewDate returns a Date at local noon of the given day.
func NewDate(year int, month time.Month, day int) *Date {
	return &Date{time.Date(year, month, day, 12, 0, 0, 0, time.Local)}
}

// DateOf truncates t to its calendar day, at local noon.
func DateOf(t time.Time) *Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// SameDay reports whether both dates fall on the same calendar day.
func (d *Date) SameDay(other time.Time) bool {
	y1, m1, day1 := d.Date()
	y2, m2, day2 := other.Date()
	return y1 == y2 && m1 == m2 && day1 == day2
}

// UnmarshalJSON accepts the three wire forms for dates.
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			d.Time = t
			return nil
		}
		if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
			// Pin to noon, not midnight
			d.Time = t.Add(12 * time.Hour)
			return nil
		}
		return fmt.Errorf("unrecognized date %q", s)
	}

	var parts []int
	if err := json.Unmarshal(data, &parts); err == nil {
		if len(parts) != 3 {
			return fmt.Errorf("date triple must have 3 elements, got %d", len(parts))
		}
		d.Time = time.Date(parts[0], time.Month(parts[1]), parts[2], 12, 0, 0, 0, time.Local)
		return nil
	}

	return fmt.Errorf("unrecognized date value %s", string(data))
}

// MarshalJSON writes the date back as "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format("2006-01-02"))
}
