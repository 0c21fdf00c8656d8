package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		year  int
		month time.Month
		day   int
	}{
		{"rfc3339", `"2024-06-10T08:30:00Z"`, 2024, time.June, 10},
		{"plain date", `"2024-06-10"`, 2024, time.June, 10},
		{"triple", `[2024, 6, 10]`, 2024, time.June, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			if err := json.Unmarshal([]byte(tt.input), &d); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.input, err)
			}
			y, m, day := d.Date()
			if tt.name == "rfc3339" {
				// Timestamps keep their own zone; compare in UTC.
				y, m, day = d.UTC().Date()
			}
			if y != tt.year || m != tt.month || day != tt.day {
				t.Errorf("got %04d-%02d-%02d, want %04d-%02d-%02d",
					y, m, day, tt.year, tt.month, tt.day)
			}
		})
	}
}

func TestDateUnmarshalNoon(t *testing.T) {
	// Non-timestamp forms land at local noon so the day survives
	// marshalling in any timezone.
	for _, input := range []string{`"2024-06-10"`, `[2024, 6, 10]`} {
		var d Date
		if err := json.Unmarshal([]byte(input), &d); err != nil {
			t.Fatalf("unmarshal %s: %v", input, err)
		}
		if d.Hour() != 12 {
			t.Errorf("%s: hour = %d, want 12", input, d.Hour())
		}
	}
}

func TestDateUnmarshalRejectsGarbage(t *testing.T) {
	for _, input := range []string{`"next tuesday"`, `[2024, 6]`, `true`} {
		var d Date
		if err := json.Unmarshal([]byte(input), &d); err == nil {
			t.Errorf("unmarshal %s: expected error", input)
		}
	}
}

func TestDateMarshal(t *testing.T) {
	d := NewDate(2024, time.June, 10)
	out, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `"2024-06-10"` {
		t.Errorf("marshal = %s, want \"2024-06-10\"", out)
	}
}

func TestSameDay(t *testing.T) {
	d := NewDate(2024, time.June, 10)
	if !d.SameDay(time.Date(2024, time.June, 10, 23, 59, 0, 0, time.Local)) {
		t.Error("same calendar day should match regardless of time")
	}
	if d.SameDay(time.Date(2024, time.June, 11, 0, 0, 0, 0, time.Local)) {
		t.Error("next day should not match")
	}
}
