package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date with no time component. Tasks carry due dates
// as dates, never timestamps, so the JSON form is always "YYYY-MM-DD".
type Date struct {
	t time.Time
}

// NewDate builds a Date from year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a timestamp to its calendar date in UTC.
func DateOf(t time.Time) Date {
	t = t.UTC()
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate accepts either a plain date or an RFC 3339 timestamp, which
// clients sometimes send for date fields, and keeps the date part.
func ParseDate(value string) (Date, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Date{}, fmt.Errorf("empty date")
	}
	if t, err := time.Parse(dateLayout, trimmed); err == nil {
		return DateOf(t), nil
	}
	t, err := time.Parse(time.RFC3339, trimmed)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q", trimmed)
	}
	return DateOf(t), nil
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Time returns the date as a UTC midnight timestamp.
func (d Date) Time() time.Time {
	return d.t
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.t.Format(dateLayout)
}

// Equal reports whether two dates fall on the same day.
func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// MarshalJSON encodes the date as a quoted YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a quoted date or RFC 3339 string.
func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
