// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"fmt"
	"strings"
	"time"
)

// Date is a calendar date that marshals as "2006-01-02".
// Renewal dates and usage dates are tracked at day granularity.
type Date struct {
	time.Time
}

// NewDate wraps a time.Time as a Date.
func NewDate(t time.Time) Date {
	return Date{Time: t}
}

// MarshalJSON emits the date-only form.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(time.DateOnly) + `"`), nil
}

// UnmarshalJSON accepts both "2006-01-02" and RFC 3339 timestamps.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}

	if t, err := time.Parse(time.DateOnly, s); err == nil {
		d.Time = t
		return nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	d.Time = t
	return nil
}
