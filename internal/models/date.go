package models

import (
	"fmt"
	"time"
)

// Date is a calendar date with no time component. Source files carry
// DD/MM/YYYY; standardized output uses ISO 8601. Both forms parse.
type Date struct {
	time.Time
}

const (
	dateFormatSource = "02/01/2006"
	dateFormatISO    = "2006-01-02"
)

// ParseDate parses a date in either the source (DD/MM/YYYY) or ISO
// (YYYY-MM-DD) form.
func ParseDate(s string) (Date, error) {
	for _, layout := range []string{dateFormatISO, dateFormatSource} {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{Time: t}, nil
		}
	}
	return Date{}, fmt.Errorf("unrecognized date %q (want %s or %s)", s, dateFormatSource, dateFormatISO)
}

// NewDate builds a Date from its components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DaysUntil returns the number of whole calendar days from d to other.
// Negative when other is earlier than d.
func (d Date) DaysUntil(other Date) int {
	return int(other.Time.Sub(d.Time).Hours() / 24)
}

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// MonthKey returns the YYYY-MM bucket the date falls in.
func (d Date) MonthKey() string {
	return d.Time.Format("2006-01")
}

func (d Date) String() string {
	return d.Time.Format(dateFormatISO)
}

// MarshalCSV implements gocsv marshalling as an ISO date.
func (d Date) MarshalCSV() (string, error) {
	return d.String(), nil
}

// UnmarshalCSV implements gocsv unmarshalling from either accepted form.
func (d *Date) UnmarshalCSV(s string) error {
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
