package domain

import (
	"fmt"
	"time"
)

// DateLayout is the storage format for calendar dates.
const DateLayout = "2006-01-02"

// TripRange is the inclusive window of days plans may be scheduled in.
type TripRange struct {
	Start time.Time
	End   time.Time
}

// NewTripRange normalises start and end to midnight UTC and checks ordering.
func NewTripRange(start, end time.Time) (TripRange, error) {
	r := TripRange{Start: DateOf(start), End: DateOf(end)}
	if r.End.Before(r.Start) {
		return TripRange{}, fmt.Errorf("trip end %s is before start %s",
			r.End.Format(DateLayout), r.Start.Format(DateLayout))
	}
	return r, nil
}

// ParseTripRange parses two YYYY-MM-DD strings.
func ParseTripRange(start, end string) (TripRange, error) {
	s, err := ParseDate(start)
	if err != nil {
		return TripRange{}, fmt.Errorf("parsing trip start: %w", err)
	}
	e, err := ParseDate(end)
	if err != nil {
		return TripRange{}, fmt.Errorf("parsing trip end: %w", err)
	}
	return NewTripRange(s, e)
}

// Contains reports whether d falls on a day inside the range.
func (r TripRange) Contains(d time.Time) bool {
	day := DateOf(d)
	return !day.Before(r.Start) && !day.After(r.End)
}

// Len is the number of days in the range, both ends included.
func (r TripRange) Len() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// Days lists every day of the range in order.
func (r TripRange) Days() []time.Time {
	days := make([]time.Time, 0, r.Len())
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// DayNumber returns the 1-based position of d within the trip.
func (r TripRange) DayNumber(d time.Time) int {
	return int(DateOf(d).Sub(r.Start).Hours()/24) + 1
}

// DateOf truncates t to its calendar day at midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
