package domain

import (
	"fmt"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock time without date or zone.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// NewTimeOfDay validates hour and minute.
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("time %02d:%02d out of range", hour, minute)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// ParseTimeOfDay accepts HH:MM or HH:MM:SS (seconds are dropped).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04", "15:04:05", "3:04 PM"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
		}
	}
	return TimeOfDay{}, fmt.Errorf("invalid time %q (use HH:MM)", s)
}

// TimeOfDayFromFraction converts a spreadsheet day fraction (0.5 = noon).
func TimeOfDayFromFraction(f float64) (TimeOfDay, error) {
	if f < 0 || f >= 1 {
		return TimeOfDay{}, fmt.Errorf("day fraction %v out of range", f)
	}
	mins := int(f*24*60 + 0.5)
	if mins >= 24*60 {
		mins = 24*60 - 1
	}
	return TimeOfDay{Hour: mins / 60, Minute: mins % 60}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Minutes returns minutes since midnight, used for ordering.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}
