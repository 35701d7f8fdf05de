// Package timeutil converts between the "HH:MM" clock strings used at
// the API and storage boundaries and the integer minute-of-day offsets
// used everywhere inside the service.
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseMinuteOfDay parses "HH:MM" (24h) into a minute-of-day offset.
// "24:00" is accepted as end-of-day for closing times.
func ParseMinuteOfDay(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", s, err)
	}
	if m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q: minute out of range", s)
	}
	if h < 0 || h > 24 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("invalid time %q: hour out of range", s)
	}
	return h*60 + m, nil
}

// FormatMinuteOfDay renders a minute-of-day offset as "HH:MM".
func FormatMinuteOfDay(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

// ParseWeekday maps a lowercase english day name onto time.Weekday.
func ParseWeekday(s string) (time.Weekday, error) {
	switch strings.ToLower(s) {
	case "sunday":
		return time.Sunday, nil
	case "monday":
		return time.Monday, nil
	case "tuesday":
		return time.Tuesday, nil
	case "wednesday":
		return time.Wednesday, nil
	case "thursday":
		return time.Thursday, nil
	case "friday":
		return time.Friday, nil
	case "saturday":
		return time.Saturday, nil
	}
	return 0, fmt.Errorf("invalid weekday %q", s)
}

// DayStart truncates a timestamp to midnight in its own location.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
