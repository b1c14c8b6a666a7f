package types

import (
	"errors"
	"fmt"
	"time"
)

const timeLayout = "15:04"

var (
	// ErrInvalidTimeString is returned for values not matching "HH:MM"
	ErrInvalidTimeString = errors.New("invalid time string format")
)

// TimeString represents a time of day as a zero-padded "HH:MM" string.
// The fixed-width format makes lexicographic comparison equivalent to
// chronological comparison.
type TimeString string

// NewTimeString creates a TimeString from a time.Time, keeping only HH:MM
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString parses and validates an "HH:MM" string
func NewTimeStringFromString(s string) (TimeString, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return TimeString(t.Format(timeLayout)), nil
}

// Validate checks that the value is a well-formed "HH:MM" string
func (ts TimeString) Validate() error {
	if _, err := time.Parse(timeLayout, string(ts)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(ts))
	}
	return nil
}

// IsZero returns true for the empty value
func (ts TimeString) IsZero() bool {
	return ts == ""
}

// IsBefore reports whether ts is strictly earlier than other
func (ts TimeString) IsBefore(other TimeString) bool {
	return string(ts) < string(other)
}

// IsAfter reports whether ts is strictly later than other
func (ts TimeString) IsAfter(other TimeString) bool {
	return string(ts) > string(other)
}

// Minutes returns the time of day as minutes since midnight
func (ts TimeString) Minutes() (int, error) {
	t, err := time.Parse(timeLayout, string(ts))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(ts))
	}
	return t.Hour()*60 + t.Minute(), nil
}

// AddMinutes returns a new TimeString shifted forward by the given number
// of minutes. The result wraps around midnight.
func (ts TimeString) AddMinutes(minutes int) (TimeString, error) {
	t, err := time.Parse(timeLayout, string(ts))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, string(ts))
	}
	return TimeString(t.Add(time.Duration(minutes) * time.Minute).Format(timeLayout)), nil
}

func (ts TimeString) String() string {
	return string(ts)
}
