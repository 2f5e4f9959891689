package schedule

import (
	"fmt"
	"time"
)

const (
	// DefaultTimezoneOffset is UTC+3, used when a user has no offset recorded.
	DefaultTimezoneOffset = 180

	MinTimezoneOffset = -12 * 60
	MaxTimezoneOffset = 14 * 60
)

// ValidOffset reports whether offsetMinutes is a real-world UTC offset.
func ValidOffset(offsetMinutes int) bool {
	return offsetMinutes >= MinTimezoneOffset && offsetMinutes <= MaxTimezoneOffset
}

// NormalizeOffset returns the offset to use for a stored value.
// A nil offset silently becomes the default. An out-of-range offset also
// becomes the default, but ErrInvalidOffset is returned so callers can flag it.
func NormalizeOffset(offset *int) (int, error) {
	if offset == nil {
		return DefaultTimezoneOffset, nil
	}
	if !ValidOffset(*offset) {
		return DefaultTimezoneOffset, fmt.Errorf("%w: %d minutes", ErrInvalidOffset, *offset)
	}
	return *offset, nil
}

// LocalDate returns the calendar date of instant as seen by a user whose
// local time is UTC plus offsetMinutes.
func LocalDate(instant time.Time, offsetMinutes int) Date {
	return DateOf(instant.UTC().Add(time.Duration(offsetMinutes) * time.Minute))
}
