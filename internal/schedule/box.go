// Package schedule decides on which local calendar days a review box is due.
//
// Everything in this package is pure: results depend only on the arguments,
// so functions are safe to call from any number of goroutines.
package schedule

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidBoxType is reported for a box identifier outside the enumeration.
	ErrInvalidBoxType = errors.New("invalid box type")
	// ErrInvalidOffset is reported for a timezone offset outside the supported range.
	ErrInvalidOffset = errors.New("invalid timezone offset")
)

// BoxType is a review interval tier.
type BoxType string

const (
	BoxDaily       BoxType = "daily"
	BoxEvery2Days  BoxType = "every_2_days"
	BoxEvery4Days  BoxType = "every_4_days"
	BoxWeekly      BoxType = "weekly"
	BoxEvery2Weeks BoxType = "every_2_weeks"
	BoxLearned     BoxType = "learned"
)

// BoxTypes lists every box in order of increasing interval.
var BoxTypes = []BoxType{
	BoxDaily,
	BoxEvery2Days,
	BoxEvery4Days,
	BoxWeekly,
	BoxEvery2Weeks,
	BoxLearned,
}

var intervals = map[BoxType]int{
	BoxDaily:       1,
	BoxEvery2Days:  2,
	BoxEvery4Days:  4,
	BoxWeekly:      7,
	BoxEvery2Weeks: 14,
}

// ParseBoxType validates a box identifier.
func ParseBoxType(s string) (BoxType, error) {
	box := BoxType(s)
	if !box.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidBoxType, s)
	}
	return box, nil
}

func (b BoxType) Valid() bool {
	if b == BoxLearned {
		return true
	}
	_, ok := intervals[b]
	return ok
}

// IntervalDays returns the number of days between reviews.
// It returns 0 for learned and unknown boxes.
func (b BoxType) IntervalDays() int {
	return intervals[b]
}

func (b BoxType) String() string {
	return string(b)
}
