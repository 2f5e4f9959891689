package schedule

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// Anchor selects which calendar date of the registration instant the
// recurring schedule counts from.
type Anchor string

const (
	// AnchorUTC counts from the UTC calendar date of the registration instant,
	// ignoring the user's offset.
	AnchorUTC Anchor = "utc"
	// AnchorLocal counts from the registration date in the user's timezone.
	AnchorLocal Anchor = "local"
)

func ParseAnchor(s string) (Anchor, error) {
	switch a := Anchor(s); a {
	case AnchorUTC, AnchorLocal:
		return a, nil
	case "":
		return AnchorUTC, nil
	default:
		return "", fmt.Errorf("unknown anchor %q: expected %q or %q", s, AnchorUTC, AnchorLocal)
	}
}

// Schedule evaluates box due dates under one anchor policy.
// The zero value uses AnchorUTC.
type Schedule struct {
	Anchor Anchor
}

// Default is the schedule used by the package-level helpers.
var Default = Schedule{Anchor: AnchorUTC}

// IsDue reports whether box is due on the local date of asOf using the default schedule.
func IsDue(box BoxType, registeredAt time.Time, offsetMinutes int, asOf time.Time) bool {
	return Default.IsDue(box, registeredAt, offsetMinutes, asOf)
}

// TotalDueCount sums due note counts using the default schedule.
func TotalDueCount(counts map[BoxType]int, registeredAt time.Time, offsetMinutes int, asOf time.Time) (int, error) {
	return Default.TotalDueCount(counts, registeredAt, offsetMinutes, asOf)
}

// RegistrationDate returns the date the schedule of a user counts from.
func (s Schedule) RegistrationDate(registeredAt time.Time, offsetMinutes int) Date {
	if s.Anchor == AnchorLocal {
		return LocalDate(registeredAt, offsetMinutes)
	}
	return DateOf(registeredAt)
}

// FirstDue returns the first date an interval box becomes due.
func (s Schedule) FirstDue(box BoxType, registeredAt time.Time, offsetMinutes int) (Date, bool) {
	interval := box.IntervalDays()
	if interval == 0 {
		return Date{}, false
	}
	if box == BoxDaily {
		return s.RegistrationDate(registeredAt, offsetMinutes), true
	}
	return s.RegistrationDate(registeredAt, offsetMinutes).AddDays(interval), true
}

// Due reports whether box is due on the local date of asOf.
// Unknown boxes are never due and return ErrInvalidBoxType.
func (s Schedule) Due(box BoxType, registeredAt time.Time, offsetMinutes int, asOf time.Time) (bool, error) {
	switch box {
	case BoxDaily:
		return true, nil
	case BoxLearned:
		return false, nil
	}
	if !box.Valid() {
		return false, fmt.Errorf("%w: %q", ErrInvalidBoxType, box)
	}

	today := LocalDate(asOf, offsetMinutes)
	firstDue, _ := s.FirstDue(box, registeredAt, offsetMinutes)
	if today.Before(firstDue) {
		return false, nil
	}
	return today.DaysSince(firstDue)%box.IntervalDays() == 0, nil
}

// IsDue is Due with unknown boxes treated as not due.
func (s Schedule) IsDue(box BoxType, registeredAt time.Time, offsetMinutes int, asOf time.Time) bool {
	due, _ := s.Due(box, registeredAt, offsetMinutes, asOf)
	return due
}

// NextDue returns the earliest local date on or after the local date of asOf
// on which box is due. Learned and unknown boxes have no next date.
func (s Schedule) NextDue(box BoxType, registeredAt time.Time, offsetMinutes int, asOf time.Time) (Date, bool) {
	today := LocalDate(asOf, offsetMinutes)
	if box == BoxDaily {
		return today, true
	}
	firstDue, ok := s.FirstDue(box, registeredAt, offsetMinutes)
	if !ok {
		return Date{}, false
	}
	if !today.After(firstDue) {
		return firstDue, true
	}

	interval := box.IntervalDays()
	remainder := today.DaysSince(firstDue) % interval
	if remainder == 0 {
		return today, true
	}
	return today.AddDays(interval - remainder), true
}

// TotalDueCount sums the note counts of every box due on the local date of asOf.
// Learned notes never count. Unknown boxes are skipped; the returned total is
// still complete for the valid boxes, and the error lists what was skipped.
func (s Schedule) TotalDueCount(counts map[BoxType]int, registeredAt time.Time, offsetMinutes int, asOf time.Time) (int, error) {
	boxes := make([]BoxType, 0, len(counts))
	for box := range counts {
		boxes = append(boxes, box)
	}
	sort.Slice(boxes, func(i, j int) bool { return boxes[i] < boxes[j] })

	total := 0
	var errs []error
	for _, box := range boxes {
		count := counts[box]
		if count <= 0 || box == BoxLearned {
			continue
		}
		due, err := s.Due(box, registeredAt, offsetMinutes, asOf)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if due {
			total += count
		}
	}
	return total, errors.Join(errs...)
}
