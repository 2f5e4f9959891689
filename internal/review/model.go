// Package review provides the daily review domain models, the storage
// interface and the service that ties them to the due-date schedule.
package review

import (
	"errors"
	"time"

	"github.com/at-ishikawa/itera/internal/schedule"
)

var (
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateReview is returned by a store when a review row already exists for (user, date).
	ErrDuplicateReview = errors.New("daily review already recorded")
	// ErrStaleReviewRecord is returned when a repair request cannot apply to the stored rows.
	ErrStaleReviewRecord = errors.New("stale review record")
)

// User is a learner and the data needed to place them in time.
type User struct {
	ID             int64     `db:"id" yaml:"id"`
	CreatedAt      time.Time `db:"created_at" yaml:"created_at"`
	TimezoneOffset *int      `db:"timezone_offset" yaml:"timezone_offset,omitempty"`
}

// NoteCount is the number of notes a user has in one box.
type NoteCount struct {
	BoxType schedule.BoxType `db:"box_type" yaml:"box_type"`
	Count   int              `db:"count" yaml:"count"`
}

// DailyReview marks that a user completed the review session of one local date.
type DailyReview struct {
	ID         int64         `db:"id" yaml:"id"`
	UserID     int64         `db:"user_id" yaml:"user_id"`
	ReviewDate schedule.Date `db:"review_date" yaml:"review_date"`
	CreatedAt  time.Time     `db:"created_at" yaml:"created_at"`
}

// RepairAction is what a repair did, or would do in a dry run.
type RepairAction string

const (
	RepairActionNone    RepairAction = "none"
	RepairActionUpdated RepairAction = "updated"
	RepairActionMerged  RepairAction = "merged"
)

// RepairLog is the audit record of one corrective repair.
type RepairLog struct {
	ID          int64         `db:"id" yaml:"id"`
	UserID      int64         `db:"user_id" yaml:"user_id"`
	OldDate     schedule.Date `db:"old_date" yaml:"old_date"`
	CorrectDate schedule.Date `db:"correct_date" yaml:"correct_date"`
	Action      RepairAction  `db:"action" yaml:"action"`
	Reason      string        `db:"reason" yaml:"reason"`
	Operator    string        `db:"operator" yaml:"operator"`
	CreatedAt   time.Time     `db:"created_at" yaml:"created_at"`
}

// CountsByBox converts grouped counts to a map, summing repeated boxes.
func CountsByBox(counts []NoteCount) map[schedule.BoxType]int {
	m := make(map[schedule.BoxType]int, len(counts))
	for _, c := range counts {
		m[c.BoxType] += c.Count
	}
	return m
}

// HasReviewedToday reports whether rows contain a review of userID on localToday.
func HasReviewedToday(userID int64, rows []DailyReview, localToday schedule.Date) bool {
	for _, row := range rows {
		if row.UserID == userID && row.ReviewDate == localToday {
			return true
		}
	}
	return false
}
