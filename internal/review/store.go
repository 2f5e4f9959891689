package review

import (
	"context"

	"github.com/at-ishikawa/itera/internal/schedule"
)

//go:generate mockgen -source=store.go -destination=../mocks/review/mock_store.go -package=mock_review

// Store is the persistence the review service depends on.
// Finders return nil without an error when nothing matches.
type Store interface {
	GetUser(ctx context.Context, userID int64) (*User, error)
	GetNoteCountsByBox(ctx context.Context, userID int64) ([]NoteCount, error)
	GetReviewRow(ctx context.Context, userID int64, reviewDate schedule.Date) (*DailyReview, error)
	ListReviewRows(ctx context.Context, userID int64) ([]DailyReview, error)
	// UpsertReviewRow inserts a review row. It returns false when the row already existed.
	UpsertReviewRow(ctx context.Context, userID int64, reviewDate schedule.Date) (bool, error)
	UpdateReviewDate(ctx context.Context, userID int64, oldDate, newDate schedule.Date) (int64, error)
	DeleteReviewRow(ctx context.Context, userID int64, reviewDate schedule.Date) (int64, error)
	RecordRepair(ctx context.Context, log *RepairLog) error
	// RunInTx calls fn with a Store bound to a single transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}
