package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go"

	"github.com/at-ishikawa/itera/internal/schedule"
)

const (
	DefaultRetryAttempts = 3
	DefaultRetryDelay    = 50 * time.Millisecond
)

// BoxStatus is the due state of one box for a user's local today.
type BoxStatus struct {
	BoxType schedule.BoxType `yaml:"box_type"`
	Count   int              `yaml:"count"`
	Due     bool             `yaml:"due"`
	NextDue *schedule.Date   `yaml:"next_due,omitempty"`
}

// Status is the review state of a user on their local today.
type Status struct {
	UserID               int64         `yaml:"user_id"`
	LocalDate            schedule.Date `yaml:"local_date"`
	TimezoneOffset       int           `yaml:"timezone_offset"`
	TotalDue             int           `yaml:"total_due"`
	AlreadyReviewedToday bool          `yaml:"already_reviewed_today"`
	Boxes                []BoxStatus   `yaml:"boxes"`
}

// CompletionResult reports whether a completion created a review row.
type CompletionResult struct {
	UserID     int64         `yaml:"user_id"`
	ReviewDate schedule.Date `yaml:"review_date"`
	Recorded   bool          `yaml:"recorded"`
}

// RepairRequest describes a manual correction of a review row written under a wrong local date.
type RepairRequest struct {
	UserID      int64
	OldDate     schedule.Date
	CorrectDate schedule.Date
	Reason      string
	Operator    string
	DryRun      bool
}

// RepairResult reports what a repair did.
type RepairResult struct {
	UserID      int64         `yaml:"user_id"`
	OldDate     schedule.Date `yaml:"old_date"`
	CorrectDate schedule.Date `yaml:"correct_date"`
	Action      RepairAction  `yaml:"action"`
	DryRun      bool          `yaml:"dry_run"`
	AuditID     int64         `yaml:"audit_id,omitempty"`
}

// ServiceOption customizes a Service.
type ServiceOption func(*Service)

// WithClock overrides the source of the current instant.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// WithLogger sets the logger used for anomalies and repairs.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithRetry configures how often transactions that lost a race are retried.
func WithRetry(attempts uint, delay time.Duration) ServiceOption {
	return func(s *Service) {
		if attempts == 0 {
			attempts = 1
		}
		s.retryAttempts = attempts
		s.retryDelay = delay
	}
}

// WithDefaultTimezoneOffset sets the offset for users without a valid one.
func WithDefaultTimezoneOffset(offsetMinutes int) ServiceOption {
	return func(s *Service) {
		s.defaultOffset = offsetMinutes
	}
}

// Service answers "what is due today" for a user and records completed sessions.
// It holds no mutable state and is safe for concurrent use.
type Service struct {
	store         Store
	schedule      schedule.Schedule
	logger        *slog.Logger
	now           func() time.Time
	retryAttempts uint
	retryDelay    time.Duration
	defaultOffset int
}

// NewService creates a new Service.
func NewService(store Store, sched schedule.Schedule, opts ...ServiceOption) *Service {
	s := &Service{
		store:         store,
		schedule:      sched,
		logger:        slog.Default(),
		now:           time.Now,
		retryAttempts: DefaultRetryAttempts,
		retryDelay:    DefaultRetryDelay,
		defaultOffset: schedule.DefaultTimezoneOffset,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Status computes the due notes and the review state of a user for their local today.
func (s *Service) Status(ctx context.Context, userID int64) (*Status, error) {
	now := s.now()

	user, err := s.getUser(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}
	offset := s.timezoneOffset(user)
	today := schedule.LocalDate(now, offset)

	counts, err := s.store.GetNoteCountsByBox(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("store.GetNoteCountsByBox() > %w", err)
	}
	countsByBox := CountsByBox(counts)

	total, err := s.schedule.TotalDueCount(countsByBox, user.CreatedAt, offset, now)
	if err != nil {
		s.logger.WarnContext(ctx, "skipped notes with an unknown box type",
			"user_id", userID,
			"error", err)
	}

	row, err := s.store.GetReviewRow(ctx, userID, today)
	if err != nil {
		return nil, fmt.Errorf("store.GetReviewRow() > %w", err)
	}

	status := &Status{
		UserID:               userID,
		LocalDate:            today,
		TimezoneOffset:       offset,
		TotalDue:             total,
		AlreadyReviewedToday: row != nil,
	}
	for _, box := range schedule.BoxTypes {
		count, ok := countsByBox[box]
		if !ok {
			continue
		}
		bs := BoxStatus{
			BoxType: box,
			Count:   count,
			Due:     s.schedule.IsDue(box, user.CreatedAt, offset, now),
		}
		if next, ok := s.schedule.NextDue(box, user.CreatedAt, offset, now); ok {
			bs.NextDue = &next
		}
		status.Boxes = append(status.Boxes, bs)
	}
	return status, nil
}

// Complete records that a user finished the review session of their local today.
// Completing the same local date twice leaves one row and reports Recorded=false.
func (s *Service) Complete(ctx context.Context, userID int64) (*CompletionResult, error) {
	now := s.now()

	var result *CompletionResult
	err := s.withRetry(ctx, func() error {
		return s.store.RunInTx(ctx, func(ctx context.Context, tx Store) error {
			user, err := s.getUser(ctx, tx, userID)
			if err != nil {
				return err
			}
			today := schedule.LocalDate(now, s.timezoneOffset(user))
			result = &CompletionResult{UserID: userID, ReviewDate: today}

			existing, err := tx.GetReviewRow(ctx, userID, today)
			if err != nil {
				return fmt.Errorf("tx.GetReviewRow() > %w", err)
			}
			if existing != nil {
				return nil
			}

			inserted, err := tx.UpsertReviewRow(ctx, userID, today)
			if errors.Is(err, ErrDuplicateReview) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("tx.UpsertReviewRow() > %w", err)
			}
			result.Recorded = inserted
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	if !result.Recorded {
		s.logger.InfoContext(ctx, "daily review already recorded",
			"user_id", userID,
			"review_date", result.ReviewDate.String())
	}
	return result, nil
}

// Repair moves a review row stamped with a wrong local date to the correct one.
// When a row for the correct date already exists the stale row is deleted instead.
// Every applied repair leaves an audit row.
func (s *Service) Repair(ctx context.Context, req RepairRequest) (*RepairResult, error) {
	if req.OldDate.IsZero() || req.CorrectDate.IsZero() {
		return nil, fmt.Errorf("%w: old and correct dates are required", ErrStaleReviewRecord)
	}
	if req.OldDate == req.CorrectDate {
		return nil, fmt.Errorf("%w: old and correct dates are both %s", ErrStaleReviewRecord, req.OldDate)
	}

	var result *RepairResult
	err := s.withRetry(ctx, func() error {
		return s.store.RunInTx(ctx, func(ctx context.Context, tx Store) error {
			if _, err := s.getUser(ctx, tx, req.UserID); err != nil {
				return err
			}
			result = &RepairResult{
				UserID:      req.UserID,
				OldDate:     req.OldDate,
				CorrectDate: req.CorrectDate,
				Action:      RepairActionNone,
				DryRun:      req.DryRun,
			}

			stale, err := tx.GetReviewRow(ctx, req.UserID, req.OldDate)
			if err != nil {
				return fmt.Errorf("tx.GetReviewRow(old) > %w", err)
			}
			if stale == nil {
				return nil
			}
			current, err := tx.GetReviewRow(ctx, req.UserID, req.CorrectDate)
			if err != nil {
				return fmt.Errorf("tx.GetReviewRow(correct) > %w", err)
			}

			result.Action = RepairActionUpdated
			if current != nil {
				result.Action = RepairActionMerged
			}
			if req.DryRun {
				return nil
			}

			switch result.Action {
			case RepairActionMerged:
				if _, err := tx.DeleteReviewRow(ctx, req.UserID, req.OldDate); err != nil {
					return fmt.Errorf("tx.DeleteReviewRow() > %w", err)
				}
			case RepairActionUpdated:
				if _, err := tx.UpdateReviewDate(ctx, req.UserID, req.OldDate, req.CorrectDate); err != nil {
					return fmt.Errorf("tx.UpdateReviewDate() > %w", err)
				}
			}

			audit := &RepairLog{
				UserID:      req.UserID,
				OldDate:     req.OldDate,
				CorrectDate: req.CorrectDate,
				Action:      result.Action,
				Reason:      req.Reason,
				Operator:    req.Operator,
			}
			if err := tx.RecordRepair(ctx, audit); err != nil {
				return fmt.Errorf("tx.RecordRepair() > %w", err)
			}
			result.AuditID = audit.ID
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	attrs := []any{
		"user_id", req.UserID,
		"old_date", req.OldDate.String(),
		"correct_date", req.CorrectDate.String(),
		"action", string(result.Action),
		"operator", req.Operator,
	}
	switch {
	case result.Action == RepairActionNone:
		s.logger.DebugContext(ctx, "no daily review to repair", attrs...)
	case req.DryRun:
		s.logger.InfoContext(ctx, "planned daily review repair, nothing written", attrs...)
	default:
		s.logger.InfoContext(ctx, "repaired daily review date", append(attrs, "audit_id", result.AuditID)...)
	}
	return result, nil
}

// History returns the user's review dates, oldest first, and their local today.
func (s *Service) History(ctx context.Context, userID int64) ([]schedule.Date, schedule.Date, error) {
	user, err := s.getUser(ctx, s.store, userID)
	if err != nil {
		return nil, schedule.Date{}, err
	}
	today := schedule.LocalDate(s.now(), s.timezoneOffset(user))

	rows, err := s.store.ListReviewRows(ctx, userID)
	if err != nil {
		return nil, schedule.Date{}, fmt.Errorf("store.ListReviewRows() > %w", err)
	}
	dates := make([]schedule.Date, 0, len(rows))
	for _, row := range rows {
		dates = append(dates, row.ReviewDate)
	}
	return dates, today, nil
}

func (s *Service) getUser(ctx context.Context, store Store, userID int64) (*User, error) {
	user, err := store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("store.GetUser() > %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", userID, ErrUserNotFound)
	}
	return user, nil
}

func (s *Service) timezoneOffset(user *User) int {
	if user.TimezoneOffset == nil {
		return s.defaultOffset
	}
	offset, err := schedule.NormalizeOffset(user.TimezoneOffset)
	if err != nil {
		s.logger.Warn("falling back to the default timezone offset",
			"user_id", user.ID,
			"default_offset", s.defaultOffset,
			"error", err)
		return s.defaultOffset
	}
	return offset
}

func (s *Service) withRetry(ctx context.Context, fn func() error) error {
	return retry.Do(
		func() error {
			err := fn()
			if err != nil && !IsRetryableError(err) {
				return retry.Unrecoverable(err)
			}
			return err
		},
		retry.Context(ctx),
		retry.Attempts(s.retryAttempts),
		retry.Delay(s.retryDelay),
		retry.LastErrorOnly(true),
	)
}
