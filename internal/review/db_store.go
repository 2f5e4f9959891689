package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/at-ishikawa/itera/internal/database"
	"github.com/at-ishikawa/itera/internal/schedule"
)

const (
	mysqlDuplicateEntry     = 1062
	mysqlLockWaitTimeout    = 1205
	mysqlDeadlock           = 1213
	pqUniqueViolation       = "23505"
	pqSerializationFailure  = "40001"
	pqDeadlockDetected      = "40P01"
	dailyReviewColumns      = "id, user_id, review_date, created_at"
	insertDailyReviewPrefix = "INSERT INTO daily_reviews (user_id, review_date) VALUES (?, ?)"
)

// DBStore implements Store on MySQL or PostgreSQL through sqlx.
type DBStore struct {
	db *sqlx.DB
	q  sqlx.ExtContext
}

// NewDBStore creates a new DBStore.
func NewDBStore(db *sqlx.DB) *DBStore {
	return &DBStore{db: db, q: db}
}

func (s *DBStore) isPostgres() bool {
	return s.q.DriverName() == database.DriverPostgres
}

// GetUser returns the user, or nil if not found.
func (s *DBStore) GetUser(ctx context.Context, userID int64) (*User, error) {
	var u User
	err := sqlx.GetContext(ctx, s.q, &u,
		s.q.Rebind("SELECT id, created_at, timezone_offset FROM users WHERE id = ?"), userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlx.GetContext(user) > %w", err)
	}
	return &u, nil
}

// GetNoteCountsByBox returns the number of notes per box type, learned included.
func (s *DBStore) GetNoteCountsByBox(ctx context.Context, userID int64) ([]NoteCount, error) {
	var counts []NoteCount
	if err := sqlx.SelectContext(ctx, s.q, &counts,
		s.q.Rebind("SELECT box_type, COUNT(*) AS count FROM notes WHERE user_id = ? GROUP BY box_type ORDER BY box_type"),
		userID); err != nil {
		return nil, fmt.Errorf("sqlx.SelectContext(note counts) > %w", err)
	}
	return counts, nil
}

// GetReviewRow returns the review of a user on a date, or nil if not found.
func (s *DBStore) GetReviewRow(ctx context.Context, userID int64, reviewDate schedule.Date) (*DailyReview, error) {
	var r DailyReview
	err := sqlx.GetContext(ctx, s.q, &r,
		s.q.Rebind("SELECT "+dailyReviewColumns+" FROM daily_reviews WHERE user_id = ? AND review_date = ?"),
		userID, reviewDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlx.GetContext(daily_review) > %w", err)
	}
	return &r, nil
}

// ListReviewRows returns every review of a user, oldest first.
func (s *DBStore) ListReviewRows(ctx context.Context, userID int64) ([]DailyReview, error) {
	var rows []DailyReview
	if err := sqlx.SelectContext(ctx, s.q, &rows,
		s.q.Rebind("SELECT "+dailyReviewColumns+" FROM daily_reviews WHERE user_id = ? ORDER BY review_date"),
		userID); err != nil {
		return nil, fmt.Errorf("sqlx.SelectContext(daily_reviews) > %w", err)
	}
	return rows, nil
}

// UpsertReviewRow inserts a review row, relying on the (user_id, review_date)
// unique key to turn a concurrent duplicate into a no-op.
func (s *DBStore) UpsertReviewRow(ctx context.Context, userID int64, reviewDate schedule.Date) (bool, error) {
	query := insertDailyReviewPrefix + " ON DUPLICATE KEY UPDATE user_id = user_id"
	if s.isPostgres() {
		query = insertDailyReviewPrefix + " ON CONFLICT (user_id, review_date) DO NOTHING"
	}

	result, err := s.q.ExecContext(ctx, s.q.Rebind(query), userID, reviewDate)
	if isDuplicateKeyError(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("q.ExecContext(insert daily_review) > %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("result.RowsAffected() > %w", err)
	}
	return affected == 1, nil
}

// UpdateReviewDate moves a review row to another date and returns the number of moved rows.
// It returns ErrDuplicateReview when a row for newDate already exists.
func (s *DBStore) UpdateReviewDate(ctx context.Context, userID int64, oldDate, newDate schedule.Date) (int64, error) {
	result, err := s.q.ExecContext(ctx,
		s.q.Rebind("UPDATE daily_reviews SET review_date = ? WHERE user_id = ? AND review_date = ?"),
		newDate, userID, oldDate)
	if isDuplicateKeyError(err) {
		return 0, fmt.Errorf("q.ExecContext(update daily_review) > %w", ErrDuplicateReview)
	}
	if err != nil {
		return 0, fmt.Errorf("q.ExecContext(update daily_review) > %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("result.RowsAffected() > %w", err)
	}
	return affected, nil
}

// DeleteReviewRow deletes the review of a user on a date and returns the number of deleted rows.
func (s *DBStore) DeleteReviewRow(ctx context.Context, userID int64, reviewDate schedule.Date) (int64, error) {
	result, err := s.q.ExecContext(ctx,
		s.q.Rebind("DELETE FROM daily_reviews WHERE user_id = ? AND review_date = ?"),
		userID, reviewDate)
	if err != nil {
		return 0, fmt.Errorf("q.ExecContext(delete daily_review) > %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("result.RowsAffected() > %w", err)
	}
	return affected, nil
}

// RecordRepair inserts an audit row for a repair.
func (s *DBStore) RecordRepair(ctx context.Context, log *RepairLog) error {
	query := "INSERT INTO review_repairs (user_id, old_date, correct_date, action, reason, operator) VALUES (?, ?, ?, ?, ?, ?)"
	args := []any{log.UserID, log.OldDate, log.CorrectDate, string(log.Action), log.Reason, log.Operator}

	if s.isPostgres() {
		var id int64
		if err := s.q.QueryRowxContext(ctx, s.q.Rebind(query+" RETURNING id"), args...).Scan(&id); err != nil {
			return fmt.Errorf("q.QueryRowxContext(insert review_repair) > %w", err)
		}
		log.ID = id
		return nil
	}

	result, err := s.q.ExecContext(ctx, s.q.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("q.ExecContext(insert review_repair) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	log.ID = id
	return nil
}

// RunInTx runs fn in a transaction. Nested calls reuse the outer transaction.
func (s *DBStore) RunInTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	if _, ok := s.q.(*sqlx.Tx); ok {
		return fn(ctx, s)
	}

	return database.RunInTx(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		return fn(ctx, &DBStore{db: s.db, q: tx})
	})
}

func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDuplicateEntry
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}
	return false
}

// IsRetryableError reports whether a transaction failed only because it lost
// a race with another transaction and can be run again.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDeadlock || mysqlErr.Number == mysqlLockWaitTimeout
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqSerializationFailure || pqErr.Code == pqDeadlockDetected
	}
	return false
}
