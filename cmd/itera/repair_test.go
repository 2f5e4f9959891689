package main

import (
	"context"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/itera/internal/config"
	"github.com/at-ishikawa/itera/internal/review"
	"github.com/at-ishikawa/itera/internal/schedule"
)

func TestNewRepairCommand(t *testing.T) {
	cmd := newRepairCommand()

	assert.Equal(t, "repair", cmd.Use)
	assert.NotNil(t, cmd.RunE)
	for _, name := range []string{"user", "old", "new", "reason", "operator", "dry-run"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, "false", cmd.Flags().Lookup("dry-run").DefValue)
}

func TestNewRepairRequest(t *testing.T) {
	tests := []struct {
		name    string
		oldDate string
		newDate string
		want    review.RepairRequest
		wantErr string
	}{
		{
			name:    "valid dates",
			oldDate: "2025-07-23",
			newDate: "2025-07-24",
			want: review.RepairRequest{
				UserID:      3,
				OldDate:     schedule.MustParseDate("2025-07-23"),
				CorrectDate: schedule.MustParseDate("2025-07-24"),
				Reason:      "utc date written",
				Operator:    "ops",
				DryRun:      true,
			},
		},
		{
			name:    "invalid old date",
			oldDate: "2025/07/23",
			newDate: "2025-07-24",
			wantErr: "--old",
		},
		{
			name:    "invalid new date",
			oldDate: "2025-07-23",
			newDate: "tomorrow",
			wantErr: "--new",
		},
		{
			name:    "same dates",
			oldDate: "2025-07-24",
			newDate: "2025-07-24",
			wantErr: "--old and --new must differ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newRepairRequest(3, tt.oldDate, tt.newDate, "utc date written", "ops", true)
			if tt.wantErr != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewRepairCommand_InvalidUser(t *testing.T) {
	cmd := newRepairCommand()
	cmd.SetArgs([]string{"--user", "0", "--old", "2025-07-23", "--new", "2025-07-24"})

	err := cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "--user must be a positive user ID")
}

func TestRunRepair_YAMLOutputHasNoLogLines(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})

	reviewColumns := []string{"id", "user_id", "review_date", "created_at"}
	reviewQuery := regexp.QuoteMeta("SELECT id, user_id, review_date, created_at FROM daily_reviews WHERE user_id = ? AND review_date = ?")
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, created_at, timezone_offset FROM users WHERE id = ?")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "timezone_offset"}).
			AddRow(3, time.Date(2025, 7, 20, 5, 0, 0, 0, time.UTC), 180))
	mock.ExpectQuery(reviewQuery).WithArgs(int64(3), "2025-07-23").
		WillReturnRows(sqlmock.NewRows(reviewColumns).AddRow(5, 3, "2025-07-23", time.Now()))
	mock.ExpectQuery(reviewQuery).WithArgs(int64(3), "2025-07-24").
		WillReturnRows(sqlmock.NewRows(reviewColumns))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE daily_reviews SET review_date = ? WHERE user_id = ? AND review_date = ?")).
		WithArgs("2025-07-24", int64(3), "2025-07-23").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO review_repairs")).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectCommit()

	defaultLogger := slog.Default()
	t.Cleanup(func() { slog.SetDefault(defaultLogger) })
	setOutputFormat(t, "yaml")

	req, err := newRepairRequest(3, "2025-07-23", "2025-07-24", "utc date written", "ops", false)
	require.NoError(t, err)

	stdout, stderr := captureStdStreams(t, func() {
		setupLogger(false)
		svc, err := newReviewService(&config.Config{
			Schedule: config.ScheduleConfig{DefaultTimezoneOffset: 180, Anchor: "utc"},
			Review:   config.ReviewConfig{RetryAttempts: 1},
		}, sqlx.NewDb(db, "mysql"))
		require.NoError(t, err)
		printer, err := newPrinter(newRepairCommand())
		require.NoError(t, err)

		require.NoError(t, runRepair(context.Background(), svc, printer, req))
	})

	assert.NotContains(t, stdout, "level=")
	var got review.RepairResult
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, review.RepairResult{
		UserID:      3,
		OldDate:     schedule.MustParseDate("2025-07-23"),
		CorrectDate: schedule.MustParseDate("2025-07-24"),
		Action:      review.RepairActionUpdated,
		AuditID:     11,
	}, got)

	assert.Contains(t, stderr, "level=INFO")
	assert.Contains(t, stderr, "repaired daily review date")
}
