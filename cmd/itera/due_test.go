package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/itera/internal/cli"
	"github.com/at-ishikawa/itera/internal/schedule"
	"github.com/at-ishikawa/itera/internal/testutil"
)

func TestEvaluateDue(t *testing.T) {
	now := time.Date(2025, 7, 31, 9, 0, 0, 0, time.UTC)
	registeredAt := "2025-07-24T05:00:00Z"
	reg := time.Date(2025, 7, 24, 5, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		opts    dueOptions
		want    *cli.DueResult
		wantErr string
	}{
		{
			name: "weekly box due a week after registration",
			opts: dueOptions{box: "weekly", registeredAt: registeredAt, offset: 180, anchor: "utc"},
			want: &cli.DueResult{
				BoxType:        schedule.BoxWeekly,
				RegisteredAt:   reg,
				AsOf:           now,
				TimezoneOffset: 180,
				LocalDate:      schedule.MustParseDate("2025-07-31"),
				Due:            true,
				NextDue:        testutil.DatePtr("2025-07-31"),
			},
		},
		{
			name: "every_4_days box between due dates",
			opts: dueOptions{box: "every_4_days", registeredAt: registeredAt, at: "2025-07-30T09:00:00Z", offset: 180, anchor: "utc"},
			want: &cli.DueResult{
				BoxType:        schedule.BoxEvery4Days,
				RegisteredAt:   reg,
				AsOf:           time.Date(2025, 7, 30, 9, 0, 0, 0, time.UTC),
				TimezoneOffset: 180,
				LocalDate:      schedule.MustParseDate("2025-07-30"),
				Due:            false,
				NextDue:        testutil.DatePtr("2025-08-01"),
			},
		},
		{
			name: "learned box is never due",
			opts: dueOptions{box: "learned", registeredAt: registeredAt, offset: 180, anchor: "utc"},
			want: &cli.DueResult{
				BoxType:        schedule.BoxLearned,
				RegisteredAt:   reg,
				AsOf:           now,
				TimezoneOffset: 180,
				LocalDate:      schedule.MustParseDate("2025-07-31"),
				Due:            false,
			},
		},
		{
			name:    "unknown box",
			opts:    dueOptions{box: "monthly", registeredAt: registeredAt, offset: 180, anchor: "utc"},
			wantErr: "--box",
		},
		{
			name:    "invalid registration instant",
			opts:    dueOptions{box: "daily", registeredAt: "yesterday", offset: 180, anchor: "utc"},
			wantErr: "--registered-at",
		},
		{
			name:    "invalid evaluation instant",
			opts:    dueOptions{box: "daily", registeredAt: registeredAt, at: "2025-07-31", offset: 180, anchor: "utc"},
			wantErr: "--at",
		},
		{
			name: "offset out of range falls back to the default",
			opts: dueOptions{box: "every_2_days", registeredAt: registeredAt, at: "2025-07-25T22:30:00Z", offset: 900, anchor: "utc"},
			want: &cli.DueResult{
				BoxType:        schedule.BoxEvery2Days,
				RegisteredAt:   reg,
				AsOf:           time.Date(2025, 7, 25, 22, 30, 0, 0, time.UTC),
				TimezoneOffset: 180,
				InvalidOffset:  intPtr(900),
				LocalDate:      schedule.MustParseDate("2025-07-26"),
				Due:            true,
				NextDue:        testutil.DatePtr("2025-07-26"),
			},
		},
		{
			name:    "unknown anchor",
			opts:    dueOptions{box: "daily", registeredAt: registeredAt, offset: 180, anchor: "signup"},
			wantErr: "--anchor",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := evaluateDue(tt.opts, now)
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

func intPtr(v int) *int { return &v }

func TestNewDueCommand(t *testing.T) {
	cmd := newDueCommand()

	assert.Equal(t, "due", cmd.Use)
	assert.NotNil(t, cmd.RunE)

	offsetFlag := cmd.Flags().Lookup("offset")
	require.NotNil(t, offsetFlag)
	assert.Equal(t, "180", offsetFlag.DefValue)

	anchorFlag := cmd.Flags().Lookup("anchor")
	require.NotNil(t, anchorFlag)
	assert.Equal(t, "utc", anchorFlag.DefValue)
}

func TestNewDueCommand_Execute(t *testing.T) {
	disableColor(t)
	setOutputFormat(t, "text")

	cmd := newDueCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{
		"--box", "every_2_weeks",
		"--registered-at", "2025-07-24T05:00:00Z",
		"--at", "2025-08-07T12:00:00Z",
	})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "Box every_2_weeks registered at 2025-07-24T05:00:00Z\n"+
		"Local date: 2025-08-07 (UTC+03:00)\n"+
		"Due: yes\n"+
		"Next due: 2025-08-07\n", buf.String())
}

func TestNewDueCommand_MissingFlags(t *testing.T) {
	cmd := newDueCommand()
	cmd.SetArgs([]string{"--box", "daily"})

	err := cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "registered-at")
}
