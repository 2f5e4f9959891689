package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocalDate(t *testing.T) {
	tests := []struct {
		name    string
		instant time.Time
		offset  int
		want    string
	}{
		{
			name:    "zero offset is the UTC date",
			instant: time.Date(2025, 7, 23, 23, 59, 59, 0, time.UTC),
			offset:  0,
			want:    "2025-07-23",
		},
		{
			name:    "UTC+3 before local midnight",
			instant: time.Date(2025, 7, 23, 20, 59, 59, 0, time.UTC),
			offset:  180,
			want:    "2025-07-23",
		},
		{
			name:    "UTC+3 at local midnight",
			instant: time.Date(2025, 7, 23, 21, 0, 0, 0, time.UTC),
			offset:  180,
			want:    "2025-07-24",
		},
		{
			name:    "registration instant from production data",
			instant: time.Date(2025, 7, 23, 19, 2, 1, 272000000, time.UTC),
			offset:  180,
			want:    "2025-07-23",
		},
		{
			name:    "negative offset moves back a day",
			instant: time.Date(2025, 1, 1, 3, 0, 0, 0, time.UTC),
			offset:  -300,
			want:    "2024-12-31",
		},
		{
			name:    "instant carrying its own location is normalized to UTC first",
			instant: time.Date(2025, 7, 24, 1, 0, 0, 0, time.FixedZone("UTC+9", 9*60*60)),
			offset:  0,
			want:    "2025-07-23",
		},
		{
			name:    "half-hour offset",
			instant: time.Date(2025, 7, 23, 18, 45, 0, 0, time.UTC),
			offset:  330,
			want:    "2025-07-24",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LocalDate(tt.instant, tt.offset)
			assert.Equal(t, tt.want, got.String())
			assert.Equal(t, got, LocalDate(tt.instant, tt.offset))
		})
	}
}

func TestNormalizeOffset(t *testing.T) {
	intPtr := func(v int) *int { return &v }

	tests := []struct {
		name    string
		offset  *int
		want    int
		wantErr bool
	}{
		{name: "nil uses default", offset: nil, want: DefaultTimezoneOffset},
		{name: "zero", offset: intPtr(0), want: 0},
		{name: "UTC+3", offset: intPtr(180), want: 180},
		{name: "lower bound", offset: intPtr(-720), want: -720},
		{name: "upper bound", offset: intPtr(840), want: 840},
		{name: "too small", offset: intPtr(-721), want: DefaultTimezoneOffset, wantErr: true},
		{name: "too large", offset: intPtr(10800), want: DefaultTimezoneOffset, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeOffset(tt.offset)
			assert.Equal(t, tt.want, got)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidOffset)
				return
			}
			assert.NoError(t, err)
		})
	}
}
