package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoxFlag_Set(t *testing.T) {
	tests := []struct {
		value   string
		want    BoxFlag
		wantErr bool
	}{
		{value: "daily", want: "daily"},
		{value: "every_2_weeks", want: "every_2_weeks"},
		{value: "learned", want: "learned"},
		{value: "monthly", wantErr: true},
		{value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			var got BoxFlag
			err := got.Set(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.value, got.String())
			assert.Equal(t, "BoxType", got.Type())
		})
	}
}

func TestAnchorFlag_Set(t *testing.T) {
	tests := []struct {
		value   string
		want    AnchorFlag
		wantErr bool
	}{
		{value: "utc", want: "utc"},
		{value: "local", want: "local"},
		{value: "", want: "utc"},
		{value: "registration", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			var got AnchorFlag
			err := got.Set(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Anchor", got.Type())
		})
	}
}

func TestNewDueCommand_InvalidBoxFlag(t *testing.T) {
	cmd := newDueCommand()
	cmd.SetArgs([]string{"--box", "monthly", "--registered-at", "2025-07-24T05:00:00Z"})

	err := cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid box type")
}
