package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValid(t *testing.T) {
	tests := []struct {
		month string
		want  bool
	}{
		{"2025-03", true},
		{"2025-12", true},
		{"2025-01", true},
		{"2025-13", false},
		{"2025-00", false},
		{"2025-3", false},
		{"03-2025", false},
		{"2025/03", false},
		{"", false},
		{"March 2025", false},
	}

	for _, tt := range tests {
		t.Run(tt.month, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValid(tt.month))
		})
	}
}

func TestRange(t *testing.T) {
	start, end, err := Range("2025-03")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestRangeYearRollover(t *testing.T) {
	start, end, err := Range("2025-12")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestRangeInvalid(t *testing.T) {
	_, _, err := Range("not-a-month")
	assert.Error(t, err)
}
