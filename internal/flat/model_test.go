package flat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemberEligibleOn(t *testing.T) {
	joined := time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC)
	m := &Member{ID: "m1", JoinedOn: joined}

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"day before join", time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), false},
		{"join date counts", time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"day after join", time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC), true},
		{"much later", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.EligibleOn(tt.date))
		})
	}
}

func TestMemberEligibleOnIgnoresTimeOfDay(t *testing.T) {
	// Joined late in the evening; an expense dated midnight the same day
	// still includes them.
	m := &Member{ID: "m1", JoinedOn: time.Date(2025, 3, 15, 23, 59, 0, 0, time.UTC)}
	assert.True(t, m.EligibleOn(time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)))
}
