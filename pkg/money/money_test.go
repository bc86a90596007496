package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToCents(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   int64
	}{
		{"whole amount", 100.00, 10000},
		{"two decimals", 50.01, 5001},
		{"float artifact below", 19.99, 1999},
		{"float artifact above", 0.29, 29},
		{"tenth", 0.1, 10},
		{"third-like value", 33.335, 3334},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToCents(tt.amount))
		})
	}
}

func TestFromCents(t *testing.T) {
	assert.Equal(t, 50.01, FromCents(5001))
	assert.Equal(t, 0.0, FromCents(0))
	assert.Equal(t, -33.34, FromCents(-3334))
}

func TestToCentsFromCentsRoundTrip(t *testing.T) {
	for _, cents := range []int64{0, 1, 99, 100, 3333, 5001, 1000001} {
		assert.Equal(t, cents, ToCents(FromCents(cents)))
	}
}

func TestRoundDiv(t *testing.T) {
	tests := []struct {
		name  string
		cents int64
		n     int
		want  int64
	}{
		{"even split", 10000, 2, 5000},
		{"rounds up at half", 10001, 2, 5001},
		{"thirds round down", 10000, 3, 3333},
		{"thirds round up", 20000, 3, 6667},
		{"single member", 9999, 1, 9999},
		{"zero divisor passes through", 5000, 0, 5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RoundDiv(tt.cents, tt.n))
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "50.01", Format(5001))
	assert.Equal(t, "0.00", Format(0))
	assert.Equal(t, "100.00", Format(10000))
}
