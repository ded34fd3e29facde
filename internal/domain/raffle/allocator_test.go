package raffle

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafflehub/rafflehub/internal/domain/product"
)

func TestComputeTotalTickets(t *testing.T) {
	tests := []struct {
		name       string
		valueCents int64
		perUnit    int
		want       int
		wantErr    bool
	}{
		{"100.00", 10000, 2, 200, false},
		{"49.99", 4999, 2, 99, false},
		{"0.50", 50, 2, 1, false},
		{"0.49 yields nothing", 49, 2, 0, true},
		{"zero value", 0, 2, 0, true},
		{"negative value", -100, 2, 0, true},
		{"custom multiplier", 1050, 3, 31, false},
		{"overflow", math.MaxInt64, 2, 0, true},
		{"above ticket cap", 100_000_000, 2, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeTotalTickets(tt.valueCents, tt.perUnit)
			if tt.wantErr {
				assert.ErrorIs(t, err, product.ErrInvalidProductValue)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeTotalTickets_InvalidMultiplier(t *testing.T) {
	_, err := ComputeTotalTickets(10000, 0)
	assert.Error(t, err)
}

func TestPaymentCovers(t *testing.T) {
	assert.True(t, PaymentCovers(100, 2, 2))
	assert.True(t, PaymentCovers(250, 5, 2))
	assert.False(t, PaymentCovers(99, 2, 2))
	assert.False(t, PaymentCovers(100, 0, 2))
	assert.True(t, PaymentCovers(100, 4, 4))
}
