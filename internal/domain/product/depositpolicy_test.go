package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepositPolicy_Evaluate(t *testing.T) {
	policy := DefaultDepositPolicy()

	tests := []struct {
		name    string
		h, w, d int
		want    bool
		wantErr bool
	}{
		{"all within threshold", 10, 10, 10, false, false},
		{"height above threshold", 16, 10, 10, true, false},
		{"width above threshold", 10, 16, 10, true, false},
		{"depth above threshold", 10, 10, 16, true, false},
		{"exactly at threshold", 15, 15, 15, false, false},
		{"zero height", 0, 10, 10, false, true},
		{"negative depth", 10, 10, -1, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := policy.Evaluate(tt.h, tt.w, tt.d)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDimension)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDepositPolicy_Accept(t *testing.T) {
	policy := NewDepositPolicy(15, 100)

	requires, err := policy.Accept(Dimensions{HeightCM: 40, WidthCM: 10, DepthCM: 10})
	require.NoError(t, err)
	assert.True(t, requires)

	_, err = policy.Accept(Dimensions{HeightCM: 101, WidthCM: 10, DepthCM: 10})
	assert.ErrorIs(t, err, ErrInvalidDimension)

	_, err = policy.Accept(Dimensions{HeightCM: 10, WidthCM: 0, DepthCM: 10})
	assert.ErrorIs(t, err, ErrInvalidDimension)
}

func TestNewDepositPolicy_RejectsEntryCapBelowThreshold(t *testing.T) {
	assert.Panics(t, func() { NewDepositPolicy(15, 10) })
	assert.Panics(t, func() { NewDepositPolicy(0, 10) })
}
