package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateCommission(t *testing.T) {
	tests := []struct {
		name       string
		saleAmount float64
		rate       float64
		want       float64
	}{
		{"annual plan at default rate", 4999, 15, 749.85},
		{"monthly plan at default rate", 499, 15, 74.85},
		{"rounds half up to the cent", 33.33, 15, 5.00},
		{"zero rate", 4999, 0, 0},
		{"full rate", 100, 100, 100},
		{"fractional sale amount", 49.99, 10, 5.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CalculateCommission(tt.saleAmount, tt.rate), 0.0001)
		})
	}
}

func TestValidateCommissionRate(t *testing.T) {
	assert.NoError(t, ValidateCommissionRate(0))
	assert.NoError(t, ValidateCommissionRate(15))
	assert.NoError(t, ValidateCommissionRate(100))
	assert.Error(t, ValidateCommissionRate(-0.01))
	assert.Error(t, ValidateCommissionRate(100.01))
}
