package utils

import (
	"fmt"
	"math"
)

// CalculateCommission computes an ambassador's cut of a sale, rounded to
// currency precision (2 decimals).
func CalculateCommission(saleAmount, rate float64) float64 {
	return math.Round(saleAmount*rate) / 100
}

// ValidateCommissionRate checks a commission rate is within [0, 100].
func ValidateCommissionRate(rate float64) error {
	if rate < 0 || rate > 100 {
		return fmt.Errorf("commission rate must be between 0 and 100, got %.2f", rate)
	}
	return nil
}
