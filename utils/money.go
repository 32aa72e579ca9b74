package utils

import "math"

// RoundMoney rounds an amount to the smallest currency unit (two decimal
// places) using round half up on the final cents.
func RoundMoney(amount float64) float64 {
	return math.Round(amount*100) / 100
}
