package utils

import (
	"os"
	"strconv"
)

const (
	defaultShippingFee       = 30000
	defaultFreeShippingAbove = 500000
)

// CalculateShippingFee returns the flat shipping fee for an order
// subtotal. Orders at or above the free-shipping threshold ship free.
func CalculateShippingFee(subtotal float64) float64 {
	fee := envFloat("SHIPPING_FEE", defaultShippingFee)
	threshold := envFloat("FREE_SHIPPING_ABOVE", defaultFreeShippingAbove)
	if subtotal >= threshold {
		return 0
	}
	return fee
}

func envFloat(key string, fallback float64) float64 {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v
		}
	}
	return fallback
}
