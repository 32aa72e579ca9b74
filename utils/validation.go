package utils

import (
	"regexp"
	"strings"
)

var (
	emailRegex        = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex        = regexp.MustCompile(`^\+?[0-9]{8,15}$`)
	discountCodeRegex = regexp.MustCompile(`^[A-Z0-9_-]{1,50}$`)
)

// Minimum length a cancellation reason must have, by product rule.
const MinCancellationReasonLength = 10

// ValidateEmail checks that the address has a plausible mailbox shape
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(strings.TrimSpace(email))
}

// ValidatePhone checks a phone number in loose international format
func ValidatePhone(phone string) bool {
	return phoneRegex.MatchString(strings.TrimSpace(phone))
}

// NormalizeDiscountCode trims and uppercases a user-supplied code.
func NormalizeDiscountCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateDiscountCode checks a normalized code against the allowed
// alphabet: uppercase alphanumerics, dash and underscore, 1-50 chars.
func ValidateDiscountCode(code string) bool {
	return discountCodeRegex.MatchString(code)
}

// ValidateCancellationReason checks the free-text reason a customer must
// provide when cancelling an order.
func ValidateCancellationReason(reason string) bool {
	return len(strings.TrimSpace(reason)) >= MinCancellationReasonLength
}
