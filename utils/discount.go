package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/gdevgproject/shopsphere/models"
	"gorm.io/gorm"
)

// PricedDiscount is the result of a successful discount evaluation.
type PricedDiscount struct {
	Discount models.Discount
	Amount   float64
}

// PriceDiscount validates a discount against its time window, usage
// counter and minimum order value, then computes the monetary effect for
// the given subtotal. It is pure: no reads, no writes, freely retryable.
//
// Both the cart preview and order placement call this with the subtotal
// they computed themselves; a client-supplied amount is never trusted.
func PriceDiscount(discount models.Discount, subtotal float64, now time.Time) (float64, *DomainError) {
	if !discount.IsActive {
		return 0, NewDomainError(ErrNotFound, "Discount code not found")
	}
	if discount.StartDate != nil && now.Before(*discount.StartDate) {
		return 0, NewDomainError(ErrNotYetActive, "Discount is not active yet").
			WithMeta("starts_at", discount.StartDate)
	}
	if discount.EndDate != nil && now.After(*discount.EndDate) {
		return 0, NewDomainError(ErrExpired, "Discount has expired")
	}
	if discount.MaxUses != nil {
		if discount.RemainingUses == nil || *discount.RemainingUses <= 0 {
			return 0, NewDomainError(ErrExhaustedUses, "Discount has no uses left")
		}
	}
	if discount.MinOrderValue != nil && subtotal < *discount.MinOrderValue {
		shortfall := RoundMoney(*discount.MinOrderValue - subtotal)
		return 0, NewDomainError(ErrBelowMinimumOrder,
			fmt.Sprintf("Order must be at least %.2f to use this discount", *discount.MinOrderValue)).
			WithMeta("min_order_value", *discount.MinOrderValue).
			WithMeta("shortfall", shortfall)
	}

	var amount float64
	if discount.DiscountPercentage != nil {
		amount = subtotal * *discount.DiscountPercentage / 100
		if discount.MaxDiscountAmount != nil && amount > *discount.MaxDiscountAmount {
			amount = *discount.MaxDiscountAmount
		}
	} else {
		// Flat mode: the cap value is the reduction, never more than
		// the order is worth.
		if discount.MaxDiscountAmount != nil {
			amount = *discount.MaxDiscountAmount
		}
		if amount > subtotal {
			amount = subtotal
		}
	}

	amount = RoundMoney(amount)
	if amount <= 0 {
		return 0, NewDomainError(ErrNoEffectiveDiscount, "Discount has no effect on this order")
	}
	return amount, nil
}

// ValidateAndPriceCode normalizes a user-supplied code, looks up the
// matching active discount and prices it against the subtotal.
func ValidateAndPriceCode(db *gorm.DB, code string, subtotal float64) (*PricedDiscount, *DomainError) {
	normalized := NormalizeDiscountCode(code)
	if !ValidateDiscountCode(normalized) {
		return nil, NewDomainError(ErrNotFound, "Discount code not found")
	}

	var discount models.Discount
	if err := db.Where("code = ? AND is_active = ?", normalized, true).First(&discount).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewDomainError(ErrNotFound, "Discount code not found")
		}
		return nil, WrapUnknown("Failed to look up discount", err)
	}

	amount, derr := PriceDiscount(discount, subtotal, time.Now())
	if derr != nil {
		return nil, derr
	}
	return &PricedDiscount{Discount: discount, Amount: amount}, nil
}
