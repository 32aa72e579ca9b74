package models

import "time"

// Discount is an order-level discount code. Either DiscountPercentage is
// set (percentage mode, optionally capped by MaxDiscountAmount) or it is
// nil and MaxDiscountAmount acts as a flat reduction. Discounts are never
// hard-deleted, only deactivated.
type Discount struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	Code               string     `gorm:"uniqueIndex;not null" json:"code"`
	Description        string     `json:"description"`
	StartDate          *time.Time `json:"start_date"`
	EndDate            *time.Time `json:"end_date"`
	MaxUses            *int       `json:"max_uses"`
	RemainingUses      *int       `json:"remaining_uses"`
	MinOrderValue      *float64   `json:"min_order_value"`
	DiscountPercentage *float64   `json:"discount_percentage"`
	MaxDiscountAmount  *float64   `json:"max_discount_amount"`
	IsActive           bool       `json:"is_active" gorm:"default:true"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// IsFlat reports whether the discount is in flat-amount mode.
func (d Discount) IsFlat() bool {
	return d.DiscountPercentage == nil
}
