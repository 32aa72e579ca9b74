package models

import "time"

// CartItem is one row of an authenticated user's cart. At most one row
// exists per (user, variant); duplicate adds bump the quantity.
type CartItem struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `json:"user_id" gorm:"uniqueIndex:idx_cart_user_variant"`
	VariantID uint           `json:"variant_id" gorm:"uniqueIndex:idx_cart_user_variant"`
	Variant   ProductVariant `gorm:"foreignKey:VariantID" json:"variant"`
	Quantity  int            `json:"quantity"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// GuestCartItem is one row of an anonymous device's cart, keyed by the
// device identifier the client sends. It has no user identity until the
// cart is merged on login.
type GuestCartItem struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	DeviceID  string         `json:"device_id" gorm:"uniqueIndex:idx_guest_cart_device_variant"`
	VariantID uint           `json:"variant_id" gorm:"uniqueIndex:idx_guest_cart_device_variant"`
	Variant   ProductVariant `gorm:"foreignKey:VariantID" json:"variant"`
	Quantity  int            `json:"quantity"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
