package models

import (
	"time"
)

// OrderStatus is the single enumerated order state. String values are the
// stable identifiers stored in the database.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusConfirmed  OrderStatus = "Confirmed"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCompleted  OrderStatus = "Completed"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// PaymentStatus tracks the payment state of an order.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "Pending"
	PaymentStatusPaid     PaymentStatus = "Paid"
	PaymentStatusFailed   PaymentStatus = "Failed"
	PaymentStatusRefunded PaymentStatus = "Refunded"
)

// Payment method identifiers
const (
	PaymentMethodCOD    = "cod"
	PaymentMethodOnline = "online"
)

// Actor kinds recorded on cancellation and in the activity log
const (
	ActorUser  = "user"
	ActorAdmin = "admin"
	ActorGuest = "guest"
)

// orderTransitions is the forward transition table. Cancellation is
// handled separately through Cancellable.
var orderTransitions = map[OrderStatus]OrderStatus{
	OrderStatusPending:    OrderStatusConfirmed,
	OrderStatusConfirmed:  OrderStatusProcessing,
	OrderStatusProcessing: OrderStatusShipped,
	OrderStatusShipped:    OrderStatusDelivered,
	OrderStatusDelivered:  OrderStatusCompleted,
}

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCompleted,
		OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition leaves s.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// CanTransitionTo reports whether the order may move from s to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if next == OrderStatusCancelled {
		return s.Cancellable()
	}
	return orderTransitions[s] == next
}

// Cancellable reports whether an order in status s may still be cancelled
// by its owner. Only orders that have not entered fulfilment qualify.
func (s OrderStatus) Cancellable() bool {
	return s == OrderStatusPending || s == OrderStatusConfirmed
}

// CancellationBlocked reports whether cancellation must be refused because
// the order was already paid through a non-COD channel. Such orders go
// through support instead of self-service cancellation.
func CancellationBlocked(paymentStatus PaymentStatus, paymentMethod string) bool {
	return paymentStatus == PaymentStatusPaid && paymentMethod != PaymentMethodCOD
}

// Order is created atomically at checkout and mutated only through the
// lifecycle state machine. Monetary fields and the shipping address are
// snapshots fixed at placement time. A nil UserID marks a guest order;
// the guest contact fields are populated instead.
type Order struct {
	ID                 uint          `gorm:"primaryKey" json:"id"`
	AccessToken        string        `gorm:"uniqueIndex;not null" json:"-"`
	UserID             *uint         `json:"user_id" gorm:"index"`
	User               *User         `json:"user,omitempty" gorm:"foreignKey:UserID"`
	GuestName          string        `json:"guest_name,omitempty"`
	GuestEmail         string        `json:"guest_email,omitempty"`
	GuestPhone         string        `json:"guest_phone,omitempty"`
	RecipientName      string        `json:"recipient_name"`
	RecipientPhone     string        `json:"recipient_phone"`
	Line1              string        `json:"line1"`
	Line2              string        `json:"line2"`
	City               string        `json:"city"`
	PostalCode         string        `json:"postal_code"`
	SubtotalAmount     float64       `json:"subtotal_amount"`
	DiscountAmount     float64       `json:"discount_amount"`
	ShippingFee        float64       `json:"shipping_fee"`
	TotalAmount        float64       `json:"total_amount"`
	PaymentMethod      string        `json:"payment_method"`
	PaymentStatus      PaymentStatus `json:"payment_status" gorm:"default:'Pending'"`
	Status             OrderStatus   `json:"status" gorm:"index"`
	DiscountID         *uint         `json:"discount_id,omitempty"`
	DiscountCode       string        `json:"discount_code,omitempty"`
	CancellationReason string        `json:"cancellation_reason,omitempty"`
	CancelledBy        string        `json:"cancelled_by,omitempty"`
	CompletedAt        *time.Time    `json:"completed_at,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
	OrderItems         []OrderItem   `json:"items" gorm:"foreignKey:OrderID"`
}

// OrderItem is a snapshot of the purchased variant at order time. The
// snapshot fields are never back-filled from the live catalog, so order
// history survives product edits and deletions.
type OrderItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OrderID     uint    `json:"order_id" gorm:"index"`
	VariantID   uint    `json:"variant_id"`
	ProductName string  `json:"product_name"`
	Volume      int     `json:"volume"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	Total       float64 `json:"total"`
}
