package utils

import (
	"fmt"

	"github.com/gdevgproject/shopsphere/models"
)

// SelectedItem pairs a sellable variant with the quantity being ordered.
type SelectedItem struct {
	Variant  models.ProductVariant
	Quantity int
}

// CheckStock validates every selected item against current stock and
// reports all offending variants in one failure rather than stopping at
// the first, so the caller can show the full list.
func CheckStock(items []SelectedItem) *DomainError {
	var offenders []map[string]interface{}
	for _, item := range items {
		if !item.Variant.IsActive {
			offenders = append(offenders, map[string]interface{}{
				"variant_id": item.Variant.ID,
				"available":  0,
				"requested":  item.Quantity,
			})
			continue
		}
		if item.Quantity > item.Variant.StockQuantity {
			offenders = append(offenders, map[string]interface{}{
				"variant_id": item.Variant.ID,
				"available":  item.Variant.StockQuantity,
				"requested":  item.Quantity,
			})
		}
	}
	if len(offenders) > 0 {
		return NewDomainError(ErrInsufficientStock,
			fmt.Sprintf("%d item(s) no longer have enough stock", len(offenders))).
			WithMeta("items", offenders)
	}
	return nil
}

// ComputeSubtotal sums unit price times quantity over the selection,
// using each variant's sale price when it undercuts the list price.
func ComputeSubtotal(items []SelectedItem) float64 {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Variant.UnitPrice() * float64(item.Quantity)
	}
	return RoundMoney(subtotal)
}

// BuildOrderItems freezes the selection into order item snapshots. The
// product name, volume and unit price are copied now and never refreshed
// from the live catalog.
func BuildOrderItems(items []SelectedItem) []models.OrderItem {
	snapshots := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		unitPrice := item.Variant.UnitPrice()
		snapshots = append(snapshots, models.OrderItem{
			VariantID:   item.Variant.ID,
			ProductName: item.Variant.Product.Name,
			Volume:      item.Variant.Volume,
			UnitPrice:   unitPrice,
			Quantity:    item.Quantity,
			Total:       RoundMoney(unitPrice * float64(item.Quantity)),
		})
	}
	return snapshots
}
