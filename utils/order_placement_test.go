package utils

import (
	"testing"

	"github.com/gdevgproject/shopsphere/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func variantWithStock(id uint, price, salePrice float64, stock int) models.ProductVariant {
	return models.ProductVariant{
		Model:         gorm.Model{ID: id},
		Product:       models.Product{Name: "Rose Water Toner"},
		Volume:        150,
		Price:         price,
		SalePrice:     salePrice,
		StockQuantity: stock,
		IsActive:      true,
	}
}

func TestCheckStockReportsAllOffenders(t *testing.T) {
	items := []SelectedItem{
		{Variant: variantWithStock(1, 100, 0, 10), Quantity: 2},
		{Variant: variantWithStock(2, 100, 0, 1), Quantity: 3},
		{Variant: variantWithStock(3, 100, 0, 0), Quantity: 1},
	}

	derr := CheckStock(items)
	require.NotNil(t, derr)
	assert.Equal(t, ErrInsufficientStock, derr.Kind)

	offenders, ok := derr.Meta["items"].([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, offenders, 2)
	assert.Equal(t, uint(2), offenders[0]["variant_id"])
	assert.Equal(t, uint(3), offenders[1]["variant_id"])
}

func TestCheckStockInactiveVariant(t *testing.T) {
	inactive := variantWithStock(4, 100, 0, 10)
	inactive.IsActive = false

	derr := CheckStock([]SelectedItem{{Variant: inactive, Quantity: 1}})
	require.NotNil(t, derr)
	offenders := derr.Meta["items"].([]map[string]interface{})
	assert.Equal(t, 0, offenders[0]["available"])
}

func TestCheckStockAllAvailable(t *testing.T) {
	items := []SelectedItem{
		{Variant: variantWithStock(1, 100, 0, 10), Quantity: 10},
		{Variant: variantWithStock(2, 100, 0, 5), Quantity: 1},
	}
	assert.Nil(t, CheckStock(items))
}

func TestComputeSubtotalUsesSalePrice(t *testing.T) {
	items := []SelectedItem{
		{Variant: variantWithStock(1, 200000, 150000, 10), Quantity: 2},
		{Variant: variantWithStock(2, 80000, 0, 10), Quantity: 1},
	}

	assert.Equal(t, 380000.0, ComputeSubtotal(items))
}

func TestComputeSubtotalIgnoresHigherSalePrice(t *testing.T) {
	// A sale price above the list price never applies
	items := []SelectedItem{
		{Variant: variantWithStock(1, 100, 150, 10), Quantity: 1},
	}
	assert.Equal(t, 100.0, ComputeSubtotal(items))
}

func TestBuildOrderItemsSnapshots(t *testing.T) {
	items := []SelectedItem{
		{Variant: variantWithStock(9, 200000, 150000, 10), Quantity: 2},
	}

	snapshots := BuildOrderItems(items)
	require.Len(t, snapshots, 1)
	assert.Equal(t, uint(9), snapshots[0].VariantID)
	assert.Equal(t, "Rose Water Toner", snapshots[0].ProductName)
	assert.Equal(t, 150, snapshots[0].Volume)
	assert.Equal(t, 150000.0, snapshots[0].UnitPrice)
	assert.Equal(t, 2, snapshots[0].Quantity)
	assert.Equal(t, 300000.0, snapshots[0].Total)
}
