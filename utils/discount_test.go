package utils

import (
	"testing"
	"time"

	"github.com/gdevgproject/shopsphere/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrFloat(v float64) *float64 { return &v }
func ptrInt(v int) *int           { return &v }
func ptrTime(v time.Time) *time.Time {
	return &v
}

func summerDiscount() models.Discount {
	return models.Discount{
		ID:                 1,
		Code:               "SUMMER10",
		IsActive:           true,
		DiscountPercentage: ptrFloat(10),
		MaxDiscountAmount:  ptrFloat(50000),
		MinOrderValue:      ptrFloat(100000),
	}
}

func TestPriceDiscountPercentage(t *testing.T) {
	now := time.Now()

	amount, derr := PriceDiscount(summerDiscount(), 300000, now)
	require.Nil(t, derr)
	assert.Equal(t, 30000.0, amount)
}

func TestPriceDiscountBelowMinimum(t *testing.T) {
	now := time.Now()

	amount, derr := PriceDiscount(summerDiscount(), 80000, now)
	require.NotNil(t, derr)
	assert.Equal(t, ErrBelowMinimumOrder, derr.Kind)
	assert.Equal(t, 0.0, amount)
	assert.Equal(t, 20000.0, derr.Meta["shortfall"])
}

func TestPriceDiscountCapped(t *testing.T) {
	now := time.Now()

	// 10% of 600000 would be 60000; the cap wins
	amount, derr := PriceDiscount(summerDiscount(), 600000, now)
	require.Nil(t, derr)
	assert.Equal(t, 50000.0, amount)
}

func TestPriceDiscountFlat(t *testing.T) {
	now := time.Now()
	flat := models.Discount{
		ID:                2,
		Code:              "FLAT25K",
		IsActive:          true,
		MaxDiscountAmount: ptrFloat(25000),
	}

	amount, derr := PriceDiscount(flat, 100000, now)
	require.Nil(t, derr)
	assert.Equal(t, 25000.0, amount)

	// A flat discount never exceeds the order value
	amount, derr = PriceDiscount(flat, 10000, now)
	require.Nil(t, derr)
	assert.Equal(t, 10000.0, amount)
}

func TestPriceDiscountNoEffect(t *testing.T) {
	now := time.Now()
	flat := models.Discount{
		ID:       3,
		Code:     "EMPTY",
		IsActive: true,
	}

	_, derr := PriceDiscount(flat, 0, now)
	require.NotNil(t, derr)
	assert.Equal(t, ErrNoEffectiveDiscount, derr.Kind)
}

func TestPriceDiscountTimeWindow(t *testing.T) {
	now := time.Now()

	future := summerDiscount()
	future.StartDate = ptrTime(now.Add(24 * time.Hour))
	_, derr := PriceDiscount(future, 300000, now)
	require.NotNil(t, derr)
	assert.Equal(t, ErrNotYetActive, derr.Kind)

	past := summerDiscount()
	past.EndDate = ptrTime(now.Add(-24 * time.Hour))
	_, derr = PriceDiscount(past, 300000, now)
	require.NotNil(t, derr)
	assert.Equal(t, ErrExpired, derr.Kind)

	// Boundary: still inside the window
	open := summerDiscount()
	open.StartDate = ptrTime(now.Add(-time.Hour))
	open.EndDate = ptrTime(now.Add(time.Hour))
	amount, derr := PriceDiscount(open, 300000, now)
	require.Nil(t, derr)
	assert.Equal(t, 30000.0, amount)
}

func TestPriceDiscountUsageCaps(t *testing.T) {
	now := time.Now()

	exhausted := summerDiscount()
	exhausted.MaxUses = ptrInt(100)
	exhausted.RemainingUses = ptrInt(0)
	_, derr := PriceDiscount(exhausted, 300000, now)
	require.NotNil(t, derr)
	assert.Equal(t, ErrExhaustedUses, derr.Kind)

	available := summerDiscount()
	available.MaxUses = ptrInt(100)
	available.RemainingUses = ptrInt(1)
	amount, derr := PriceDiscount(available, 300000, now)
	require.Nil(t, derr)
	assert.Equal(t, 30000.0, amount)

	// Unlimited discounts ignore the counter entirely
	unlimited := summerDiscount()
	unlimited.RemainingUses = nil
	amount, derr = PriceDiscount(unlimited, 300000, now)
	require.Nil(t, derr)
	assert.Equal(t, 30000.0, amount)
}

func TestPriceDiscountInactive(t *testing.T) {
	inactive := summerDiscount()
	inactive.IsActive = false

	_, derr := PriceDiscount(inactive, 300000, time.Now())
	require.NotNil(t, derr)
	assert.Equal(t, ErrNotFound, derr.Kind)
}

func TestPriceDiscountRounding(t *testing.T) {
	d := models.Discount{
		ID:                 4,
		Code:               "THIRD",
		IsActive:           true,
		DiscountPercentage: ptrFloat(33.33),
	}

	amount, derr := PriceDiscount(d, 100, time.Now())
	require.Nil(t, derr)
	assert.Equal(t, 33.33, amount)

	amount, derr = PriceDiscount(d, 10.55, time.Now())
	require.Nil(t, derr)
	// 3.516... rounds half up at the cent
	assert.Equal(t, 3.52, amount)
}
