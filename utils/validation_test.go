package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, 10.56, RoundMoney(10.555))
	assert.Equal(t, 10.55, RoundMoney(10.554))
	assert.Equal(t, 0.0, RoundMoney(0))
	assert.Equal(t, 100.0, RoundMoney(99.999))
}

func TestNormalizeDiscountCode(t *testing.T) {
	assert.Equal(t, "SUMMER10", NormalizeDiscountCode("  summer10 "))
	assert.Equal(t, "FLAT_25-OFF", NormalizeDiscountCode("flat_25-off"))
}

func TestValidateDiscountCode(t *testing.T) {
	assert.True(t, ValidateDiscountCode("SUMMER10"))
	assert.True(t, ValidateDiscountCode("FLAT_25-OFF"))
	assert.False(t, ValidateDiscountCode(""))
	assert.False(t, ValidateDiscountCode("has space"))
	assert.False(t, ValidateDiscountCode("lower"))
}

func TestValidateCancellationReason(t *testing.T) {
	assert.True(t, ValidateCancellationReason("Changed my mind about this"))
	assert.True(t, ValidateCancellationReason("  exactly 10  "))
	assert.False(t, ValidateCancellationReason("too short"))
	assert.False(t, ValidateCancellationReason("         "))
	assert.False(t, ValidateCancellationReason(""))
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("buyer@example.com"))
	assert.False(t, ValidateEmail("not-an-email"))
	assert.False(t, ValidateEmail(""))
}

func TestGenerateOrderToken(t *testing.T) {
	a, err := GenerateOrderToken()
	assert.NoError(t, err)
	assert.Len(t, a, 64)

	b, err := GenerateOrderToken()
	assert.NoError(t, err)
	assert.NotEqual(t, a, b)
}
