package components

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tickergate/tickergate/internal/services/price"
)

func TestFormatUSD(t *testing.T) {
	assert.Equal(t, "$2,345.67", FormatUSD(2345.67))
	assert.Equal(t, "$0.50", FormatUSD(0.5))
	assert.Equal(t, "$1,234,567.00", FormatUSD(1234567))
}

func TestFormatINR(t *testing.T) {
	assert.Equal(t, "₹1,95,432.10", FormatINR(195432.1))
	assert.Equal(t, "₹500.00", FormatINR(500))
	assert.Equal(t, "₹1,95,43,210.00", FormatINR(19543210))
	assert.Equal(t, "₹4,321.00", FormatINR(4321))
}

func TestDirectionClass(t *testing.T) {
	assert.Equal(t, "price-up", directionClass(price.DirectionUp))
	assert.Equal(t, "price-down", directionClass(price.DirectionDown))
	assert.Equal(t, "", directionClass(price.DirectionNone))
}
