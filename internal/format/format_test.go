package format

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestUSD(t *testing.T) {
	assert.Equal(t, "$252,534.13", USD(decimal.RequireFromString("252534.13")))
	assert.Equal(t, "$100,000.00", USD(decimal.NewFromInt(100000)))
	assert.Equal(t, "-$237,089.10", USD(decimal.RequireFromString("-237089.10")))
	assert.Equal(t, "$513.58", USDFloat(513.58))
	assert.Equal(t, "$+Inf", USDFloat(math.Inf(1)))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "152.53%", Percent(152.534))
	assert.Equal(t, "+4.10%", SignedPercent(4.1))
	assert.Equal(t, "-1.50%", SignedPercent(-1.5))
	assert.Equal(t, "0.00%", SignedPercent(0))
	assert.Equal(t, "NaN%", Percent(math.NaN()))
	assert.Equal(t, "69%", WholePercent(69.23))
}

func TestThousandsAndCounts(t *testing.T) {
	assert.Equal(t, "250k", Thousands(250000))
	assert.Equal(t, "253k", Thousands(252534.13))
	assert.Equal(t, "13 of 13 (100%)", CountOf(13, 13, 100))
}
