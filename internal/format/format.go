// Package format turns report numbers into the strings shown on cards,
// tooltips and exports.
package format

import (
	"fmt"
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency used by every amount in the report.
const Currency = money.USD

// USD formats an amount with symbol and thousands separators, e.g. $252,534.13.
func USD(amount decimal.Decimal) string {
	cents := amount.Shift(2).Round(0).IntPart()
	return money.New(cents, Currency).Display()
}

// USDFloat is USD for values that only exist as float64.
func USDFloat(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Sprintf("$%v", amount)
	}
	return USD(decimal.NewFromFloat(amount))
}

// Percent formats with two decimals and a percent sign.
func Percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// SignedPercent is Percent with an explicit plus sign on gains.
func SignedPercent(v float64) string {
	if v > 0 {
		return "+" + Percent(v)
	}
	return Percent(v)
}

// WholePercent formats a share without decimals, e.g. 92%.
func WholePercent(v float64) string {
	return fmt.Sprintf("%.0f%%", v)
}

// Thousands renders an axis label such as 250k.
func Thousands(v float64) string {
	return fmt.Sprintf("%dk", int(math.Round(v/1000)))
}

// CountOf renders "9 of 13 (69%)".
func CountOf(count, total int, percent float64) string {
	return fmt.Sprintf("%d of %d (%s)", count, total, WholePercent(percent))
}
