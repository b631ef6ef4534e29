package report

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// COP formats an amount as whole Colombian pesos, e.g. "$1,909,375 COP".
func COP(v decimal.Decimal) string {
	return "$" + humanizeInt(v) + " COP"
}

// Pounds formats a weight with two decimals, e.g. "1,293.75 lbs".
func Pounds(v decimal.Decimal) string {
	r := v.Round(2)
	whole := r.Truncate(0)
	frac := r.Sub(whole).Abs().StringFixed(2)
	return humanize.BigComma(whole.BigInt()) + frac[1:] + " lbs"
}

// Units formats a bird count, e.g. "47 u.".
func Units(n int64) string {
	return humanize.Comma(n) + " u."
}

// humanizeInt groups the thousands of v rounded to a whole number. It works
// on the big.Int so amounts beyond int64 keep every digit.
func humanizeInt(v decimal.Decimal) string {
	return humanize.BigComma(v.Round(0).BigInt())
}
