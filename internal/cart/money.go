package cart

import "github.com/shopspring/decimal"

// FormatMoney renders v with exactly two decimals, e.g. 19.5 -> "19.50".
func FormatMoney(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
