package pricing

import "github.com/shopspring/decimal"

// Money rounds an amount to cents.
func Money(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FormatMoney renders an amount as dollars, e.g. "$15.25".
func FormatMoney(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

// FormatAmount renders an amount with two decimals and no symbol.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatPrice renders a per-gallon price with three decimals.
func FormatPrice(d decimal.Decimal) string {
	return d.StringFixed(3)
}

// FormatGallons renders a quantity with one decimal.
func FormatGallons(d decimal.Decimal) string {
	return d.StringFixed(1)
}
