package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// en-IN groups lakhs and crores: ₹1,50,000.
var printer = message.NewPrinter(language.MustParse("en-IN"))

// Format renders an amount as rupees with Indian digit grouping. Whole
// amounts print without paise: ₹1,23,456 and ₹12,345.50.
func Format(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	d = d.Round(2)
	if d.Equal(d.Truncate(0)) {
		return sign + SymbolRupee + printer.Sprintf("%d", d.IntPart())
	}
	f, _ := d.Float64()
	return sign + SymbolRupee + printer.Sprintf("%.2f", f)
}

// FormatKm renders a distance in kilometres with one decimal place.
func FormatKm(km float64) string {
	return printer.Sprintf("%.1f km", km)
}
