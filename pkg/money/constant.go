package money

// Currency markers recognised around an amount.
const (
	SymbolRupee = "₹"
)

var unitWords = map[string]int64{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14, "fifteen": 15,
	"sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19,
	"twenty": 20, "thirty": 30, "forty": 40, "fourty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
}

var scaleWords = map[string]int64{
	"thousand": 1_000,
	"k":        1_000,
	"lakh":     100_000,
	"lakhs":    100_000,
	"lac":      100_000,
	"lacs":     100_000,
	"million":  1_000_000,
	"crore":    10_000_000,
	"crores":   10_000_000,
	"cr":       10_000_000,
}

var currencyWords = map[string]bool{
	"rs": true, "rs.": true, "inr": true, "rupee": true, "rupees": true, "bucks": true,
}

// Words that, when they follow a bare number, mean it is not an amount of money.
var nonMoneyUnits = map[string]bool{
	"km": true, "kms": true, "kilometer": true, "kilometers": true, "kilometre": true, "kilometres": true,
	"trip": true, "trips": true, "ride": true, "rides": true, "order": true, "orders": true,
	"hour": true, "hours": true, "hr": true, "hrs": true, "minute": true, "minutes": true, "mins": true,
	"day": true, "days": true, "week": true, "weeks": true, "month": true, "months": true,
	"am": true, "pm": true, "%": true, "percent": true, "litre": true, "litres": true, "liter": true, "liters": true,
	"l": true, "kmpl": true, "star": true, "stars": true,
}
