package currency

import (
	"fmt"
	"strings"
)

// Currency describes a supported display currency.
type Currency struct {
	Symbol string
	Code   string
	Name   string
}

const DefaultCode = "NGN"

var Currencies = map[string]Currency{
	"NGN": {Symbol: "₦", Code: "NGN", Name: "Nigerian Naira"},
	"USD": {Symbol: "$", Code: "USD", Name: "US Dollar"},
	"EUR": {Symbol: "€", Code: "EUR", Name: "Euro"},
	"GBP": {Symbol: "£", Code: "GBP", Name: "British Pound"},
}

// IsSupported reports whether code names a known currency.
func IsSupported(code string) bool {
	_, ok := Currencies[code]
	return ok
}

// Format renders an amount with the currency symbol, thousands separators,
// and two decimal places. Unknown codes fall back to the default currency.
func Format(amount float64, code string) string {
	cur, ok := Currencies[code]
	if !ok {
		cur = Currencies[DefaultCode]
	}

	negative := amount < 0
	if negative {
		amount = -amount
	}

	s := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(s, ".", 2)
	whole := groupThousands(parts[0])

	formatted := cur.Symbol + whole + "." + parts[1]
	if negative {
		formatted = "-" + formatted
	}
	return formatted
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	rem := n % 3
	if rem > 0 {
		b.WriteString(digits[:rem])
	}
	for i := rem; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
