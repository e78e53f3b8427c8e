package render

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var symbols = map[string]string{
	"NGN": "₦",
	"USD": "$",
	"GBP": "£",
	"EUR": "€",
	"GHS": "GH₵",
	"KES": "KSh ",
	"ZAR": "R",
}

var numbers = message.NewPrinter(language.English)

// Money formats an amount with thousands separators and the currency
// symbol, e.g. ₦1,250,000.00.
func (p *Printer) Money(amount float64) string {
	return FormatMoney(amount, p.currency)
}

// FormatMoney formats amount in currency (an ISO code).
func FormatMoney(amount float64, currency string) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	sym, ok := symbols[currency]
	if !ok && currency != "" {
		sym = currency + " "
	}
	return sign + sym + numbers.Sprintf("%.2f", amount)
}

// Percent formats a percentage with up to two decimals.
func Percent(f float64) string {
	return numbers.Sprintf("%.2f%%", f)
}
