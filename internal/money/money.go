// Package money formats prices and areas the way listings display them.
package money

import (
	"math"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.AmericanEnglish)

const usdSymbol = "$"

// USD formats a whole-dollar amount: 300000 -> "$300,000".
func USD(amount float64) string {
	return format(amount, 0)
}

// USDCents formats an amount with the currency's standard minor digits:
// 1234.5 -> "$1,234.50".
func USDCents(amount float64) string {
	scale, _ := currency.Standard.Rounding(currency.USD)
	return format(amount, scale)
}

// Number groups thousands: 1850 -> "1,850".
func Number(n float64) string {
	return printer.Sprintf("%v", number.Decimal(n, number.MaxFractionDigits(2)))
}

// Percent formats a percentage with one decimal: 20 -> "20.0%".
func Percent(p float64) string {
	return printer.Sprintf("%v%%", number.Decimal(round(p, 1), number.MinFractionDigits(1), number.MaxFractionDigits(1)))
}

func format(amount float64, digits int) string {
	amount = round(amount, digits)
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + usdSymbol + printer.Sprintf("%v", number.Decimal(amount,
		number.MinFractionDigits(digits), number.MaxFractionDigits(digits)))
}

func round(v float64, digits int) float64 {
	p := math.Pow10(digits)
	return math.Round(v*p) / p
}
