package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Format renders a price for display, e.g. "$1,234.50".
func Format(d decimal.Decimal) string {
	return printer.Sprintf("$%.2f", d.Round(2).InexactFloat64())
}

// FormatString formats a price given in its wire form ("1234.50").
// Unparseable input is returned unchanged.
func FormatString(s string) string {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return s
	}
	return Format(d)
}

var displayStripper = strings.NewReplacer("$", "", ",", "", " ", "")

// Strip removes the currency sign and thousands separators from a
// displayed price, leaving the plain number.
func Strip(display string) string {
	return displayStripper.Replace(strings.TrimSpace(display))
}

// Parse reads a displayed or plain price.
func Parse(display string) (decimal.Decimal, error) {
	return decimal.NewFromString(Strip(display))
}
