package valueobject

import (
	"github.com/finance-dashboard/backend/internal/domain/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// FormatMoney renders an amount with the region's currency symbol and digit grouping,
// e.g. "$1,234.50" or "-$80.00".
func FormatMoney(region entity.Region, amount decimal.Decimal) string {
	tag, err := language.Parse(region.LanguageTag())
	if err != nil {
		tag = language.English
	}
	p := message.NewPrinter(tag)

	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}
	return sign + "$" + p.Sprint(number.Decimal(amount.Round(2).InexactFloat64(), number.Scale(2)))
}

// FormatPercent renders a ratio-derived percentage with one decimal place.
func FormatPercent(region entity.Region, value float64) string {
	tag, err := language.Parse(region.LanguageTag())
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag).Sprint(number.Decimal(value, number.Scale(1))) + "%"
}
