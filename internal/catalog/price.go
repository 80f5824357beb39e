package catalog

import (
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PriceFormatter renders shop prices with locale grouping and a currency sign.
type PriceFormatter struct {
	printer  *message.Printer
	currency string
}

// NewPriceFormatter builds a formatter for the BCP 47 locale tag. Unknown
// tags fall back to Russian grouping.
func NewPriceFormatter(locale, currency string) PriceFormatter {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		tag = language.Russian
	}
	return PriceFormatter{printer: message.NewPrinter(tag), currency: strings.TrimSpace(currency)}
}

// Format renders price. Whole amounts omit decimals.
func (f PriceFormatter) Format(price float64) string {
	if f.printer == nil {
		f = NewPriceFormatter("ru", f.currency)
	}
	var amount string
	if price == math.Trunc(price) {
		amount = f.printer.Sprintf("%d", int64(price))
	} else {
		amount = f.printer.Sprintf("%.2f", price)
	}
	if f.currency == "" {
		return amount
	}
	return amount + " " + f.currency
}
