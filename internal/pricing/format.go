package pricing

import (
	"math"
	"strconv"
	"strings"
)

// PriceType selects the unit suffix appended to a formatted price. Anything
// other than the three recognized keys (including PriceTypeTotal and the
// empty string) appends nothing.
type PriceType string

const (
	PriceTypeDaily   PriceType = "dailyPrice"
	PriceTypeWeekly  PriceType = "weeklyPrice"
	PriceTypeMonthly PriceType = "monthlyPrice"
	PriceTypeTotal   PriceType = "total"
)

var priceTypeSuffix = map[PriceType]string{
	PriceTypeDaily:   "/day",
	PriceTypeWeekly:  "/week",
	PriceTypeMonthly: "/month",
}

// Suffix returns the display suffix for the price type, or "" when none
// applies.
func (p PriceType) Suffix() string {
	return priceTypeSuffix[p]
}

// Formatter renders canonical DZD amounts as localized price strings. It is
// a cheap value constructed per request from the active language, so a
// language change is picked up on the next call with no cache to invalidate.
type Formatter struct {
	currency Currency
	rates    ExchangeRates
}

// NewFormatter builds a formatter for the given language using the built-in
// exchange rates.
func NewFormatter(lang Language) Formatter {
	return NewFormatterWithRates(lang, DefaultExchangeRates())
}

// NewFormatterWithRates builds a formatter with an explicit rate table,
// typically sourced from the currency_exchange_rates settings key.
func NewFormatterWithRates(lang Language, rates ExchangeRates) Formatter {
	return Formatter{currency: ResolveCurrency(lang), rates: rates}
}

// Currency exposes the resolved display currency.
func (f Formatter) Currency() Currency {
	return f.currency
}

// Format renders a canonical DZD amount. The amount is converted with the
// display currency's rate, grouped with thousands separators, given the
// currency's fraction digits, composed with the symbol per its position,
// and suffixed per the price type. Non-finite amounts render as "0".
func (f Formatter) Format(amountDzd float64, priceType PriceType) string {
	if math.IsNaN(amountDzd) || math.IsInf(amountDzd, 0) {
		return "0"
	}

	amount := amountDzd
	if f.currency.Code != CurrencyDZD {
		amount = amountDzd * f.rates.Rate(f.currency.Code)
	}

	number := groupThousands(strconv.FormatFloat(amount, 'f', f.currency.FractionDigits, 64))

	var b strings.Builder
	if f.currency.Position == SymbolBefore {
		b.WriteString(f.currency.Symbol)
		b.WriteString(number)
	} else {
		b.WriteString(number)
		b.WriteString(" ")
		b.WriteString(f.currency.Symbol)
	}
	b.WriteString(priceType.Suffix())
	return b.String()
}

// FormatString renders an amount held as a numeric string. An unparseable
// amount returns the literal "0" — a defined fallback, not an error; every
// input produces a string.
func (f Formatter) FormatString(amountDzd string, priceType PriceType) string {
	amount, err := strconv.ParseFloat(strings.TrimSpace(amountDzd), 64)
	if err != nil {
		return "0"
	}
	return f.Format(amount, priceType)
}

// groupThousands inserts comma separators into the integer part of an
// 'f'-formatted number.
func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteString("-")
	}
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
		if len(intPart) > lead {
			b.WriteString(",")
		}
	}
	for i := lead; i < len(intPart); i += 3 {
		b.WriteString(intPart[i : i+3])
		if i+3 < len(intPart) {
			b.WriteString(",")
		}
	}
	if hasFrac {
		b.WriteString(".")
		b.WriteString(fracPart)
	}
	return b.String()
}
