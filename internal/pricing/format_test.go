package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveCurrency(t *testing.T) {
	assert.Equal(t, CurrencyUSD, ResolveCurrency(LanguageEN).Code)
	assert.Equal(t, CurrencyEUR, ResolveCurrency(LanguageFR).Code)
	assert.Equal(t, CurrencyDZD, ResolveCurrency(LanguageAR).Code)
	assert.Equal(t, CurrencyDZD, ResolveCurrency(Language("xx")).Code)
}

func TestParseLanguage(t *testing.T) {
	assert.Equal(t, LanguageFR, ParseLanguage("fr"))
	assert.Equal(t, LanguageFR, ParseLanguage("fr-DZ"))
	assert.Equal(t, LanguageAR, ParseLanguage("ar"))
	assert.Equal(t, LanguageEN, ParseLanguage(""))
	assert.Equal(t, LanguageEN, ParseLanguage("de"))
}

func TestFormatter_Format_DZD(t *testing.T) {
	f := NewFormatter(LanguageAR)

	assert.Equal(t, "0 DA", f.Format(0, PriceTypeTotal))
	assert.Equal(t, "1,500,000 DA", f.Format(1500000, PriceTypeTotal))
	assert.Equal(t, "12,000 DA/month", f.Format(12000, PriceTypeMonthly))
	assert.Equal(t, "800 DA/day", f.Format(800, PriceTypeDaily))
	assert.Equal(t, "5,000 DA/week", f.Format(5000, PriceTypeWeekly))
}

func TestFormatter_Format_Converted(t *testing.T) {
	en := NewFormatter(LanguageEN)
	fr := NewFormatter(LanguageFR)

	// 1,000,000 DZD * 0.0074 = 7,400 USD; symbol leads for USD.
	assert.Equal(t, "$7,400.00", en.Format(1000000, PriceTypeTotal))
	// EUR trails the number like DZD does.
	assert.Equal(t, "6,900.00 €", fr.Format(1000000, PriceTypeTotal))
	// Suffix survives conversion.
	assert.Equal(t, "$74.00/month", en.Format(10000, PriceTypeMonthly))
}

func TestFormatter_Format_UnknownPriceType(t *testing.T) {
	f := NewFormatter(LanguageAR)
	assert.Equal(t, "500 DA", f.Format(500, PriceType("weirdPrice")))
	assert.Equal(t, "500 DA", f.Format(500, PriceTypeTotal))
}

func TestFormatter_Format_NonFinite(t *testing.T) {
	f := NewFormatter(LanguageAR)
	assert.Equal(t, "0", f.Format(math.NaN(), PriceTypeTotal))
	assert.Equal(t, "0", f.Format(math.Inf(1), PriceTypeTotal))
}

func TestFormatter_FormatString(t *testing.T) {
	f := NewFormatter(LanguageAR)
	assert.Equal(t, "25,000 DA", f.FormatString("25000", PriceTypeTotal))
	// Parse failures collapse to the literal "0", they never error.
	assert.Equal(t, "0", f.FormatString("abc", PriceTypeTotal))
	assert.Equal(t, "0", f.FormatString("", PriceTypeTotal))
}

func TestFormatter_WithRates(t *testing.T) {
	rates := ExchangeRates{CurrencyDZD: 1, CurrencyUSD: 0.01, CurrencyEUR: 0.0069}
	f := NewFormatterWithRates(LanguageEN, rates)
	assert.Equal(t, "$100.00", f.Format(10000, PriceTypeTotal))
}

func TestExchangeRates_RateFallback(t *testing.T) {
	// A rates table missing a code falls back to the static default.
	rates := ExchangeRates{CurrencyDZD: 1}
	assert.Equal(t, DefaultExchangeRates()[CurrencyUSD], rates.Rate(CurrencyUSD))
}
