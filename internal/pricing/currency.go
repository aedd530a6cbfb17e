package pricing

// CurrencyCode identifies a display currency. All stored prices are in DZD;
// other currencies exist only as display conversions.
type CurrencyCode string

const (
	CurrencyUSD CurrencyCode = "USD"
	CurrencyDZD CurrencyCode = "DZD"
	CurrencyEUR CurrencyCode = "EUR"
)

type SymbolPosition string

const (
	SymbolBefore SymbolPosition = "before"
	SymbolAfter  SymbolPosition = "after"
)

// Currency carries the formatting attributes of a display currency.
type Currency struct {
	Code           CurrencyCode
	Symbol         string
	Position       SymbolPosition
	FractionDigits int
}

var currencies = map[CurrencyCode]Currency{
	CurrencyDZD: {Code: CurrencyDZD, Symbol: "DA", Position: SymbolAfter, FractionDigits: 0},
	CurrencyUSD: {Code: CurrencyUSD, Symbol: "$", Position: SymbolBefore, FractionDigits: 2},
	CurrencyEUR: {Code: CurrencyEUR, Symbol: "€", Position: SymbolAfter, FractionDigits: 2},
}

// ResolveCurrency derives the display currency from the active language.
// The mapping is total: EN→USD, FR→EUR, AR→DZD, anything else→DZD.
// Currency is a pure function of language; it is not independently settable.
func ResolveCurrency(lang Language) Currency {
	switch lang {
	case LanguageEN:
		return currencies[CurrencyUSD]
	case LanguageFR:
		return currencies[CurrencyEUR]
	case LanguageAR:
		return currencies[CurrencyDZD]
	default:
		return currencies[CurrencyDZD]
	}
}

// ExchangeRates maps a display currency to its multiplier against the DZD
// base. Conversion is display-only and always multiplies the canonical DZD
// amount by the target rate.
type ExchangeRates map[CurrencyCode]float64

// DefaultExchangeRates are the built-in rates, used until the
// currency_exchange_rates settings key provides fresher ones.
func DefaultExchangeRates() ExchangeRates {
	return ExchangeRates{
		CurrencyDZD: 1,
		CurrencyUSD: 0.0074,
		CurrencyEUR: 0.0069,
	}
}

// Rate returns the multiplier for the given currency, defaulting to the DZD
// identity rate when the table has no entry.
func (r ExchangeRates) Rate(code CurrencyCode) float64 {
	if r != nil {
		if rate, ok := r[code]; ok && rate > 0 {
			return rate
		}
	}
	if rate, ok := DefaultExchangeRates()[code]; ok {
		return rate
	}
	return 1
}
