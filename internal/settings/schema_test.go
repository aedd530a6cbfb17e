package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"darna-backend/internal/pricing"
)

func TestApplyPayload_MissingFieldsKeepDefaults(t *testing.T) {
	s := DefaultSnapshot()
	err := s.ApplyPayload(KeyGeneralSettings, []byte(`{"maintenance_mode": true}`))
	assert.NoError(t, err)
	assert.True(t, s.General.MaintenanceMode)
	// Fields absent from the payload keep their defaults.
	assert.Equal(t, "Darna", s.General.SiteName)
}

func TestApplyPayload_MalformedRejected(t *testing.T) {
	s := DefaultSnapshot()
	s.General.SiteName = "Kept"

	err := s.ApplyPayload(KeyGeneralSettings, []byte(`{"site_name": 42`))
	assert.Error(t, err)
	// A rejected payload leaves the previous value in place.
	assert.Equal(t, "Kept", s.General.SiteName)
}

func TestApplyPayload_CommissionClamped(t *testing.T) {
	s := DefaultSnapshot()
	err := s.ApplyPayload(KeyCommissionRates, []byte(`{"sale": 1.5, "rent": -0.1, "short_stay": 0.2}`))
	assert.NoError(t, err)
	// Out-of-range fractions fall back to their defaults.
	assert.Equal(t, 0.02, s.Commission.Sale)
	assert.Equal(t, 0.05, s.Commission.Rent)
	assert.Equal(t, 0.2, s.Commission.ShortStay)
}

func TestApplyPayload_ExchangeRatesPinDZD(t *testing.T) {
	s := DefaultSnapshot()
	err := s.ApplyPayload(KeyCurrencyExchangeRates, []byte(`{"DZD": 5, "USD": 0.008, "EUR": -1}`))
	assert.NoError(t, err)
	assert.Equal(t, float64(1), s.ExchangeRates[pricing.CurrencyDZD])
	assert.Equal(t, 0.008, s.ExchangeRates[pricing.CurrencyUSD])
	// Non-positive rates are ignored in favor of the default.
	assert.Equal(t, 0.0069, s.ExchangeRates[pricing.CurrencyEUR])
}

func TestApplyPayload_UnknownKey(t *testing.T) {
	s := DefaultSnapshot()
	assert.Error(t, s.ApplyPayload("nope", []byte(`{}`)))
}

func TestValidatePayload(t *testing.T) {
	assert.NoError(t, ValidatePayload(KeyCommentingEnabled, []byte(`{"enabled": false}`)))
	assert.Error(t, ValidatePayload(KeyCommentingEnabled, []byte(`not json`)))
}

func TestSnapshot_Value(t *testing.T) {
	s := DefaultSnapshot()
	assert.Equal(t, s.Commission, s.Value(KeyCommissionRates))
	assert.Nil(t, s.Value("nope"))
}
