package settings

import (
	"encoding/json"
	"fmt"

	"darna-backend/internal/pricing"
)

// Settings payloads are stored as JSON blobs under a small fixed set of
// string keys. Each key has a typed schema with explicit defaults and a
// validating decode: malformed payloads are rejected or coerced at this
// boundary, never field-by-field at read sites.

const (
	KeyGeneralSettings       = "general_settings"
	KeyCommissionRates       = "commission_rates"
	KeyNotificationSettings  = "notification_settings"
	KeySecuritySettings      = "security_settings"
	KeyEmailSettings         = "email_settings"
	KeyCommentingEnabled     = "commenting_enabled"
	KeyCurrencyExchangeRates = "currency_exchange_rates"
)

// Keys lists every supported settings key.
func Keys() []string {
	return []string{
		KeyGeneralSettings,
		KeyCommissionRates,
		KeyNotificationSettings,
		KeySecuritySettings,
		KeyEmailSettings,
		KeyCommentingEnabled,
		KeyCurrencyExchangeRates,
	}
}

type GeneralSettings struct {
	SiteName        string `json:"site_name"`
	SupportEmail    string `json:"support_email"`
	MaintenanceMode bool   `json:"maintenance_mode"`
	DefaultLanguage string `json:"default_language"`
}

func DefaultGeneralSettings() GeneralSettings {
	return GeneralSettings{
		SiteName:        "Darna",
		SupportEmail:    "support@darna.example",
		MaintenanceMode: false,
		DefaultLanguage: string(pricing.DefaultLanguage),
	}
}

// CommissionRates are the platform's cut per listing category, as fractions
// of the booking total.
type CommissionRates struct {
	Sale      float64 `json:"sale"`
	Rent      float64 `json:"rent"`
	ShortStay float64 `json:"short_stay"`
}

func DefaultCommissionRates() CommissionRates {
	return CommissionRates{Sale: 0.02, Rent: 0.05, ShortStay: 0.10}
}

type NotificationSettings struct {
	EmailEnabled bool `json:"email_enabled"`
	InAppEnabled bool `json:"in_app_enabled"`
}

func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{EmailEnabled: true, InAppEnabled: true}
}

type SecuritySettings struct {
	MinPasswordLength     int `json:"min_password_length"`
	SessionTimeoutMinutes int `json:"session_timeout_minutes"`
}

func DefaultSecuritySettings() SecuritySettings {
	return SecuritySettings{MinPasswordLength: 8, SessionTimeoutMinutes: 60}
}

type EmailSettings struct {
	FromName    string `json:"from_name"`
	FromAddress string `json:"from_address"`
	ReplyTo     string `json:"reply_to"`
}

func DefaultEmailSettings() EmailSettings {
	return EmailSettings{FromName: "Darna", FromAddress: "no-reply@darna.example"}
}

type CommentingEnabled struct {
	Enabled bool `json:"enabled"`
}

func DefaultCommentingEnabled() CommentingEnabled {
	return CommentingEnabled{Enabled: true}
}

// Snapshot is one consistent view of every settings key.
type Snapshot struct {
	General       GeneralSettings
	Commission    CommissionRates
	Notifications NotificationSettings
	Security      SecuritySettings
	Email         EmailSettings
	Commenting    CommentingEnabled
	ExchangeRates pricing.ExchangeRates
}

// DefaultSnapshot returns the built-in defaults for every key.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		General:       DefaultGeneralSettings(),
		Commission:    DefaultCommissionRates(),
		Notifications: DefaultNotificationSettings(),
		Security:      DefaultSecuritySettings(),
		Email:         DefaultEmailSettings(),
		Commenting:    DefaultCommentingEnabled(),
		ExchangeRates: pricing.DefaultExchangeRates(),
	}
}

// Value returns the typed settings struct stored under a key, or nil for an
// unknown key.
func (s Snapshot) Value(key string) any {
	switch key {
	case KeyGeneralSettings:
		return s.General
	case KeyCommissionRates:
		return s.Commission
	case KeyNotificationSettings:
		return s.Notifications
	case KeySecuritySettings:
		return s.Security
	case KeyEmailSettings:
		return s.Email
	case KeyCommentingEnabled:
		return s.Commenting
	case KeyCurrencyExchangeRates:
		return s.ExchangeRates
	default:
		return nil
	}
}

// clampRate coerces a commission fraction into [0, 1], falling back when the
// payload carries garbage.
func clampRate(v, fallback float64) float64 {
	if v < 0 || v > 1 {
		return fallback
	}
	return v
}

// ApplyPayload decodes one key's raw payload into the snapshot. The decode
// starts from the key's defaults so missing fields keep their default value;
// a payload that is not valid JSON for the schema is rejected and the key
// keeps its previous value.
func (s *Snapshot) ApplyPayload(key string, raw []byte) error {
	switch key {
	case KeyGeneralSettings:
		v := DefaultGeneralSettings()
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("invalid %s payload: %w", key, err)
		}
		v.DefaultLanguage = string(pricing.ParseLanguage(v.DefaultLanguage))
		s.General = v

	case KeyCommissionRates:
		v := DefaultCommissionRates()
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("invalid %s payload: %w", key, err)
		}
		def := DefaultCommissionRates()
		v.Sale = clampRate(v.Sale, def.Sale)
		v.Rent = clampRate(v.Rent, def.Rent)
		v.ShortStay = clampRate(v.ShortStay, def.ShortStay)
		s.Commission = v

	case KeyNotificationSettings:
		v := DefaultNotificationSettings()
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("invalid %s payload: %w", key, err)
		}
		s.Notifications = v

	case KeySecuritySettings:
		v := DefaultSecuritySettings()
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("invalid %s payload: %w", key, err)
		}
		def := DefaultSecuritySettings()
		if v.MinPasswordLength < 6 {
			v.MinPasswordLength = def.MinPasswordLength
		}
		if v.SessionTimeoutMinutes <= 0 {
			v.SessionTimeoutMinutes = def.SessionTimeoutMinutes
		}
		s.Security = v

	case KeyEmailSettings:
		v := DefaultEmailSettings()
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("invalid %s payload: %w", key, err)
		}
		s.Email = v

	case KeyCommentingEnabled:
		v := DefaultCommentingEnabled()
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("invalid %s payload: %w", key, err)
		}
		s.Commenting = v

	case KeyCurrencyExchangeRates:
		var v map[pricing.CurrencyCode]float64
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("invalid %s payload: %w", key, err)
		}
		rates := pricing.DefaultExchangeRates()
		for code, rate := range v {
			if rate > 0 {
				rates[code] = rate
			}
		}
		// DZD is the base and is pinned to 1 regardless of the payload.
		rates[pricing.CurrencyDZD] = 1
		s.ExchangeRates = rates

	default:
		return fmt.Errorf("unknown settings key %q", key)
	}
	return nil
}

// ValidatePayload checks a payload for a key without mutating any snapshot,
// used before persisting an upsert.
func ValidatePayload(key string, raw []byte) error {
	s := DefaultSnapshot()
	return s.ApplyPayload(key, raw)
}
