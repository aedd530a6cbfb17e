package pricing

import (
	"time"

	"darna-backend/internal/apperr"
)

// dateLayout matches domain.DateLayout; kept local so this package stays
// dependency-light.
const dateLayout = "2006-01-02"

// ParseDate converts a yyyy-mm-dd string into a time.Time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, apperr.Validation("dates must be in yyyy-mm-dd form")
	}
	return t, nil
}

// Nights returns the number of nights between check-in and check-out.
// Check-out must be strictly after check-in: a same-day range has no night
// to charge for.
func Nights(checkIn, checkOut string) (int64, error) {
	start, err := ParseDate(checkIn)
	if err != nil {
		return 0, err
	}
	end, err := ParseDate(checkOut)
	if err != nil {
		return 0, err
	}
	nights := int64(end.Sub(start).Hours() / 24)
	if nights <= 0 {
		return 0, apperr.Validation("check-out must be after check-in")
	}
	return nights, nil
}

// StayCost derives a short-stay booking total in canonical DZD from the
// property's nightly price and the stay's date range.
func StayCost(nightlyPriceDzd int64, checkIn, checkOut string) (int64, error) {
	nights, err := Nights(checkIn, checkOut)
	if err != nil {
		return 0, err
	}
	return nightlyPriceDzd * nights, nil
}
