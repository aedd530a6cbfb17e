package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"darna-backend/internal/apperr"
)

func TestNights(t *testing.T) {
	n, err := Nights("2026-07-01", "2026-07-04")
	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)

	// Same-day ranges have no night to charge for.
	_, err = Nights("2026-07-01", "2026-07-01")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = Nights("2026-07-04", "2026-07-01")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = Nights("not-a-date", "2026-07-01")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestStayCost(t *testing.T) {
	total, err := StayCost(8000, "2026-07-01", "2026-07-05")
	assert.NoError(t, err)
	assert.Equal(t, int64(32000), total)

	_, err = StayCost(8000, "2026-07-05", "2026-07-05")
	assert.Error(t, err)
}
