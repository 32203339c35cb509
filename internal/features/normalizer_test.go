package features_test

import (
	"testing"
	"time"

	"github.com/riskforge/payrisk/internal/features"
	"github.com/riskforge/payrisk/internal/models"
	"github.com/riskforge/payrisk/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refTime = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func TestDeriveSignals_AgeIsYearDifference(t *testing.T) {
	rec := record("worker", "bills", "Cash", "IN", "IN", "US")
	rec.DateOfBirth = "1990-12-31"

	sig, err := features.DeriveSignals(rec, refTime)

	require.NoError(t, err)
	assert.Equal(t, 36, sig.Age, "age counts calendar years, not birthdays")
}

func TestDeriveSignals_VerificationFlag(t *testing.T) {
	cases := []struct {
		status   string
		verified int
	}{
		{"Y", 1},
		{"y", 1},
		{"N", 0},
		{"n", 0},
		{"", 0},
	}
	for _, c := range cases {
		rec := record("worker", "bills", "Cash", "IN", "IN", "US")
		rec.IDVerificationStatus = c.status

		sig, err := features.DeriveSignals(rec, refTime)

		require.NoError(t, err)
		assert.Equal(t, c.verified, sig.IDVerified, "status %q", c.status)
	}
}

func TestDeriveSignals_RejectsUnknownVerificationStatus(t *testing.T) {
	rec := record("worker", "bills", "Cash", "IN", "IN", "US")
	rec.IDVerificationStatus = "maybe"

	_, err := features.DeriveSignals(rec, refTime)

	assert.ErrorIs(t, err, pkg.ErrInvalidRecord)
}

func TestDeriveSignals_CrossBorderComparesBirthAndReceiverCountry(t *testing.T) {
	domestic := record("worker", "bills", "Cash", "IN", "IN", "IN")
	crossBorder := record("worker", "bills", "Cash", "IN", "IN", "US")

	domSig, err := features.DeriveSignals(domestic, refTime)
	require.NoError(t, err)
	cbSig, err := features.DeriveSignals(crossBorder, refTime)
	require.NoError(t, err)

	assert.Equal(t, 0, domSig.CrossBorder)
	assert.Equal(t, 1, cbSig.CrossBorder)
}

func TestDeriveSignals_DateOfBirthValidation(t *testing.T) {
	cases := []struct {
		name string
		dob  string
	}{
		{"missing", ""},
		{"wrong format", "1990/05/10"},
		{"not a date", "yesterday"},
		{"in the future", "3000-01-01"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := record("worker", "bills", "Cash", "IN", "IN", "US")
			rec.DateOfBirth = c.dob

			_, err := features.DeriveSignals(rec, refTime)

			assert.ErrorIs(t, err, pkg.ErrInvalidRecord)
		})
	}
}

func TestNormalizer_Vector_IsDeterministic(t *testing.T) {
	enc := features.NewEncoder()
	enc.FitCountries([]models.KYCRecord{record("worker", "bills", "Cash", "IN", "IN", "US")})
	norm := features.NewNormalizer(enc)
	norm.Now = func() time.Time { return refTime }

	rec := record("engineer", "education", "Bank Transfer", "IN", "IN", "US")
	first, firstSig, err := norm.Vector(rec)
	require.NoError(t, err)
	second, secondSig, err := norm.Vector(rec)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, firstSig, secondSig)
	assert.Len(t, first, enc.Dim())
}

func TestNormalizer_Vector_PropagatesRecordErrors(t *testing.T) {
	norm := features.NewNormalizer(features.NewEncoder())
	rec := record("worker", "bills", "Cash", "IN", "IN", "US")
	rec.DateOfBirth = "not-a-date"

	_, _, err := norm.Vector(rec)

	assert.ErrorIs(t, err, pkg.ErrInvalidRecord)
}
