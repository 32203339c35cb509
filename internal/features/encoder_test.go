package features_test

import (
	"testing"

	"github.com/riskforge/payrisk/internal/features"
	"github.com/riskforge/payrisk/internal/models"
	"github.com/stretchr/testify/assert"
)

func record(occupation, purpose, source, birth, nationality, receiver string) models.KYCRecord {
	return models.KYCRecord{
		Occupation:           occupation,
		PurposeOfTransaction: purpose,
		SourceOfFunds:        source,
		CountryOfBirth:       birth,
		Nationality:          nationality,
		IDVerificationStatus: "N",
		DateOfBirth:          "1990-05-10",
		Receiver: models.Receiver{
			Address: models.Address{CountryCode: receiver},
		},
	}
}

func TestEncoder_Encode_LayoutIsExact(t *testing.T) {
	enc := &features.Encoder{
		Occupations:       []string{"worker"},
		Purposes:          []string{"bills"},
		Sources:           []string{"Cash"},
		BirthCountries:    []string{"IN", "US"},
		Nationalities:     []string{"IN"},
		ReceiverCountries: []string{"US"},
	}

	rec := record("worker", "bills", "Cash", "IN", "IN", "US")
	vec := enc.Encode(rec, features.Signals{Age: 36, IDVerified: 0, CrossBorder: 1})

	// occupation, purpose, source, birth country, nationality and receiver
	// country blocks (vocab columns then the other bucket), then numerics.
	expected := []float64{
		1, 0, // worker
		1, 0, // bills
		1, 0, // Cash
		1, 0, 0, // IN of [IN US]
		1, 0, // IN
		1, 0, // US
		36, 0, 1, // age, id_verified, cross_border
	}
	assert.Equal(t, expected, vec)
	assert.Len(t, vec, enc.Dim())
	assert.Len(t, enc.FeatureNames(), enc.Dim())
}

func TestEncoder_Encode_UnknownValuesFallIntoOtherBucket(t *testing.T) {
	enc := &features.Encoder{
		Occupations:       []string{"worker"},
		Purposes:          []string{"bills"},
		Sources:           []string{"Cash"},
		BirthCountries:    []string{"IN"},
		Nationalities:     []string{"IN"},
		ReceiverCountries: []string{"IN"},
	}

	rec := record("astronaut", "bills", "Cash", "IN", "IN", "IN")
	vec := enc.Encode(rec, features.Signals{Age: 20})

	assert.Equal(t, 0.0, vec[0], "vocab column must stay cold")
	assert.Equal(t, 1.0, vec[1], "unknown occupation lands in the trailing bucket")
}

func TestEncoder_FitCountries_SortedAndDeduplicated(t *testing.T) {
	enc := features.NewEncoder()
	enc.FitCountries([]models.KYCRecord{
		record("worker", "bills", "Cash", "US", "US", "IN"),
		record("worker", "bills", "Cash", "IN", "GB", "IN"),
		record("worker", "bills", "Cash", "US", "US", "NG"),
	})

	assert.Equal(t, []string{"IN", "US"}, enc.BirthCountries)
	assert.Equal(t, []string{"GB", "US"}, enc.Nationalities)
	assert.Equal(t, []string{"IN", "NG"}, enc.ReceiverCountries)
}

func TestEncoder_Dim_CountsEveryGroupPlusNumerics(t *testing.T) {
	enc := features.NewEncoder()
	enc.FitCountries([]models.KYCRecord{
		record("worker", "bills", "Cash", "US", "US", "IN"),
	})

	// 5+1 occupations, 5+1 purposes, 3+1 sources, three country groups of
	// one value plus bucket each, and three numeric columns.
	assert.Equal(t, 6+6+4+2+2+2+3, enc.Dim())
}
