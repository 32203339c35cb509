package features

import (
	"sort"

	"github.com/riskforge/payrisk/internal/models"
)

// numeric columns appended after the one-hot blocks: age, id_verified, cross_border
const numericColumns = 3

// Encoder fixes the one-hot layout of the feature vector. Business
// vocabularies are seeded by NewEncoder; country vocabularies are collected
// from the training set by FitCountries. The encoder travels inside the model
// artifact so inference reproduces the exact column layout training used.
type Encoder struct {
	Occupations       []string `json:"occupations"`
	Purposes          []string `json:"purposes"`
	Sources           []string `json:"sources"`
	BirthCountries    []string `json:"birth_countries"`
	Nationalities     []string `json:"nationalities"`
	ReceiverCountries []string `json:"receiver_countries"`
}

func NewEncoder() *Encoder {
	return &Encoder{
		Occupations: append([]string(nil), OccupationVocab...),
		Purposes:    append([]string(nil), PurposeVocab...),
		Sources:     append([]string(nil), SourceVocab...),
	}
}

// FitCountries collects the three country vocabularies from the training
// records. Values are deduplicated and sorted so regenerated datasets
// produce a stable column layout.
func (e *Encoder) FitCountries(records []models.KYCRecord) {
	e.BirthCountries = distinct(records, func(r models.KYCRecord) string { return r.CountryOfBirth })
	e.Nationalities = distinct(records, func(r models.KYCRecord) string { return r.Nationality })
	e.ReceiverCountries = distinct(records, func(r models.KYCRecord) string { return r.ReceiverCountry() })
}

// Dim returns the feature vector length. Each one-hot group carries one
// column per vocabulary entry plus the trailing bucket.
func (e *Encoder) Dim() int {
	groups := len(e.Occupations) + len(e.Purposes) + len(e.Sources) +
		len(e.BirthCountries) + len(e.Nationalities) + len(e.ReceiverCountries)
	return groups + 6 + numericColumns
}

// FeatureNames returns the column names in vector order, used for run
// tracking and debug logs.
func (e *Encoder) FeatureNames() []string {
	names := make([]string, 0, e.Dim())
	group := func(prefix string, vocab []string) {
		for _, v := range vocab {
			names = append(names, prefix+"="+v)
		}
		names = append(names, prefix+"="+OtherBucket)
	}
	group("occupation", e.Occupations)
	group("purpose", e.Purposes)
	group("source_of_funds", e.Sources)
	group("country_of_birth", e.BirthCountries)
	group("nationality", e.Nationalities)
	group("receiver_country", e.ReceiverCountries)
	return append(names, "age", "id_verified", "cross_border")
}

// Encode lays out the one-hot blocks for rec followed by the numeric signals.
// Column order must not change between training and inference.
func (e *Encoder) Encode(rec models.KYCRecord, sig Signals) []float64 {
	vec := make([]float64, 0, e.Dim())
	vec = appendOneHot(vec, e.Occupations, rec.Occupation)
	vec = appendOneHot(vec, e.Purposes, rec.PurposeOfTransaction)
	vec = appendOneHot(vec, e.Sources, rec.SourceOfFunds)
	vec = appendOneHot(vec, e.BirthCountries, rec.CountryOfBirth)
	vec = appendOneHot(vec, e.Nationalities, rec.Nationality)
	vec = appendOneHot(vec, e.ReceiverCountries, rec.ReceiverCountry())
	return append(vec, float64(sig.Age), float64(sig.IDVerified), float64(sig.CrossBorder))
}

func appendOneHot(vec []float64, vocab []string, value string) []float64 {
	matched := false
	for _, v := range vocab {
		if v == value {
			vec = append(vec, 1)
			matched = true
		} else {
			vec = append(vec, 0)
		}
	}
	if matched {
		return append(vec, 0)
	}
	return append(vec, 1) // out-of-vocabulary bucket
}

func distinct(records []models.KYCRecord, field func(models.KYCRecord) string) []string {
	seen := make(map[string]struct{}, len(records))
	out := make([]string, 0, len(records))
	for _, r := range records {
		v := field(r)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
