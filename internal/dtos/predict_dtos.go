package dtos

import "github.com/riskforge/payrisk/internal/models"

// PredictRequest mirrors the raw KYC record accepted on the wire. Only the
// date of birth is enforced at the schema level; field-level checks happen
// during normalization.
type PredictRequest struct {
	Occupation           string          `json:"occupation"`
	PurposeOfTransaction string          `json:"purposeOfTransaction"`
	SourceOfFunds        string          `json:"sourceOfFunds"`
	CountryOfBirth       string          `json:"countryOfBirth"`
	Nationality          string          `json:"nationality"`
	IDVerificationStatus string          `json:"idVerificationStatus"`
	DateOfBirth          string          `json:"dateOfBirth" binding:"required"`
	Receiver             ReceiverPayload `json:"receiver"`
}

type ReceiverPayload struct {
	Address AddressPayload `json:"address"`
}

type AddressPayload struct {
	CountryCode string `json:"countryCode"`
}

// ToRecord converts the wire payload into the internal record shape.
func (r PredictRequest) ToRecord() models.KYCRecord {
	return models.KYCRecord{
		Occupation:           r.Occupation,
		PurposeOfTransaction: r.PurposeOfTransaction,
		SourceOfFunds:        r.SourceOfFunds,
		CountryOfBirth:       r.CountryOfBirth,
		Nationality:          r.Nationality,
		IDVerificationStatus: r.IDVerificationStatus,
		DateOfBirth:          r.DateOfBirth,
		Receiver: models.Receiver{
			Address: models.Address{CountryCode: r.Receiver.Address.CountryCode},
		},
	}
}

// PredictResponse is the HTTP prediction payload.
type PredictResponse struct {
	PaymentFailureRisk int     `json:"payment_failure_risk"`
	FailureProbability float64 `json:"failure_probability"`
}

// CLIPrediction is the shape printed by the predict command.
type CLIPrediction struct {
	PaymentFailed      int     `json:"payment_failed"`
	FailureProbability float64 `json:"failure_probability"`
}

// HealthResponse reports liveness and whether a model artifact is loaded.
type HealthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}
