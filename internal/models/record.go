package models

// Address is the nested location block on the receiver side of a transfer.
type Address struct {
	CountryCode string `json:"countryCode"`
}

// Receiver is the counterparty section of a raw record.
type Receiver struct {
	Address Address `json:"address"`
}

// KYCRecord is one raw onboarding/transaction record, as stored in the
// dataset file and as accepted by the predict endpoints. Fields mirror the
// upstream KYC export, including the nested receiver block.
type KYCRecord struct {
	Occupation           string   `json:"occupation"`
	PurposeOfTransaction string   `json:"purposeOfTransaction"`
	SourceOfFunds        string   `json:"sourceOfFunds"`
	CountryOfBirth       string   `json:"countryOfBirth"`
	Nationality          string   `json:"nationality"`
	IDVerificationStatus string   `json:"idVerificationStatus"`
	DateOfBirth          string   `json:"dateOfBirth"`
	Receiver             Receiver `json:"receiver"`
}

// ReceiverCountry returns the receiver country code.
func (r KYCRecord) ReceiverCountry() string {
	return r.Receiver.Address.CountryCode
}

// DatasetRecord is a KYCRecord with the ground-truth label attached by the
// generator. Labels are never present on inference input.
type DatasetRecord struct {
	KYCRecord
	PaymentFailed int    `json:"payment_failed"`
	LabelReason   string `json:"label_reason,omitempty"`
}
