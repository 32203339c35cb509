package features

import (
	"time"

	"github.com/riskforge/payrisk/internal/models"
	"github.com/riskforge/payrisk/pkg"
	"github.com/riskforge/payrisk/pkg/utils"
)

const dateLayout = "2006-01-02"

// Signals are the numeric features derived from a raw record.
type Signals struct {
	Age         int
	IDVerified  int
	CrossBorder int
}

// Normalizer turns raw records into fixed-order feature vectors. It is a
// pure mapping except for the clock, which is injectable so age derivation
// stays stable in tests.
type Normalizer struct {
	Enc *Encoder
	Now func() time.Time
}

func NewNormalizer(enc *Encoder) *Normalizer {
	return &Normalizer{Enc: enc, Now: time.Now}
}

// DeriveSignals computes age, the verification flag and the cross-border
// flag against the given reference time. Age counts calendar years from the
// birth year to the reference year. The cross-border flag compares country
// of birth against the receiver country.
func DeriveSignals(rec models.KYCRecord, now time.Time) (Signals, error) {
	if utils.IsEmpty(rec.DateOfBirth) {
		return Signals{}, pkg.InvalidRecord("dateOfBirth is required")
	}
	dob, err := time.Parse(dateLayout, rec.DateOfBirth)
	if err != nil {
		return Signals{}, pkg.InvalidRecord("dateOfBirth must be formatted YYYY-MM-DD")
	}

	age := now.Year() - dob.Year()
	if age < 0 {
		return Signals{}, pkg.InvalidRecord("dateOfBirth is in the future")
	}

	var verified int
	switch rec.IDVerificationStatus {
	case pkg.VerificationVerified, "y":
		verified = 1
	case pkg.VerificationUnverified, "n", "":
		// Missing verification status counts as unverified.
		verified = 0
	default:
		return Signals{}, pkg.InvalidRecord("idVerificationStatus must be Y or N")
	}

	var crossBorder int
	if rec.CountryOfBirth != rec.ReceiverCountry() {
		crossBorder = 1
	}

	return Signals{Age: age, IDVerified: verified, CrossBorder: crossBorder}, nil
}

// Signals derives the numeric signals using the normalizer's clock.
func (n *Normalizer) Signals(rec models.KYCRecord) (Signals, error) {
	now := time.Now
	if n.Now != nil {
		now = n.Now
	}
	return DeriveSignals(rec, now())
}

// Vector normalizes rec into the encoder's layout. Same record in, same
// vector out.
func (n *Normalizer) Vector(rec models.KYCRecord) ([]float64, Signals, error) {
	sig, err := n.Signals(rec)
	if err != nil {
		return nil, Signals{}, err
	}
	return n.Enc.Encode(rec, sig), sig, nil
}
