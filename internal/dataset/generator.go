package dataset

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/riskforge/payrisk/internal/features"
	"github.com/riskforge/payrisk/internal/labeling"
	"github.com/riskforge/payrisk/internal/models"
	"github.com/riskforge/payrisk/pkg"
	"go.uber.org/zap"
)

// Sampling pools for synthetic records. Occupation and purpose include a
// value outside the model vocabulary so training data exercises the
// out-of-vocabulary bucket.
var (
	occupationPool = []string{"worker", "employee", "engineer", "teacher", "civil_servant", "student"}
	purposePool    = []string{"bills", "education", "shopping", "medical", "investment", "gift"}
	sourcePool     = []string{"Cash", "Bank Transfer", "Credit Card"}
	countryPool    = []string{"US", "GB", "IN", "NG", "PH", "DE", "BR", "AE"}
)

// Generator produces synthetic labeled KYC records. The same seed rebuilds
// the same dataset, and labels come from the same rule table the trainer
// uses, so regeneration is reproducible end to end.
type Generator struct {
	logger  *zap.Logger
	labeler *labeling.Labeler
	rng     *rand.Rand
	now     time.Time
}

func NewGenerator(logger *zap.Logger, labeler *labeling.Labeler, seed int64) *Generator {
	return &Generator{
		logger:  logger,
		labeler: labeler,
		rng:     rand.New(rand.NewSource(seed)),
		now:     time.Now(),
	}
}

// Generate builds count labeled records.
func (g *Generator) Generate(count int) ([]models.DatasetRecord, error) {
	records := make([]models.DatasetRecord, 0, count)
	failures := 0
	for i := 0; i < count; i++ {
		rec := g.newRecord()
		sig, err := features.DeriveSignals(rec, g.now)
		if err != nil {
			return nil, fmt.Errorf("generated record %d is invalid: %w", i, err)
		}
		failed, _, reason := g.labeler.Label(labeling.Subject{
			Occupation:    rec.Occupation,
			SourceOfFunds: rec.SourceOfFunds,
			IDVerified:    sig.IDVerified == 1,
			CrossBorder:   sig.CrossBorder == 1,
		})

		out := models.DatasetRecord{KYCRecord: rec, LabelReason: reason}
		if failed {
			out.PaymentFailed = 1
			failures++
		}
		records = append(records, out)
	}

	g.logger.Info("dataset_generated",
		zap.Int("records", len(records)),
		zap.Int("failures", failures),
	)
	return records, nil
}

func (g *Generator) newRecord() models.KYCRecord {
	birthCountry := g.pick(countryPool)

	// Most customers hold the nationality of their birth country.
	nationality := birthCountry
	if g.rng.Float64() < 0.2 {
		nationality = g.pick(countryPool)
	}

	status := pkg.VerificationVerified
	if g.rng.Float64() < 0.3 {
		status = pkg.VerificationUnverified
	}

	year := 1954 + g.rng.Intn(52)
	month := 1 + g.rng.Intn(12)
	day := 1 + g.rng.Intn(28)

	return models.KYCRecord{
		Occupation:           g.pick(occupationPool),
		PurposeOfTransaction: g.pick(purposePool),
		SourceOfFunds:        g.pick(sourcePool),
		CountryOfBirth:       birthCountry,
		Nationality:          nationality,
		IDVerificationStatus: status,
		DateOfBirth:          fmt.Sprintf("%04d-%02d-%02d", year, month, day),
		Receiver: models.Receiver{
			Address: models.Address{CountryCode: g.pick(countryPool)},
		},
	}
}

func (g *Generator) pick(pool []string) string {
	return pool[g.rng.Intn(len(pool))]
}
