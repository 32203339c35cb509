package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/riskforge/payrisk/internal/features"
	"github.com/riskforge/payrisk/internal/ml"
	"github.com/riskforge/payrisk/internal/models"
	"github.com/riskforge/payrisk/internal/observability"
	"github.com/riskforge/payrisk/internal/views"
	"github.com/riskforge/payrisk/pkg"
	"go.uber.org/zap"
)

// Prediction is the outcome of scoring one record.
type Prediction struct {
	Failed      bool
	Probability float64
}

// Predictor scores raw records against a loaded model artifact. The
// artifact is read-only after load, so a single predictor is shared across
// requests without locking.
type Predictor interface {
	Predict(ctx context.Context, traceID string, rec models.KYCRecord) (Prediction, error)
}

type PredictorImpl struct {
	logger    *zap.Logger
	art       *ml.Artifact
	norm      *features.Normalizer
	threshold float64
	publisher AuditPublisher
}

// NewPredictor wires a predictor around a loaded artifact. A threshold <= 0
// falls back to the threshold stored in the artifact.
func NewPredictor(logger *zap.Logger, art *ml.Artifact, threshold float64, publisher AuditPublisher) Predictor {
	if threshold <= 0 {
		threshold = art.Threshold
	}
	return &PredictorImpl{
		logger:    logger,
		art:       art,
		norm:      features.NewNormalizer(art.Encoder),
		threshold: threshold,
		publisher: publisher,
	}
}

func (p *PredictorImpl) Predict(ctx context.Context, traceID string, rec models.KYCRecord) (Prediction, error) {
	vec, sig, err := p.norm.Vector(rec)
	if err != nil {
		observability.RecordsRejected.WithLabelValues("invalid_record").Inc()
		return Prediction{}, err
	}

	prob := p.art.Model.Prob(vec)
	failed := prob >= p.threshold

	decision := pkg.DecisionOK
	if failed {
		decision = pkg.DecisionFail
	}
	observability.PredictionsTotal.WithLabelValues(string(decision)).Inc()
	observability.PredictionProbability.Observe(prob)

	p.logger.Info("record scored",
		zap.String(pkg.TraceId, traceID),
		zap.String(pkg.RunId, p.art.RunID),
		zap.String("decision", string(decision)),
		zap.Float64("probability", prob),
	)

	if p.publisher != nil {
		event := views.PredictionEvent{
			EventID:     uuid.New().String(),
			TraceID:     traceID,
			RunID:       p.art.RunID,
			Decision:    decision,
			Probability: prob,
			CrossBorder: sig.CrossBorder == 1,
			Verified:    sig.IDVerified == 1,
			ScoredAt:    time.Now().UTC(),
		}
		if err := p.publisher.PublishPrediction(event); err != nil {
			// Audit publishing is best effort; the caller still gets the score.
			p.logger.Warn("failed to publish prediction event",
				zap.String(pkg.TraceId, traceID), zap.Error(err))
		}
	}

	return Prediction{Failed: failed, Probability: prob}, nil
}
