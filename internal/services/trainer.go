package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/riskforge/payrisk/configs"
	"github.com/riskforge/payrisk/internal/dataset"
	"github.com/riskforge/payrisk/internal/features"
	"github.com/riskforge/payrisk/internal/labeling"
	"github.com/riskforge/payrisk/internal/ml"
	"github.com/riskforge/payrisk/internal/models"
	"github.com/riskforge/payrisk/internal/observability"
	"github.com/riskforge/payrisk/pkg"
	"github.com/riskforge/payrisk/pkg/tracking"
	"go.uber.org/zap"
)

// Trainer fits a failure classifier over the labeled dataset and writes the
// model artifact.
type Trainer interface {
	Train(ctx context.Context) (*ml.Artifact, error)
}

type TrainerImpl struct {
	logger  *zap.Logger
	cnf     *configs.Config
	labeler *labeling.Labeler
	tracker tracking.Client
}

func NewTrainer(logger *zap.Logger, cnf *configs.Config, labeler *labeling.Labeler, tracker tracking.Client) Trainer {
	return &TrainerImpl{logger: logger, cnf: cnf, labeler: labeler, tracker: tracker}
}

// Train loads the dataset, recomputes labels with the rule table, fits the
// classifier and writes the artifact. Labels attached to the dataset file
// are informational; the rule table is deterministic, so recomputing yields
// the same values for generated data and keeps the rules authoritative.
func (t *TrainerImpl) Train(ctx context.Context) (*ml.Artifact, error) {
	start := time.Now()

	records, err := dataset.Load(t.cnf.DatasetPath)
	if err != nil {
		observability.TrainingRuns.WithLabelValues("error").Inc()
		return nil, err
	}
	if len(records) < t.cnf.MinSamples {
		observability.TrainingRuns.WithLabelValues("insufficient_data").Inc()
		return nil, pkg.NewAppError(pkg.ErrInsufficientDataCode,
			fmt.Sprintf("dataset has %d records, need at least %d", len(records), t.cnf.MinSamples),
			pkg.ErrInsufficientData)
	}

	enc := features.NewEncoder()
	raws := make([]models.KYCRecord, len(records))
	for i, r := range records {
		raws[i] = r.KYCRecord
	}
	enc.FitCountries(raws)
	norm := features.NewNormalizer(enc)

	var (
		x         [][]float64
		y         []float64
		skipped   int
		positives int
	)
	for i, rec := range records {
		vec, sig, err := norm.Vector(rec.KYCRecord)
		if err != nil {
			skipped++
			t.logger.Warn("skipping invalid dataset record", zap.Int("index", i), zap.Error(err))
			continue
		}
		failed, _, _ := t.labeler.Label(labeling.Subject{
			Occupation:    rec.Occupation,
			SourceOfFunds: rec.SourceOfFunds,
			IDVerified:    sig.IDVerified == 1,
			CrossBorder:   sig.CrossBorder == 1,
		})
		label := 0.0
		if failed {
			label = 1
			positives++
		}
		x = append(x, vec)
		y = append(y, label)
	}

	if len(x) < t.cnf.MinSamples {
		observability.TrainingRuns.WithLabelValues("insufficient_data").Inc()
		return nil, pkg.NewAppError(pkg.ErrInsufficientDataCode,
			fmt.Sprintf("only %d of %d records are usable, need at least %d", len(x), len(records), t.cnf.MinSamples),
			pkg.ErrInsufficientData)
	}
	if positives == 0 || positives == len(y) {
		observability.TrainingRuns.WithLabelValues("insufficient_data").Inc()
		return nil, pkg.NewAppError(pkg.ErrInsufficientDataCode,
			"dataset contains a single label class", pkg.ErrInsufficientData)
	}

	xTrain, xTest, yTrain, yTest := ml.TrainTestSplit(x, y, t.cnf.TestFraction, t.cnf.Seed)
	model := ml.Fit(xTrain, yTrain, t.cnf.TrainEpochs, t.cnf.LearningRate)
	report := ml.Evaluate(model, xTest, yTest, t.cnf.Threshold)

	art := &ml.Artifact{
		SchemaVersion: ml.SchemaVersion,
		RunID:         uuid.New().String(),
		TrainedAt:     time.Now().UTC(),
		Threshold:     t.cnf.Threshold,
		Encoder:       enc,
		Model:         model,
		Metrics:       report,
	}
	if err := ml.SaveArtifact(t.cnf.ModelPath, art); err != nil {
		observability.TrainingRuns.WithLabelValues("error").Inc()
		return nil, err
	}

	observability.TrainingRuns.WithLabelValues("ok").Inc()
	observability.ModelAccuracy.Set(report.Accuracy)

	t.logger.Info("model trained",
		zap.String(pkg.RunId, art.RunID),
		zap.Int("train_samples", len(xTrain)),
		zap.Int("test_samples", len(xTest)),
		zap.Int("skipped_records", skipped),
		zap.Int("features", enc.Dim()),
		zap.Float64("accuracy", report.Accuracy),
		zap.Float64("f1", report.F1),
	)

	t.tracker.LogRun(ctx, tracking.Run{
		RunID:      art.RunID,
		StartedAt:  start.UTC(),
		DurationMs: time.Since(start).Milliseconds(),
		Params: map[string]string{
			"epochs":        strconv.Itoa(t.cnf.TrainEpochs),
			"learning_rate": fmt.Sprintf("%g", t.cnf.LearningRate),
			"test_fraction": fmt.Sprintf("%g", t.cnf.TestFraction),
			"threshold":     fmt.Sprintf("%g", t.cnf.Threshold),
			"seed":          strconv.FormatInt(t.cnf.Seed, 10),
			"features":      strconv.Itoa(enc.Dim()),
			"samples":       strconv.Itoa(len(x)),
		},
		Metrics: map[string]float64{
			"accuracy":  report.Accuracy,
			"precision": report.Precision,
			"recall":    report.Recall,
			"f1":        report.F1,
		},
	})

	return art, nil
}
