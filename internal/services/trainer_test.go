package services_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/riskforge/payrisk/configs"
	"github.com/riskforge/payrisk/internal/dataset"
	"github.com/riskforge/payrisk/internal/labeling"
	"github.com/riskforge/payrisk/internal/ml"
	"github.com/riskforge/payrisk/internal/models"
	"github.com/riskforge/payrisk/internal/services"
	"github.com/riskforge/payrisk/pkg"
	"github.com/riskforge/payrisk/pkg/tracking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type captureTracker struct {
	runs []tracking.Run
}

func (c *captureTracker) LogRun(_ context.Context, run tracking.Run) {
	c.runs = append(c.runs, run)
}

func trainerConfig(t *testing.T) *configs.Config {
	dir := t.TempDir()
	return &configs.Config{
		Port:               "8080",
		ModelPath:          filepath.Join(dir, "payment_failure_model.json"),
		DatasetPath:        filepath.Join(dir, "userdata.json"),
		Threshold:          0.5,
		TestFraction:       0.2,
		TrainEpochs:        400,
		LearningRate:       0.1,
		MinSamples:         10,
		Seed:               42,
		DatasetSize:        50,
		TrackingExperiment: "payment_failure_prediction",
		KafkaTopic:         "payrisk.predictions",
	}
}

func writeDataset(t *testing.T, path string, count int) {
	records, err := dataset.NewGenerator(zap.NewNop(), labeling.NewLabeler(labeling.DefaultRules()), 42).Generate(count)
	require.NoError(t, err)
	require.NoError(t, dataset.Save(path, records))
}

func newTrainer(cfg *configs.Config, tracker tracking.Client) services.Trainer {
	return services.NewTrainer(zap.NewNop(), cfg, labeling.NewLabeler(labeling.DefaultRules()), tracker)
}

func TestTrain_WritesLoadableArtifact(t *testing.T) {
	cfg := trainerConfig(t)
	writeDataset(t, cfg.DatasetPath, 50)
	tracker := &captureTracker{}

	art, err := newTrainer(cfg, tracker).Train(context.Background())

	require.NoError(t, err)
	assert.NotEmpty(t, art.RunID)
	assert.Equal(t, ml.SchemaVersion, art.SchemaVersion)
	assert.Equal(t, 0.5, art.Threshold)
	assert.Equal(t, 10, art.Metrics.Samples, "a fifth of the dataset is held out")
	assert.Len(t, art.Model.Weights, art.Encoder.Dim())

	loaded, err := ml.LoadArtifact(cfg.ModelPath)
	require.NoError(t, err)
	assert.Equal(t, art.RunID, loaded.RunID)
	assert.Equal(t, art.Model.Weights, loaded.Model.Weights)
}

func TestTrain_RecordsRunWithTracker(t *testing.T) {
	cfg := trainerConfig(t)
	writeDataset(t, cfg.DatasetPath, 50)
	tracker := &captureTracker{}

	art, err := newTrainer(cfg, tracker).Train(context.Background())

	require.NoError(t, err)
	require.Len(t, tracker.runs, 1)
	run := tracker.runs[0]
	assert.Equal(t, art.RunID, run.RunID)
	assert.Equal(t, "400", run.Params["epochs"])
	assert.Equal(t, "0.1", run.Params["learning_rate"])
	assert.Contains(t, run.Metrics, "accuracy")
	assert.Contains(t, run.Metrics, "f1")
}

func TestTrain_MissingDatasetFails(t *testing.T) {
	cfg := trainerConfig(t)

	_, err := newTrainer(cfg, tracking.NoopClient{}).Train(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read dataset")
}

func TestTrain_TooFewRecords(t *testing.T) {
	cfg := trainerConfig(t)
	writeDataset(t, cfg.DatasetPath, 5)

	_, err := newTrainer(cfg, tracking.NoopClient{}).Train(context.Background())

	assert.ErrorIs(t, err, pkg.ErrInsufficientData)
	var appErr pkg.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkg.ErrInsufficientDataCode, appErr.Code)
}

func TestTrain_SingleClassDatasetFails(t *testing.T) {
	cfg := trainerConfig(t)
	safe := models.KYCRecord{
		Occupation:           "employee",
		PurposeOfTransaction: "bills",
		SourceOfFunds:        "Bank Transfer",
		CountryOfBirth:       "IN",
		Nationality:          "IN",
		IDVerificationStatus: "Y",
		DateOfBirth:          "1990-01-01",
		Receiver:             models.Receiver{Address: models.Address{CountryCode: "IN"}},
	}
	records := make([]models.DatasetRecord, 12)
	for i := range records {
		records[i] = models.DatasetRecord{KYCRecord: safe}
	}
	require.NoError(t, dataset.Save(cfg.DatasetPath, records))

	_, err := newTrainer(cfg, tracking.NoopClient{}).Train(context.Background())

	assert.ErrorIs(t, err, pkg.ErrInsufficientData)
}

func TestTrain_SkipsUnparseableRecords(t *testing.T) {
	cfg := trainerConfig(t)
	records, err := dataset.NewGenerator(zap.NewNop(), labeling.NewLabeler(labeling.DefaultRules()), 42).Generate(50)
	require.NoError(t, err)
	broken := records[0]
	broken.DateOfBirth = "not-a-date"
	records = append(records, broken, broken)
	require.NoError(t, dataset.Save(cfg.DatasetPath, records))

	art, err := newTrainer(cfg, tracking.NoopClient{}).Train(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 10, art.Metrics.Samples, "broken records are dropped before the split")
}
