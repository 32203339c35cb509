package ml

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/riskforge/payrisk/internal/features"
	"github.com/riskforge/payrisk/pkg"
	"github.com/riskforge/payrisk/pkg/utils"
)

const SchemaVersion = 1

// Artifact is the serialized model: fitted parameters, the encoder that
// fixes the feature layout, and the metrics of the run that produced it.
// Written whole on every training run, read-only afterwards.
type Artifact struct {
	SchemaVersion int                 `json:"schema_version"`
	RunID         string              `json:"run_id"`
	TrainedAt     time.Time           `json:"trained_at"`
	Threshold     float64             `json:"threshold"`
	Encoder       *features.Encoder   `json:"encoder"`
	Model         *LogisticRegression `json:"model"`
	Metrics       Report              `json:"metrics"`
}

// SaveArtifact writes the artifact atomically so a reader never observes a
// partially written model.
func SaveArtifact(path string, a *Artifact) error {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return utils.WriteFileAtomic(path, data, 0o644)
}

// LoadArtifact reads and validates a model artifact. A missing, unreadable
// or inconsistent file surfaces as the model-not-found error kind.
func LoadArtifact(path string) (*Artifact, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, pkg.NewAppError(pkg.ErrModelNotFoundCode,
			fmt.Sprintf("model artifact missing at %s", path), pkg.ErrModelNotFound)
	}
	var a Artifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, pkg.NewAppError(pkg.ErrModelNotFoundCode,
			fmt.Sprintf("model artifact at %s is unreadable", path), pkg.ErrModelNotFound)
	}
	if !a.consistent() {
		return nil, pkg.NewAppError(pkg.ErrModelNotFoundCode,
			fmt.Sprintf("model artifact at %s does not match its encoder", path), pkg.ErrModelNotFound)
	}
	return &a, nil
}

// consistent reports whether the stored model matches the encoder layout.
func (a *Artifact) consistent() bool {
	if a.Model == nil || a.Encoder == nil {
		return false
	}
	dim := a.Encoder.Dim()
	return len(a.Model.Weights) == dim &&
		len(a.Model.Means) == dim &&
		len(a.Model.Stds) == dim
}
