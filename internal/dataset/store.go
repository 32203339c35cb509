package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/riskforge/payrisk/internal/models"
	"github.com/riskforge/payrisk/pkg/utils"
)

// Load reads a dataset file: a JSON array of raw records with attached labels.
func Load(path string) ([]models.DatasetRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}
	var records []models.DatasetRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", path, err)
	}
	return records, nil
}

// Save writes records as an indented JSON array, atomically.
func Save(path string, records []models.DatasetRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return utils.WriteFileAtomic(path, data, 0o644)
}
