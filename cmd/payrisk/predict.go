package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/riskforge/payrisk/configs"
	"github.com/riskforge/payrisk/internal/dtos"
	"github.com/riskforge/payrisk/internal/ml"
	"github.com/riskforge/payrisk/internal/models"
	"github.com/riskforge/payrisk/internal/services"
	"github.com/riskforge/payrisk/pkg"
	"github.com/spf13/cobra"
)

func predictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict '<json-record>'",
		Short: "Score a raw KYC record against the trained model",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			threshold, _ := cmd.Flags().GetFloat64("threshold")
			var record string
			if len(args) == 1 {
				record = args[0]
			}
			return runPredict(cmd.Context(), record, file, threshold)
		},
	}

	cmd.Flags().StringP("file", "f", "", "Score every record in a JSON array file")
	cmd.Flags().Float64P("threshold", "t", 0, "Decision threshold override (default from config)")

	return cmd
}

func runPredict(ctx context.Context, record, file string, threshold float64) error {
	pkg.InitLogger()
	logger := pkg.Logger
	defer logger.Sync()

	if (record == "") == (file == "") {
		return errors.New("pass a JSON record argument or --file, not both")
	}

	cfg, err := configs.Load(logger)
	if err != nil {
		return err
	}
	art, err := ml.LoadArtifact(cfg.ModelPath)
	if err != nil {
		return err
	}
	if threshold <= 0 {
		threshold = cfg.Threshold
	}
	predictor := services.NewPredictor(logger, art, threshold, nil)

	if file != "" {
		return predictBatch(ctx, predictor, file)
	}

	var rec models.KYCRecord
	if err := json.Unmarshal([]byte(record), &rec); err != nil {
		return pkg.NewAppError(pkg.ErrInvalidInputCode, "record is not valid JSON", err)
	}
	pred, err := predictor.Predict(ctx, uuid.New().String(), rec)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(toCLIPrediction(pred), "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func predictBatch(ctx context.Context, predictor services.Predictor, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var recs []models.KYCRecord
	if err := json.Unmarshal(raw, &recs); err != nil {
		return pkg.NewAppError(pkg.ErrInvalidInputCode, "file is not a JSON array of records", err)
	}

	results := make([]dtos.CLIPrediction, 0, len(recs))
	for i, rec := range recs {
		pred, err := predictor.Predict(ctx, uuid.New().String(), rec)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		results = append(results, toCLIPrediction(pred))
	}

	out, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func toCLIPrediction(pred services.Prediction) dtos.CLIPrediction {
	failed := 0
	if pred.Failed {
		failed = 1
	}
	return dtos.CLIPrediction{
		PaymentFailed:      failed,
		FailureProbability: pred.Probability,
	}
}
