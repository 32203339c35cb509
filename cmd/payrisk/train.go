package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/riskforge/payrisk/configs"
	"github.com/riskforge/payrisk/internal/labeling"
	"github.com/riskforge/payrisk/internal/services"
	"github.com/riskforge/payrisk/pkg"
	"github.com/riskforge/payrisk/pkg/tracking"
	"github.com/spf13/cobra"
)

func trainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the failure model from the labeled dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, _ := cmd.Flags().GetString("data")
			model, _ := cmd.Flags().GetString("model")
			return runTrain(cmd.Context(), data, model)
		},
	}

	cmd.Flags().String("data", "", "Dataset path (default from config)")
	cmd.Flags().String("model", "", "Artifact output path (default from config)")

	return cmd
}

func runTrain(ctx context.Context, data, model string) error {
	pkg.InitLogger()
	logger := pkg.Logger
	defer logger.Sync()

	cfg, err := configs.Load(logger)
	if err != nil {
		return err
	}
	if data != "" {
		cfg.DatasetPath = data
	}
	if model != "" {
		cfg.ModelPath = model
	}

	labeler := labeling.NewLabeler(labeling.DefaultRules())
	tracker := tracking.NewClient(logger, cfg.TrackingURL, cfg.TrackingExperiment)
	trainer := services.NewTrainer(logger, cfg, labeler, tracker)

	art, err := trainer.Train(ctx)
	if err != nil {
		return err
	}

	// Print the held-out metrics of the run
	out, err := json.MarshalIndent(art.Metrics, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
