package main

import (
	"github.com/riskforge/payrisk/configs"
	"github.com/riskforge/payrisk/internal/dataset"
	"github.com/riskforge/payrisk/internal/labeling"
	"github.com/riskforge/payrisk/pkg"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func datasetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Generate a synthetic labeled dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			count, _ := cmd.Flags().GetInt("count")
			out, _ := cmd.Flags().GetString("out")
			seed, _ := cmd.Flags().GetInt64("seed")
			return runDataset(count, out, seed, cmd.Flags().Changed("seed"))
		},
	}

	cmd.Flags().IntP("count", "n", 0, "Number of records (default from config)")
	cmd.Flags().StringP("out", "o", "", "Output path (default from config)")
	cmd.Flags().Int64P("seed", "s", 0, "Generator seed (default from config)")

	return cmd
}

func runDataset(count int, out string, seed int64, seedSet bool) error {
	pkg.InitLogger()
	logger := pkg.Logger
	defer logger.Sync()

	cfg, err := configs.Load(logger)
	if err != nil {
		return err
	}
	if count <= 0 {
		count = cfg.DatasetSize
	}
	if out == "" {
		out = cfg.DatasetPath
	}
	if !seedSet {
		seed = cfg.Seed
	}

	labeler := labeling.NewLabeler(labeling.DefaultRules())
	gen := dataset.NewGenerator(logger, labeler, seed)

	records, err := gen.Generate(count)
	if err != nil {
		return err
	}
	if err := dataset.Save(out, records); err != nil {
		return err
	}

	logger.Info("dataset_written", zap.String("path", out), zap.Int("records", len(records)))
	return nil
}
