package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/zulandar/starindex/internal/catalog"
	"github.com/zulandar/starindex/internal/config"
	"github.com/zulandar/starindex/internal/logging"
	"github.com/zulandar/starindex/internal/orchestration"
	"go.uber.org/zap"
)

const defaultConfigPath = "starindex.yaml"

func newGenerateCmd() *cobra.Command {
	var (
		configPath string
		langs      []string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Regenerate the message index",
		Long:  "Reads the dump and text maps, rebuilds every contact conversation and replaces <output_dir>/<lang>/messages for each language. Publishes to the catalog when one is configured.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, configPath, langs)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to starindex config file")
	cmd.Flags().StringSliceVarP(&langs, "lang", "l", nil, "languages to generate (overrides config)")
	return cmd
}

func runGenerate(cmd *cobra.Command, configPath string, langs []string) error {
	cfg, log, err := loadRun(configPath)
	if err != nil {
		return err
	}
	defer log.Sync()

	return generateOnce(cmd, cfg, log, langs)
}

// loadRun loads the config and builds the logger it describes.
func loadRun(configPath string) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

// generateOnce runs one full generation and prints a line per language.
func generateOnce(cmd *cobra.Command, cfg *config.Config, log *zap.Logger, langs []string) error {
	out := cmd.OutOrStdout()
	opts := orchestration.GenerateOpts{
		Config:    cfg,
		Languages: langs,
		Log:       log,
	}

	if cfg.Catalog.Enabled() {
		db, err := catalog.Open(cfg.Catalog)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}
		opts.DB = db
	}

	started := time.Now()
	res, err := orchestration.Generate(opts)
	if err != nil {
		return err
	}

	for _, lr := range res.Languages {
		fmt.Fprintf(out, "%s: %d contacts, %d sections, %d messages -> %s (%s)\n",
			lr.Language, lr.Contacts, lr.Sections, lr.Messages, lr.Dir, lr.Duration.Round(time.Millisecond))
		if lr.RunID != "" {
			fmt.Fprintf(out, "  catalog run %s\n", lr.RunID)
		}
	}
	fmt.Fprintf(out, "Generated %d language(s) in %s\n", len(res.Languages), time.Since(started).Round(time.Millisecond))
	return nil
}
