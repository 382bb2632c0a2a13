package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/caprate-cli/internal/config"
	"github.com/sells-group/caprate-cli/internal/dataset"
	"github.com/sells-group/caprate-cli/internal/parser"
	"github.com/sells-group/caprate-cli/internal/pdftext"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "caprate",
	Short: "Cap rate survey extraction pipeline",
	Long:  "Parses semi-annual cap rate survey PDFs, merges the extracted records into a canonical table, and publishes the dashboard dataset.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// newParser builds the file parser from the loaded configuration.
func newParser() *parser.Parser {
	return parser.New(parser.Config{
		MinRate:         cfg.Parsing.MinCapRate,
		MaxRate:         cfg.Parsing.MaxCapRate,
		MinMarketLength: cfg.Validation.MinMarketLength,
		ValidMarkets:    cfg.Validation.ValidMarkets,
	}, pdftext.NewReader())
}

// newProcessor builds the dataset processor and its backing store.
func newProcessor(outputDir string) (*dataset.Processor, *dataset.Store, error) {
	st, err := dataset.NewStore(outputDir)
	if err != nil {
		return nil, nil, err
	}
	v := dataset.NewValidator(cfg.Parsing.MinCapRate, cfg.Parsing.MaxCapRate)
	return dataset.NewProcessor(st, v), st, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
