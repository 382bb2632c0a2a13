package main

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var processOutputDir string

var processCmd = &cobra.Command{
	Use:   "process <report.pdf>",
	Short: "Parse one survey report and merge it into the canonical table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("parse"); err != nil {
			return err
		}

		outputDir := processOutputDir
		if outputDir == "" {
			outputDir = cfg.Output.Dir
		}

		result := newParser().ParseFile(args[0])
		if !result.Success {
			return eris.New("parse failed: " + strings.Join(result.Errors, "; "))
		}

		proc, _, err := newProcessor(outputDir)
		if err != nil {
			return eris.Wrap(err, "init store")
		}

		out := proc.Process(result)
		if !out.Success {
			return eris.New("processing failed: " + strings.Join(out.Errors, "; "))
		}

		zap.L().Info("report processed",
			zap.String("file", result.Metadata.Filename),
			zap.Int("year", result.Metadata.ReportYear),
			zap.Int("half", result.Metadata.ReportHalf),
			zap.Int("new_records", out.NewRecords),
			zap.Int("total_records", out.TotalRecords),
		)

		return nil
	},
}

func init() {
	processCmd.Flags().StringVar(&processOutputDir, "output", "", "output directory (default from config)")
	rootCmd.AddCommand(processCmd)
}
