package main

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/caprate-cli/internal/model"
)

var (
	updateReportsDir string
	updateOutputDir  string
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Rebuild the dashboard dataset from all survey reports",
	Long:  "Parses every PDF in the reports directory, combines the results into a fresh canonical table, and writes the dashboard outputs.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("parse"); err != nil {
			return err
		}

		reportsDir := updateReportsDir
		if reportsDir == "" {
			reportsDir = cfg.Output.ReportsDir
		}
		outputDir := updateOutputDir
		if outputDir == "" {
			outputDir = cfg.Output.Dir
		}

		files, err := listReports(reportsDir)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return eris.Errorf("no PDF reports found in %s", reportsDir)
		}

		zap.L().Info("parsing reports",
			zap.String("dir", reportsDir),
			zap.Int("files", len(files)),
		)

		// Per-file failures are logged and skipped; the batch continues.
		p := newParser()
		var results []model.ParseResult
		for _, f := range files {
			res := p.ParseFile(f)
			if !res.Success {
				zap.L().Warn("skipping report",
					zap.String("file", filepath.Base(f)),
					zap.Strings("errors", res.Errors),
				)
				continue
			}
			zap.L().Info("parsed report",
				zap.String("file", res.Metadata.Filename),
				zap.Int("records", res.Metadata.RecordCount),
			)
			results = append(results, res)
		}

		proc, _, err := newProcessor(outputDir)
		if err != nil {
			return eris.Wrap(err, "init store")
		}

		out := proc.CombineAll(results)
		if !out.Success {
			return eris.New("processing failed: " + strings.Join(out.Errors, "; "))
		}

		zap.L().Info("dataset updated",
			zap.Int("files", len(results)),
			zap.Int("total_records", out.TotalRecords),
			zap.Strings("periods", out.Batch.UniquePeriods),
		)

		return nil
	},
}

// listReports returns the PDF files in dir sorted by file name, so reports
// combine in a stable order and later periods win on key conflicts.
func listReports(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "read reports dir %s", dir)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func init() {
	updateCmd.Flags().StringVar(&updateReportsDir, "reports", "", "reports directory (default from config)")
	updateCmd.Flags().StringVar(&updateOutputDir, "output", "", "output directory (default from config)")
	rootCmd.AddCommand(updateCmd)
}
