package dataset

import (
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/caprate-cli/internal/model"
)

// Processor runs the merge/validate/aggregate/persist stage over parse
// results. All processing is synchronous and single-writer; a run either
// completes or returns a failed result carrying every collected error.
type Processor struct {
	store     *Store
	validator *Validator
}

// NewProcessor wires a Processor to its store and validator.
func NewProcessor(store *Store, validator *Validator) *Processor {
	return &Processor{store: store, validator: validator}
}

// Process merges one parse result incrementally into the canonical table.
// On a natural-key conflict the existing row wins; only rows with unseen
// keys are appended.
func (p *Processor) Process(result model.ParseResult) model.ProcessingResult {
	if !result.Success {
		return model.FailedProcessing(result.Errors...)
	}

	existing, err := p.store.Load()
	if err != nil {
		return model.FailedProcessing(fmt.Sprintf("processing failed: %v", err))
	}

	incoming := FromRecords(result.Records)
	if errs := p.validator.Validate(incoming); len(errs) > 0 {
		return model.FailedProcessing(errs...)
	}

	merged, newCount, updatedCount := Merge(existing, incoming)

	if err := p.persist(merged); err != nil {
		return model.FailedProcessing(fmt.Sprintf("processing failed: %v", err))
	}

	meta := result.Metadata
	if err := p.store.SaveRunMetadata(RunMetadata{
		Processing: ProcessingInfo{
			ProcessedAt:    time.Now().UTC().Format(time.RFC3339),
			TotalRecords:   len(merged),
			NewRecords:     newCount,
			UpdatedRecords: updatedCount,
			ToolVersion:    model.ToolVersion,
		},
		Source: meta,
	}); err != nil {
		return model.FailedProcessing(fmt.Sprintf("processing failed: %v", err))
	}

	zap.L().Info("processed parse result",
		zap.String("file", meta.Filename),
		zap.Int("total", len(merged)),
		zap.Int("new", newCount),
	)

	return model.ProcessingResult{
		Success:        true,
		TotalRecords:   len(merged),
		NewRecords:     newCount,
		UpdatedRecords: updatedCount,
		Source:         &meta,
	}
}

// CombineAll is the primary batch path: it unions the records of every
// parse result, validates the union once, deduplicates by natural key
// keeping the last row in file order (later files win, unlike Process),
// sorts, and persists.
//
// Any failed parse result aborts the whole combination and surfaces every
// collected error.
func (p *Processor) CombineAll(results []model.ParseResult) model.ProcessingResult {
	if len(results) == 0 {
		return model.FailedProcessing("no parse results provided")
	}

	var failures []string
	for _, r := range results {
		if !r.Success {
			failures = append(failures, r.Errors...)
		}
	}
	if len(failures) > 0 {
		return model.FailedProcessing(failures...)
	}

	var all []model.CapRateRecord
	batch := model.BatchMetadata{TotalFiles: len(results)}
	for _, r := range results {
		all = append(all, r.Records...)
		batch.FilesProcessed = append(batch.FilesProcessed, r.Metadata.Filename)
		if r.Metadata.ReportYear != 0 && r.Metadata.ReportHalf != 0 {
			batch.ReportPeriods = append(batch.ReportPeriods,
				fmt.Sprintf("%d-H%d", r.Metadata.ReportYear, r.Metadata.ReportHalf))
		}
	}

	rows := FromRecords(all)
	if errs := p.validator.Validate(rows); len(errs) > 0 {
		return model.ProcessingResult{Success: false, Errors: errs, Batch: &batch}
	}

	rows = dedupeKeepLast(rows)
	sortRows(rows)

	if err := p.persist(rows); err != nil {
		return model.FailedProcessing(fmt.Sprintf("combining results failed: %v", err))
	}

	batch.UniquePeriods = uniqueSorted(batch.ReportPeriods)
	if err := p.store.SaveRunMetadata(RunMetadata{
		Processing: ProcessingInfo{
			ProcessedAt:    time.Now().UTC().Format(time.RFC3339),
			TotalRecords:   len(rows),
			NewRecords:     len(rows),
			UpdatedRecords: 0,
			ToolVersion:    model.ToolVersion,
		},
		Source: batch,
	}); err != nil {
		return model.FailedProcessing(fmt.Sprintf("combining results failed: %v", err))
	}

	zap.L().Info("combined parse results",
		zap.Int("files", len(results)),
		zap.Int("records", len(rows)),
		zap.Strings("periods", batch.UniquePeriods),
	)

	return model.ProcessingResult{
		Success:      true,
		TotalRecords: len(rows),
		NewRecords:   len(rows),
		Batch:        &batch,
	}
}

// persist writes the canonical table and rebuilds the dashboard views.
func (p *Processor) persist(rows []Row) error {
	if err := p.store.SaveTable(rows); err != nil {
		return err
	}
	return p.store.SaveDashboard(BuildDashboard(rows, time.Now()))
}

func uniqueSorted(vals []string) []string {
	set := map[string]struct{}{}
	for _, v := range vals {
		set[v] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
