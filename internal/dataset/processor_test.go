package dataset

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/caprate-cli/internal/model"
)

func newTestProcessor(t *testing.T) *Processor {
	t.Helper()
	return NewProcessor(newTestStore(t), NewValidator(0.5, 15.0))
}

func record(t *testing.T, sector model.Sector, market string, year, half int, low, high float64) model.CapRateRecord {
	t.Helper()
	rec, err := model.NewCapRateRecord(model.CapRateRecord{
		Sector:     sector,
		Market:     market,
		ReportYear: year,
		ReportHalf: half,
		H1Low:      &low,
		H1High:     &high,
		SourceFile: "test.pdf",
	})
	require.NoError(t, err)
	return rec
}

func successResult(t *testing.T, filename string, year, half int, records ...model.CapRateRecord) model.ParseResult {
	t.Helper()
	return model.ParseResult{
		Records: records,
		Success: true,
		Metadata: model.ParseMetadata{
			Filename:   filename,
			ReportYear: year,
			ReportHalf: half,
		},
	}
}

func TestProcessIncrementalMerge(t *testing.T) {
	t.Parallel()

	p := newTestProcessor(t)

	first := p.Process(successResult(t, "h1_2024.pdf", 2024, 1,
		record(t, model.SectorOffice, "Boston", 2024, 1, 6.0, 7.0),
	))
	require.True(t, first.Success, "errors: %v", first.Errors)
	assert.Equal(t, 1, first.TotalRecords)
	assert.Equal(t, 1, first.NewRecords)

	// Re-processing the same key does not overwrite the stored values.
	second := p.Process(successResult(t, "h1_2024.pdf", 2024, 1,
		record(t, model.SectorOffice, "Boston", 2024, 1, 9.0, 9.5),
	))
	require.True(t, second.Success)
	assert.Equal(t, 1, second.TotalRecords)
	assert.Equal(t, 0, second.NewRecords)
	assert.Equal(t, 0, second.UpdatedRecords)

	rows, err := p.store.Load()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 6.0, *rows[0].H1Low)
}

func TestProcessFailedParsePassthrough(t *testing.T) {
	t.Parallel()

	p := newTestProcessor(t)
	result := p.Process(model.FailedParse("could not determine reporting period from filename: report.pdf"))
	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
}

func TestProcessValidationGateAborts(t *testing.T) {
	t.Parallel()

	p := newTestProcessor(t)

	// Year passes record construction (2000-2030) but fails the tighter
	// dataset window (2020-2030).
	result := p.Process(successResult(t, "h1_2015.pdf", 2015, 1,
		record(t, model.SectorOffice, "Boston", 2015, 1, 6.0, 7.0),
	))
	assert.False(t, result.Success)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "invalid years")

	// Nothing was persisted.
	_, err := os.Stat(p.store.TablePath())
	assert.True(t, os.IsNotExist(err))
}

func TestCombineAllLaterFilesWin(t *testing.T) {
	t.Parallel()

	p := newTestProcessor(t)

	older := successResult(t, "h1_2024.pdf", 2024, 1,
		record(t, model.SectorOffice, "Boston", 2024, 1, 6.0, 7.0),
	)
	newer := successResult(t, "h1_2024_rev2.pdf", 2024, 1,
		record(t, model.SectorOffice, "Boston", 2024, 1, 6.5, 7.5),
	)

	result := p.CombineAll([]model.ParseResult{older, newer})
	require.True(t, result.Success, "errors: %v", result.Errors)
	assert.Equal(t, 1, result.TotalRecords)

	rows, err := p.store.Load()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	// Unlike Process, the later file's values replace the earlier one's.
	assert.Equal(t, 6.5, *rows[0].H1Low)
}

func TestCombineAllIdempotent(t *testing.T) {
	t.Parallel()

	p := newTestProcessor(t)
	results := []model.ParseResult{
		successResult(t, "h1_2024.pdf", 2024, 1,
			record(t, model.SectorIndustrial, "Los Angeles", 2024, 1, 4.5, 5.5),
			record(t, model.SectorIndustrial, "Dallas", 2024, 1, 5.0, 6.0),
		),
		successResult(t, "h2_2024.pdf", 2024, 2,
			record(t, model.SectorIndustrial, "Los Angeles", 2024, 2, 4.6, 5.6),
		),
	}

	first := p.CombineAll(results)
	require.True(t, first.Success)
	firstRows, err := p.store.Load()
	require.NoError(t, err)

	second := p.CombineAll(results)
	require.True(t, second.Success)
	secondRows, err := p.store.Load()
	require.NoError(t, err)

	assert.Equal(t, firstRows, secondRows)
	assertUniqueKeys(t, secondRows)
}

func TestCombineAllAbortsOnAnyFailure(t *testing.T) {
	t.Parallel()

	p := newTestProcessor(t)
	results := []model.ParseResult{
		successResult(t, "h1_2024.pdf", 2024, 1,
			record(t, model.SectorOffice, "Boston", 2024, 1, 6.0, 7.0),
		),
		model.FailedParse("file not found: h2_2024.pdf"),
		model.FailedParse("could not determine reporting period from filename: report.pdf"),
	}

	result := p.CombineAll(results)
	assert.False(t, result.Success)
	assert.Len(t, result.Errors, 2)

	_, err := os.Stat(p.store.TablePath())
	assert.True(t, os.IsNotExist(err))
}

func TestCombineAllEmptyInput(t *testing.T) {
	t.Parallel()

	p := newTestProcessor(t)
	result := p.CombineAll(nil)
	assert.False(t, result.Success)
	require.NotEmpty(t, result.Errors)
}

func TestCombineAllBatchMetadata(t *testing.T) {
	t.Parallel()

	p := newTestProcessor(t)
	results := []model.ParseResult{
		successResult(t, "h1_2024.pdf", 2024, 1,
			record(t, model.SectorOffice, "Boston", 2024, 1, 6.0, 7.0),
		),
		successResult(t, "h2_2024.pdf", 2024, 2,
			record(t, model.SectorOffice, "Boston", 2024, 2, 6.1, 7.1),
		),
	}

	result := p.CombineAll(results)
	require.True(t, result.Success)
	require.NotNil(t, result.Batch)
	assert.Equal(t, 2, result.Batch.TotalFiles)
	assert.Equal(t, []string{"h1_2024.pdf", "h2_2024.pdf"}, result.Batch.FilesProcessed)
	assert.Equal(t, []string{"2024-H1", "2024-H2"}, result.Batch.UniquePeriods)
}
