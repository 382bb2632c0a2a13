// Package parser turns survey PDF text into cap rate records. A running
// classification context (sector, sub-sector, region) is folded across
// each page's blocks in reading order, and lines carrying both a plausible
// market name and a cap-rate figure become candidate records.
package parser

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/caprate-cli/internal/model"
	"github.com/sells-group/caprate-cli/internal/pdftext"
	"github.com/sells-group/caprate-cli/internal/textutil"
)

// Config carries the parsing knobs.
type Config struct {
	MinRate         float64
	MaxRate         float64
	MinMarketLength int
	ValidMarkets    []string
}

// Parser extracts cap rate records from survey report files.
type Parser struct {
	cfg    Config
	blocks pdftext.Extractor
}

// New returns a Parser reading page blocks through the given extractor.
func New(cfg Config, blocks pdftext.Extractor) *Parser {
	if cfg.MinRate == 0 && cfg.MaxRate == 0 {
		cfg.MinRate = DefaultMinRate
		cfg.MaxRate = DefaultMaxRate
	}
	if cfg.MinMarketLength == 0 {
		cfg.MinMarketLength = 3
	}
	return &Parser{cfg: cfg, blocks: blocks}
}

// ParseFile parses one report file into a ParseResult. Whole-file failures
// (missing file, unresolvable period, unreadable content) come back as a
// failed result with a descriptive error; they never panic or abort a
// multi-file batch.
func (p *Parser) ParseFile(path string) model.ParseResult {
	info, err := os.Stat(path)
	if err != nil {
		return model.FailedParse(fmt.Sprintf("file not found: %s", path))
	}

	name := filepath.Base(path)
	year, half, ok := ResolvePeriod(name)
	if !ok {
		return model.FailedParse(fmt.Sprintf("could not determine reporting period from filename: %s", name))
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return model.FailedParse(fmt.Sprintf("reading %s: %v", name, err))
	}

	pages, err := p.blocks.Pages(path)
	if err != nil {
		return model.FailedParse(fmt.Sprintf("parsing failed: %v", err))
	}

	var (
		records  []model.CapRateRecord
		skipped  int
		inverted int
	)
	for _, page := range pages {
		pageRecords, pageSkipped := p.parsePage(page, year, half, path)
		records = append(records, pageRecords...)
		skipped += pageSkipped
	}
	for _, r := range records {
		if r.Inverted() {
			inverted++
		}
	}

	if skipped > 0 || inverted > 0 {
		zap.L().Debug("parse diagnostics",
			zap.String("file", name),
			zap.Int("skipped_lines", skipped),
			zap.Int("inverted_pairs", inverted),
		)
	}

	sum := sha256.Sum256(content)
	return model.ParseResult{
		Records: records,
		Success: true,
		Metadata: model.ParseMetadata{
			Filename:      name,
			FileSize:      info.Size(),
			FileHash:      hex.EncodeToString(sum[:]),
			ReportYear:    year,
			ReportHalf:    half,
			RecordCount:   len(records),
			SkippedLines:  skipped,
			InvertedPairs: inverted,
			ParsedAt:      time.Now().UTC().Format(time.RFC3339),
			ParserVersion: model.ToolVersion,
		},
	}
}

// parsePage folds the classification context across one page's blocks and
// collects the records they yield. Context resets at page boundaries.
func (p *Parser) parsePage(blocks []pdftext.Block, year, half int, sourceFile string) ([]model.CapRateRecord, int) {
	var (
		records []model.CapRateRecord
		skipped int
	)

	ctx := Context{}
	for _, block := range blocks {
		text := textutil.Clean(block.Text)
		if text == "" {
			continue
		}

		ctx = Advance(ctx, text)

		blockRecords, blockSkipped := p.extractRecords(text, ctx, year, half, sourceFile)
		records = append(records, blockRecords...)
		skipped += blockSkipped
	}

	return records, skipped
}

// extractRecords emits records for every line of a block that carries both
// a validated market and at least one in-range rate pair. A construction
// failure skips that single line only.
func (p *Parser) extractRecords(text string, ctx Context, year, half int, sourceFile string) ([]model.CapRateRecord, int) {
	if !ctx.HasSector {
		return nil, 0
	}

	var (
		records []model.CapRateRecord
		skipped int
	)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		market := extractMarketName(line)
		if market == "" || !p.isValidMarket(market) {
			continue
		}

		rates := extractCapRates(line, p.cfg.MinRate, p.cfg.MaxRate)
		if len(rates) == 0 {
			continue
		}

		rec := model.CapRateRecord{
			Sector:     ctx.Sector,
			Subsector:  ctx.Subsector,
			Region:     ctx.Region,
			Market:     market,
			ReportYear: year,
			ReportHalf: half,
			H1Low:      &rates[0].Low,
			H1High:     &rates[0].High,
			SourceFile: sourceFile,
		}
		if len(rates) > 1 {
			rec.H1AltLow = &rates[1].Low
			rec.H1AltHigh = &rates[1].High
		}

		built, err := model.NewCapRateRecord(rec)
		if err != nil {
			skipped++
			continue
		}
		records = append(records, built)
	}

	return records, skipped
}
