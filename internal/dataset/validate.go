package dataset

import (
	"fmt"
	"strings"
)

// Validator applies the run-level quality gate to a candidate table before
// merge. Any violation aborts the whole batch; it is not a per-row filter.
type Validator struct {
	MinRate float64
	MaxRate float64
}

// NewValidator returns a Validator with the given cap rate bounds.
func NewValidator(minRate, maxRate float64) *Validator {
	return &Validator{MinRate: minRate, MaxRate: maxRate}
}

// Validate checks required fields, the tightened year window [2020, 2030],
// half in {1, 2}, and every populated rate cell against the configured
// bounds. It returns one descriptive error string per violation class,
// listing the offending values.
func (v *Validator) Validate(rows []Row) []string {
	var errs []string

	var missingSector, missingMarket []int
	var badYears []int
	var badHalves []int
	badRates := map[string][]float64{}

	for i, r := range rows {
		if strings.TrimSpace(r.Sector) == "" {
			missingSector = append(missingSector, i)
		}
		if strings.TrimSpace(r.Market) == "" {
			missingMarket = append(missingMarket, i)
		}
		if r.ReportYear < 2020 || r.ReportYear > 2030 {
			badYears = append(badYears, r.ReportYear)
		}
		if r.ReportHalf != 1 && r.ReportHalf != 2 {
			badHalves = append(badHalves, r.ReportHalf)
		}

		for col, val := range map[string]*float64{
			"H1_Low": r.H1Low, "H1_High": r.H1High,
			"H2_Low": r.H2Low, "H2_High": r.H2High,
			"H1_Alt_Low": r.H1AltLow, "H1_Alt_High": r.H1AltHigh,
			"H2_Alt_Low": r.H2AltLow, "H2_Alt_High": r.H2AltHigh,
		} {
			if val != nil && (*val < v.MinRate || *val > v.MaxRate) {
				badRates[col] = append(badRates[col], *val)
			}
		}
	}

	if len(missingSector) > 0 {
		errs = append(errs, fmt.Sprintf("missing required Sector in rows: %v", missingSector))
	}
	if len(missingMarket) > 0 {
		errs = append(errs, fmt.Sprintf("missing required Market in rows: %v", missingMarket))
	}
	if len(badYears) > 0 {
		errs = append(errs, fmt.Sprintf("invalid years found: %v", badYears))
	}
	if len(badHalves) > 0 {
		errs = append(errs, fmt.Sprintf("invalid halves found: %v", badHalves))
	}
	for _, col := range []string{"H1_Low", "H1_High", "H2_Low", "H2_High", "H1_Alt_Low", "H1_Alt_High", "H2_Alt_Low", "H2_Alt_High"} {
		if vals, ok := badRates[col]; ok {
			errs = append(errs, fmt.Sprintf("invalid cap rates in %s: %v", col, vals))
		}
	}

	return errs
}
