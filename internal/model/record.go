// Package model defines the core data types for cap rate extraction:
// records, parse results, and processing results.
package model

import (
	"fmt"
	"time"

	"github.com/rotisserie/eris"
)

// Sector is the property sector a cap rate observation belongs to.
type Sector string

const (
	SectorMultifamily Sector = "Multifamily"
	SectorOffice      Sector = "Office"
	SectorIndustrial  Sector = "Industrial"
	SectorRetail      Sector = "Retail"
	SectorHotel       Sector = "Hotel"
)

// Sectors lists all sectors in detection priority order.
var Sectors = []Sector{
	SectorMultifamily,
	SectorOffice,
	SectorIndustrial,
	SectorRetail,
	SectorHotel,
}

// Valid reports whether s is one of the known sectors.
func (s Sector) Valid() bool {
	switch s {
	case SectorMultifamily, SectorOffice, SectorIndustrial, SectorRetail, SectorHotel:
		return true
	}
	return false
}

func (s Sector) String() string { return string(s) }

const (
	minReportYear = 2000
	maxReportYear = 2030

	// Schema bounds for any rate column. Tighter run-level bounds are
	// applied later by the dataset validator.
	minRate = 0.0
	maxRate = 20.0
)

// CapRateRecord is one observed cap rate data point extracted from a report.
// Records are immutable once created; a later observation with the same
// natural key supersedes rather than mutates.
type CapRateRecord struct {
	Sector      Sector     `json:"sector"`
	Subsector   string     `json:"subsector,omitempty"`
	Region      string     `json:"region,omitempty"`
	Market      string     `json:"market"`
	ReportYear  int        `json:"report_year"`
	ReportHalf  int        `json:"report_half"`
	H1Low       *float64   `json:"h1_low,omitempty"`
	H1High      *float64   `json:"h1_high,omitempty"`
	H2Low       *float64   `json:"h2_low,omitempty"`
	H2High      *float64   `json:"h2_high,omitempty"`
	H1AltLow    *float64   `json:"h1_alt_low,omitempty"`
	H1AltHigh   *float64   `json:"h1_alt_high,omitempty"`
	H2AltLow    *float64   `json:"h2_alt_low,omitempty"`
	H2AltHigh   *float64   `json:"h2_alt_high,omitempty"`
	SourceFile  string     `json:"source_file"`
	ExtractedAt time.Time  `json:"extracted_at"`
}

// NaturalKey uniquely identifies one logical observation in the canonical
// dataset. At most one row per key survives a merge.
type NaturalKey struct {
	Sector Sector
	Market string
	Year   int
	Half   int
}

// Key returns the record's natural key.
func (r CapRateRecord) Key() NaturalKey {
	return NaturalKey{Sector: r.Sector, Market: r.Market, Year: r.ReportYear, Half: r.ReportHalf}
}

// NewCapRateRecord constructs a record and enforces the schema-level
// constraints: known sector, non-empty market, year in [2000, 2030],
// half in {1, 2}, every populated rate in [0, 20].
func NewCapRateRecord(r CapRateRecord) (CapRateRecord, error) {
	if !r.Sector.Valid() {
		return CapRateRecord{}, eris.Errorf("model: invalid sector %q", r.Sector)
	}
	if r.Market == "" {
		return CapRateRecord{}, eris.New("model: market is required")
	}
	if r.ReportYear < minReportYear || r.ReportYear > maxReportYear {
		return CapRateRecord{}, eris.Errorf("model: report year %d out of range [%d, %d]", r.ReportYear, minReportYear, maxReportYear)
	}
	if r.ReportHalf != 1 && r.ReportHalf != 2 {
		return CapRateRecord{}, eris.Errorf("model: report half %d must be 1 or 2", r.ReportHalf)
	}
	for name, v := range map[string]*float64{
		"h1_low": r.H1Low, "h1_high": r.H1High,
		"h2_low": r.H2Low, "h2_high": r.H2High,
		"h1_alt_low": r.H1AltLow, "h1_alt_high": r.H1AltHigh,
		"h2_alt_low": r.H2AltLow, "h2_alt_high": r.H2AltHigh,
	} {
		if v != nil && (*v < minRate || *v > maxRate) {
			return CapRateRecord{}, eris.Errorf("model: %s %.2f out of range [%.0f, %.0f]", name, *v, minRate, maxRate)
		}
	}
	if r.ExtractedAt.IsZero() {
		r.ExtractedAt = time.Now().UTC()
	}
	return r, nil
}

// Inverted reports whether any populated (low, high) pair has low > high.
// Inverted pairs are accepted but surfaced as a diagnostic count per run.
func (r CapRateRecord) Inverted() bool {
	pairs := [][2]*float64{
		{r.H1Low, r.H1High},
		{r.H2Low, r.H2High},
		{r.H1AltLow, r.H1AltHigh},
		{r.H2AltLow, r.H2AltHigh},
	}
	for _, p := range pairs {
		if p[0] != nil && p[1] != nil && *p[0] > *p[1] {
			return true
		}
	}
	return false
}

// Period returns the record's reporting period as "YYYY-HN".
func (r CapRateRecord) Period() string {
	return fmt.Sprintf("%d-H%d", r.ReportYear, r.ReportHalf)
}
