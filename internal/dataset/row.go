// Package dataset maintains the canonical cap rate table: validation,
// merge/dedup by natural key, derived dashboard views, and persistence
// with backup-before-overwrite.
package dataset

import (
	"sort"

	"github.com/sells-group/caprate-cli/internal/model"
)

// Row is one canonical table row. Column names and order match the
// persisted CSV exactly; optional rate cells round-trip as nil.
type Row struct {
	Sector     string   `csv:"Sector" json:"sector"`
	Subsector  string   `csv:"Subsector" json:"subsector,omitempty"`
	Region     string   `csv:"Region" json:"region,omitempty"`
	Market     string   `csv:"Market" json:"market"`
	ReportYear int      `csv:"Report_Year" json:"reportYear"`
	ReportHalf int      `csv:"Report_Half" json:"reportHalf"`
	H1Low      *float64 `csv:"H1_Low" json:"h1Low,omitempty"`
	H1High     *float64 `csv:"H1_High" json:"h1High,omitempty"`
	H2Low      *float64 `csv:"H2_Low" json:"h2Low,omitempty"`
	H2High     *float64 `csv:"H2_High" json:"h2High,omitempty"`
	H1AltLow   *float64 `csv:"H1_Alt_Low" json:"h1AltLow,omitempty"`
	H1AltHigh  *float64 `csv:"H1_Alt_High" json:"h1AltHigh,omitempty"`
	H2AltLow   *float64 `csv:"H2_Alt_Low" json:"h2AltLow,omitempty"`
	H2AltHigh  *float64 `csv:"H2_Alt_High" json:"h2AltHigh,omitempty"`
}

// Key returns the row's natural key.
func (r Row) Key() model.NaturalKey {
	return model.NaturalKey{
		Sector: model.Sector(r.Sector),
		Market: r.Market,
		Year:   r.ReportYear,
		Half:   r.ReportHalf,
	}
}

// Period returns the row's reporting period as "YYYY-HN".
func (r Row) Period() string {
	return model.CapRateRecord{ReportYear: r.ReportYear, ReportHalf: r.ReportHalf}.Period()
}

// FromRecords projects parsed records onto canonical rows, keeping input
// order. Provenance fields (source file, extraction time) do not travel
// into the canonical table.
func FromRecords(records []model.CapRateRecord) []Row {
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, Row{
			Sector:     rec.Sector.String(),
			Subsector:  rec.Subsector,
			Region:     rec.Region,
			Market:     rec.Market,
			ReportYear: rec.ReportYear,
			ReportHalf: rec.ReportHalf,
			H1Low:      rec.H1Low,
			H1High:     rec.H1High,
			H2Low:      rec.H2Low,
			H2High:     rec.H2High,
			H1AltLow:   rec.H1AltLow,
			H1AltHigh:  rec.H1AltHigh,
			H2AltLow:   rec.H2AltLow,
			H2AltHigh:  rec.H2AltHigh,
		})
	}
	return rows
}

// sortRows orders the canonical table by (year, half, sector, market)
// ascending.
func sortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.ReportYear != b.ReportYear {
			return a.ReportYear < b.ReportYear
		}
		if a.ReportHalf != b.ReportHalf {
			return a.ReportHalf < b.ReportHalf
		}
		if a.Sector != b.Sector {
			return a.Sector < b.Sector
		}
		return a.Market < b.Market
	})
}

// dedupeKeepLast removes natural-key duplicates keeping the last
// occurrence by position, preserving the relative order of survivors.
func dedupeKeepLast(rows []Row) []Row {
	last := make(map[model.NaturalKey]int, len(rows))
	for i, r := range rows {
		last[r.Key()] = i
	}
	out := make([]Row, 0, len(last))
	for i, r := range rows {
		if last[r.Key()] == i {
			out = append(out, r)
		}
	}
	return out
}
