package dataset

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/sells-group/caprate-cli/internal/model"
)

// Summary is the dashboard's headline statistics view.
type Summary struct {
	TotalMarkets    int            `json:"totalMarkets"`
	TotalSectors    int            `json:"totalSectors"`
	TotalRecords    int            `json:"totalRecords"`
	DateRange       DateRange      `json:"dateRange"`
	SectorBreakdown map[string]int `json:"sectorBreakdown"`
}

// DateRange is a period range expressed as "YYYY-HN" bounds. Start and end
// combine the independent minima/maxima of year and half, matching the
// historical dataset behavior.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// TimeSeriesPoint is one (period, sector) group in the time series view.
type TimeSeriesPoint struct {
	Period      string   `json:"period"`
	Year        int      `json:"year"`
	Half        int      `json:"half"`
	Sector      string   `json:"sector"`
	AvgLow      *float64 `json:"avgLow"`
	AvgHigh     *float64 `json:"avgHigh"`
	AvgRate     *float64 `json:"avgRate"`
	RecordCount int      `json:"recordCount"`
}

// MarketView is one market's latest-observation summary.
type MarketView struct {
	Market       string   `json:"market"`
	Sector       string   `json:"sector"`
	Region       string   `json:"region"`
	LatestRate   *float64 `json:"latestRate"`
	LatestPeriod string   `json:"latestPeriod"`
	RecordCount  int      `json:"recordCount"`
}

// SectorView pools every primary rate value across a sector.
type SectorView struct {
	Sector      string   `json:"sector"`
	AvgRate     *float64 `json:"avgRate"`
	MinRate     *float64 `json:"minRate"`
	MaxRate     *float64 `json:"maxRate"`
	MarketCount int      `json:"marketCount"`
	RecordCount int      `json:"recordCount"`
}

// DashboardMetadata describes the derived JSON payload.
type DashboardMetadata struct {
	LastUpdated   string   `json:"lastUpdated"`
	TotalRecords  int      `json:"totalRecords"`
	ReportPeriods []string `json:"reportPeriods"`
	Version       string   `json:"version"`
}

// Dashboard is the full derived JSON object consumed by the reporting UI.
type Dashboard struct {
	Metadata   DashboardMetadata `json:"metadata"`
	Summary    Summary           `json:"summary"`
	TimeSeries []TimeSeriesPoint `json:"timeSeries"`
	Markets    []MarketView      `json:"markets"`
	Sectors    []SectorView      `json:"sectors"`
}

// BuildDashboard recomputes every derived view from the canonical table.
// Views are always rebuilt in full; there is no incremental update.
func BuildDashboard(rows []Row, now time.Time) Dashboard {
	return Dashboard{
		Metadata: DashboardMetadata{
			LastUpdated:   now.UTC().Format(time.RFC3339),
			TotalRecords:  len(rows),
			ReportPeriods: reportPeriods(rows),
			Version:       model.ToolVersion,
		},
		Summary:    BuildSummary(rows),
		TimeSeries: BuildTimeSeries(rows),
		Markets:    BuildMarkets(rows),
		Sectors:    BuildSectors(rows),
	}
}

// reportPeriods returns the sorted distinct "YYYY-HN" period strings.
func reportPeriods(rows []Row) []string {
	set := map[string]struct{}{}
	for _, r := range rows {
		set[r.Period()] = struct{}{}
	}
	periods := make([]string, 0, len(set))
	for p := range set {
		periods = append(periods, p)
	}
	sort.Strings(periods)
	return periods
}

// BuildSummary derives the headline statistics.
func BuildSummary(rows []Row) Summary {
	markets := map[string]struct{}{}
	sectors := map[string]struct{}{}
	breakdown := map[string]int{}

	minYear, maxYear := math.MaxInt, math.MinInt
	minHalf, maxHalf := math.MaxInt, math.MinInt
	for _, r := range rows {
		markets[r.Market] = struct{}{}
		sectors[r.Sector] = struct{}{}
		breakdown[r.Sector]++
		minYear = min(minYear, r.ReportYear)
		maxYear = max(maxYear, r.ReportYear)
		minHalf = min(minHalf, r.ReportHalf)
		maxHalf = max(maxHalf, r.ReportHalf)
	}

	s := Summary{
		TotalMarkets:    len(markets),
		TotalSectors:    len(sectors),
		TotalRecords:    len(rows),
		SectorBreakdown: breakdown,
	}
	if len(rows) > 0 {
		s.DateRange = DateRange{
			Start: fmt.Sprintf("%d-H%d", minYear, minHalf),
			End:   fmt.Sprintf("%d-H%d", maxYear, maxHalf),
		}
	}
	return s
}

// BuildTimeSeries groups rows by (year, half, sector) and averages the
// primary low/high columns per group, ignoring absent values.
func BuildTimeSeries(rows []Row) []TimeSeriesPoint {
	type groupKey struct {
		year, half int
		sector     string
	}
	groups := map[groupKey][]Row{}
	for _, r := range rows {
		k := groupKey{r.ReportYear, r.ReportHalf, r.Sector}
		groups[k] = append(groups[k], r)
	}

	points := make([]TimeSeriesPoint, 0, len(groups))
	for k, group := range groups {
		var lows, highs []float64
		for _, r := range group {
			if r.H1Low != nil {
				lows = append(lows, *r.H1Low)
			}
			if r.H1High != nil {
				highs = append(highs, *r.H1High)
			}
		}

		avgLow := roundedMean(lows)
		avgHigh := roundedMean(highs)
		var avgRate *float64
		if avgLow != nil && avgHigh != nil {
			avgRate = round2((*avgLow + *avgHigh) / 2)
		}

		points = append(points, TimeSeriesPoint{
			Period:      fmt.Sprintf("%d-H%d", k.year, k.half),
			Year:        k.year,
			Half:        k.half,
			Sector:      k.sector,
			AvgLow:      avgLow,
			AvgHigh:     avgHigh,
			AvgRate:     avgRate,
			RecordCount: len(group),
		})
	}

	sort.Slice(points, func(i, j int) bool {
		a, b := points[i], points[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Half != b.Half {
			return a.Half < b.Half
		}
		return a.Sector < b.Sector
	})
	return points
}

// BuildMarkets derives the per-market view. The "latest" row per market is
// the first row carrying that market's maximum report year; the half is
// deliberately not a tiebreak. Sorted by latest rate descending, with
// absent rates sorting as zero.
func BuildMarkets(rows []Row) []MarketView {
	groups := map[string][]Row{}
	for _, r := range rows {
		groups[r.Market] = append(groups[r.Market], r)
	}

	views := make([]MarketView, 0, len(groups))
	for market, group := range groups {
		latest := group[0]
		for _, r := range group[1:] {
			if r.ReportYear > latest.ReportYear {
				latest = r
			}
		}

		var vals []float64
		if latest.H1Low != nil {
			vals = append(vals, *latest.H1Low)
		}
		if latest.H1High != nil {
			vals = append(vals, *latest.H1High)
		}

		views = append(views, MarketView{
			Market:       market,
			Sector:       latest.Sector,
			Region:       latest.Region,
			LatestRate:   roundedMean(vals),
			LatestPeriod: latest.Period(),
			RecordCount:  len(group),
		})
	}

	sort.Slice(views, func(i, j int) bool {
		a, b := orZero(views[i].LatestRate), orZero(views[j].LatestRate)
		if a != b {
			return a > b
		}
		return views[i].Market < views[j].Market
	})
	return views
}

// BuildSectors derives the per-sector view by pooling all four primary
// rate columns across each sector. Sorted by average rate ascending, with
// absent rates sorting as zero.
func BuildSectors(rows []Row) []SectorView {
	groups := map[string][]Row{}
	for _, r := range rows {
		groups[r.Sector] = append(groups[r.Sector], r)
	}

	views := make([]SectorView, 0, len(groups))
	for sector, group := range groups {
		var pooled []float64
		markets := map[string]struct{}{}
		for _, r := range group {
			markets[r.Market] = struct{}{}
			for _, v := range []*float64{r.H1Low, r.H1High, r.H2Low, r.H2High} {
				if v != nil {
					pooled = append(pooled, *v)
				}
			}
		}

		view := SectorView{
			Sector:      sector,
			AvgRate:     roundedMean(pooled),
			MarketCount: len(markets),
			RecordCount: len(group),
		}
		if len(pooled) > 0 {
			view.MinRate = round2(slicesMin(pooled))
			view.MaxRate = round2(slicesMax(pooled))
		}
		views = append(views, view)
	}

	sort.Slice(views, func(i, j int) bool {
		a, b := orZero(views[i].AvgRate), orZero(views[j].AvgRate)
		if a != b {
			return a < b
		}
		return views[i].Sector < views[j].Sector
	})
	return views
}

func roundedMean(vals []float64) *float64 {
	if len(vals) == 0 {
		return nil
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return round2(sum / float64(len(vals)))
}

func round2(v float64) *float64 {
	r := math.Round(v*100) / 100
	return &r
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func slicesMin(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func slicesMax(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
