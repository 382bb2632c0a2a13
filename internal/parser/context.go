package parser

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sells-group/caprate-cli/internal/model"
)

// Context is the classification state carried across the blocks of one
// page. It is threaded forward as a value through an explicit fold; blocks
// never share mutable state.
type Context struct {
	Sector    model.Sector
	HasSector bool
	Subsector string
	Region    string
}

// sectorPattern maps a sector to its detection vocabulary. Detection runs
// in slice order and the first match wins.
type sectorPattern struct {
	sector model.Sector
	re     *regexp.Regexp
}

var sectorPatterns = []sectorPattern{
	{model.SectorMultifamily, regexp.MustCompile(`(?i)multifamily|apartment|residential`)},
	{model.SectorOffice, regexp.MustCompile(`(?i)office|commercial`)},
	{model.SectorIndustrial, regexp.MustCompile(`(?i)industrial|warehouse|logistics`)},
	{model.SectorRetail, regexp.MustCompile(`(?i)retail|shopping|strip`)},
	{model.SectorHotel, regexp.MustCompile(`(?i)hotel|hospitality|lodging`)},
}

// subsectorPatterns holds the sector-specific sub-sector vocabulary.
// Sectors absent from this table carry no sub-sector.
var subsectorPatterns = map[model.Sector]*regexp.Regexp{
	model.SectorMultifamily: regexp.MustCompile(`(?i)(infill|suburban|class\s*[ab]|luxury|affordable)`),
	model.SectorOffice:      regexp.MustCompile(`(?i)(downtown|suburban|cbd|class\s*[ab])`),
	model.SectorHotel:       regexp.MustCompile(`(?i)(luxury|destination\s*resort|city\s*center|limited\s*service|full\s*service)`),
}

var regionRe = regexp.MustCompile(`(?i)(east|west|south|north|midwest|central|northeast|southeast|southwest|northwest)`)

var subsectorCaser = cases.Title(language.AmericanEnglish)

// Advance returns the context after observing one cleaned block. Later
// checks can override context set by earlier ones within the same block:
// sector first, then sub-sector, then region.
func Advance(ctx Context, text string) Context {
	for _, sp := range sectorPatterns {
		if sp.re.MatchString(text) {
			if !ctx.HasSector || ctx.Sector != sp.sector {
				ctx.Subsector = ""
			}
			ctx.Sector = sp.sector
			ctx.HasSector = true
			break
		}
	}

	if ctx.HasSector {
		if re, ok := subsectorPatterns[ctx.Sector]; ok {
			if m := re.FindString(text); m != "" {
				ctx.Subsector = canonicalSubsector(m, ctx.Sector)
			}
		}
	}

	if regionRe.MatchString(text) {
		ctx.Region = strings.TrimSpace(text)
	}

	return ctx
}

// canonicalSubsector maps a matched sub-sector token to its canonical
// label for the given sector.
func canonicalSubsector(token string, sector model.Sector) string {
	lower := strings.ToLower(strings.TrimSpace(token))

	switch sector {
	case model.SectorMultifamily:
		switch {
		case strings.Contains(lower, "infill"):
			return "Multifamily Infill"
		case strings.Contains(lower, "suburban"):
			return "Multifamily Suburban"
		}
	case model.SectorOffice:
		switch {
		case strings.Contains(lower, "downtown"), strings.Contains(lower, "cbd"):
			return "Office Downtown"
		case strings.Contains(lower, "suburban"):
			return "Office Suburban"
		}
	case model.SectorHotel:
		switch {
		case strings.Contains(lower, "luxury"):
			return "Hotel - Luxury"
		case strings.Contains(lower, "destination"):
			return "Hotel - Destination Resort"
		case strings.Contains(lower, "city"):
			return "Hotel - City Center"
		}
	}

	return subsectorCaser.String(lower)
}
