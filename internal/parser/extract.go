package parser

import (
	"regexp"
	"strings"

	"github.com/sells-group/caprate-cli/internal/textutil"
)

// marketLeadRe captures a leading run of name-like characters followed by
// a numeric column, the shape of a data row in the survey tables.
var marketLeadRe = regexp.MustCompile(`^([A-Za-z\s.\-/&()]{3,30})\s+[\d.]`)

// surveyPhrases flag lines that are narrative prose, not data rows.
var surveyPhrases = []string{
	"respective markets", "becomes more", "integrated into", "investment strategies",
	"gap between", "intentions and", "action likely", "survey across",
	"pricing was", "most consistent", "largest disconnect", "high street",
}

// excludeWords are standalone words that can survive normalization but are
// never market names.
var excludeWords = map[string]struct{}{
	"the": {}, "and": {}, "or": {}, "but": {},
	"after": {}, "before": {}, "during": {},
}

var digitsOnlyRe = regexp.MustCompile(`^[\d\s%.]+$`)

// extractMarketName pulls a candidate market name off the front of a line.
// Lines without a cap-rate-shaped substring are never attempted. Returns
// empty when no plausible market is present.
func extractMarketName(line string) string {
	if !hasRateShape(line) {
		return ""
	}

	m := marketLeadRe.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	raw := strings.TrimSpace(m[1])

	if len(strings.Fields(raw)) > 3 {
		return ""
	}

	lower := strings.ToLower(raw)
	for _, phrase := range surveyPhrases {
		if strings.Contains(lower, phrase) {
			return ""
		}
	}

	return textutil.NormalizeMarket(raw)
}

// isValidMarket accepts a normalized market name. Names containing a
// reference metro are accepted outright; otherwise stop words and
// numeric-only strings are rejected.
func (p *Parser) isValidMarket(market string) bool {
	if len(market) < p.cfg.MinMarketLength {
		return false
	}

	lower := strings.ToLower(market)
	for _, known := range p.cfg.ValidMarkets {
		if strings.Contains(lower, strings.ToLower(known)) {
			return true
		}
	}

	if _, stop := excludeWords[lower]; stop {
		return false
	}
	if digitsOnlyRe.MatchString(market) {
		return false
	}

	return true
}
