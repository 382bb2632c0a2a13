package parser

import (
	"regexp"
	"strconv"
)

// RatePair is one extracted (low, high) cap rate range. A single figure
// yields low == high.
type RatePair struct {
	Low  float64
	High float64
}

// ratePatterns are tried in order; the first pattern that yields at least
// one in-range pair on a line wins, and later patterns are not combined in.
var ratePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+\.?\d*)%?\s*[-–—]\s*(\d+\.?\d*)%?`),
	regexp.MustCompile(`(\d+\.?\d*)\s*[-–—]\s*(\d+\.?\d*)%`),
	regexp.MustCompile(`(\d+\.?\d*)%`),
}

// Default bounds for a plausible cap rate figure, in percent.
const (
	DefaultMinRate = 0.5
	DefaultMaxRate = 15.0
)

// ExtractCapRates finds cap rate ranges in a line of text using the
// default bounds.
func ExtractCapRates(text string) []RatePair {
	return extractCapRates(text, DefaultMinRate, DefaultMaxRate)
}

func extractCapRates(text string, min, max float64) []RatePair {
	for _, re := range ratePatterns {
		var pairs []RatePair
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			low, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			high := low
			if len(m) > 2 && m[2] != "" {
				high, err = strconv.ParseFloat(m[2], 64)
				if err != nil {
					continue
				}
			}
			if low < min || low > max || high < min || high > max {
				continue
			}
			pairs = append(pairs, RatePair{Low: low, High: high})
		}
		if len(pairs) > 0 {
			return pairs
		}
	}
	return nil
}

// hasRateShape reports whether any rate pattern matches the text at all,
// without range filtering. Lines with no rate shape are never treated as
// data rows.
func hasRateShape(text string) bool {
	for _, re := range ratePatterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
