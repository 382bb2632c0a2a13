package parser

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// periodPattern is one filename shape that can encode a reporting period.
type periodPattern struct {
	re        *regexp.Regexp
	halfFirst bool
}

// periodPatterns are tried in priority order; some filenames would match
// more than one shape, so earlier patterns win.
var periodPatterns = []periodPattern{
	{regexp.MustCompile(`(?i)h([12])[\s_-]*(\d{4})`), true},
	{regexp.MustCompile(`(?i)(\d{4})[\s_-]*h([12])`), false},
	{regexp.MustCompile(`(?i)h([12])[\s_-]+(\d{4})`), true},
	{regexp.MustCompile(`(?i)(\d{4})h([12])`), false},
}

// ResolvePeriod recovers the (year, half) reporting period from a file
// name. The extension is ignored. A pattern only wins if it yields a year
// in [2000, 2030] and a half in {1, 2}; otherwise the next shape is tried.
func ResolvePeriod(filename string) (year, half int, ok bool) {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	for _, p := range periodPatterns {
		m := p.re.FindStringSubmatch(base)
		if m == nil {
			continue
		}

		var y, h int
		var err error
		if p.halfFirst {
			h, err = strconv.Atoi(m[1])
			if err == nil {
				y, err = strconv.Atoi(m[2])
			}
		} else {
			y, err = strconv.Atoi(m[1])
			if err == nil {
				h, err = strconv.Atoi(m[2])
			}
		}
		if err != nil {
			continue
		}

		if y >= 2000 && y <= 2030 && (h == 1 || h == 2) {
			return y, h, true
		}
	}

	return 0, 0, false
}
