package textutil

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// literalFix is one ordered literal substring replacement.
type literalFix struct {
	old string
	new string
}

// recognitionFixes corrects common character-recognition artifacts and
// consolidates dual-city metro names to their primary city. Order matters:
// longer, more specific fixes come before the fragments they contain.
var recognitionFixes = []literalFix{
	{"LAs Vegas", "Las Vegas"},
	{"Las VegAs", "Las Vegas"},
	{"LAke", "Lake"},
	{"Salt LAke City", "Salt Lake City"},
	{"Salt LAke", "Salt Lake"},
	{"Fort LAuderdale", "Fort Lauderdale"},
	{"Ft LAuderdale", "Fort Lauderdale"},
	{"LAuderdale", "Lauderdale"},
	{"New YOrk", "New York"},
	{"San FrAncisco", "San Francisco"},
	{"PhilAdElphia", "Philadelphia"},
	{"WashIngton", "Washington"},
	{"Southern CAlifornia", "Southern California"},

	{"Dallas/Ft Worth", "Dallas"},
	{"Dallas/Fort Worth", "Dallas"},
	{"Minneapolis/St Paul", "Minneapolis"},
	{"Minneapolis/Saint Paul", "Minneapolis"},
	{"Tampa/St Petersburg", "Tampa"},
	{"Miami/Fort Lauderdale", "Miami"},
	{"Riverside/San Bernardino", "Riverside"},
}

// notAMarket rejects strings that look like headings, prose fragments,
// bare years, or bare percentages rather than market names.
var notAMarket = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^Market$`),
	regexp.MustCompile(`(?i)^Looking Forward To`),
	regexp.MustCompile(`(?i)^Figure`),
	regexp.MustCompile(`(?i)^After`),
	regexp.MustCompile(`(?i)^But fortune`),
	regexp.MustCompile(`(?i)^the$`),
	regexp.MustCompile(`^\d{4}$`),
	regexp.MustCompile(`^\d+%$`),
}

// abbreviationFixes restores abbreviations mangled by title-casing and
// expands "Ft " to "Fort ". Applied in order after the LA disambiguation.
var abbreviationFixes = []literalFix{
	{"Dc", "DC"},
	{"Nyc", "NYC"},
	{"Sf", "SF"},
	{"St.", "St"},
	{"Mt.", "Mt"},
	{"Ft.", "Ft"},
	{"Ft ", "Fort "},
	{" Dc", " DC"},
	{" Ny", " NY"},
	{" Ca", " CA"},
	{" Tx", " TX"},
	{" Fl", " FL"},
}

var (
	edgeDashRe  = regexp.MustCompile(`^[-\s]+|[-\s]+$`)
	allDigitsRe = regexp.MustCompile(`^\d+$`)

	titleCaser = cases.Title(language.AmericanEnglish)
)

// NormalizeMarket maps a noisy candidate market string to its canonical
// name. It never fails; anything that cannot be salvaged comes back as an
// empty string, which callers treat as "no market found".
func NormalizeMarket(raw string) string {
	if raw == "" {
		return ""
	}

	cleaned := Clean(raw)
	cleaned = edgeDashRe.ReplaceAllString(cleaned, "")

	for _, fix := range recognitionFixes {
		cleaned = strings.ReplaceAll(cleaned, fix.old, fix.new)
	}

	for _, re := range notAMarket {
		if re.MatchString(cleaned) {
			return ""
		}
	}

	if strings.TrimSpace(cleaned) == "" {
		return ""
	}

	cleaned = titleCaser.String(cleaned)

	// "La" is ambiguous: part of "Los Angeles", part of "Las Vegas", or
	// the abbreviation "LA". Only promote to "LA" away from Vegas.
	if cleaned != "Los Angeles" && !strings.Contains(cleaned, "Vegas") {
		if strings.HasPrefix(cleaned, "La ") {
			cleaned = "LA " + cleaned[len("La "):]
		} else if strings.HasSuffix(cleaned, " La") {
			cleaned = strings.ReplaceAll(cleaned, " La", " LA")
		}
	}

	for _, fix := range abbreviationFixes {
		cleaned = strings.ReplaceAll(cleaned, fix.old, fix.new)
	}

	cleaned = strings.TrimSpace(cleaned)
	if len(cleaned) < 3 || allDigitsRe.MatchString(cleaned) {
		return ""
	}

	return cleaned
}
