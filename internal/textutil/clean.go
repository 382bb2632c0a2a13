// Package textutil cleans and normalizes text recovered from PDF extraction.
// Every downstream matcher operates on the canonical ASCII-biased form
// produced here.
package textutil

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// unicodeReplacer folds common non-ASCII punctuation, spaces, and marks to
// ASCII equivalents before any pattern matching.
var unicodeReplacer = strings.NewReplacer(
	"–", "-", // en dash
	"—", "-", // em dash
	"−", "-", // minus sign
	"‐", "-", // hyphen
	"‑", "-", // non-breaking hyphen

	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"‘", "'", // left single quote
	"’", "'", // right single quote

	" ", " ", // non-breaking space
	" ", " ", // thin space
	" ", " ", // hair space
	" ", "\n", // line separator
	" ", "\n", // paragraph separator

	"®", "(R)",
	"™", "(TM)",
	"©", "(C)",
)

var (
	whitespaceRe     = regexp.MustCompile(`\s+`)
	spaceBeforePunct = regexp.MustCompile(`\s+([,.!?;:])`)
	spaceAfterPunct  = regexp.MustCompile(`([,.!?;:])\s+`)

	// Runs of the same punctuation mark collapse to one occurrence.
	// Go regexp has no backreferences, so one pattern per mark.
	repeatedPunct = []*regexp.Regexp{
		regexp.MustCompile(`!{2,}`),
		regexp.MustCompile(`\?{2,}`),
		regexp.MustCompile(`,{2,}`),
		regexp.MustCompile(`;{2,}`),
		regexp.MustCompile(`:{2,}`),
	}
	repeatedPunctRepl = []string{"!", "?", ",", ";", ":"}
)

// Clean normalizes raw extracted text: Unicode folding, NFC composition,
// control character removal, whitespace collapse, and punctuation spacing.
// Clean is a pure function; empty input yields empty output.
func Clean(text string) string {
	if text == "" {
		return ""
	}

	cleaned := unicodeReplacer.Replace(text)
	cleaned = norm.NFC.String(cleaned)
	cleaned = stripControl(cleaned)
	cleaned = whitespaceRe.ReplaceAllString(cleaned, " ")
	cleaned = cleanPunctuation(cleaned)

	return strings.TrimSpace(cleaned)
}

// stripControl removes non-printable control characters, keeping newline,
// tab, and space.
func stripControl(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.In(r, unicode.C) && r != '\n' && r != '\t' && r != ' ' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// cleanPunctuation collapses repeated punctuation and normalizes spacing
// around it: no space before, exactly one space after.
func cleanPunctuation(text string) string {
	for i, re := range repeatedPunct {
		text = re.ReplaceAllString(text, repeatedPunctRepl[i])
	}
	text = spaceBeforePunct.ReplaceAllString(text, "$1")
	text = spaceAfterPunct.ReplaceAllString(text, "$1 ")
	return text
}

var (
	numberRe     = regexp.MustCompile(`\d+\.?\d*`)
	percentageRe = regexp.MustCompile(`(\d+\.?\d*)%`)
)

// Numbers extracts all numeric values found in text.
func Numbers(text string) []float64 {
	var out []float64
	for _, m := range numberRe.FindAllString(text, -1) {
		v, err := strconv.ParseFloat(m, 64)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Percentages extracts all percentage values found in text.
func Percentages(text string) []float64 {
	var out []float64
	for _, m := range percentageRe.FindAllStringSubmatch(text, -1) {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}
