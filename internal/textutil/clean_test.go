package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "Los Angeles 4.5%", "Los Angeles 4.5%"},
		{"en dash", "6.0% – 7.0%", "6.0% - 7.0%"},
		{"em dash", "6.0% — 7.0%", "6.0% - 7.0%"},
		{"minus sign", "4−5", "4-5"},
		{"curly quotes", "“class A” ‘infill’", `"class A" 'infill'`},
		{"non-breaking space", "New York", "New York"},
		{"thin and hair spaces", "San Fran cisco", "San Fran cisco"},
		{"trademark marks", "Survey® Report™ ©", "Survey(R) Report(TM) (C)"},
		{"whitespace collapse", "Atlanta    4.5%\n\n5.5%", "Atlanta 4.5% 5.5%"},
		{"control chars", "Bos\x00ton\x07", "Boston"},
		{"repeated punctuation", "What???  Really!!!", "What? Really!"},
		{"repeated commas", "a,,,b;;;c", "a,b;c"},
		{"space before punctuation", "Dallas , Texas", "Dallas, Texas"},
		{"trim", "   Chicago   ", "Chicago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestCleanDeterministic(t *testing.T) {
	t.Parallel()

	in := "Multifamily – Infill  4.5% – 5.5%"
	first := Clean(in)
	assert.Equal(t, first, Clean(in))
	// Idempotent on its own output.
	assert.Equal(t, first, Clean(first))
}

func TestNumbers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []float64{4.5, 5.5}, Numbers("4.5% - 5.5%"))
	assert.Equal(t, []float64{2024, 1}, Numbers("2024 H1"))
	assert.Empty(t, Numbers("no digits here"))
}

func TestPercentages(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []float64{4.5, 5.5}, Percentages("4.5% - 5.5%"))
	assert.Empty(t, Percentages("4.5 - 5.5"))
	assert.Empty(t, Percentages(""))
}
