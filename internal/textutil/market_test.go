package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeMarket(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"simple lowercase", "atlanta", "Atlanta"},
		{"st louis", "st. louis", "St Louis"},
		{"trailing dashes", "Denver --", "Denver"},
		{"leading dashes", "-- Denver", "Denver"},
		{"recognition artifact", "Salt LAke City", "Salt Lake City"},
		{"ft lauderdale artifact", "Ft LAuderdale", "Fort Lauderdale"},
		{"dual city collapses", "Dallas/Fort Worth", "Dallas"},
		{"twin cities collapse", "Minneapolis/St Paul", "Minneapolis"},
		{"bare market word", "Market", ""},
		{"figure heading", "Figure 3: National Averages", ""},
		{"sentence fragment", "After a strong quarter", ""},
		{"bare year", "2024", ""},
		{"bare percentage", "45%", ""},
		{"too short", "LA", ""},
		{"los angeles stays", "los angeles", "Los Angeles"},
		{"las vegas keeps la", "las vegas", "Las Vegas"},
		{"washington dc", "washington dc", "Washington DC"},
		{"ft worth expands", "ft worth", "Fort Worth"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NormalizeMarket(tt.in))
		})
	}
}

func TestNormalizeMarketNeverGrowsGarbage(t *testing.T) {
	t.Parallel()

	// Worst case is always the empty string, never an error.
	for _, in := range []string{"--", "   ", "–—", "12", "%", "!!"} {
		assert.Equal(t, "", NormalizeMarket(in))
	}
}
