package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/caprate-cli/internal/model"
)

func TestAdvanceSectorDetection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want model.Sector
	}{
		{"Multifamily Cap Rate Trends", model.SectorMultifamily},
		{"apartment market overview", model.SectorMultifamily},
		{"Office Sector Outlook", model.SectorOffice},
		{"Warehouse and Logistics", model.SectorIndustrial},
		{"Retail Strip Centers", model.SectorRetail},
		{"Hospitality and Lodging", model.SectorHotel},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			ctx := Advance(Context{}, tt.text)
			assert.True(t, ctx.HasSector)
			assert.Equal(t, tt.want, ctx.Sector)
		})
	}
}

func TestAdvanceFirstSectorMatchWins(t *testing.T) {
	t.Parallel()

	// "Multifamily" is checked before "Office" even though both occur.
	ctx := Advance(Context{}, "Multifamily and Office Comparison")
	assert.Equal(t, model.SectorMultifamily, ctx.Sector)
}

func TestAdvanceSectorChangeClearsSubsector(t *testing.T) {
	t.Parallel()

	ctx := Advance(Context{}, "Multifamily Infill Summary")
	assert.Equal(t, "Multifamily Infill", ctx.Subsector)

	ctx = Advance(ctx, "Industrial Overview")
	assert.Equal(t, model.SectorIndustrial, ctx.Sector)
	assert.Empty(t, ctx.Subsector)
}

func TestAdvanceSubsectorVocabulary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		blocks []string
		want   string
	}{
		{"multifamily infill", []string{"Multifamily Report", "Infill assets"}, "Multifamily Infill"},
		{"multifamily suburban", []string{"Apartment Survey", "Suburban garden communities"}, "Multifamily Suburban"},
		{"office cbd", []string{"Office Trends", "CBD towers"}, "Office Downtown"},
		{"office downtown", []string{"Office Trends", "Downtown assets"}, "Office Downtown"},
		{"hotel luxury", []string{"Hotel Survey", "Luxury segment"}, "Hotel - Luxury"},
		{"hotel destination", []string{"Lodging Survey", "Destination resort properties"}, "Hotel - Destination Resort"},
		{"hotel city center", []string{"Lodging Survey", "City center assets"}, "Hotel - City Center"},
		{"retail has no subsectors", []string{"Retail Survey", "Suburban strip"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := Context{}
			for _, b := range tt.blocks {
				ctx = Advance(ctx, b)
			}
			assert.Equal(t, tt.want, ctx.Subsector)
		})
	}
}

func TestAdvanceRegionTakesWholeBlock(t *testing.T) {
	t.Parallel()

	ctx := Advance(Context{}, "Southeast region averages held steady")
	assert.Equal(t, "Southeast region averages held steady", ctx.Region)
}

func TestAdvanceNoSector(t *testing.T) {
	t.Parallel()

	ctx := Advance(Context{}, "General remarks about the economy")
	assert.False(t, ctx.HasSector)
	assert.Empty(t, ctx.Subsector)
}
