package lga

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airbnb-cleaner/utils"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"City of Melbourne", "Melbourne"},
		{"Shire of Yarra Ranges", "Yarra Ranges"},
		{"  City of Yarra  ", "Yarra"},
		{"Queenscliffe", "Queenscliffe"}, // no prefix to strip
		{"", ""},
	}

	for _, tt := range tests {
		got := NormalizeName(tt.raw)
		if got != tt.want {
			t.Errorf("NormalizeName(%q) = %q; want %q", tt.raw, got, tt.want)
		}
	}
}

func TestParseCellNumber(t *testing.T) {
	tests := []struct {
		cell string
		want float64
		ok   bool
	}{
		{"37.7", 37.7, true},
		{"2,406", 2406, true},
		{"1,747.6[2]", 1747.6, true}, // footnote reference
		{"530 (2021)", 530, true},
		{" 19.5 ", 19.5, true},
		{"", 0, false},
		{"n/a", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseCellNumber(tt.cell)
		if ok != tt.ok || got != tt.want {
			t.Errorf("parseCellNumber(%q) = %.2f,%v; want %.2f,%v",
				tt.cell, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCleanRows(t *testing.T) {
	logger := utils.NewLogger()

	rows := []tableRow{
		{Name: "City of Melbourne", Area: "37.7", Density: "3,900"},
		{Name: "Shire of Cardinia", Area: "1,283", Density: "90.5"},
		{Name: "Broken Row", Area: "??", Density: "12"},
	}

	refs := cleanRows(rows, logger)
	require.Len(t, refs, 2) // the unparseable row is dropped

	assert.Equal(t, "Melbourne", refs[0].Name)
	assert.Equal(t, 37.7, refs[0].AreaKm2)
	assert.Equal(t, 3900.0, refs[0].Density)

	assert.Equal(t, "Cardinia", refs[1].Name)
	assert.Equal(t, 1283.0, refs[1].AreaKm2)
}
