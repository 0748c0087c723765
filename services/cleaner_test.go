package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"indicator-plots/models"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{"1990", 1990, true},
		{" 12.5 ", 12.5, true},
		{"-3", -3, true},
		{"1e3", 1000, true},
		{"", 0, false},
		{"   ", 0, false},
		{"NaN", 0, false},
		{"NA", 0, false},
		{"Inf", 0, false},
		{"-Infinity", 0, false},
		{"1,5", 0, false},
		{"Unnamed: 68", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseNumber(tt.raw)
		assert.Equal(t, tt.ok, ok, "parseNumber(%q) ok", tt.raw)
		assert.Equal(t, tt.want, got, "parseNumber(%q)", tt.raw)
	}
}

func TestCleanerDropsIncompleteRows(t *testing.T) {
	wide := wideFrame(t, [][]string{
		{"Country Name", "Country Code", "Indicator Name", "Indicator Code", "1990", "1991", "1992", "notes"},
		{"Afghanistan", "AFG", under5, "SH.DYN.MORT", "179.1", "", "NaN", "x"},
		{"Albania", "ALB", under5, "SH.DYN.MORT", "41", "40.2", "inf", "7"},
	})
	long, err := Reshape(wide)
	require.NoError(t, err)

	obs, err := NewCleaner(newTestLogger(t)).Clean(long)
	require.NoError(t, err)

	assert.Equal(t, []models.Observation{
		{CountryName: "Afghanistan", CountryCode: "AFG", IndicatorName: under5, IndicatorCode: "SH.DYN.MORT", Year: 1990, Value: 179.1},
		{CountryName: "Albania", CountryCode: "ALB", IndicatorName: under5, IndicatorCode: "SH.DYN.MORT", Year: 1990, Value: 41},
		{CountryName: "Albania", CountryCode: "ALB", IndicatorName: under5, IndicatorCode: "SH.DYN.MORT", Year: 1991, Value: 40.2},
	}, obs)

	for _, o := range obs {
		assert.False(t, math.IsNaN(o.Year) || math.IsInf(o.Year, 0))
		assert.False(t, math.IsNaN(o.Value) || math.IsInf(o.Value, 0))
	}
}

func TestCleanerAllRowsDropped(t *testing.T) {
	wide := wideFrame(t, [][]string{
		{"Country Name", "Country Code", "Indicator Name", "Indicator Code", "1990"},
		{"Afghanistan", "AFG", under5, "SH.DYN.MORT", ""},
	})
	long, err := Reshape(wide)
	require.NoError(t, err)

	obs, err := NewCleaner(newTestLogger(t)).Clean(long)
	require.NoError(t, err)
	assert.Empty(t, obs)
}

func TestCleanerRejectsFrameWithoutLongColumns(t *testing.T) {
	wide := wideFrame(t, [][]string{
		{"Country Name", "Country Code", "Indicator Name", "Indicator Code", "1990"},
		{"Afghanistan", "AFG", under5, "SH.DYN.MORT", "1"},
	})

	_, err := NewCleaner(newTestLogger(t)).Clean(wide)
	assert.Error(t, err)
}
