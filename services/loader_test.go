package services

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"indicator-plots/models"
)

func TestLoaderReadsCSV(t *testing.T) {
	path := writeFile(t, "data.csv", csvLines(
		`Country Name,Country Code,Indicator Name,Indicator Code,1990,1991,1992`,
		`Afghanistan,AFG,"`+under5+`",SH.DYN.MORT,179.1,174.4,`,
		`Namibia,NA,"`+under5+`",SH.DYN.MORT,73.2,,70.1`,
	))

	df, err := NewLoader(newTestLogger(t), ',', "").Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2, df.Nrow())
	assert.Equal(t, 7, df.Ncol())
	assert.Equal(t, []string{"AFG", "NA"}, df.Col(models.ColCountryCode).Records())
	assert.Equal(t, []string{under5, under5}, df.Col(models.ColIndicatorName).Records())
	assert.Equal(t, []string{"174.4", ""}, df.Col("1991").Records())
}

func TestLoaderSkipsBOMAndPreamble(t *testing.T) {
	path := writeFile(t, "API_SH.DYN.MORT.csv", "\xef\xbb\xbf"+csvLines(
		`"Data Source","World Development Indicators",`,
		``,
		`"Last Updated Date","2024-06-28",`,
		``,
		`"Country Name","Country Code","Indicator Name","Indicator Code","2000","2001",`,
		`"Aruba","ABW","`+under5+`","SH.DYN.MORT","","",`,
		`"Chad","TCD","`+under5+`","SH.DYN.MORT","185.2","181.9",`,
	))

	df, err := NewLoader(newTestLogger(t), ',', "").Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2, df.Nrow())
	// The trailing comma yields one extra unnamed column.
	assert.Equal(t, 7, df.Ncol())
	assert.Equal(t, models.ColCountryName, df.Names()[0])
	assert.Equal(t, []string{"Aruba", "Chad"}, df.Col(models.ColCountryName).Records())
}

func TestLoaderCustomDelimiter(t *testing.T) {
	path := writeFile(t, "data.txt", csvLines(
		`Country Name;Country Code;Indicator Name;Indicator Code;2010`,
		`Peru;PER;`+under5+`;SH.DYN.MORT;21,5`,
	))

	df, err := NewLoader(newTestLogger(t), ';', "").Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"21,5"}, df.Col("2010").Records())
}

func TestLoaderErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		target  error
	}{
		{
			name:    "header mismatch",
			content: csvLines(`Country,Code,Indicator Name,Indicator Code,1990`, `A,B,C,D,1`),
			target:  ErrHeaderMismatch,
		},
		{
			name:    "too few columns",
			content: csvLines(`Country Name,Country Code`, `A,B`),
			target:  ErrHeaderMismatch,
		},
		{
			name:    "no year columns",
			content: csvLines(`Country Name,Country Code,Indicator Name,Indicator Code`, `A,B,C,D`),
			target:  ErrNoYearColumns,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "data.csv", tt.content)

			_, err := NewLoader(newTestLogger(t), ',', "").Load(path)

			var loadErr *LoadError
			require.True(t, errors.As(err, &loadErr), "want *LoadError, got %v", err)
			assert.Equal(t, path, loadErr.Path)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestLoaderMalformedCSV(t *testing.T) {
	path := writeFile(t, "data.csv", csvLines(
		`Country Name,Country Code,Indicator Name,Indicator Code,1990`,
		`A,B,C,D,1,extra`,
	))

	_, err := NewLoader(newTestLogger(t), ',', "").Load(path)

	var loadErr *LoadError
	assert.True(t, errors.As(err, &loadErr), "want *LoadError, got %v", err)
}

func TestLoaderMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.csv")

	_, err := NewLoader(newTestLogger(t), ',', "").Load(path)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoaderReadsXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"Data Source", "World Development Indicators"},
		{},
		{"Country Name", "Country Code", "Indicator Name", "Indicator Code", "2000", "2001"},
		{"Chad", "TCD", under5, "SH.DYN.MORT", 185.2, 181.9},
		{"Peru", "PER", under5, "SH.DYN.MORT", 38.5},
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &rows[i]))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	df, err := NewLoader(newTestLogger(t), ',', "").Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2, df.Nrow())
	assert.Equal(t, []string{"Country Name", "Country Code", "Indicator Name", "Indicator Code", "2000", "2001"}, df.Names())
	assert.Equal(t, []string{"185.2", "38.5"}, df.Col("2000").Records())
	assert.Equal(t, []string{"181.9", ""}, df.Col("2001").Records())
}

func TestLoaderXLSXUnknownSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	_, err := NewLoader(newTestLogger(t), ',', "Data").Load(path)

	var loadErr *LoadError
	assert.True(t, errors.As(err, &loadErr), "want *LoadError, got %v", err)
}

func TestSkipPreamble(t *testing.T) {
	data := []byte("meta,1\n\nCountry Name,x\nA,1\n")
	assert.Equal(t, "Country Name,x\nA,1\n", string(skipPreamble(data)))

	noHeader := []byte("a,b\n1,2\n")
	assert.Equal(t, string(noHeader), string(skipPreamble(noHeader)))
}
