package services

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"

	"indicator-plots/models"
	"indicator-plots/utils"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// Loader reads a wide indicator table (one column per year) from disk.
type Loader struct {
	logger    *utils.Logger
	delimiter rune
	sheet     string
}

// NewLoader creates a Loader. delimiter applies to delimited text input;
// sheet selects the worksheet of xlsx input (empty means the first one).
func NewLoader(logger *utils.Logger, delimiter rune, sheet string) *Loader {
	if delimiter == 0 {
		delimiter = ','
	}
	return &Loader{logger: logger, delimiter: delimiter, sheet: sheet}
}

// Load reads the table at path. Every cell is kept as a raw string; numeric
// parsing happens during cleaning. Any failure is returned as *LoadError.
func (l *Loader) Load(path string) (dataframe.DataFrame, error) {
	var (
		df  dataframe.DataFrame
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		df, err = l.loadXLSX(path)
	default:
		df, err = l.loadDelimited(path)
	}
	if err != nil {
		return dataframe.DataFrame{}, &LoadError{Path: path, Err: err}
	}

	if err := checkHeader(df.Names()); err != nil {
		return dataframe.DataFrame{}, &LoadError{Path: path, Err: err}
	}

	l.logger.Info("[loader] Loaded %d rows with %d year columns from %s",
		df.Nrow(), countYearColumns(df.Names()), path)
	return df, nil
}

func (l *Loader) loadDelimited(path string) (dataframe.DataFrame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	data = skipPreamble(bytes.TrimPrefix(data, utf8BOM))
	df := dataframe.ReadCSV(bytes.NewReader(data), l.options(dataframe.WithDelimiter(l.delimiter))...)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("parse: %w", df.Err)
	}
	return df, nil
}

func (l *Loader) loadXLSX(path string) (dataframe.DataFrame, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	defer f.Close()

	sheet := l.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return dataframe.DataFrame{}, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	records := l.rectangular(headerOnward(rows))
	if len(records) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("sheet %q is empty", sheet)
	}

	df := dataframe.LoadRecords(records, l.options()...)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("sheet %q: %w", sheet, df.Err)
	}
	return df, nil
}

// options keeps every column as a string and disables gota's NaN markers so
// identifier cells such as "NA" survive untouched.
func (l *Loader) options(extra ...dataframe.LoadOption) []dataframe.LoadOption {
	return append([]dataframe.LoadOption{
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues([]string{}),
	}, extra...)
}

// rectangular pads rows to the header width. GetRows drops trailing empty
// cells, so short rows are expected; cells beyond the header are discarded.
func (l *Loader) rectangular(rows [][]string) [][]string {
	if len(rows) == 0 {
		return nil
	}
	width := len(rows[0])
	out := make([][]string, len(rows))
	for i, row := range rows {
		switch {
		case len(row) == width:
			out[i] = row
		case len(row) < width:
			padded := make([]string, width)
			copy(padded, row)
			out[i] = padded
		default:
			l.logger.Debug("[loader] Row %d has %d cells, header has %d; extra cells ignored", i, len(row), width)
			out[i] = row[:width]
		}
	}
	return out
}

func checkHeader(names []string) error {
	if len(names) < len(models.IdentifierColumns) {
		return fmt.Errorf("%w: got %d columns, want at least %d",
			ErrHeaderMismatch, len(names), len(models.IdentifierColumns)+1)
	}
	for i, want := range models.IdentifierColumns {
		if strings.TrimSpace(names[i]) != want {
			return fmt.Errorf("%w: column %d is %q, want %q", ErrHeaderMismatch, i+1, names[i], want)
		}
	}
	if len(names) == len(models.IdentifierColumns) {
		return ErrNoYearColumns
	}
	return nil
}

// skipPreamble drops metadata lines ahead of the header line, as found in
// World Bank downloads. Data without a recognisable header is returned as is.
func skipPreamble(data []byte) []byte {
	offset := 0
	for offset < len(data) {
		line := data[offset:]
		next := len(data)
		if i := bytes.IndexByte(line, '\n'); i >= 0 {
			line = line[:i]
			next = offset + i + 1
		}
		if isHeaderLine(line) {
			return data[offset:]
		}
		offset = next
	}
	return data
}

func isHeaderLine(line []byte) bool {
	line = bytes.TrimLeft(line, " \t\"")
	return bytes.HasPrefix(line, []byte(models.ColCountryName))
}

func headerOnward(rows [][]string) [][]string {
	for i, row := range rows {
		if len(row) > 0 && strings.TrimSpace(row[0]) == models.ColCountryName {
			return rows[i:]
		}
	}
	return rows
}
