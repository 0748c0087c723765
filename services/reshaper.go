package services

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"indicator-plots/models"
)

// Reshape melts a wide table into long form: the identifier columns are
// repeated for every year column, which becomes a (Year, Value) pair. The
// result has wide.Nrow() * yearColumns rows, all years of a row together.
func Reshape(wide dataframe.DataFrame) (dataframe.DataFrame, error) {
	if wide.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("reshape: %w", wide.Err)
	}

	nID := len(models.IdentifierColumns)
	names := wide.Names()
	if len(names) <= nID {
		return dataframe.DataFrame{}, fmt.Errorf("reshape: %w", ErrNoYearColumns)
	}
	yearCols := names[nID:]

	ids := make([][]string, nID)
	for i, col := range models.IdentifierColumns {
		ids[i] = wide.Col(col).Records()
	}
	cells := make([][]string, len(yearCols))
	for j, col := range yearCols {
		cells[j] = wide.Col(col).Records()
	}

	rows := wide.Nrow()
	total := rows * len(yearCols)
	outIDs := make([][]string, nID)
	for i := range outIDs {
		outIDs[i] = make([]string, 0, total)
	}
	years := make([]string, 0, total)
	values := make([]string, 0, total)

	for r := 0; r < rows; r++ {
		for j, label := range yearCols {
			for i := range ids {
				outIDs[i] = append(outIDs[i], ids[i][r])
			}
			years = append(years, label)
			values = append(values, cells[j][r])
		}
	}

	cols := make([]series.Series, 0, nID+2)
	for i, col := range models.IdentifierColumns {
		cols = append(cols, series.New(outIDs[i], series.String, col))
	}
	cols = append(cols,
		series.New(years, series.String, models.ColYear),
		series.New(values, series.String, models.ColValue),
	)

	long := dataframe.New(cols...)
	if long.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("reshape: %w", long.Err)
	}
	return long, nil
}
