package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"

	"indicator-plots/models"
	"indicator-plots/utils"
)

// Cleaner turns long-form rows into typed Observations.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean parses Year and Value of every row and drops rows where either is
// missing or not a finite number.
func (c *Cleaner) Clean(long dataframe.DataFrame) ([]models.Observation, error) {
	if long.Err != nil {
		return nil, fmt.Errorf("clean: %w", long.Err)
	}

	names := append(append([]string{}, models.IdentifierColumns...), models.ColYear, models.ColValue)
	cols := make([][]string, len(names))
	for i, name := range names {
		s := long.Col(name)
		if s.Err != nil {
			return nil, fmt.Errorf("clean: %w", s.Err)
		}
		cols[i] = s.Records()
	}

	n := long.Nrow()
	result := make([]models.Observation, 0, n)
	var badYear, badValue int

	for r := 0; r < n; r++ {
		year, ok := parseNumber(cols[4][r])
		if !ok {
			badYear++
			continue
		}
		value, ok := parseNumber(cols[5][r])
		if !ok {
			badValue++
			continue
		}

		result = append(result, models.Observation{
			CountryName:   cols[0][r],
			CountryCode:   cols[1][r],
			IndicatorName: cols[2][r],
			IndicatorCode: cols[3][r],
			Year:          year,
			Value:         value,
		})
	}

	c.logger.Debug("[cleaner] Unparsable year on %d rows, missing value on %d rows", badYear, badValue)
	c.logger.Info("[cleaner] Cleaned %d → %d observations (dropped %d)",
		n, len(result), n-len(result))
	return result, nil
}

// parseNumber reports false for empty, unparsable, NaN and infinite input.
func parseNumber(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
