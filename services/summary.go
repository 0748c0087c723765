package services

import (
	"fmt"
	"io"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"

	"indicator-plots/models"
	"indicator-plots/utils"
)

type SummaryService struct {
	logger *utils.Logger
}

func NewSummaryService(logger *utils.Logger) *SummaryService {
	return &SummaryService{logger: logger}
}

// Generate returns one summary per country, in first-appearance order.
func (s *SummaryService) Generate(obs []models.Observation) []models.CountrySummary {
	countries := Countries(obs)
	summaries := make([]models.CountrySummary, 0, len(countries))

	for _, country := range countries {
		subset := ForCountry(obs, country)
		values := make([]float64, len(subset))
		sum := models.CountrySummary{
			Country:      country,
			CountryCode:  subset[0].CountryCode,
			Observations: len(subset),
			FirstYear:    subset[0].Year,
			LastYear:     subset[0].Year,
			Min:          subset[0].Value,
			Max:          subset[0].Value,
			Latest:       subset[0].Value,
		}

		for i, o := range subset {
			values[i] = o.Value
			if o.Value < sum.Min {
				sum.Min = o.Value
			}
			if o.Value > sum.Max {
				sum.Max = o.Value
			}
			if o.Year < sum.FirstYear {
				sum.FirstYear = o.Year
			}
			if o.Year >= sum.LastYear {
				sum.LastYear = o.Year
				sum.Latest = o.Value
			}
		}

		sum.Mean = round2(stat.Mean(values, nil))
		if len(values) > 1 {
			sum.StdDev = round2(stat.StdDev(values, nil))
		}
		summaries = append(summaries, sum)
	}

	s.logger.Debug("[summary] Summarised %d observations across %d countries", len(obs), len(summaries))
	return summaries
}

func (s *SummaryService) Print(w io.Writer, indicator string, summaries []models.CountrySummary) {
	sep := strings.Repeat("═", 89)
	thin := strings.Repeat("─", 89)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  %s\033[0m\n", truncate(indicator, 74))
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	if len(summaries) == 0 {
		fmt.Fprintf(w, "  No matching observations\n\n")
		return
	}

	fmt.Fprintf(w, "  %-28s %5s %11s %10s %10s %10s %10s %10s\n",
		"Country", "Obs", "Years", "Min", "Max", "Mean", "StdDev", "Latest")
	fmt.Fprintf(w, "  %s\n", thin)
	for _, c := range summaries {
		fmt.Fprintf(w, "  %-28s %5d %5s-%-5s %10.2f %10.2f \033[1m%10.2f\033[0m %10.2f %10.2f\n",
			truncate(c.Country, 28), c.Observations,
			yearString(c.FirstYear), yearString(c.LastYear),
			c.Min, c.Max, c.Mean, c.StdDev, c.Latest)
	}

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n\n", sep)
}

func yearString(y float64) string {
	return fmt.Sprintf("%g", y)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// truncate shortens s to at most max runes.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
