package services

import (
	"strings"

	"indicator-plots/models"
	"indicator-plots/utils"
)

// FilterByIndicator keeps observations whose indicator name contains target,
// ignoring case. target is matched literally; punctuation such as
// parentheses or commas has no special meaning.
func FilterByIndicator(obs []models.Observation, target string) []models.Observation {
	needle := strings.ToLower(target)
	var out []models.Observation
	for _, o := range obs {
		if strings.Contains(strings.ToLower(o.IndicatorName), needle) {
			out = append(out, o)
		}
	}
	return out
}

// Countries returns the distinct country names in first-appearance order.
func Countries(obs []models.Observation) []string {
	set := utils.NewOrderedSet()
	for _, o := range obs {
		set.Add(o.CountryName)
	}
	return set.Values()
}

// ForCountry returns the observations of a single country, in input order.
func ForCountry(obs []models.Observation, country string) []models.Observation {
	var out []models.Observation
	for _, o := range obs {
		if o.CountryName == country {
			out = append(out, o)
		}
	}
	return out
}
