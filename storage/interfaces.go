package storage

import "indicator-plots/models"

// ObservationWriter is the interface any export backend must satisfy.
type ObservationWriter interface {
	Write(obs []models.Observation) error
	Close() error
}
