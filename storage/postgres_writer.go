package storage

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"indicator-plots/models"
)

const batchSize = 50

// PostgresWriter archives observations to PostgreSQL.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, creates the schema if
// needed and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS indicator_observations (
			id             SERIAL PRIMARY KEY,
			country_name   TEXT             NOT NULL,
			country_code   VARCHAR(16)      NOT NULL,
			indicator_name TEXT             NOT NULL,
			indicator_code VARCHAR(64)      NOT NULL,
			year           DOUBLE PRECISION NOT NULL,
			value          DOUBLE PRECISION NOT NULL,
			loaded_at      TIMESTAMPTZ      NOT NULL DEFAULT NOW(),
			UNIQUE (country_code, indicator_code, year)
		);

		CREATE INDEX IF NOT EXISTS idx_observations_country   ON indicator_observations(country_name);
		CREATE INDEX IF NOT EXISTS idx_observations_indicator ON indicator_observations(indicator_code);
	`)
	return err
}

// Write upserts all observations in batches.
func (pw *PostgresWriter) Write(obs []models.Observation) error {
	for i := 0; i < len(obs); i += batchSize {
		end := i + batchSize
		if end > len(obs) {
			end = len(obs)
		}
		if err := pw.upsertBatch(obs[i:end]); err != nil {
			return fmt.Errorf("postgres: upsert rows %d-%d: %w", i, end-1, err)
		}
	}
	return nil
}

func (pw *PostgresWriter) upsertBatch(batch []models.Observation) error {
	query, args := upsertQuery(batch)
	_, err := pw.db.Exec(query, args...)
	return err
}

// upsertQuery builds a multi-row insert. Rows repeating a key within one
// batch would make ON CONFLICT fail, so only the last of them is kept.
func upsertQuery(batch []models.Observation) (string, []interface{}) {
	type key struct {
		country, indicator string
		year               float64
	}
	last := make(map[key]int, len(batch))
	for i, o := range batch {
		last[key{o.CountryCode, o.IndicatorCode, o.Year}] = i
	}

	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*6)
	for i, o := range batch {
		if last[key{o.CountryCode, o.IndicatorCode, o.Year}] != i {
			continue
		}
		base := len(valueArgs)
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6))
		valueArgs = append(valueArgs,
			o.CountryName, o.CountryCode, o.IndicatorName, o.IndicatorCode, o.Year, o.Value)
	}

	query := fmt.Sprintf(`
		INSERT INTO indicator_observations
			(country_name, country_code, indicator_name, indicator_code, year, value)
		VALUES %s
		ON CONFLICT (country_code, indicator_code, year)
		DO UPDATE SET value = EXCLUDED.value, indicator_name = EXCLUDED.indicator_name, loaded_at = NOW()
	`, strings.Join(valueStrings, ","))
	return query, valueArgs
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
