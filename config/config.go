package config

import (
	"log"
	"os"
	"strconv"
	"unicode/utf8"

	"github.com/joho/godotenv"
)

// DefaultIndicator is the indicator plotted when none is configured.
const DefaultIndicator = "Mortality rate, under-5 (per 1,000 live births)"

// Config holds all application configuration loaded from environment variables.
type Config struct {
	InputPath string
	Indicator string
	OutputDir string
	Delimiter rune
	XLSXSheet string

	LongCSVPath       string
	ArchiveToPostgres bool

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	Verbose bool
	Summary bool
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		InputPath: getEnv("INPUT_PATH", "data.csv"),
		Indicator: getEnv("INDICATOR", DefaultIndicator),
		OutputDir: getEnv("OUTPUT_DIR", "plots"),
		Delimiter: getEnvRune("CSV_DELIMITER", ','),
		XLSXSheet: getEnv("XLSX_SHEET", ""),

		LongCSVPath:       getEnv("LONG_CSV_PATH", ""),
		ArchiveToPostgres: getEnvBool("ARCHIVE_TO_POSTGRES", false),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "indicators"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "indicators"),
		PostgresDB:       getEnv("POSTGRES_DB", "indicators_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		Verbose: getEnvBool("VERBOSE", false),
		Summary: getEnvBool("SUMMARY", true),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}

// getEnvRune accepts a single character, or the literal "\t" for tabs.
func getEnvRune(key string, fallback rune) rune {
	val := os.Getenv(key)
	if val == `\t` {
		return '\t'
	}
	if utf8.RuneCountInString(val) == 1 {
		r, _ := utf8.DecodeRuneInString(val)
		return r
	}
	return fallback
}
