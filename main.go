package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"indicator-plots/config"
	"indicator-plots/render"
	"indicator-plots/services"
	"indicator-plots/storage"
	"indicator-plots/utils"
)

func main() {
	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:   "indicator-plots",
		Short: "Plot one indicator per country from a wide-format dataset",
		Long: `indicator-plots reshapes a wide indicator table (one column per year)
into long form, keeps the rows of a single indicator and writes a line chart,
a bar chart and a box plot per country as PNG files.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg)
		},
	}

	var delimiter string
	flags := rootCmd.Flags()
	flags.StringVarP(&cfg.InputPath, "input", "i", cfg.InputPath, "Input CSV or XLSX file")
	flags.StringVar(&cfg.Indicator, "indicator", cfg.Indicator, "Indicator name to plot (case-insensitive substring)")
	flags.StringVarP(&cfg.OutputDir, "output-dir", "o", cfg.OutputDir, "Directory for chart images")
	flags.StringVar(&delimiter, "delimiter", string(cfg.Delimiter), "Field delimiter of delimited input")
	flags.StringVar(&cfg.XLSXSheet, "sheet", cfg.XLSXSheet, "Worksheet of XLSX input (default: first sheet)")
	flags.StringVar(&cfg.LongCSVPath, "long-csv", cfg.LongCSVPath, "Also export matched observations as long-form CSV")
	flags.BoolVar(&cfg.ArchiveToPostgres, "archive", cfg.ArchiveToPostgres, "Also upsert matched observations into PostgreSQL")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Enable debug logging")
	flags.BoolVar(&cfg.Summary, "summary", cfg.Summary, "Print per-country statistics")

	rootCmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("delimiter") {
			return nil
		}
		r := []rune(delimiter)
		if delimiter == `\t` {
			r = []rune{'\t'}
		}
		if len(r) != 1 {
			return fmt.Errorf("--delimiter must be a single character, got %q", delimiter)
		}
		cfg.Delimiter = r[0]
		return nil
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "indicator-plots: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	logger := utils.NewLogger(cfg.Verbose)
	defer func() { _ = logger.Sync() }()

	logger.Info("=== Indicator plotting starting ===")
	logger.Info("Config: input: %s | indicator: %q | output: %s", cfg.InputPath, cfg.Indicator, cfg.OutputDir)

	var writers []storage.ObservationWriter
	if cfg.LongCSVPath != "" {
		csvWriter, err := storage.NewCSVWriter(cfg.LongCSVPath)
		if err != nil {
			logger.Error("Failed to create CSV writer: %v", err)
		} else {
			defer csvWriter.Close()
			writers = append(writers, csvWriter)
		}
	}
	if cfg.ArchiveToPostgres {
		pgWriter, err := storage.NewPostgresWriter(cfg.DSN())
		if err != nil {
			logger.Error("Failed to connect to PostgreSQL: %v", err)
		} else {
			defer pgWriter.Close()
			writers = append(writers, pgWriter)
		}
	}

	loader := services.NewLoader(logger, cfg.Delimiter, cfg.XLSXSheet)
	renderer := render.NewRenderer(logger, cfg.OutputDir)
	pipeline := services.NewPipeline(logger, loader, renderer, writers...)

	report, err := pipeline.Run(cfg.InputPath, cfg.Indicator)
	if err != nil {
		var loadErr *services.LoadError
		var writeErr *render.WriteError
		switch {
		case errors.As(err, &loadErr):
			logger.Error("Input could not be loaded: %v", err)
		case errors.As(err, &writeErr):
			logger.Error("Chart output failed: %v", err)
		default:
			logger.Error("Run failed: %v", err)
		}
		return err
	}

	if cfg.Summary {
		pipeline.PrintSummary(os.Stdout, report)
	}

	fmt.Printf("  Done. %d countries → %d charts in %s\n\n",
		len(report.Countries), len(report.Files), cfg.OutputDir)
	return nil
}
