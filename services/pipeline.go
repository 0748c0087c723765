package services

import (
	"fmt"
	"io"

	"github.com/go-gota/gota/dataframe"

	"indicator-plots/models"
	"indicator-plots/render"
	"indicator-plots/storage"
	"indicator-plots/utils"
)

// ChartRenderer draws one chart and returns the written file path.
type ChartRenderer interface {
	EnsureDir() error
	Render(kind render.ChartKind, indicator, country string, obs []models.Observation) (string, error)
}

// TableLoader reads the wide input table.
type TableLoader interface {
	Load(path string) (dataframe.DataFrame, error)
}

// Pipeline runs load → reshape → clean → filter → render for one indicator.
type Pipeline struct {
	logger   *utils.Logger
	loader   TableLoader
	cleaner  *Cleaner
	renderer ChartRenderer
	summary  *SummaryService
	writers  []storage.ObservationWriter
}

// NewPipeline wires a pipeline. writers receive the matched observations
// after rendering; their failures are logged and do not fail the run.
func NewPipeline(logger *utils.Logger, loader TableLoader, renderer ChartRenderer, writers ...storage.ObservationWriter) *Pipeline {
	return &Pipeline{
		logger:   logger,
		loader:   loader,
		cleaner:  NewCleaner(logger),
		renderer: renderer,
		summary:  NewSummaryService(logger),
		writers:  writers,
	}
}

// Run executes the pipeline once. It stops at the first load or write error.
// A report with no countries means nothing matched indicator.
func (p *Pipeline) Run(inputPath, indicator string) (*models.RunReport, error) {
	report := &models.RunReport{Indicator: indicator}

	wide, err := p.loader.Load(inputPath)
	if err != nil {
		return report, err
	}
	report.LoadedRows = wide.Nrow()
	report.YearColumns = countYearColumns(wide.Names())

	long, err := Reshape(wide)
	if err != nil {
		return report, &LoadError{Path: inputPath, Err: err}
	}
	report.Reshaped = long.Nrow()
	p.logger.Info("[pipeline] Reshaped %d wide rows into %d long rows", report.LoadedRows, report.Reshaped)

	obs, err := p.cleaner.Clean(long)
	if err != nil {
		return report, &LoadError{Path: inputPath, Err: err}
	}
	report.Cleaned = len(obs)

	if err := p.renderer.EnsureDir(); err != nil {
		return report, err
	}

	matched := FilterByIndicator(obs, indicator)
	report.Matched = len(matched)
	report.Countries = Countries(matched)
	if len(report.Countries) == 0 {
		p.logger.Warn("[pipeline] No observations match indicator %q", indicator)
		return report, nil
	}
	p.logger.Info("[pipeline] %d observations across %d countries match %q",
		report.Matched, len(report.Countries), indicator)

	for _, country := range report.Countries {
		p.logger.Info("[pipeline] Creating plots for %s", country)
		subset := ForCountry(matched, country)
		for _, kind := range render.Kinds {
			path, err := p.renderer.Render(kind, indicator, country, subset)
			if err != nil {
				return report, fmt.Errorf("country %q: %w", country, err)
			}
			report.Files = append(report.Files, path)
		}
	}

	for _, w := range p.writers {
		if err := w.Write(matched); err != nil {
			p.logger.Error("[pipeline] Export failed: %v", err)
		}
	}

	report.Summaries = p.summary.Generate(matched)
	p.logger.Info("[pipeline] Plots created for %d countries (%d files)", len(report.Countries), len(report.Files))
	return report, nil
}

// countYearColumns counts the columns after the identifiers whose label is a
// number. Unnamed trailing columns, as left by a trailing delimiter, are not
// counted.
func countYearColumns(names []string) int {
	if len(names) <= len(models.IdentifierColumns) {
		return 0
	}
	n := 0
	for _, name := range names[len(models.IdentifierColumns):] {
		if _, ok := parseNumber(name); ok {
			n++
		}
	}
	return n
}

// PrintSummary writes the per-country summary table of a report.
func (p *Pipeline) PrintSummary(w io.Writer, report *models.RunReport) {
	p.summary.Print(w, report.Indicator, report.Summaries)
}
