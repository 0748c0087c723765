// Package render draws per-country indicator charts as PNG files.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"indicator-plots/models"
	"indicator-plots/utils"
)

// ChartKind selects which chart Render draws.
type ChartKind int

const (
	Line ChartKind = iota
	Bar
	Box
)

// Kinds lists every chart kind in the order they are rendered per country.
var Kinds = []ChartKind{Line, Bar, Box}

// String returns the file name prefix of the kind.
func (k ChartKind) String() string {
	switch k {
	case Line:
		return "line_plot"
	case Bar:
		return "bar_chart"
	case Box:
		return "box_plot"
	default:
		return fmt.Sprintf("chart_%d", int(k))
	}
}

// FileName returns the output file name of a chart, with spaces in the
// country name replaced by underscores.
func FileName(kind ChartKind, country string) string {
	return fmt.Sprintf("%s_%s.png", kind, strings.ReplaceAll(country, " ", "_"))
}

// Renderer writes charts into a single output directory.
type Renderer struct {
	logger *utils.Logger
	dir    string
	width  vg.Length
	height vg.Length
}

// NewRenderer creates a Renderer writing 10x5 inch PNGs into dir.
func NewRenderer(logger *utils.Logger, dir string) *Renderer {
	return &Renderer{
		logger: logger,
		dir:    dir,
		width:  10 * vg.Inch,
		height: 5 * vg.Inch,
	}
}

// Dir returns the output directory.
func (r *Renderer) Dir() string {
	return r.dir
}

// EnsureDir creates the output directory if it does not exist.
func (r *Renderer) EnsureDir() error {
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return &WriteError{Path: r.dir, Err: err}
	}
	return nil
}

// Render draws one chart of the given kind for a country and returns the
// path of the written file.
func (r *Renderer) Render(kind ChartKind, indicator, country string, obs []models.Observation) (string, error) {
	if len(obs) == 0 {
		return "", fmt.Errorf("render %s for %q: %w", kind, country, ErrNoObservations)
	}

	p, err := build(kind, indicator, country, obs)
	if err != nil {
		return "", fmt.Errorf("render %s for %q: %w", kind, country, err)
	}

	path := filepath.Join(r.dir, FileName(kind, country))
	if err := r.save(p, path); err != nil {
		return "", err
	}

	r.logger.Debug("[render] Wrote %s (%d observations)", path, len(obs))
	return path, nil
}

func (r *Renderer) save(p *plot.Plot, path string) error {
	wt, err := p.WriterTo(r.width, r.height, "png")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if _, err := wt.WriteTo(f); err != nil {
		_ = f.Close()
		return &WriteError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
