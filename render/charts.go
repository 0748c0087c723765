package render

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"indicator-plots/models"
)

var (
	seriesColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	boxFill     = color.RGBA{R: 174, G: 199, B: 232, A: 255}
)

// rotateAbove is the category count past which bar labels are rotated.
const rotateAbove = 10

func build(kind ChartKind, indicator, country string, obs []models.Observation) (*plot.Plot, error) {
	switch kind {
	case Line:
		return lineChart(indicator, country, obs)
	case Bar:
		return barChart(indicator, country, obs)
	case Box:
		return boxChart(indicator, country, obs)
	default:
		return nil, fmt.Errorf("unknown chart kind %d", int(kind))
	}
}

func newPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(12)
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Value"
	return p
}

func lineChart(indicator, country string, obs []models.Observation) (*plot.Plot, error) {
	sorted := make([]models.Observation, len(obs))
	copy(sorted, obs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Year < sorted[j].Year })

	xys := make(plotter.XYs, len(sorted))
	for i, o := range sorted {
		xys[i].X = o.Year
		xys[i].Y = o.Value
	}

	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return nil, err
	}
	line.Color = seriesColor
	line.Width = vg.Points(1.5)
	points.Shape = draw.CircleGlyph{}
	points.Color = seriesColor
	points.Radius = vg.Points(3)

	p := newPlot(fmt.Sprintf("%s over time for %s", indicator, country))
	p.Add(plotter.NewGrid(), line, points)
	return p, nil
}

// barChart draws one bar per year. When several observations share a year
// the last one wins, as it would be drawn on top.
func barChart(indicator, country string, obs []models.Observation) (*plot.Plot, error) {
	years, groups := valuesByYear(obs)
	heights := make(plotter.Values, len(years))
	for i, vals := range groups {
		heights[i] = vals[len(vals)-1]
	}

	bars, err := plotter.NewBarChart(heights, slotWidth(len(years)))
	if err != nil {
		return nil, err
	}
	bars.Color = seriesColor
	bars.LineStyle.Width = vg.Length(0)

	p := newPlot(fmt.Sprintf("%s distribution for %s", indicator, country))
	p.Add(yGrid(), bars)
	p.NominalX(yearLabels(years)...)
	if len(years) > rotateAbove {
		rotateTickLabels(p)
	}
	return p, nil
}

func boxChart(indicator, country string, obs []models.Observation) (*plot.Plot, error) {
	years, groups := valuesByYear(obs)

	p := newPlot(fmt.Sprintf("%s distribution for %s", indicator, country))
	p.Add(yGrid())

	w := slotWidth(len(years))
	for i, vals := range groups {
		b, err := plotter.NewBoxPlot(w, float64(i), plotter.Values(vals))
		if err != nil {
			return nil, fmt.Errorf("box for year %s: %w", yearLabel(years[i]), err)
		}
		b.FillColor = boxFill
		p.Add(b)
	}

	p.NominalX(yearLabels(years)...)
	rotateTickLabels(p)
	return p, nil
}

// valuesByYear groups values by distinct year, years ascending and values in
// input order.
func valuesByYear(obs []models.Observation) ([]float64, [][]float64) {
	byYear := make(map[float64][]float64)
	for _, o := range obs {
		byYear[o.Year] = append(byYear[o.Year], o.Value)
	}

	years := make([]float64, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Float64s(years)

	groups := make([][]float64, len(years))
	for i, y := range years {
		groups[i] = byYear[y]
	}
	return years, groups
}

func yearLabel(y float64) string {
	return strconv.FormatFloat(y, 'f', -1, 64)
}

func yearLabels(years []float64) []string {
	labels := make([]string, len(years))
	for i, y := range years {
		labels[i] = yearLabel(y)
	}
	return labels
}

// slotWidth sizes bars and boxes to share roughly 600pt of plot width.
func slotWidth(n int) vg.Length {
	w := 0.7 * 600 / float64(n)
	return vg.Points(math.Min(w, 24))
}

func yGrid() *plotter.Grid {
	g := plotter.NewGrid()
	g.Vertical.Color = nil
	return g
}

func rotateTickLabels(p *plot.Plot) {
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
}
