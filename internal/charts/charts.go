// Package charts renders the report figures as in-memory PNGs.
package charts

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/Karunya-Muddana/CBSE-RESULT-ANALASYS-streamlit/internal/analysis"
)

// HistogramBins matches the report convention of ten marks buckets.
const HistogramBins = 10

// GradePie renders the grade distribution as a pie chart with percentage
// labels.
func GradePie(subject string, counts []analysis.GradeCount) ([]byte, error) {
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	if total == 0 {
		return nil, errors.New("empty grade counts")
	}

	values := make([]chart.Value, 0, len(counts))
	for _, c := range counts {
		pct := float64(c.Count) / float64(total) * 100
		values = append(values, chart.Value{
			Value: float64(c.Count),
			Label: fmt.Sprintf("%s (%d - %.1f%%)", c.Grade, c.Count, pct),
		})
	}

	pie := chart.PieChart{
		Title:  fmt.Sprintf("%s Grade Distribution", subject),
		Width:  600,
		Height: 600,
		Values: values,
	}
	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render pie: %w", err)
	}
	return buf.Bytes(), nil
}

// MarksHistogram renders a ten-bin histogram of the marks series.
func MarksHistogram(subject string, values []float64) ([]byte, error) {
	clean := dropNaN(values)
	if len(clean) == 0 {
		return nil, errors.New("no marks to plot")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s Marks Distribution", subject)
	p.X.Label.Text = "Marks"
	p.Y.Label.Text = "Students"

	h, err := plotter.NewHist(plotter.Values(clean), HistogramBins)
	if err != nil {
		return nil, fmt.Errorf("histogram: %w", err)
	}
	h.FillColor = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	p.Add(h, plotter.NewGrid())

	return renderPNG(p, 7*vg.Inch, 4*vg.Inch)
}

// MarksBoxPlot renders a single vertical boxplot of the marks series.
func MarksBoxPlot(subject string, values []float64) ([]byte, error) {
	clean := dropNaN(values)
	if len(clean) == 0 {
		return nil, errors.New("no marks to plot")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s Boxplot", subject)
	p.Y.Label.Text = "Marks"

	b, err := plotter.NewBoxPlot(vg.Points(40), 0, plotter.Values(clean))
	if err != nil {
		return nil, fmt.Errorf("boxplot: %w", err)
	}
	p.Add(b)
	p.NominalX(subject)

	return renderPNG(p, 4*vg.Inch, 4*vg.Inch)
}

// TopBottomBar renders the combined top and bottom scorers as a bar chart
// with student names on a rotated nominal axis. Rows with missing marks are
// skipped.
func TopBottomBar(subject string, rows []analysis.ScoreRow) ([]byte, error) {
	var values plotter.Values
	var names []string
	for _, r := range rows {
		if r.Marks == nil {
			continue
		}
		values = append(values, *r.Marks)
		names = append(names, r.Name)
	}
	if len(values) == 0 {
		return nil, errors.New("no marks to plot")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Top & Bottom Scorers in %s", subject)
	p.Y.Label.Text = "Marks"

	bars, err := plotter.NewBarChart(values, vg.Points(18))
	if err != nil {
		return nil, fmt.Errorf("bar chart: %w", err)
	}
	bars.Color = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	bars.LineStyle.Width = 0
	p.Add(bars, plotter.NewGrid())

	p.NominalX(names...)
	p.X.Tick.Label.Rotation = math.Pi / 3
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Tick.Label.XAlign = draw.XRight

	return renderPNG(p, 10*vg.Inch, 4*vg.Inch)
}

func renderPNG(p *plot.Plot, w, h vg.Length) ([]byte, error) {
	wt, err := p.WriterTo(w, h, "png")
	if err != nil {
		return nil, fmt.Errorf("render png: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write png: %w", err)
	}
	return buf.Bytes(), nil
}

func dropNaN(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
