// Package chart renders section statistics series to PNG images with gonum/plot.
package chart

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/user/section-stats-go/internal/series"
)

// ImageFormat is the file format, and file suffix, of rendered charts.
const ImageFormat = "png"

// Default image sizes in pixels.
const (
	DefaultWidth       = 1200
	DefaultHeight      = 800
	DefaultNamesWidth  = 1000
	DefaultNamesHeight = 1200
)

// pixelsPerInch matches the default resolution of the gonum image backend.
const pixelsPerInch = 96

// Meta describes one chart and the artifact it is written to.
type Meta struct {
	// Name is the artifact base name; the image suffix is appended.
	Name   string
	Title  string
	XTitle string
	YTitle string
	// Width and Height are in pixels. Zero selects the defaults.
	Width  int
	Height int
}

// FileName returns the artifact name for m.
func (m Meta) FileName() string {
	return m.Name + "." + ImageFormat
}

func (m Meta) size() (vg.Length, vg.Length) {
	w, h := m.Width, m.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return pixels(w), pixels(h)
}

func pixels(n int) vg.Length {
	return vg.Length(n) * vg.Inch / pixelsPerInch
}

// Renderer draws series into a sink.
type Renderer interface {
	// Bar draws vertical bars grouped by label, one color per series.
	Bar(sink Sink, meta Meta, data ...series.Series) error
	// HorizontalBar draws horizontal bars with the first sample at the top.
	HorizontalBar(sink Sink, meta Meta, data ...series.Series) error
}

// PlotRenderer is the gonum/plot implementation of Renderer.
type PlotRenderer struct {
	// BarWidth is the thickness of a single bar. Zero selects a default.
	BarWidth vg.Length
}

func (r PlotRenderer) barWidth(fallback vg.Length) vg.Length {
	if r.BarWidth > 0 {
		return r.BarWidth
	}
	return fallback
}

// Bar implements Renderer.
func (r PlotRenderer) Bar(sink Sink, meta Meta, data ...series.Series) error {
	p := newPlot(meta)
	p.Y.Min, p.Y.Max = 0, 1

	width := r.barWidth(vg.Points(6))
	if err := addBars(p, width, false, data); err != nil {
		return fmt.Errorf("failed to build chart %s: %w", meta.Name, err)
	}
	if len(data) > 0 && len(data[0].Samples) > 0 {
		p.NominalX(data[0].Labels()...)
	}

	return write(p, sink, meta)
}

// HorizontalBar implements Renderer. Samples are drawn bottom-up in reverse
// order, so the first (highest frequency) sample ends up on top.
func (r PlotRenderer) HorizontalBar(sink Sink, meta Meta, data ...series.Series) error {
	p := newPlot(meta)
	p.X.Min, p.X.Max = 0, 1

	reversed := make([]series.Series, len(data))
	for i, s := range data {
		reversed[i] = reverse(s)
	}

	width := r.barWidth(vg.Points(10))
	if err := addBars(p, width, true, reversed); err != nil {
		return fmt.Errorf("failed to build chart %s: %w", meta.Name, err)
	}
	if len(reversed) > 0 && len(reversed[0].Samples) > 0 {
		p.NominalY(reversed[0].Labels()...)
	} else {
		p.Y.Min, p.Y.Max = 0, 1
	}

	return write(p, sink, meta)
}

func newPlot(meta Meta) *plot.Plot {
	p := plot.New()
	p.Title.Text = meta.Title
	p.X.Label.Text = meta.XTitle
	p.Y.Label.Text = meta.YTitle
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return p
}

// addBars adds one bar chart per non-empty series, side by side around each
// category position.
func addBars(p *plot.Plot, width vg.Length, horizontal bool, data []series.Series) error {
	n := len(data)
	for i, s := range data {
		if len(s.Samples) == 0 {
			continue
		}

		bars, err := plotter.NewBarChart(values(s), width)
		if err != nil {
			return fmt.Errorf("series %q: %w", s.Name, err)
		}
		bars.Horizontal = horizontal
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(i)
		bars.Offset = vg.Length(float64(i)-float64(n-1)/2) * width

		p.Add(bars)
		p.Legend.Add(s.Name, bars)
	}
	return nil
}

// values converts samples to bar heights; missing samples draw no bar.
func values(s series.Series) plotter.Values {
	vs := make(plotter.Values, len(s.Samples))
	for i, sample := range s.Samples {
		if !sample.Missing {
			vs[i] = sample.Value
		}
	}
	return vs
}

func reverse(s series.Series) series.Series {
	out := series.Series{Name: s.Name, Samples: make([]series.Sample, len(s.Samples))}
	for i, sample := range s.Samples {
		out.Samples[len(s.Samples)-1-i] = sample
	}
	return out
}

func write(p *plot.Plot, sink Sink, meta Meta) error {
	w, h := meta.size()
	writer, err := p.WriterTo(w, h, ImageFormat)
	if err != nil {
		return fmt.Errorf("failed to create plot writer for %s: %w", meta.Name, err)
	}

	name := meta.FileName()
	out, err := sink.Create(name)
	if err != nil {
		return err
	}
	if _, err := writer.WriteTo(out); err != nil {
		out.Close()
		return fmt.Errorf("failed to write chart %s: %w", name, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close chart %s: %w", name, err)
	}
	return nil
}
