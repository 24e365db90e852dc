package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/user/section-stats-go/internal/chart"
	"github.com/user/section-stats-go/internal/models"
	"github.com/user/section-stats-go/internal/series"
)

// Supported output formats.
const (
	FormatPNG  = "png"
	FormatHTML = "html"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Artifact base names.
const (
	SectionCountsName = "section_counts"
	SectionNamesName  = "section_names"
	exportName        = "section_stats"
)

var (
	// ErrUnknownFormat is returned by NewAdapter for unsupported formats.
	ErrUnknownFormat = errors.New("unknown report format")
	// ErrNotPrepared is returned when Write is called before PrepareData.
	ErrNotPrepared = errors.New("report data not prepared")
)

// ReportAdapter defines the interface for generating different report formats.
type ReportAdapter interface {
	PrepareData(data *models.StatsRecord) error
	Write(sink chart.Sink) error
}

// Options carries chart dimensions shared by every adapter.
type Options struct {
	AxisLength  int
	TopNames    int
	Width       int
	Height      int
	NamesWidth  int
	NamesHeight int

	// Renderer draws PNG charts. Nil selects chart.PlotRenderer.
	Renderer chart.Renderer
}

// DefaultOptions returns the sizes used when no configuration is given.
func DefaultOptions() Options {
	return Options{
		AxisLength:  series.DefaultLength,
		TopNames:    series.DefaultLength,
		Width:       chart.DefaultWidth,
		Height:      chart.DefaultHeight,
		NamesWidth:  chart.DefaultNamesWidth,
		NamesHeight: chart.DefaultNamesHeight,
	}
}

// NewAdapter returns the adapter for format.
func NewAdapter(format string, opts Options) (ReportAdapter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatPNG:
		renderer := opts.Renderer
		if renderer == nil {
			renderer = chart.PlotRenderer{}
		}
		return &ChartReportAdapter{opts: opts, renderer: renderer}, nil
	case FormatHTML:
		return &HtmlReportAdapter{opts: opts}, nil
	case FormatJSON:
		return &JsonReportAdapter{}, nil
	case FormatYAML:
		return &YamlReportAdapter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// chartSet is the series for every chart of one run.
type chartSet struct {
	counts []series.Series
	names  []scopedSeries
}

type scopedSeries struct {
	scope  models.Scope
	series series.Series
}

func buildCharts(data *models.StatsRecord, opts Options) (*chartSet, error) {
	counts, err := series.SectionCounts(data, opts.AxisLength)
	if err != nil {
		return nil, err
	}

	set := &chartSet{counts: counts}
	for _, scope := range models.Scopes {
		s, err := series.SectionNames(data, scope, opts.TopNames)
		if err != nil {
			return nil, err
		}
		set.names = append(set.names, scopedSeries{scope: scope, series: s})
	}
	return set, nil
}

func countsMeta(opts Options) chart.Meta {
	return chart.Meta{
		Name:   SectionCountsName,
		Title:  "Distribution of # sections per revision",
		XTitle: "# sections",
		YTitle: "Frequency",
		Width:  opts.Width,
		Height: opts.Height,
	}
}

func namesMeta(opts Options, scope models.Scope) chart.Meta {
	return chart.Meta{
		Name:   SectionNamesName + "." + string(scope),
		Title:  "Distribution of section names per revision",
		XTitle: "Frequency",
		YTitle: "Section names",
		Width:  opts.NamesWidth,
		Height: opts.NamesHeight,
	}
}

// --- PNG Chart Adapter ---

// ChartReportAdapter renders the section count and section name charts as images.
type ChartReportAdapter struct {
	opts     Options
	renderer chart.Renderer
	charts   *chartSet
}

// PrepareData builds and normalizes every series.
func (cra *ChartReportAdapter) PrepareData(data *models.StatsRecord) error {
	charts, err := buildCharts(data, cra.opts)
	if err != nil {
		return fmt.Errorf("failed to build chart series: %w", err)
	}
	cra.charts = charts
	return nil
}

// Write renders section_counts.png and one section_names.<scope>.png per scope.
func (cra *ChartReportAdapter) Write(sink chart.Sink) error {
	if cra.charts == nil {
		return ErrNotPrepared
	}

	if err := cra.renderer.Bar(sink, countsMeta(cra.opts), cra.charts.counts...); err != nil {
		return err
	}
	for _, named := range cra.charts.names {
		if err := cra.renderer.HorizontalBar(sink, namesMeta(cra.opts, named.scope), named.series); err != nil {
			return err
		}
	}
	return nil
}
