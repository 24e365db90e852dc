package report

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/user/section-stats-go/internal/chart"
	"github.com/user/section-stats-go/internal/models"
	"github.com/user/section-stats-go/internal/series"
)

// emptyValue is how echarts marks a missing data point.
const emptyValue = "-"

// HtmlReportAdapter renders all charts into one interactive echarts page.
type HtmlReportAdapter struct {
	opts   Options
	charts *chartSet
}

// PrepareData builds and normalizes every series.
func (hra *HtmlReportAdapter) PrepareData(data *models.StatsRecord) error {
	charts, err := buildCharts(data, hra.opts)
	if err != nil {
		return fmt.Errorf("failed to build chart series: %w", err)
	}
	hra.charts = charts
	return nil
}

// Write renders section_stats.html.
func (hra *HtmlReportAdapter) Write(sink chart.Sink) error {
	if hra.charts == nil {
		return ErrNotPrepared
	}

	page := components.NewPage()
	page.AddCharts(newEchartsBar(countsMeta(hra.opts), false, hra.charts.counts...))
	for _, named := range hra.charts.names {
		page.AddCharts(newEchartsBar(namesMeta(hra.opts, named.scope), true, named.series))
	}

	name := exportName + "." + FormatHTML
	out, err := sink.Create(name)
	if err != nil {
		return err
	}
	if err := page.Render(out); err != nil {
		out.Close()
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return out.Close()
}

// newEchartsBar builds a bar chart; horizontal charts list the first sample on top.
func newEchartsBar(meta chart.Meta, horizontal bool, data ...series.Series) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  fmt.Sprintf("%dpx", meta.Width),
			Height: fmt.Sprintf("%dpx", meta.Height),
		}),
		charts.WithTitleOpts(opts.Title{Title: meta.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "5%"}),
		charts.WithXAxisOpts(opts.XAxis{Name: meta.XTitle}),
		charts.WithYAxisOpts(opts.YAxis{Name: meta.YTitle}),
	)

	if horizontal {
		reversed := make([]series.Series, len(data))
		for i, s := range data {
			reversed[i] = reversedSeries(s)
		}
		data = reversed
	}

	if len(data) > 0 {
		bar.SetXAxis(data[0].Labels())
	}
	for _, s := range data {
		bar.AddSeries(s.Name, barData(s))
	}

	if horizontal {
		bar.XYReversal()
	}
	return bar
}

func barData(s series.Series) []opts.BarData {
	items := make([]opts.BarData, len(s.Samples))
	for i, sample := range s.Samples {
		var value any = sample.Value
		if sample.Missing {
			value = emptyValue
		}
		items[i] = opts.BarData{Name: sample.Label, Value: value}
	}
	return items
}

func reversedSeries(s series.Series) series.Series {
	out := series.Series{Name: s.Name, Samples: make([]series.Sample, 0, len(s.Samples))}
	for i := len(s.Samples) - 1; i >= 0; i-- {
		out.Samples = append(out.Samples, s.Samples[i])
	}
	return out
}
