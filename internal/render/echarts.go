package render

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"taxdash/internal/models"
)

// ErrDestroyed is returned by handle operations after Destroy
var ErrDestroyed = errors.New("chart handle destroyed")

// EChartsEngine renders charts with go-echarts into their surfaces. Each
// surface ends up holding a self-contained chart document which the HTTP
// layer serves into an iframe on the dashboard page.
type EChartsEngine struct {
	theme string
}

// NewEChartsEngine creates an engine with the default dashboard theme
func NewEChartsEngine() *EChartsEngine {
	return &EChartsEngine{theme: types.ThemeWesteros}
}

// NewChart binds a new chart handle to the given surface
func (e *EChartsEngine) NewChart(surface *Surface, kind ChartKind, visual VisualConfig) (Handle, error) {
	if surface == nil {
		return nil, fmt.Errorf("surface is required")
	}
	switch kind {
	case KindLine, KindBar, KindPie:
	default:
		return nil, fmt.Errorf("unsupported chart kind %q", kind)
	}

	return &echartsHandle{
		engine:  e,
		surface: surface,
		kind:    kind,
		visual:  visual,
	}, nil
}

type echartsHandle struct {
	engine  *EChartsEngine
	surface *Surface
	kind    ChartKind
	visual  VisualConfig

	last      models.Dataset
	hasData   bool
	destroyed bool
}

// Redraw re-renders the chart from the dataset and keeps it as the snapshot
// used by later Resize calls.
func (h *echartsHandle) Redraw(dataset models.Dataset) error {
	if h.destroyed {
		return ErrDestroyed
	}

	if err := h.render(dataset); err != nil {
		return err
	}

	h.last = dataset.Clone()
	h.hasData = true
	return nil
}

// Resize re-renders the last dataset against the surface's current size
func (h *echartsHandle) Resize() error {
	if h.destroyed {
		return ErrDestroyed
	}
	if !h.hasData {
		return nil
	}
	return h.render(h.last)
}

// Destroy clears the surface and invalidates the handle. Safe to call twice.
func (h *echartsHandle) Destroy() error {
	if h.destroyed {
		return nil
	}
	h.destroyed = true
	h.last = models.Dataset{}
	h.hasData = false
	h.surface.Clear()
	return nil
}

func (h *echartsHandle) render(dataset models.Dataset) error {
	width, height := h.surface.Size()
	init := opts.Initialization{
		Theme:  h.engine.theme,
		Width:  fmt.Sprintf("%dpx", width),
		Height: fmt.Sprintf("%dpx", height),
	}

	var buf bytes.Buffer
	var err error

	switch h.kind {
	case KindLine:
		err = h.renderLine(&buf, init, dataset)
	case KindBar:
		err = h.renderBar(&buf, init, dataset)
	case KindPie:
		err = h.renderPie(&buf, init, dataset)
	default:
		err = fmt.Errorf("unsupported chart kind %q", h.kind)
	}
	if err != nil {
		return fmt.Errorf("failed to render %s chart %s: %w", h.kind, h.surface.Name(), err)
	}

	h.surface.SetHTML(buf.String())
	return nil
}

func (h *echartsHandle) renderLine(buf *bytes.Buffer, init opts.Initialization, dataset models.Dataset) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(init),
		charts.WithTitleOpts(opts.Title{Title: h.visual.Title, Subtitle: h.visual.Subtitle}),
		charts.WithColorsOpts(opts.Colors(h.visual.Palette())),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(h.visual.ShowLegend), Bottom: "bottom"}),
		charts.WithYAxisOpts(opts.YAxis{Name: h.visual.YAxisName}),
	)

	line.SetXAxis(dataset.Labels)
	for _, series := range dataset.Series {
		items := make([]opts.LineData, 0, len(series.Values))
		for _, v := range series.Values {
			items = append(items, opts.LineData{Value: v})
		}
		line.AddSeries(series.Name, items)
	}
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(h.visual.Smooth)}))

	return line.Render(buf)
}

func (h *echartsHandle) renderBar(buf *bytes.Buffer, init opts.Initialization, dataset models.Dataset) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(init),
		charts.WithTitleOpts(opts.Title{Title: h.visual.Title, Subtitle: h.visual.Subtitle}),
		charts.WithColorsOpts(opts.Colors(h.visual.Palette())),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:        opts.Bool(true),
			Trigger:     "axis",
			AxisPointer: &opts.AxisPointer{Type: "shadow"},
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(h.visual.ShowLegend), Bottom: "bottom"}),
		charts.WithYAxisOpts(opts.YAxis{Name: h.visual.YAxisName}),
	)

	bar.SetXAxis(dataset.Labels)
	for _, series := range dataset.Series {
		items := make([]opts.BarData, 0, len(series.Values))
		for _, v := range series.Values {
			items = append(items, opts.BarData{Value: v})
		}
		bar.AddSeries(series.Name, items)
	}
	if h.visual.Stacked {
		bar.SetSeriesOptions(charts.WithBarChartOpts(opts.BarChart{Stack: "total"}))
	}

	return bar.Render(buf)
}

func (h *echartsHandle) renderPie(buf *bytes.Buffer, init opts.Initialization, dataset models.Dataset) error {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(init),
		charts.WithTitleOpts(opts.Title{Title: h.visual.Title, Subtitle: h.visual.Subtitle}),
		charts.WithColorsOpts(opts.Colors(h.visual.Palette())),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(h.visual.ShowLegend), Bottom: "bottom"}),
	)

	// A pie chart consumes the first series only, one slice per label
	items := make([]opts.PieData, 0, len(dataset.Labels))
	for i, label := range dataset.Labels {
		var value float64
		if len(dataset.Series) > 0 && i < len(dataset.Series[0].Values) {
			value = dataset.Series[0].Values[i]
		}
		items = append(items, opts.PieData{Name: label, Value: value})
	}

	seriesName := "value"
	if len(dataset.Series) > 0 {
		seriesName = dataset.Series[0].Name
	}
	pie.AddSeries(seriesName, items)

	if h.visual.Doughnut {
		pie.SetSeriesOptions(charts.WithPieChartOpts(opts.PieChart{
			Radius: []string{"45%", "75%"},
		}))
	}

	return pie.Render(buf)
}
