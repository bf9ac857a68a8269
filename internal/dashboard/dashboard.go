package dashboard

import (
	"errors"
	"fmt"

	"taxdash/internal/logger"
	"taxdash/internal/models"
	"taxdash/internal/render"
)

// ChartDef describes one chart the dashboard knows how to create
type ChartDef struct {
	Name        string
	Kind        render.ChartKind
	Labels      []string
	SeriesNames []string
	Visual      render.VisualConfig
}

// DefaultChartDefs returns the four operations charts. days sets the window
// of the time-axis charts.
func DefaultChartDefs(days int) []ChartDef {
	timeLabels := GenerateTimeLabels(days)

	return []ChartDef{
		{
			Name:        ChartActivityTrend,
			Kind:        render.KindLine,
			Labels:      timeLabels,
			SeriesNames: []string{"Sessions", "Conversations", "Jobs"},
			Visual: render.VisualConfig{
				Title:      "Filing Activity",
				Subtitle:   fmt.Sprintf("Last %d days", days),
				Smooth:     true,
				ShowLegend: true,
			},
		},
		{
			Name:        ChartStatusBreakdown,
			Kind:        render.KindPie,
			Labels:      StatusLabels,
			SeriesNames: []string{"Sessions"},
			Visual: render.VisualConfig{
				Title:      "Session Status",
				Colors:     render.StatusPalette,
				Doughnut:   true,
				ShowLegend: true,
			},
		},
		{
			Name:        ChartTaskProgress,
			Kind:        render.KindBar,
			Labels:      ProgressCategories,
			SeriesNames: []string{"Completed", "In Progress", "Pending"},
			Visual: render.VisualConfig{
				Title:      "Task Progress",
				YAxisName:  "Jobs",
				Colors:     []string{render.ColorSuccess, render.ColorInfo, render.ColorWarning},
				Stacked:    true,
				ShowLegend: true,
			},
		},
		{
			Name:        ChartProcessingTime,
			Kind:        render.KindLine,
			Labels:      timeLabels,
			SeriesNames: []string{"Avg Processing Minutes"},
			Visual: render.VisualConfig{
				Title:     "Processing Time",
				Subtitle:  fmt.Sprintf("Daily average, last %d days", days),
				YAxisName: "Minutes",
				Smooth:    true,
			},
		},
	}
}

// Dashboard is the lifecycle facade over the chart registry and the data
// binder: InitAll, UpdateAll, ResizeAll, DestroyAll are the full external
// API of the core.
type Dashboard struct {
	registry *ChartRegistry
	binder   *DataBinder
	defs     []ChartDef
	log      *logger.Logger
}

// New creates a dashboard for the given chart definitions. Nothing renders
// until the hosting application calls InitAll, once its surfaces are ready.
func New(engine render.Engine, surfaces *render.SurfaceSet, defs []ChartDef) *Dashboard {
	return &Dashboard{
		registry: NewChartRegistry(engine, surfaces),
		binder:   NewDataBinder(),
		defs:     defs,
		log:      logger.GetGlobalLogger().WithComponent("dashboard"),
	}
}

// Registry exposes the chart registry to the hosting application
func (d *Dashboard) Registry() *ChartRegistry {
	return d.registry
}

// InitAll creates every known chart and seeds it with sample data so the
// page is populated before the first payload arrives. Charts whose surface
// is absent from the page layout are skipped.
func (d *Dashboard) InitAll() error {
	for _, def := range d.defs {
		instance, err := d.registry.Create(def.Name, def.Kind, def.Labels, def.SeriesNames, def.Visual)
		if err != nil {
			if errors.Is(err, ErrSurfaceNotFound) {
				d.log.Debugf("no surface for chart %q, skipping", def.Name)
				continue
			}
			return err
		}

		d.seedSample(instance)
	}

	d.log.Infof("initialized %d of %d charts", len(d.registry.Names()), len(d.defs))
	return nil
}

// seedSample fills the instance with demo values and renders it once. The
// bound flag stays false so the first real payload takes over cleanly.
func (d *Dashboard) seedSample(instance *ChartInstance) {
	for i := range instance.dataset.Series {
		instance.dataset.Series[i].Values = sampleValues(len(instance.dataset.Labels))
	}

	if err := instance.handle.Redraw(instance.dataset); err != nil {
		d.log.Error(fmt.Sprintf("failed to seed chart %q", instance.name), err)
	}
}

// UpdateAll applies a summary payload to every dependent chart
func (d *Dashboard) UpdateAll(payload *models.SummaryPayload) {
	d.binder.Update(d.registry, payload)
}

// ResizeAll re-renders every chart against its surface's current size
func (d *Dashboard) ResizeAll() {
	d.registry.ResizeAll()
}

// DestroyAll releases every chart instance
func (d *Dashboard) DestroyAll() {
	d.registry.DestroyAll()
}

// SampleCharts returns the names of charts still showing seeded sample
// data, so the page can mark them as placeholders.
func (d *Dashboard) SampleCharts() []string {
	var names []string
	for _, name := range d.registry.Names() {
		if instance, ok := d.registry.Get(name); ok && !instance.HasRealData() {
			names = append(names, name)
		}
	}
	return names
}
