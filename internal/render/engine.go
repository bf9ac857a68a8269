package render

import (
	"taxdash/internal/models"
)

// ChartKind selects the visualization type for a chart
type ChartKind string

const (
	KindLine ChartKind = "line"
	KindBar  ChartKind = "bar"
	KindPie  ChartKind = "pie"
)

// Handle is a live chart instance. It exposes the three instance operations
// the dashboard core needs; construction is the engine's job.
type Handle interface {
	// Redraw re-renders the chart from the given dataset
	Redraw(dataset models.Dataset) error

	// Resize re-renders the chart against its surface's current dimensions
	Resize() error

	// Destroy releases the chart and clears its surface. Idempotent.
	Destroy() error
}

// Engine constructs chart handles bound to render surfaces
type Engine interface {
	NewChart(surface *Surface, kind ChartKind, visual VisualConfig) (Handle, error)
}
