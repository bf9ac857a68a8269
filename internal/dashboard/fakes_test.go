package dashboard

import (
	"taxdash/internal/models"
	"taxdash/internal/render"
)

// fakeHandle records engine calls so tests can assert redraw counts and
// inject per-instance failures.
type fakeHandle struct {
	surface *render.Surface

	redraws     int
	resizes     int
	lastDataset models.Dataset
	destroyed   bool

	redrawErr error
	resizeErr error
}

func (h *fakeHandle) Redraw(dataset models.Dataset) error {
	if h.destroyed {
		return render.ErrDestroyed
	}
	if h.redrawErr != nil {
		return h.redrawErr
	}
	h.redraws++
	h.lastDataset = dataset.Clone()
	return nil
}

func (h *fakeHandle) Resize() error {
	if h.destroyed {
		return render.ErrDestroyed
	}
	if h.resizeErr != nil {
		return h.resizeErr
	}
	h.resizes++
	return nil
}

func (h *fakeHandle) Destroy() error {
	h.destroyed = true
	return nil
}

type fakeEngine struct {
	handles map[string]*fakeHandle
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{handles: make(map[string]*fakeHandle)}
}

func (e *fakeEngine) NewChart(surface *render.Surface, kind render.ChartKind, visual render.VisualConfig) (render.Handle, error) {
	handle := &fakeHandle{surface: surface}
	e.handles[surface.Name()] = handle
	return handle, nil
}

// newTestRegistry builds a registry with surfaces for the given chart names
func newTestRegistry(names ...string) (*ChartRegistry, *fakeEngine) {
	engine := newFakeEngine()
	surfaces := render.NewSurfaceSet()
	for _, name := range names {
		surfaces.Add(name, 800, 400)
	}
	return NewChartRegistry(engine, surfaces), engine
}

// createAllCharts creates the four standard charts with fixed day labels
func createAllCharts(registry *ChartRegistry) {
	dayLabels := []string{"d1", "d2", "d3", "d4", "d5", "d6", "d7"}

	registry.Create(ChartActivityTrend, render.KindLine, dayLabels,
		[]string{"Sessions", "Conversations", "Jobs"}, render.VisualConfig{})
	registry.Create(ChartStatusBreakdown, render.KindPie, StatusLabels,
		[]string{"Sessions"}, render.VisualConfig{})
	registry.Create(ChartTaskProgress, render.KindBar, ProgressCategories,
		[]string{"Completed", "In Progress", "Pending"}, render.VisualConfig{})
	registry.Create(ChartProcessingTime, render.KindLine, dayLabels,
		[]string{"Avg Processing Minutes"}, render.VisualConfig{})
}

func allChartNames() []string {
	return []string{ChartActivityTrend, ChartStatusBreakdown, ChartTaskProgress, ChartProcessingTime}
}

func floatPtr(v float64) *float64 {
	return &v
}

func equalValues(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
