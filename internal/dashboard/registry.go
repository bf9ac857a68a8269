package dashboard

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"taxdash/internal/logger"
	"taxdash/internal/models"
	"taxdash/internal/render"
)

// ChartInstance is a live chart bound to a named render surface. Instances
// are owned exclusively by the registry; the dataset is mutated in place by
// the binder and destroyed exactly once.
type ChartInstance struct {
	name    string
	kind    render.ChartKind
	handle  render.Handle
	dataset models.Dataset

	// set once the chart has been bound from a real payload; sample data
	// is never applied again after that
	bound bool
}

// Name returns the logical chart name
func (c *ChartInstance) Name() string {
	return c.name
}

// Kind returns the visualization kind
func (c *ChartInstance) Kind() render.ChartKind {
	return c.kind
}

// Dataset returns a snapshot of the current dataset
func (c *ChartInstance) Dataset() models.Dataset {
	return c.dataset.Clone()
}

// HasRealData reports whether the chart has been updated from a payload,
// as opposed to still showing seeded sample data.
func (c *ChartInstance) HasRealData() bool {
	return c.bound
}

// ChartRegistry owns the name -> chart instance mapping. At most one live
// instance exists per name at any time.
type ChartRegistry struct {
	mu       sync.RWMutex
	engine   render.Engine
	surfaces *render.SurfaceSet
	charts   map[string]*ChartInstance
	log      *logger.Logger
}

// NewChartRegistry creates an empty registry bound to a render engine and
// the surface set of the hosting page.
func NewChartRegistry(engine render.Engine, surfaces *render.SurfaceSet) *ChartRegistry {
	return &ChartRegistry{
		engine:   engine,
		surfaces: surfaces,
		charts:   make(map[string]*ChartInstance),
		log:      logger.GetGlobalLogger().WithComponent("registry"),
	}
}

// Create constructs a chart instance under the given name. It fails with
// ErrChartExists when the name is taken and with ErrSurfaceNotFound when the
// page layout has no surface for it; the latter is expected and callers
// should treat it as a skip, not a failure.
func (r *ChartRegistry) Create(name string, kind render.ChartKind, labels []string, seriesNames []string, visual render.VisualConfig) (*ChartInstance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.charts[name]; exists {
		return nil, fmt.Errorf("chart %q: %w", name, ErrChartExists)
	}

	surface, ok := r.surfaces.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("chart %q: %w", name, ErrSurfaceNotFound)
	}

	handle, err := r.engine.NewChart(surface, kind, visual)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart %q: %w", name, err)
	}

	dataset := models.Dataset{
		Labels: append([]string(nil), labels...),
		Series: make([]models.Series, len(seriesNames)),
	}
	for i, seriesName := range seriesNames {
		dataset.Series[i] = models.Series{
			Name:   seriesName,
			Values: make([]float64, len(labels)),
		}
	}

	instance := &ChartInstance{
		name:    name,
		kind:    kind,
		handle:  handle,
		dataset: dataset,
	}
	r.charts[name] = instance

	r.log.Debugf("created %s chart %q with %d series over %d labels", kind, name, len(seriesNames), len(labels))
	return instance, nil
}

// Get looks up a chart instance by name. Never mutates.
func (r *ChartRegistry) Get(name string) (*ChartInstance, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	instance, ok := r.charts[name]
	return instance, ok
}

// Names returns the names of all live instances, sorted
func (r *ChartRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.charts))
	for name := range r.charts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResizeAll re-renders every live instance against its surface's current
// dimensions. One broken chart must not block the others: individual errors
// are logged and the loop continues.
func (r *ChartRegistry) ResizeAll() {
	r.mu.RLock()
	instances := make([]*ChartInstance, 0, len(r.charts))
	for _, instance := range r.charts {
		instances = append(instances, instance)
	}
	r.mu.RUnlock()

	for _, instance := range instances {
		if err := instance.handle.Resize(); err != nil {
			if errors.Is(err, render.ErrDestroyed) {
				r.log.Debugf("skipping resize of destroyed chart %q", instance.name)
				continue
			}
			r.log.Error(fmt.Sprintf("resize failed for chart %q", instance.name), err)
		}
	}
}

// Destroy releases the named chart and removes it from the registry.
// Destroying an unknown name is a no-op.
func (r *ChartRegistry) Destroy(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.destroyLocked(name)
}

// DestroyAll releases every live instance and leaves the registry empty
func (r *ChartRegistry) DestroyAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for name := range r.charts {
		r.destroyLocked(name)
	}
}

func (r *ChartRegistry) destroyLocked(name string) {
	instance, ok := r.charts[name]
	if !ok {
		return
	}
	if err := instance.handle.Destroy(); err != nil {
		r.log.Error(fmt.Sprintf("destroy failed for chart %q", name), err)
	}
	delete(r.charts, name)
}
