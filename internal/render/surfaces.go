package render

import (
	"sort"
	"sync"
)

// Surface is a named render target. Charts render their HTML document into
// the surface; the HTTP layer serves it back out. Which surfaces exist is
// decided by the hosting page layout, so a dashboard may carry only a subset
// of the known charts.
type Surface struct {
	name string

	mu     sync.Mutex
	width  int
	height int
	html   string
}

// Name returns the surface identifier
func (s *Surface) Name() string {
	return s.name
}

// Size returns the current surface dimensions in pixels
func (s *Surface) Size() (width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// SetSize updates the surface dimensions. Takes effect on the next redraw or
// resize of the chart bound to this surface.
func (s *Surface) SetSize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

// SetHTML replaces the rendered content of the surface
func (s *Surface) SetHTML(html string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.html = html
}

// HTML returns the current rendered content
func (s *Surface) HTML() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.html
}

// Clear drops the rendered content
func (s *Surface) Clear() {
	s.SetHTML("")
}

// SurfaceSet resolves surface names to surfaces
type SurfaceSet struct {
	mu       sync.RWMutex
	surfaces map[string]*Surface
}

// NewSurfaceSet creates an empty surface set
func NewSurfaceSet() *SurfaceSet {
	return &SurfaceSet{
		surfaces: make(map[string]*Surface),
	}
}

// Add registers a surface under the given name, replacing any previous one
func (ss *SurfaceSet) Add(name string, width, height int) *Surface {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	surface := &Surface{name: name, width: width, height: height}
	ss.surfaces[name] = surface
	return surface
}

// Lookup resolves a surface by name. A miss is a normal outcome: the page
// layout simply does not render that chart.
func (ss *SurfaceSet) Lookup(name string) (*Surface, bool) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	surface, ok := ss.surfaces[name]
	return surface, ok
}

// Names returns the registered surface names, sorted
func (ss *SurfaceSet) Names() []string {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	names := make([]string, 0, len(ss.surfaces))
	for name := range ss.surfaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
