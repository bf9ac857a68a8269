package dashboard

import "errors"

var (
	// ErrChartExists is returned by Create when a live instance already
	// holds the requested name. The caller must Destroy first; silently
	// replacing would leak the previous render handle.
	ErrChartExists = errors.New("chart already exists")

	// ErrSurfaceNotFound is returned by Create when the named render
	// surface is absent. This is a normal outcome: the page layout simply
	// does not include that chart.
	ErrSurfaceNotFound = errors.New("render surface not found")

	// ErrMalformedSection marks a payload section that is present but
	// unusable. The affected chart keeps its previous dataset.
	ErrMalformedSection = errors.New("malformed payload section")
)
