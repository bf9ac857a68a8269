package models

// Series is one named numeric sequence, aligned positionally with the
// category labels of the dataset it belongs to.
type Series struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// Dataset is the data backing one chart: a fixed label sequence plus one or
// more series whose length always equals the label count.
type Dataset struct {
	Labels []string `json:"labels"`
	Series []Series `json:"series"`
}

// Clone returns a deep copy so callers can hand out snapshots without
// exposing the live arrays.
func (d Dataset) Clone() Dataset {
	out := Dataset{
		Labels: append([]string(nil), d.Labels...),
		Series: make([]Series, len(d.Series)),
	}
	for i, s := range d.Series {
		out.Series[i] = Series{
			Name:   s.Name,
			Values: append([]float64(nil), s.Values...),
		}
	}
	return out
}

// SeriesByName returns the index of the named series, or -1
func (d Dataset) SeriesByName(name string) int {
	for i, s := range d.Series {
		if s.Name == name {
			return i
		}
	}
	return -1
}

// FitValues pads with zeros or trims values so its length matches the label
// count of the dataset. The input slice is not modified.
func (d Dataset) FitValues(values []float64) []float64 {
	fitted := make([]float64, len(d.Labels))
	copy(fitted, values)
	return fitted
}
