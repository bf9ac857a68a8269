package render

// Dashboard palette. Order matters: series pick colors positionally.
const (
	ColorPrimary   = "#4e73df"
	ColorSuccess   = "#1cc88a"
	ColorInfo      = "#36b9cc"
	ColorWarning   = "#f6c23e"
	ColorDanger    = "#e74a3b"
	ColorSecondary = "#858796"
)

// DefaultPalette is the series color cycle used when a chart does not set
// its own colors.
var DefaultPalette = []string{
	ColorPrimary,
	ColorSuccess,
	ColorInfo,
	ColorWarning,
	ColorDanger,
	ColorSecondary,
}

// StatusPalette colors the status breakdown slices in their fixed order:
// active, completed, pending, failed.
var StatusPalette = []string{
	ColorPrimary,
	ColorSuccess,
	ColorWarning,
	ColorDanger,
}

// VisualConfig carries per-chart presentation options. These are inputs the
// core passes through to the engine untouched.
type VisualConfig struct {
	Title      string
	Subtitle   string
	Colors     []string
	YAxisName  string
	Smooth     bool
	Stacked    bool
	Doughnut   bool
	ShowLegend bool
}

// Palette returns the configured colors, falling back to the default cycle
func (v VisualConfig) Palette() []string {
	if len(v.Colors) > 0 {
		return v.Colors
	}
	return DefaultPalette
}
