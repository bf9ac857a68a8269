package render

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// MiniTrendPNG renders a compact static trend chart as a PNG. Published
// snapshots embed it so they stay readable without the echarts script.
func MiniTrendPNG(title string, values []float64) ([]byte, error) {
	if len(values) < 2 {
		return nil, fmt.Errorf("mini trend needs at least 2 values, got %d", len(values))
	}

	xValues := make([]float64, len(values))
	for i := range values {
		xValues[i] = float64(i)
	}

	mainSeries := chart.ContinuousSeries{
		Name: title,
		Style: chart.Style{
			StrokeColor: drawing.Color{R: 78, G: 115, B: 223, A: 255},
			StrokeWidth: 2,
			FillColor:   drawing.Color{R: 78, G: 115, B: 223, A: 40},
		},
		XValues: xValues,
		YValues: values,
	}

	graph := chart.Chart{
		Title: title,
		TitleStyle: chart.Style{
			FontSize:  12,
			FontColor: drawing.ColorBlack,
		},
		Width:  420,
		Height: 140,
		Background: chart.Style{
			Padding: chart.Box{Top: 26, Left: 10, Right: 10, Bottom: 10},
		},
		XAxis: chart.XAxis{Style: chart.Hidden()},
		YAxis: chart.YAxis{Style: chart.Hidden()},
		Series: []chart.Series{
			mainSeries,
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render mini trend: %w", err)
	}
	return buf.Bytes(), nil
}
