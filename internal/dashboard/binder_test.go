package dashboard

import (
	"math"
	"testing"

	"taxdash/internal/models"
	"taxdash/internal/render"
)

func TestUpdateAbsentSectionsLeaveChartsUntouched(t *testing.T) {
	registry, engine := newTestRegistry(allChartNames()...)
	createAllCharts(registry)
	binder := NewDataBinder()

	// Seed known prior values
	activity, _ := registry.Get(ChartActivityTrend)
	prior := []float64{1, 2, 3, 4, 5, 6, 7}
	activity.dataset.Series[0].Values = append([]float64(nil), prior...)

	binder.Update(registry, &models.SummaryPayload{})

	if !equalValues(activity.dataset.Series[0].Values, prior) {
		t.Errorf("Chart with absent section was modified: %v", activity.dataset.Series[0].Values)
	}
	for name, handle := range engine.handles {
		if handle.redraws != 0 {
			t.Errorf("Chart %q was redrawn %d times for an empty payload", name, handle.redraws)
		}
	}
}

func TestUpdateNilPayloadIsNoop(t *testing.T) {
	registry, engine := newTestRegistry(allChartNames()...)
	createAllCharts(registry)

	NewDataBinder().Update(registry, nil)

	for name, handle := range engine.handles {
		if handle.redraws != 0 {
			t.Errorf("Chart %q was redrawn for a nil payload", name)
		}
	}
}

func TestActivityBinding(t *testing.T) {
	registry, engine := newTestRegistry(allChartNames()...)
	createAllCharts(registry)
	binder := NewDataBinder()

	payload := &models.SummaryPayload{
		Sessions: &models.SessionsSummary{
			RecentActivity: &models.RecentActivity{
				Sessions:      []float64{10, 20, 30, 40, 50, 60, 70},
				Conversations: []float64{1, 2, 3}, // short, padded with zeros
				Jobs:          []float64{5, 5, 5, 5, 5, 5, 5, 99, 99},
			},
		},
	}

	binder.Update(registry, payload)

	instance, _ := registry.Get(ChartActivityTrend)
	ds := instance.Dataset()

	if !equalValues(ds.Series[0].Values, []float64{10, 20, 30, 40, 50, 60, 70}) {
		t.Errorf("Sessions series wrong: %v", ds.Series[0].Values)
	}
	if !equalValues(ds.Series[1].Values, []float64{1, 2, 3, 0, 0, 0, 0}) {
		t.Errorf("Short series should be zero padded: %v", ds.Series[1].Values)
	}
	if !equalValues(ds.Series[2].Values, []float64{5, 5, 5, 5, 5, 5, 5}) {
		t.Errorf("Long series should be trimmed to label count: %v", ds.Series[2].Values)
	}

	if engine.handles[ChartActivityTrend].redraws != 1 {
		t.Errorf("Activity chart should be redrawn exactly once, got %d", engine.handles[ChartActivityTrend].redraws)
	}
	if !instance.HasRealData() {
		t.Error("Chart should be marked as payload-bound")
	}
}

func TestStatusDistributionZeroFillsOmittedFields(t *testing.T) {
	registry, engine := newTestRegistry(allChartNames()...)
	createAllCharts(registry)
	binder := NewDataBinder()

	subsets := []struct {
		name string
		dist *models.StatusDistribution
		want []float64
	}{
		{
			name: "only active",
			dist: &models.StatusDistribution{Active: floatPtr(7)},
			want: []float64{7, 0, 0, 0},
		},
		{
			name: "completed and failed",
			dist: &models.StatusDistribution{Completed: floatPtr(12), Failed: floatPtr(3)},
			want: []float64{0, 12, 0, 3},
		},
		{
			name: "all fields",
			dist: &models.StatusDistribution{
				Active: floatPtr(1), Completed: floatPtr(2), Pending: floatPtr(3), Failed: floatPtr(4),
			},
			want: []float64{1, 2, 3, 4},
		},
		{
			name: "empty section still zero fills",
			dist: &models.StatusDistribution{},
			want: []float64{0, 0, 0, 0},
		},
	}

	for i, tt := range subsets {
		t.Run(tt.name, func(t *testing.T) {
			binder.Update(registry, &models.SummaryPayload{
				Sessions: &models.SessionsSummary{StatusDistribution: tt.dist},
			})

			instance, _ := registry.Get(ChartStatusBreakdown)
			got := instance.Dataset().Series[0].Values
			if !equalValues(got, tt.want) {
				t.Errorf("Expected %v in order [active, completed, pending, failed], got %v", tt.want, got)
			}
			if engine.handles[ChartStatusBreakdown].redraws != i+1 {
				t.Errorf("Expected %d redraws so far, got %d", i+1, engine.handles[ChartStatusBreakdown].redraws)
			}
		})
	}
}

func TestProgressPartialCategoryUpdate(t *testing.T) {
	registry, engine := newTestRegistry(allChartNames()...)
	createAllCharts(registry)
	binder := NewDataBinder()

	// Seed known prior values across all four categories
	instance, _ := registry.Get(ChartTaskProgress)
	instance.dataset.Series[0].Values = []float64{50, 60, 70, 80} // Completed
	instance.dataset.Series[1].Values = []float64{30, 20, 15, 10} // In Progress
	instance.dataset.Series[2].Values = []float64{20, 20, 15, 10} // Pending

	payload := &models.SummaryPayload{
		Jobs: &models.JobsSummary{
			CompletionRates: map[string]*models.CategoryRates{
				"documents": {Completed: floatPtr(85), InProgress: floatPtr(10)},
			},
		},
	}
	binder.Update(registry, payload)

	ds := instance.Dataset()
	// Documents column becomes [85, 10, 0]: pending defaulted to 0
	if ds.Series[0].Values[0] != 85 || ds.Series[1].Values[0] != 10 || ds.Series[2].Values[0] != 0 {
		t.Errorf("Documents column wrong: [%v, %v, %v]",
			ds.Series[0].Values[0], ds.Series[1].Values[0], ds.Series[2].Values[0])
	}

	// Tax Forms, Calculations, Reviews keep their previous values
	for col := 1; col < 4; col++ {
		if ds.Series[0].Values[col] != []float64{50, 60, 70, 80}[col] ||
			ds.Series[1].Values[col] != []float64{30, 20, 15, 10}[col] ||
			ds.Series[2].Values[col] != []float64{20, 20, 15, 10}[col] {
			t.Errorf("Column %d (%s) should be untouched, got [%v, %v, %v]",
				col, ProgressCategories[col],
				ds.Series[0].Values[col], ds.Series[1].Values[col], ds.Series[2].Values[col])
		}
	}

	if engine.handles[ChartTaskProgress].redraws != 1 {
		t.Errorf("Progress chart should be redrawn exactly once, got %d", engine.handles[ChartTaskProgress].redraws)
	}
}

func TestProgressEmptyRatesSkipsRedraw(t *testing.T) {
	registry, engine := newTestRegistry(allChartNames()...)
	createAllCharts(registry)
	binder := NewDataBinder()

	binder.Update(registry, &models.SummaryPayload{
		Jobs: &models.JobsSummary{CompletionRates: map[string]*models.CategoryRates{}},
	})

	if engine.handles[ChartTaskProgress].redraws != 0 {
		t.Error("No categories applied, chart should not be redrawn")
	}
}

func TestProcessingTimesBinding(t *testing.T) {
	registry, engine := newTestRegistry(allChartNames()...)
	createAllCharts(registry)
	binder := NewDataBinder()

	binder.Update(registry, &models.SummaryPayload{
		Jobs: &models.JobsSummary{ProcessingTimes: []float64{12, 9, 14, 8, 11, 10, 13}},
	})

	instance, _ := registry.Get(ChartProcessingTime)
	if !equalValues(instance.Dataset().Series[0].Values, []float64{12, 9, 14, 8, 11, 10, 13}) {
		t.Errorf("Processing times not bound: %v", instance.Dataset().Series[0].Values)
	}
	if engine.handles[ChartProcessingTime].redraws != 1 {
		t.Errorf("Timeline chart should be redrawn exactly once, got %d", engine.handles[ChartProcessingTime].redraws)
	}
}

func TestMalformedSectionKeepsPreviousValues(t *testing.T) {
	registry, engine := newTestRegistry(allChartNames()...)
	createAllCharts(registry)
	binder := NewDataBinder()

	instance, _ := registry.Get(ChartStatusBreakdown)
	prior := []float64{4, 8, 2, 1}
	instance.dataset.Series[0].Values = append([]float64(nil), prior...)

	payload := &models.SummaryPayload{
		Sessions: &models.SessionsSummary{
			StatusDistribution: &models.StatusDistribution{Active: floatPtr(math.NaN())},
		},
		Jobs: &models.JobsSummary{ProcessingTimes: []float64{5, 5, 5, 5, 5, 5, 5}},
	}
	binder.Update(registry, payload)

	// Malformed status section: previous values retained, no redraw
	if !equalValues(instance.dataset.Series[0].Values, prior) {
		t.Errorf("Malformed section should keep previous values, got %v", instance.dataset.Series[0].Values)
	}
	if engine.handles[ChartStatusBreakdown].redraws != 0 {
		t.Error("Malformed section should not trigger a redraw")
	}

	// Other charts from the same payload proceed normally
	if engine.handles[ChartProcessingTime].redraws != 1 {
		t.Error("Healthy sections of the same payload should still be applied")
	}
}

func TestDestroyedChartMidUpdateIsSkipped(t *testing.T) {
	registry, engine := newTestRegistry(allChartNames()...)
	createAllCharts(registry)
	binder := NewDataBinder()

	// Chart destroyed after creation, before the payload lands
	engine.handles[ChartActivityTrend].destroyed = true

	payload := &models.SummaryPayload{
		Sessions: &models.SessionsSummary{
			RecentActivity: &models.RecentActivity{
				Sessions:      []float64{1, 2, 3, 4, 5, 6, 7},
				Conversations: []float64{1, 2, 3, 4, 5, 6, 7},
				Jobs:          []float64{1, 2, 3, 4, 5, 6, 7},
			},
			StatusDistribution: &models.StatusDistribution{Active: floatPtr(5)},
		},
	}

	// Must not panic, and the other chart still updates
	binder.Update(registry, payload)

	if engine.handles[ChartStatusBreakdown].redraws != 1 {
		t.Error("Status chart should update despite the destroyed activity chart")
	}
}

func TestUpdateWithMissingChartsIsNoop(t *testing.T) {
	// Page layout with only the status chart
	registry, _ := newTestRegistry(ChartStatusBreakdown)
	registry.Create(ChartStatusBreakdown, render.KindPie, StatusLabels, []string{"Sessions"}, render.VisualConfig{})
	binder := NewDataBinder()

	payload := &models.SummaryPayload{
		Sessions: &models.SessionsSummary{
			RecentActivity: &models.RecentActivity{Sessions: []float64{1}},
			StatusDistribution: &models.StatusDistribution{
				Active: floatPtr(3),
			},
		},
		Jobs: &models.JobsSummary{ProcessingTimes: []float64{1, 2, 3}},
	}

	// Sections for charts that were never created are silently skipped
	binder.Update(registry, payload)

	instance, _ := registry.Get(ChartStatusBreakdown)
	if instance.Dataset().Series[0].Values[0] != 3 {
		t.Error("Present chart should still be updated")
	}
}
