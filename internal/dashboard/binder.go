package dashboard

import (
	"errors"
	"fmt"
	"math"

	"taxdash/internal/logger"
	"taxdash/internal/models"
	"taxdash/internal/render"
)

// Logical chart names. Each doubles as the identifier of the render surface
// the chart binds to.
const (
	ChartActivityTrend   = "activity-trend"
	ChartStatusBreakdown = "status-breakdown"
	ChartTaskProgress    = "task-progress"
	ChartProcessingTime  = "processing-time"
)

// StatusLabels is the fixed slice order of the status breakdown chart
var StatusLabels = []string{"Active", "Completed", "Pending", "Failed"}

// ProgressCategories are the fixed task-progress columns, in display order
var ProgressCategories = []string{"Documents", "Tax Forms", "Calculations", "Reviews"}

// progressKeys maps each progress column to its payload key, positionally
// aligned with ProgressCategories.
var progressKeys = []string{"documents", "taxForms", "calculations", "reviews"}

// DataBinder projects summary payload sections onto the datasets of the
// matching chart instances. Each chart is handled independently: a missing
// or malformed section affects only the chart that depends on it.
type DataBinder struct {
	log *logger.Logger
}

// NewDataBinder creates a data binder
func NewDataBinder() *DataBinder {
	return &DataBinder{
		log: logger.GetGlobalLogger().WithComponent("binder"),
	}
}

// Update applies the payload to every dependent chart in the registry and
// triggers exactly one redraw per chart whose data changed. Charts whose
// sections are absent keep their previous datasets untouched.
func (b *DataBinder) Update(registry *ChartRegistry, payload *models.SummaryPayload) {
	if registry == nil || payload == nil {
		return
	}

	b.applyActivity(registry, payload)
	b.applyStatus(registry, payload)
	b.applyProgress(registry, payload)
	b.applyProcessingTimes(registry, payload)
}

// applyActivity binds sessions.recentActivity onto the activity trend chart.
// The three sequences land as parallel series; if the sub-path is absent the
// chart is left alone rather than partially overwritten with defaults.
func (b *DataBinder) applyActivity(registry *ChartRegistry, payload *models.SummaryPayload) {
	if payload.Sessions == nil || payload.Sessions.RecentActivity == nil {
		return
	}
	instance, ok := registry.Get(ChartActivityTrend)
	if !ok {
		return
	}

	activity := payload.Sessions.RecentActivity
	series := [][]float64{activity.Sessions, activity.Conversations, activity.Jobs}
	if !allFinite(series...) {
		b.reportMalformed(ChartActivityTrend, "sessions.recentActivity")
		return
	}

	for i := range series {
		if i >= len(instance.dataset.Series) {
			break
		}
		instance.dataset.Series[i].Values = instance.dataset.FitValues(series[i])
	}

	b.redraw(instance)
}

// applyStatus binds sessions.statusDistribution onto the status breakdown
// chart. Once the section is present every slot gets a definite value:
// omitted statuses count as 0, in the fixed order active, completed,
// pending, failed.
func (b *DataBinder) applyStatus(registry *ChartRegistry, payload *models.SummaryPayload) {
	if payload.Sessions == nil || payload.Sessions.StatusDistribution == nil {
		return
	}
	instance, ok := registry.Get(ChartStatusBreakdown)
	if !ok {
		return
	}

	dist := payload.Sessions.StatusDistribution
	values := []float64{
		models.FloatOrZero(dist.Active),
		models.FloatOrZero(dist.Completed),
		models.FloatOrZero(dist.Pending),
		models.FloatOrZero(dist.Failed),
	}
	if !allFinite(values) {
		b.reportMalformed(ChartStatusBreakdown, "sessions.statusDistribution")
		return
	}

	if len(instance.dataset.Series) == 0 {
		return
	}
	instance.dataset.Series[0].Values = instance.dataset.FitValues(values)

	b.redraw(instance)
}

// applyProgress binds jobs.completionRates onto the task progress chart. A
// present category zero-fills whichever of its three metrics it omits; an
// absent category keeps the column's previous values.
func (b *DataBinder) applyProgress(registry *ChartRegistry, payload *models.SummaryPayload) {
	if payload.Jobs == nil || payload.Jobs.CompletionRates == nil {
		return
	}
	instance, ok := registry.Get(ChartTaskProgress)
	if !ok {
		return
	}
	if len(instance.dataset.Series) < 3 {
		return
	}

	applied := false
	for i, key := range progressKeys {
		if i >= len(instance.dataset.Labels) {
			break
		}
		rates, ok := payload.Jobs.CompletionRates[key]
		if !ok || rates == nil {
			continue
		}

		values := []float64{
			models.FloatOrZero(rates.Completed),
			models.FloatOrZero(rates.InProgress),
			models.FloatOrZero(rates.Pending),
		}
		if !allFinite(values) {
			b.reportMalformed(ChartTaskProgress, "jobs.completionRates."+key)
			continue
		}

		for metric := 0; metric < 3; metric++ {
			instance.dataset.Series[metric].Values[i] = values[metric]
		}
		applied = true
	}

	if applied {
		b.redraw(instance)
	}
}

// applyProcessingTimes binds jobs.processingTimes onto the timeline chart
func (b *DataBinder) applyProcessingTimes(registry *ChartRegistry, payload *models.SummaryPayload) {
	if payload.Jobs == nil || payload.Jobs.ProcessingTimes == nil {
		return
	}
	instance, ok := registry.Get(ChartProcessingTime)
	if !ok {
		return
	}

	times := payload.Jobs.ProcessingTimes
	if !allFinite(times) {
		b.reportMalformed(ChartProcessingTime, "jobs.processingTimes")
		return
	}
	if len(instance.dataset.Series) == 0 {
		return
	}
	instance.dataset.Series[0].Values = instance.dataset.FitValues(times)

	b.redraw(instance)
}

// redraw marks the instance as payload-bound and asks the engine to
// re-render it. A chart destroyed mid-update is skipped, not an error.
func (b *DataBinder) redraw(instance *ChartInstance) {
	instance.bound = true
	if err := instance.handle.Redraw(instance.dataset); err != nil {
		if errors.Is(err, render.ErrDestroyed) {
			b.log.Debugf("skipping redraw of destroyed chart %q", instance.name)
			return
		}
		b.log.Error(fmt.Sprintf("redraw failed for chart %q", instance.name), err)
	}
}

func (b *DataBinder) reportMalformed(chart, section string) {
	b.log.Warn(fmt.Sprintf("%v: %s, chart %q keeps previous data", ErrMalformedSection, section, chart))
}

// allFinite reports whether every value in every slice is a usable number
func allFinite(series ...[]float64) bool {
	for _, values := range series {
		for _, v := range values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}
