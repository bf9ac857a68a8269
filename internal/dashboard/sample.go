package dashboard

import (
	"math/rand"
	"time"
)

// GenerateTrendData produces days random sample values for demo charts,
// each at least 10 and below max+10. Placeholder data only: charts that
// have received a real payload never get sample values again.
func GenerateTrendData(days, max int) []int {
	if days <= 0 {
		return nil
	}
	if max < 1 {
		max = 1
	}

	values := make([]int, days)
	for i := range values {
		values[i] = rand.Intn(max) + 10
	}
	return values
}

// GenerateTimeLabels produces days short date labels in ascending
// chronological order, ending on the current day.
func GenerateTimeLabels(days int) []string {
	if days <= 0 {
		return nil
	}

	now := time.Now()
	labels := make([]string, days)
	for i := 0; i < days; i++ {
		labels[i] = now.AddDate(0, 0, i-days+1).Format("Jan 2")
	}
	return labels
}

// sampleValues adapts GenerateTrendData to the float series the datasets use
func sampleValues(count int) []float64 {
	ints := GenerateTrendData(count, 100)
	values := make([]float64, len(ints))
	for i, v := range ints {
		values[i] = float64(v)
	}
	return values
}
