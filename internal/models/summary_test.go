package models

import (
	"testing"
)

func TestParseSummaryPayload(t *testing.T) {
	data := []byte(`{
		"sessions": {
			"recentActivity": {"sessions": [1,2,3], "conversations": [4,5,6], "jobs": [7,8,9]},
			"statusDistribution": {"active": 12, "failed": 2}
		},
		"jobs": {
			"completionRates": {"documents": {"completed": 85, "inProgress": 10}}
		}
	}`)

	payload, warnings, err := ParseSummaryPayload(data)
	if err != nil {
		t.Fatalf("ParseSummaryPayload failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", warnings)
	}

	if payload.Sessions == nil || payload.Sessions.RecentActivity == nil {
		t.Fatal("Expected sessions.recentActivity to be present")
	}
	if len(payload.Sessions.RecentActivity.Sessions) != 3 {
		t.Errorf("Expected 3 session values, got %d", len(payload.Sessions.RecentActivity.Sessions))
	}

	dist := payload.Sessions.StatusDistribution
	if dist == nil {
		t.Fatal("Expected statusDistribution to be present")
	}
	if dist.Active == nil || *dist.Active != 12 {
		t.Errorf("Expected active=12, got %v", dist.Active)
	}
	if dist.Completed != nil {
		t.Errorf("Expected completed to be absent, got %v", *dist.Completed)
	}

	if payload.Jobs == nil {
		t.Fatal("Expected jobs section to be present")
	}
	docs := payload.Jobs.CompletionRates["documents"]
	if docs == nil {
		t.Fatal("Expected documents category to be present")
	}
	if docs.Completed == nil || *docs.Completed != 85 {
		t.Errorf("Expected documents.completed=85, got %v", docs.Completed)
	}
	if docs.Pending != nil {
		t.Errorf("Expected documents.pending to be absent, got %v", *docs.Pending)
	}
}

func TestParseSummaryPayloadEmptySections(t *testing.T) {
	payload, warnings, err := ParseSummaryPayload([]byte(`{}`))
	if err != nil {
		t.Fatalf("ParseSummaryPayload failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", warnings)
	}
	if payload.Sessions != nil || payload.Jobs != nil {
		t.Error("Expected both sections to be nil for empty payload")
	}
}

func TestParseSummaryPayloadMalformedSectionIsolation(t *testing.T) {
	// sessions is malformed (non-numeric value), jobs is fine
	data := []byte(`{
		"sessions": {"statusDistribution": {"active": "lots"}},
		"jobs": {"processingTimes": [10, 11, 12]}
	}`)

	payload, warnings, err := ParseSummaryPayload(data)
	if err != nil {
		t.Fatalf("ParseSummaryPayload failed: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("Expected 1 warning, got %d: %v", len(warnings), warnings)
	}
	if payload.Sessions != nil {
		t.Error("Expected malformed sessions section to be dropped")
	}
	if payload.Jobs == nil || len(payload.Jobs.ProcessingTimes) != 3 {
		t.Error("Expected jobs section to survive the malformed sessions section")
	}
}

func TestParseSummaryPayloadInvalidJSON(t *testing.T) {
	if _, _, err := ParseSummaryPayload([]byte(`{not json`)); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestDatasetFitValues(t *testing.T) {
	d := Dataset{Labels: []string{"a", "b", "c", "d"}}

	tests := []struct {
		name   string
		values []float64
		want   []float64
	}{
		{name: "exact length", values: []float64{1, 2, 3, 4}, want: []float64{1, 2, 3, 4}},
		{name: "short input padded", values: []float64{1, 2}, want: []float64{1, 2, 0, 0}},
		{name: "long input trimmed", values: []float64{1, 2, 3, 4, 5, 6}, want: []float64{1, 2, 3, 4}},
		{name: "nil input zero filled", values: nil, want: []float64{0, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.FitValues(tt.values)
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %d values, got %d", len(tt.want), len(got))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Value %d: expected %v, got %v", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestDatasetClone(t *testing.T) {
	d := Dataset{
		Labels: []string{"a", "b"},
		Series: []Series{{Name: "s1", Values: []float64{1, 2}}},
	}

	clone := d.Clone()
	clone.Series[0].Values[0] = 99
	clone.Labels[0] = "z"

	if d.Series[0].Values[0] != 1 {
		t.Error("Clone shares series values with the original")
	}
	if d.Labels[0] != "a" {
		t.Error("Clone shares labels with the original")
	}
}

func TestFloatOrZero(t *testing.T) {
	if got := FloatOrZero(nil); got != 0 {
		t.Errorf("Expected 0 for nil, got %v", got)
	}
	v := 42.5
	if got := FloatOrZero(&v); got != 42.5 {
		t.Errorf("Expected 42.5, got %v", got)
	}
}
