package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// SummaryPayload represents aggregate filing statistics delivered by the
// external scheduler. Every section is optional; a missing section means
// "no update for the charts that depend on it".
type SummaryPayload struct {
	Timestamp time.Time        `json:"timestamp,omitempty"`
	Sessions  *SessionsSummary `json:"sessions,omitempty"`
	Jobs      *JobsSummary     `json:"jobs,omitempty"`
}

// SessionsSummary contains filing-session statistics
type SessionsSummary struct {
	RecentActivity     *RecentActivity     `json:"recentActivity,omitempty"`
	StatusDistribution *StatusDistribution `json:"statusDistribution,omitempty"`
}

// RecentActivity holds three parallel daily series for the activity trend chart
type RecentActivity struct {
	Sessions      []float64 `json:"sessions"`
	Conversations []float64 `json:"conversations"`
	Jobs          []float64 `json:"jobs"`
}

// StatusDistribution holds per-status session counts. Fields are pointers so
// an omitted count can be told apart from an explicit zero.
type StatusDistribution struct {
	Active    *float64 `json:"active,omitempty"`
	Completed *float64 `json:"completed,omitempty"`
	Pending   *float64 `json:"pending,omitempty"`
	Failed    *float64 `json:"failed,omitempty"`
}

// JobsSummary contains processing-job statistics
type JobsSummary struct {
	CompletionRates map[string]*CategoryRates `json:"completionRates,omitempty"`
	ProcessingTimes []float64                 `json:"processingTimes,omitempty"`
}

// CategoryRates holds the three progress metrics for one task category
type CategoryRates struct {
	Completed  *float64 `json:"completed,omitempty"`
	InProgress *float64 `json:"inProgress,omitempty"`
	Pending    *float64 `json:"pending,omitempty"`
}

// rawSummary splits the top-level sections so each one is decoded on its own.
type rawSummary struct {
	Timestamp time.Time       `json:"timestamp,omitempty"`
	Sessions  json.RawMessage `json:"sessions,omitempty"`
	Jobs      json.RawMessage `json:"jobs,omitempty"`
}

// ParseSummaryPayload decodes a summary payload, section by section. A
// malformed section is dropped (reported in the returned warnings) without
// discarding the sections that did decode, so one bad section cannot block
// updates sourced from the others.
func ParseSummaryPayload(data []byte) (*SummaryPayload, []string, error) {
	var raw rawSummary
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("failed to parse summary payload: %w", err)
	}

	payload := &SummaryPayload{Timestamp: raw.Timestamp}
	var warnings []string

	if len(raw.Sessions) > 0 {
		var sessions SessionsSummary
		if err := json.Unmarshal(raw.Sessions, &sessions); err != nil {
			warnings = append(warnings, fmt.Sprintf("sessions section malformed: %v", err))
		} else {
			payload.Sessions = &sessions
		}
	}

	if len(raw.Jobs) > 0 {
		var jobs JobsSummary
		if err := json.Unmarshal(raw.Jobs, &jobs); err != nil {
			warnings = append(warnings, fmt.Sprintf("jobs section malformed: %v", err))
		} else {
			payload.Jobs = &jobs
		}
	}

	return payload, warnings, nil
}

// FloatOrZero returns the pointed-to value, or 0 when the field was omitted
func FloatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
