package metrics

import (
	"time"

	"github.com/rotaplan/rotaplan/core/model"
)

// AssignmentRecord represents one per-day solver decision to be recorded.
type AssignmentRecord struct {
	RunID      string
	Day        model.Day
	Kind       model.AssigneeKind
	AssigneeID string
	// Candidates is the size of the filtered primary candidate list for
	// the day, before any fallback was consulted.
	Candidates int
	Time       time.Time
}

// RunRecord summarizes one completed solver run.
type RunRecord struct {
	RunID             string
	Persons           int
	Days              int
	Unfilled          int
	SubcontractorUses int
	Duration          time.Duration
	Time              time.Time
}

// MetricsSink records solver decisions for observability purposes.
type MetricsSink interface {
	RecordAssignments(records []AssignmentRecord) error
}

// RunRecorder records run summaries. Sinks implement it optionally.
type RunRecorder interface {
	RecordRun(rec RunRecord) error
}

// NopSink discards all records.
type NopSink struct{}

func (NopSink) RecordAssignments([]AssignmentRecord) error { return nil }
func (NopSink) RecordRun(RunRecord) error                  { return nil }
