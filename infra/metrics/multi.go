package metrics

import coremetrics "github.com/rotaplan/rotaplan/core/metrics"

// MultiSink fans solver records out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordAssignments forwards the records to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordAssignments(records []coremetrics.AssignmentRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordAssignments(records); err != nil {
			return err
		}
	}
	return nil
}

// RecordRun forwards run summaries to the sinks that record them.
func (m *MultiSink) RecordRun(rec coremetrics.RunRecord) error {
	for _, s := range m.Sinks {
		if rr, ok := s.(coremetrics.RunRecorder); ok {
			if err := rr.RecordRun(rec); err != nil {
				return err
			}
		}
	}
	return nil
}
