package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	coremetrics "github.com/rotaplan/rotaplan/core/metrics"
)

// PromSink records solver decisions in Prometheus metrics.
type PromSink struct {
	assignments *prometheus.CounterVec
	unfilled    prometheus.Counter
	duration    prometheus.Histogram
	persons     prometheus.Gauge
}

// NewPromSink registers solver metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (*PromSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(cfg coremetrics.Config, reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	assignments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rota_assignments_total",
		Help: "Total number of committed day assignments by assignee kind",
	}, []string{"kind"})
	unfilled := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rota_unfilled_days_total",
		Help: "Total number of days left without an assignee",
	})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "rota_solve_duration_seconds",
		Help:    "Duration of complete solver runs",
		Buckets: prometheus.DefBuckets,
	})
	persons := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "rota_roster_persons",
		Help: "Number of primary persons in the last solved roster",
	})

	if err := reg.Register(assignments); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			assignments = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(unfilled); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			unfilled = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(persons); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			persons = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{assignments: assignments, unfilled: unfilled, duration: duration, persons: persons}, nil
}

// RecordAssignments increments the counters for each per-day decision.
func (s *PromSink) RecordAssignments(records []coremetrics.AssignmentRecord) error {
	for _, r := range records {
		s.assignments.WithLabelValues(r.Kind.String()).Inc()
	}
	return nil
}

// RecordRun observes the run duration and updates the run-level gauges.
func (s *PromSink) RecordRun(rec coremetrics.RunRecord) error {
	s.duration.Observe(rec.Duration.Seconds())
	s.unfilled.Add(float64(rec.Unfilled))
	s.persons.Set(float64(rec.Persons))
	return nil
}

// StartPromServer starts an HTTP server exposing Prometheus metrics on the
// given address. The server runs until the provided context is canceled.
// A dedicated ServeMux is used to avoid interfering with other handlers.
func StartPromServer(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
