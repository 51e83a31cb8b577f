package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rotaplan/rotaplan/config"
	coremetrics "github.com/rotaplan/rotaplan/core/metrics"
	"github.com/rotaplan/rotaplan/core/notify"
	"github.com/rotaplan/rotaplan/core/roster"
	"github.com/rotaplan/rotaplan/infra/logger"
	"github.com/rotaplan/rotaplan/infra/metrics"
	"github.com/rotaplan/rotaplan/infra/mqtt"
	"github.com/rotaplan/rotaplan/internal/eventbus"
	"github.com/rotaplan/rotaplan/pkg/export"
	"github.com/rotaplan/rotaplan/pkg/rosterio"
)

// Service orchestrates one solve: load the roster, run the engine, export
// the calendar and notify the assignees.
type Service struct {
	cfg      *config.Config
	engine   *roster.Engine
	bus      eventbus.EventBus
	notifier notify.Notifier
	log      logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.MetricsSink
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	bus := eventbus.New()
	engine, err := roster.NewEngine(cfg.Solver, sink, bus, logg)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	svc := &Service{cfg: cfg, engine: engine, bus: bus, log: logg}
	if cfg.Notify.Enabled {
		notifier, err := mqtt.NewPahoNotifier(cfg.Notify.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt notifier: %w", err)
		}
		svc.notifier = notifier
	}
	return svc, nil
}

// Run performs the solve and blocks afterwards only when the Prometheus
// endpoint is enabled, so that the metrics can be scraped.
func (s *Service) Run(ctx context.Context) error {
	res, err := s.Solve()
	if err != nil {
		return err
	}
	if err := s.Export(res); err != nil {
		return err
	}
	if s.notifier != nil {
		s.notifyAll(res)
	}
	if s.cfg.Metrics.PrometheusEnabled {
		s.log.Infof("serving metrics on %s", s.cfg.Metrics.PrometheusPort)
		return metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort)
	}
	return nil
}

// Solve loads the roster file and runs the engine over it.
func (s *Service) Solve() (*roster.Result, error) {
	ros, err := rosterio.Load(s.cfg.Roster.Path)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	res, err := s.engine.Solve(ros.Persons, ros.Days, ros.Subcontractors)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	for _, w := range res.Report.Warnings {
		s.log.Warnf("%s: %s", w.Day, w.Message)
	}
	return res, nil
}

// Export writes the result to the configured destination.
func (s *Service) Export(res *roster.Result) error {
	var w io.Writer = os.Stdout
	if out := s.cfg.Export.Output; out != "" && out != "-" {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	switch s.cfg.Export.Format {
	case "json":
		return export.WriteJSON(w, res)
	case "csv":
		return export.WriteCSV(w, res)
	default:
		return export.WriteTable(w, res)
	}
}

func (s *Service) notifyAll(res *roster.Result) {
	for _, a := range res.Calendar {
		if !a.Filled() {
			continue
		}
		if _, err := s.notifier.NotifyAssignment(a); err != nil {
			s.log.Errorf("notify %s: %v", a.AssigneeID, err)
		}
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.bus != nil {
		s.bus.Close()
	}
	if s.notifier != nil {
		return s.notifier.Close()
	}
	return nil
}
