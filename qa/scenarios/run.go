package scenarios

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/rotaplan/rotaplan/core/metrics"
	"github.com/rotaplan/rotaplan/core/model"
	"github.com/rotaplan/rotaplan/core/roster"
	"github.com/rotaplan/rotaplan/infra/logger"
	"github.com/rotaplan/rotaplan/infra/metrics"
	"github.com/rotaplan/rotaplan/internal/eventbus"
)

var errorsByName = map[string]error{
	"no_persons":     roster.ErrNoPersonsDefined,
	"empty_calendar": roster.ErrCalendarSkeletonEmpty,
	"duplicate_day":  roster.ErrDuplicateDay,
}

func RunScenario(t *testing.T, sc *Scenario) {
	reg := prometheus.NewRegistry()
	sink, err := metrics.NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	if err != nil {
		t.Fatalf("prom sink: %v", err)
	}

	bus := eventbus.New()
	defer bus.Close()

	engine, err := roster.NewEngine(roster.Config{PoolPolicy: sc.PoolPolicy}, sink, bus, logger.NopLogger{})
	if err != nil {
		t.Fatalf("engine: %v", err)
	}

	persons := make([]model.Person, len(sc.Persons))
	for i, p := range sc.Persons {
		if persons[i], err = p.ToModel(); err != nil {
			t.Fatalf("scenario %s: %v", sc.Name, err)
		}
	}
	days := make([]model.Day, len(sc.Days))
	for i, d := range sc.Days {
		if days[i], err = parseDay(d); err != nil {
			t.Fatalf("scenario %s: %v", sc.Name, err)
		}
	}

	res, err := engine.Solve(persons, days, sc.Subcontractors)

	if sc.Expected.Error != "" {
		want, ok := errorsByName[sc.Expected.Error]
		if !ok {
			t.Fatalf("scenario %s names unknown error %q", sc.Name, sc.Expected.Error)
		}
		if !errors.Is(err, want) {
			t.Errorf("scenario %s expected error %s, got %v", sc.Name, sc.Expected.Error, err)
		}
		return
	}
	if err != nil {
		t.Fatalf("scenario %s: solve: %v", sc.Name, err)
	}

	if len(sc.Expected.Assignees) > 0 {
		if len(res.Calendar) != len(sc.Expected.Assignees) {
			t.Fatalf("scenario %s: calendar has %d days, expected %d", sc.Name, len(res.Calendar), len(sc.Expected.Assignees))
		}
		for i, want := range sc.Expected.Assignees {
			if got := res.Calendar[i].AssigneeID; got != want {
				t.Errorf("scenario %s: day %s assigned to %q, expected %q", sc.Name, res.Calendar[i].Day, got, want)
			}
		}
	}
	if got := res.Report.Summary.UnfilledDays; got != sc.Expected.Unfilled {
		t.Errorf("scenario %s: %d unfilled days, expected %d", sc.Name, got, sc.Expected.Unfilled)
	}
	if got := res.Report.Summary.SubcontractorUses; got != sc.Expected.SubcontractorUses {
		t.Errorf("scenario %s: %d subcontractor uses, expected %d", sc.Name, got, sc.Expected.SubcontractorUses)
	}
}
