package roster

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rotaplan/rotaplan/core/events"
	"github.com/rotaplan/rotaplan/core/logger"
	"github.com/rotaplan/rotaplan/core/metrics"
	"github.com/rotaplan/rotaplan/core/model"
	"github.com/rotaplan/rotaplan/internal/eventbus"
)

// Engine runs greedy single-pass solves. It only holds run-independent
// collaborators; every Solve call owns its own mutable state, so one Engine
// may serve sequential runs without leakage between them.
type Engine struct {
	cfg  Config
	sink metrics.MetricsSink
	bus  eventbus.EventBus
	log  logger.Logger
}

// nopLogger keeps the engine usable without a configured logger.
type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}

// NewEngine creates an engine. sink, bus and log may be nil.
func NewEngine(cfg Config, sink metrics.MetricsSink, bus eventbus.EventBus, log logger.Logger) (*Engine, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = nopLogger{}
	}
	return &Engine{cfg: cfg, sink: sink, bus: bus, log: log}, nil
}

// runState is the per-run bookkeeping: assignment counts, committed days
// per person and the pool cursor. It is discarded when Solve returns.
type runState struct {
	counts    map[string]int
	committed map[string][]model.Day
	pool      *SubcontractorPool
}

// Solve produces one assignment per day. Structural errors abort the run;
// per-day shortfalls are recorded as warnings and solving continues, so a
// best-effort calendar covering the full day sequence is always returned on
// success. Two calls with identical input yield identical results.
func (e *Engine) Solve(persons []model.Person, days []model.Day, subcontractors []string) (*Result, error) {
	start := time.Now()

	idx, err := BuildIndex(persons)
	if err != nil {
		return nil, err
	}
	if len(persons) == 0 {
		return nil, ErrNoPersonsDefined
	}
	if len(days) == 0 {
		return nil, ErrCalendarSkeletonEmpty
	}

	ordered := make([]model.Day, len(days))
	for i, d := range days {
		ordered[i] = d
		ordered[i].Date = model.Midnight(d.Date)
		if ordered[i].Role == "" {
			ordered[i].Role = e.cfg.DefaultRole
		}
	}
	model.SortDays(ordered)
	for i := 1; i < len(ordered); i++ {
		if ordered[i].Equal(ordered[i-1]) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateDay, ordered[i])
		}
	}

	policy, err := ParsePoolPolicy(e.cfg.PoolPolicy)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	st := &runState{
		counts:    make(map[string]int, len(persons)),
		committed: make(map[string][]model.Day, len(persons)),
		pool:      NewSubcontractorPool(subcontractors, policy),
	}
	asm := newAssembler(len(ordered))

	e.publish(events.RunStarted{RunID: runID, Persons: len(persons), Days: len(ordered)})
	e.log.Infof("solving %d days for %d persons (pool size %d)", len(ordered), len(persons), st.pool.Size())

	records := make([]metrics.AssignmentRecord, 0, len(ordered))
	for _, day := range ordered {
		records = append(records, e.solveDay(runID, day, persons, idx, st, asm))
	}

	res := asm.result(persons, st.counts)
	e.publish(events.RunCompleted{
		RunID:             runID,
		Unfilled:          res.Report.Summary.UnfilledDays,
		SubcontractorUses: res.Report.Summary.SubcontractorUses,
		Duration:          time.Since(start),
	})
	if e.sink != nil {
		if err := e.sink.RecordAssignments(records); err != nil {
			e.log.Errorf("record assignments: %v", err)
		}
		if rr, ok := e.sink.(metrics.RunRecorder); ok {
			rec := metrics.RunRecord{
				RunID:             runID,
				Persons:           len(persons),
				Days:              len(ordered),
				Unfilled:          res.Report.Summary.UnfilledDays,
				SubcontractorUses: res.Report.Summary.SubcontractorUses,
				Duration:          time.Since(start),
				Time:              time.Now(),
			}
			if err := rr.RecordRun(rec); err != nil {
				e.log.Errorf("record run: %v", err)
			}
		}
	}
	return res, nil
}

// solveDay commits exactly one assignment for the day and returns the
// metrics record describing the decision.
func (e *Engine) solveDay(runID string, day model.Day, persons []model.Person, idx *AvailabilityIndex, st *runState, asm *assembler) metrics.AssignmentRecord {
	var eligible []string
	for _, p := range persons {
		if !idx.IsAvailable(p.ID, day.Date) {
			continue
		}
		if MayAssign(day, st.committed[p.ID]) {
			eligible = append(eligible, p.ID)
		}
	}

	rec := metrics.AssignmentRecord{RunID: runID, Day: day, Candidates: len(eligible), Time: time.Now()}

	if len(eligible) > 0 {
		pick := eligible[0]
		for _, id := range eligible[1:] {
			if st.counts[id] < st.counts[pick] || (st.counts[id] == st.counts[pick] && id < pick) {
				pick = id
			}
		}
		st.counts[pick]++
		st.committed[pick] = append(st.committed[pick], day)
		asm.commit(model.Assignment{Day: day, Kind: model.AssigneePerson, AssigneeID: pick})
		e.publish(events.Assigned{RunID: runID, Day: day, Kind: model.AssigneePerson, AssigneeID: pick})
		e.log.Debugw("day assigned", map[string]any{"day": day.String(), "person": pick})
		rec.Kind, rec.AssigneeID = model.AssigneePerson, pick
		return rec
	}

	if id, ok := st.pool.Next(); ok {
		asm.commit(model.Assignment{Day: day, Kind: model.AssigneeSubcontractor, AssigneeID: id})
		asm.warn(day, WarnSubcontractorUsed, fmt.Sprintf("no eligible person, assigned subcontractor %s", id))
		e.publish(events.Assigned{RunID: runID, Day: day, Kind: model.AssigneeSubcontractor, AssigneeID: id})
		e.log.Infof("day %s covered by subcontractor %s", day, id)
		rec.Kind, rec.AssigneeID = model.AssigneeSubcontractor, id
		return rec
	}

	if st.pool.Size() > 0 {
		asm.warn(day, WarnPoolExhausted, "subcontractor pool exhausted")
		e.publish(events.Shortfall{RunID: runID, Day: day, Code: string(WarnPoolExhausted)})
	}
	asm.commit(model.Assignment{Day: day, Kind: model.AssigneeNone})
	asm.warn(day, WarnUnfilledDay, "no eligible person and no subcontractor left")
	e.publish(events.Shortfall{RunID: runID, Day: day, Code: string(WarnUnfilledDay)})
	e.log.Warnf("day %s left unfilled", day)
	rec.Kind = model.AssigneeNone
	return rec
}

func (e *Engine) publish(ev eventbus.Event) {
	if e.bus != nil {
		e.bus.Publish(ev)
	}
}
