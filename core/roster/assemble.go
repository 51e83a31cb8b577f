package roster

import (
	"gonum.org/v1/gonum/stat"

	"github.com/rotaplan/rotaplan/core/model"
)

// WarningCode classifies a recoverable per-day shortfall.
type WarningCode string

const (
	WarnUnfilledDay       WarningCode = "unfilled_day"
	WarnSubcontractorUsed WarningCode = "subcontractor_used"
	WarnPoolExhausted     WarningCode = "pool_exhausted"
)

// Warning records a recoverable shortfall for one day. Warnings never abort
// a run; they are collected separately from the calendar itself.
type Warning struct {
	Day     model.Day   `json:"day"`
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}

// Summary carries the per-run counts computed for downstream reporting.
type Summary struct {
	AssignmentsPerPerson map[string]int `json:"assignments_per_person"`
	SubcontractorUses    int            `json:"subcontractor_uses"`
	UnfilledDays         int            `json:"unfilled_days"`
	// CountStdDev is the standard deviation of per-person assignment
	// counts, a rough fairness indicator. Zero for fewer than two persons.
	CountStdDev float64 `json:"count_std_dev"`
}

// Report aggregates everything about a run that is not the calendar
// itself. It is a pure function of the input: two runs over identical input
// produce identical reports.
type Report struct {
	Warnings []Warning `json:"warnings,omitempty"`
	Summary  Summary   `json:"summary"`
}

// Result is the complete output of one solver run.
type Result struct {
	Calendar model.Calendar `json:"calendar"`
	Report   Report         `json:"report"`
}

// assembler collects committed per-day decisions in input day order and
// turns them into the final calendar and report. No decision logic here.
type assembler struct {
	entries  []model.Assignment
	warnings []Warning
	subUses  int
	unfilled int
}

func newAssembler(days int) *assembler {
	return &assembler{entries: make([]model.Assignment, 0, days)}
}

func (b *assembler) commit(a model.Assignment) {
	b.entries = append(b.entries, a)
	switch a.Kind {
	case model.AssigneeSubcontractor:
		b.subUses++
	case model.AssigneeNone:
		b.unfilled++
	}
}

func (b *assembler) warn(day model.Day, code WarningCode, msg string) {
	b.warnings = append(b.warnings, Warning{Day: day, Code: code, Message: msg})
}

// result builds the final Result. counts holds per-person assignment totals
// for the run; persons lists every primary person so that idle ones appear
// with a zero count.
func (b *assembler) result(persons []model.Person, counts map[string]int) *Result {
	per := make(map[string]int, len(persons))
	values := make([]float64, 0, len(persons))
	for _, p := range persons {
		per[p.ID] = counts[p.ID]
		values = append(values, float64(counts[p.ID]))
	}
	dev := 0.0
	if len(values) > 1 {
		dev = stat.StdDev(values, nil)
	}
	return &Result{
		Calendar: b.entries,
		Report: Report{
			Warnings: b.warnings,
			Summary: Summary{
				AssignmentsPerPerson: per,
				SubcontractorUses:    b.subUses,
				UnfilledDays:         b.unfilled,
				CountStdDev:          dev,
			},
		},
	}
}
