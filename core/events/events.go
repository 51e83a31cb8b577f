package events

import (
	"time"

	"github.com/rotaplan/rotaplan/core/model"
)

// RunStarted is published when a solve pass begins.
type RunStarted struct {
	RunID   string
	Persons int
	Days    int
}

// Assigned is published for each day that received an assignee.
type Assigned struct {
	RunID      string
	Day        model.Day
	Kind       model.AssigneeKind
	AssigneeID string
}

// Shortfall is published when a day could not be filled. Code matches the
// warning recorded in the report.
type Shortfall struct {
	RunID string
	Day   model.Day
	Code  string
}

// RunCompleted is published once the full day sequence has been processed.
type RunCompleted struct {
	RunID             string
	Unfilled          int
	SubcontractorUses int
	Duration          time.Duration
}
