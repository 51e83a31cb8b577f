package model

// AssigneeKind identifies who covers a day: a primary person, a
// subcontractor drawn from the fallback pool, or nobody.
type AssigneeKind int

const (
	AssigneeNone AssigneeKind = iota
	AssigneePerson
	AssigneeSubcontractor
)

// String returns a human-readable representation of the assignee kind.
func (k AssigneeKind) String() string {
	switch k {
	case AssigneePerson:
		return "person"
	case AssigneeSubcontractor:
		return "subcontractor"
	default:
		return "unfilled"
	}
}

// Assignment binds a day to exactly one assignee, or to nobody when the day
// could not be filled. Assignments are immutable once committed.
type Assignment struct {
	Day        Day          `json:"day"`
	Kind       AssigneeKind `json:"kind"`
	AssigneeID string       `json:"assignee_id,omitempty"`
}

// Filled reports whether the day has an assignee.
func (a Assignment) Filled() bool { return a.Kind != AssigneeNone }

// Calendar is the ordered sequence of per-day assignments produced by one
// solver run. It is read-only once returned.
type Calendar []Assignment

// Unfilled returns the days that received no assignee, in calendar order.
func (c Calendar) Unfilled() []Day {
	var days []Day
	for _, a := range c {
		if !a.Filled() {
			days = append(days, a.Day)
		}
	}
	return days
}
