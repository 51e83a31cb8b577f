package roster

import "github.com/rotaplan/rotaplan/core/model"

// Adjacent reports whether two days are temporally adjacent under the
// consecutive-day rule: distinct event slots on the same date, or any two
// slots on dates exactly one calendar day apart.
func Adjacent(a, b model.Day) bool {
	if model.SameDate(a.Date, b.Date) {
		return a.Slot != b.Slot
	}
	return model.SameDate(model.NextDate(a.Date), b.Date) ||
		model.SameDate(model.NextDate(b.Date), a.Date)
}

// MayAssign decides whether placing a person on the candidate day would
// violate the consecutive-day rule, given the days already committed to
// that person. It checks both directions, so it stays correct even when
// days are not solved in strict chronological order. Pure predicate.
func MayAssign(day model.Day, committed []model.Day) bool {
	for _, d := range committed {
		if Adjacent(day, d) {
			return false
		}
	}
	return true
}
