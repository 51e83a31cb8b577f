package roster

import (
	"errors"
	"fmt"

	"github.com/rotaplan/rotaplan/core/model"
)

// Structural precondition failures. They abort the run before the solving
// pass begins, unlike per-day shortfalls which are recorded as warnings.
var (
	ErrNoPersonsDefined      = errors.New("roster: no persons defined")
	ErrCalendarSkeletonEmpty = errors.New("roster: calendar skeleton is empty")
	ErrDuplicateDay          = errors.New("roster: duplicate day in calendar skeleton")
)

// MalformedAvailabilityError reports an availability window whose start
// lies after its end. It is raised when the index is built, before any
// solving starts.
type MalformedAvailabilityError struct {
	PersonID string
	Window   model.AvailabilityWindow
}

func (e *MalformedAvailabilityError) Error() string {
	return fmt.Sprintf("roster: malformed availability for %s: start %s after end %s",
		e.PersonID, e.Window.Start.Format("2006-01-02"), e.Window.End.Format("2006-01-02"))
}
