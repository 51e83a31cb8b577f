package model

import "time"

// AvailabilityWindow is a closed date range during which a person may be
// assigned. Start and End are civil dates; both ends are inclusive.
type AvailabilityWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether the given date falls inside the window.
func (w AvailabilityWindow) Contains(date time.Time) bool {
	d := Midnight(date)
	return !d.Before(Midnight(w.Start)) && !d.After(Midnight(w.End))
}

// Person is a primary assignee with declared availability. Windows may
// overlap; overlapping ranges are treated as their union.
type Person struct {
	ID      string               `json:"id"`
	Windows []AvailabilityWindow `json:"windows,omitempty"`
}
