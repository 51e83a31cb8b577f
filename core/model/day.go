package model

import (
	"fmt"
	"sort"
	"time"
)

// DefaultRole is the coverage role assumed when a day does not name one.
const DefaultRole = "on-call"

// Day is one unit of coverage demand: a calendar date plus an event slot.
// Slot distinguishes multiple events sharing the same date and is zero for
// single-event days. Role tags the kind of coverage required.
type Day struct {
	Date time.Time `json:"date"`
	Slot int       `json:"slot"`
	Role string    `json:"role,omitempty"`
}

// DateOf returns the civil date at midnight UTC.
func DateOf(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Midnight truncates t to its civil date in UTC.
func Midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NextDate returns the civil date one calendar day after t.
func NextDate(t time.Time) time.Time {
	return Midnight(t).AddDate(0, 0, 1)
}

// SameDate reports whether a and b fall on the same civil date.
func SameDate(a, b time.Time) bool {
	return Midnight(a).Equal(Midnight(b))
}

// Equal reports whether d and o denote the same (date, slot) pair.
func (d Day) Equal(o Day) bool {
	return SameDate(d.Date, o.Date) && d.Slot == o.Slot
}

// Before orders days chronologically, ties broken by slot index.
func (d Day) Before(o Day) bool {
	da, db := Midnight(d.Date), Midnight(o.Date)
	if !da.Equal(db) {
		return da.Before(db)
	}
	return d.Slot < o.Slot
}

// RoleOrDefault returns the day's role, or DefaultRole when unset.
func (d Day) RoleOrDefault() string {
	if d.Role == "" {
		return DefaultRole
	}
	return d.Role
}

func (d Day) String() string {
	if d.Slot == 0 {
		return d.Date.Format("2006-01-02")
	}
	return fmt.Sprintf("%s#%d", d.Date.Format("2006-01-02"), d.Slot)
}

// SortDays orders days in place by (date, slot).
func SortDays(days []Day) {
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
}
