package roster

import (
	"testing"
	"time"

	"github.com/rotaplan/rotaplan/core/model"
)

func day(d int, slot int) model.Day {
	return model.Day{Date: model.DateOf(2025, time.May, d), Slot: slot}
}

func TestAdjacent(t *testing.T) {
	cases := []struct {
		name string
		a, b model.Day
		want bool
	}{
		{"same day same slot", day(5, 0), day(5, 0), false},
		{"same day other slot", day(5, 0), day(5, 1), true},
		{"next day", day(5, 0), day(6, 0), true},
		{"previous day", day(6, 0), day(5, 0), true},
		{"next day other slot", day(5, 1), day(6, 0), true},
		{"two days apart", day(5, 0), day(7, 0), false},
		{"month boundary", day(31, 0), model.Day{Date: model.DateOf(2025, time.June, 1)}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Adjacent(c.a, c.b); got != c.want {
				t.Errorf("Adjacent(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
			}
			if got := Adjacent(c.b, c.a); got != c.want {
				t.Errorf("Adjacent(%v, %v) = %v, want %v (symmetry)", c.b, c.a, got, c.want)
			}
		})
	}
}

func TestMayAssign_BothDirections(t *testing.T) {
	committed := []model.Day{day(10, 0)}
	if MayAssign(day(9, 0), committed) {
		t.Error("day before a committed day must be rejected")
	}
	if MayAssign(day(11, 0), committed) {
		t.Error("day after a committed day must be rejected")
	}
	if !MayAssign(day(8, 0), committed) {
		t.Error("two days before must be allowed")
	}
	if !MayAssign(day(12, 0), committed) {
		t.Error("two days after must be allowed")
	}
}

func TestMayAssign_NoCommitments(t *testing.T) {
	if !MayAssign(day(1, 0), nil) {
		t.Error("a person with no commitments may always be assigned")
	}
}
