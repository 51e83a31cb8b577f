package roster

import (
	"errors"
	"testing"
	"time"

	"github.com/rotaplan/rotaplan/core/model"
)

func window(y int, m time.Month, d1, d2 int) model.AvailabilityWindow {
	return model.AvailabilityWindow{Start: model.DateOf(y, m, d1), End: model.DateOf(y, m, d2)}
}

func TestBuildIndex_MalformedWindow(t *testing.T) {
	persons := []model.Person{
		{ID: "alice", Windows: []model.AvailabilityWindow{window(2025, time.May, 10, 5)}},
	}
	_, err := BuildIndex(persons)
	if err == nil {
		t.Fatal("expected error for start after end")
	}
	var malformed *MalformedAvailabilityError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedAvailabilityError, got %T", err)
	}
	if malformed.PersonID != "alice" {
		t.Errorf("wrong person in error: %s", malformed.PersonID)
	}
}

func TestIsAvailable_ClosedRange(t *testing.T) {
	idx, err := BuildIndex([]model.Person{
		{ID: "alice", Windows: []model.AvailabilityWindow{window(2025, time.May, 5, 10)}},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	cases := []struct {
		day  int
		want bool
	}{
		{4, false}, {5, true}, {7, true}, {10, true}, {11, false},
	}
	for _, c := range cases {
		if got := idx.IsAvailable("alice", model.DateOf(2025, time.May, c.day)); got != c.want {
			t.Errorf("day %d: got %v want %v", c.day, got, c.want)
		}
	}
}

func TestIsAvailable_OverlappingWindowsUnion(t *testing.T) {
	idx, err := BuildIndex([]model.Person{
		{ID: "bob", Windows: []model.AvailabilityWindow{
			window(2025, time.May, 8, 12),
			window(2025, time.May, 1, 10),
			window(2025, time.May, 20, 20),
		}},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for day := 1; day <= 12; day++ {
		if !idx.IsAvailable("bob", model.DateOf(2025, time.May, day)) {
			t.Errorf("day %d should be available", day)
		}
	}
	if idx.IsAvailable("bob", model.DateOf(2025, time.May, 13)) {
		t.Error("day 13 should not be available")
	}
	if !idx.IsAvailable("bob", model.DateOf(2025, time.May, 20)) {
		t.Error("day 20 should be available")
	}
}

func TestIsAvailable_UnknownPerson(t *testing.T) {
	idx, err := BuildIndex(nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if idx.IsAvailable("ghost", model.DateOf(2025, time.May, 1)) {
		t.Error("unknown person must never be available")
	}
}

func TestIsAvailable_IgnoresTimeOfDay(t *testing.T) {
	idx, err := BuildIndex([]model.Person{
		{ID: "carol", Windows: []model.AvailabilityWindow{window(2025, time.May, 5, 5)}},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	late := time.Date(2025, time.May, 5, 23, 45, 0, 0, time.UTC)
	if !idx.IsAvailable("carol", late) {
		t.Error("query with a time of day should match the civil date")
	}
}
