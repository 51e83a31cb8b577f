package roster

import (
	"sort"
	"time"

	"github.com/rotaplan/rotaplan/core/model"
)

// AvailabilityIndex answers "is person P available on day D" queries. It is
// built once per run from the full set of availability windows and is
// read-only afterwards.
type AvailabilityIndex struct {
	windows map[string][]model.AvailabilityWindow
}

// BuildIndex normalizes the persons' windows into sorted, merged interval
// lists. A window whose start lies after its end fails with a
// MalformedAvailabilityError; nothing is silently dropped.
func BuildIndex(persons []model.Person) (*AvailabilityIndex, error) {
	idx := &AvailabilityIndex{windows: make(map[string][]model.AvailabilityWindow, len(persons))}
	for _, p := range persons {
		ws := make([]model.AvailabilityWindow, 0, len(p.Windows))
		for _, w := range p.Windows {
			start, end := model.Midnight(w.Start), model.Midnight(w.End)
			if start.After(end) {
				return nil, &MalformedAvailabilityError{PersonID: p.ID, Window: w}
			}
			ws = append(ws, model.AvailabilityWindow{Start: start, End: end})
		}
		sort.Slice(ws, func(i, j int) bool { return ws[i].Start.Before(ws[j].Start) })
		idx.windows[p.ID] = mergeWindows(ws)
	}
	return idx, nil
}

// mergeWindows collapses overlapping or touching ranges so that a single
// binary search per query is sufficient. Input must be sorted by start.
func mergeWindows(ws []model.AvailabilityWindow) []model.AvailabilityWindow {
	if len(ws) < 2 {
		return ws
	}
	merged := ws[:1]
	for _, w := range ws[1:] {
		last := &merged[len(merged)-1]
		if !w.Start.After(model.NextDate(last.End)) {
			if w.End.After(last.End) {
				last.End = w.End
			}
			continue
		}
		merged = append(merged, w)
	}
	return merged
}

// IsAvailable reports whether the person may be assigned on the given date.
// Unknown persons are never available.
func (idx *AvailabilityIndex) IsAvailable(personID string, date time.Time) bool {
	ws := idx.windows[personID]
	d := model.Midnight(date)
	i := sort.Search(len(ws), func(i int) bool { return ws[i].Start.After(d) })
	if i == 0 {
		return false
	}
	return !d.After(ws[i-1].End)
}
