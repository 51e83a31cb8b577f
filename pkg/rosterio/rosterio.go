// Package rosterio loads the CSV month-grid roster format and produces the
// normalized records consumed by the assignment engine.
//
// The first row names the month and year followed by the day numbers to
// cover. Every following row holds a person name, an event slot label and
// one cell per day, where an "x" marks availability. Rows repeat per slot
// label; rows of the same person merge. Names starting with "EXT" define
// the subcontractor pool in file order.
package rosterio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rotaplan/rotaplan/core/model"
)

// Roster is the normalized engine input parsed from one roster file.
type Roster struct {
	Persons        []model.Person
	Days           []model.Day
	Subcontractors []string
	From, To       time.Time
	Slots          []string
}

var months = map[string]time.Month{
	"JANVIER": time.January, "FEVRIER": time.February, "MARS": time.March,
	"AVRIL": time.April, "MAI": time.May, "JUIN": time.June,
	"JUILLET": time.July, "AOUT": time.August, "SEPTEMBRE": time.September,
	"OCTOBRE": time.October, "NOVEMBRE": time.November, "DECEMBRE": time.December,
	"JANUARY": time.January, "FEBRUARY": time.February, "MARCH": time.March,
	"APRIL": time.April, "MAY": time.May, "JUNE": time.June,
	"JULY": time.July, "AUGUST": time.August, "SEPTEMBER": time.September,
	"OCTOBER": time.October, "NOVEMBER": time.November, "DECEMBER": time.December,
}

// Load reads and parses the roster file at path.
func Load(path string) (*Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads the CSV month grid from r.
func Parse(r io.Reader) (*Roster, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("rosterio: empty roster file")
	}
	if err != nil {
		return nil, fmt.Errorf("rosterio: read header: %w", err)
	}
	from, to, err := parseHeader(header)
	if err != nil {
		return nil, err
	}

	ros := &Roster{From: from, To: to}
	slotIndex := make(map[string]int)
	subSeen := make(map[string]bool)
	personIndex := make(map[string]int)
	// marked dates per person, across all slot labels (union semantics)
	marked := make(map[string]map[time.Time]bool)

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("rosterio: read row: %w", err)
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("rosterio: row needs a name and a slot label, got %d fields", len(row))
		}
		name := strings.TrimSpace(row[0])
		if name == "" {
			return nil, fmt.Errorf("rosterio: row with empty person name")
		}
		label := strings.TrimSpace(row[1])
		if label == "" {
			return nil, fmt.Errorf("rosterio: row for %s has an empty slot label", name)
		}
		if _, ok := slotIndex[label]; !ok {
			slotIndex[label] = len(ros.Slots)
			ros.Slots = append(ros.Slots, label)
		}

		if strings.HasPrefix(name, "EXT") {
			if !subSeen[name] {
				subSeen[name] = true
				ros.Subcontractors = append(ros.Subcontractors, name)
			}
			continue
		}

		if _, ok := personIndex[name]; !ok {
			personIndex[name] = len(ros.Persons)
			ros.Persons = append(ros.Persons, model.Person{ID: name})
			marked[name] = make(map[time.Time]bool)
		}
		date := from
		for _, cell := range row[2:] {
			if date.After(to) {
				break
			}
			if s := strings.TrimSpace(cell); strings.EqualFold(s, "x") {
				marked[name][date] = true
			}
			date = model.NextDate(date)
		}
	}

	for i := range ros.Persons {
		ros.Persons[i].Windows = windowsFromDates(marked[ros.Persons[i].ID])
	}

	for date := from; !date.After(to); date = model.NextDate(date) {
		for slot, label := range ros.Slots {
			ros.Days = append(ros.Days, model.Day{Date: date, Slot: slot, Role: label})
		}
	}
	return ros, nil
}

// parseHeader reads "MONTH,year,first,...,last" and returns the covered
// date span. A UTF-8 BOM before the month name is tolerated.
func parseHeader(fields []string) (time.Time, time.Time, error) {
	if len(fields) < 3 {
		return time.Time{}, time.Time{}, fmt.Errorf("rosterio: header needs month, year and at least one day")
	}
	name := strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(fields[0], "\ufeff")))
	month, ok := months[name]
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("rosterio: unknown month %q", fields[0])
	}
	year, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("rosterio: invalid year %q", fields[1])
	}
	first, err := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("rosterio: invalid day %q", fields[2])
	}
	last := first
	if len(fields) > 3 {
		last, err = strconv.Atoi(strings.TrimSpace(fields[len(fields)-1]))
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("rosterio: invalid day %q", fields[len(fields)-1])
		}
	}
	from := model.DateOf(year, month, first)
	to := model.DateOf(year, month, last)
	if from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("rosterio: first day %d after last day %d", first, last)
	}
	return from, to, nil
}

// windowsFromDates collapses a set of marked dates into closed windows over
// contiguous runs.
func windowsFromDates(dates map[time.Time]bool) []model.AvailabilityWindow {
	if len(dates) == 0 {
		return nil
	}
	sorted := make([]time.Time, 0, len(dates))
	for d := range dates {
		sorted = append(sorted, d)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	var windows []model.AvailabilityWindow
	cur := model.AvailabilityWindow{Start: sorted[0], End: sorted[0]}
	for _, d := range sorted[1:] {
		if d.Equal(model.NextDate(cur.End)) {
			cur.End = d
			continue
		}
		windows = append(windows, cur)
		cur = model.AvailabilityWindow{Start: d, End: d}
	}
	return append(windows, cur)
}
