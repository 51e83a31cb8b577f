// Package export renders solved calendars for downstream consumers: JSON
// and CSV for machines, a month-grid table for humans.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rotaplan/rotaplan/core/model"
	"github.com/rotaplan/rotaplan/core/roster"
)

// WriteJSON writes the calendar and report to w in JSON format.
func WriteJSON(w io.Writer, res *roster.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// WriteCSV writes one row per day assignment.
func WriteCSV(w io.Writer, res *roster.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "slot", "role", "kind", "assignee"}); err != nil {
		return err
	}
	for _, a := range res.Calendar {
		rec := []string{
			a.Day.Date.Format("2006-01-02"),
			strconv.Itoa(a.Day.Slot),
			a.Day.RoleOrDefault(),
			a.Kind.String(),
			a.AssigneeID,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTable renders the calendar as a fixed-width grid: one column per
// date, one row per event slot, unfilled days marked with a dash.
func WriteTable(w io.Writer, res *roster.Result) error {
	var dates []time.Time
	slotLabels := map[int]string{}
	cells := map[string]string{}
	seen := map[time.Time]bool{}
	var slots []int

	for _, a := range res.Calendar {
		d := model.Midnight(a.Day.Date)
		if !seen[d] {
			seen[d] = true
			dates = append(dates, d)
		}
		if _, ok := slotLabels[a.Day.Slot]; !ok {
			slotLabels[a.Day.Slot] = a.Day.RoleOrDefault()
			slots = append(slots, a.Day.Slot)
		}
		name := a.AssigneeID
		if !a.Filled() {
			name = "-"
		}
		cells[cellKey(d, a.Day.Slot)] = name
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	sort.Ints(slots)

	labelWidth := 0
	for _, l := range slotLabels {
		if len(l) > labelWidth {
			labelWidth = len(l)
		}
	}
	cellWidth := 5
	for _, name := range cells {
		if len(name)+2 > cellWidth {
			cellWidth = len(name) + 2
		}
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", labelWidth))
	b.WriteString(" |")
	for _, d := range dates {
		fmt.Fprintf(&b, " %-*s|", cellWidth-1, fmt.Sprintf("%02d", d.Day()))
	}
	header := b.String()
	if _, err := fmt.Fprintf(w, "%s\n%s\n", header, strings.Repeat("-", len(header))); err != nil {
		return err
	}

	for _, slot := range slots {
		b.Reset()
		fmt.Fprintf(&b, "%-*s |", labelWidth, slotLabels[slot])
		for _, d := range dates {
			fmt.Fprintf(&b, " %-*s|", cellWidth-1, cells[cellKey(d, slot)])
		}
		if _, err := fmt.Fprintln(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

func cellKey(date time.Time, slot int) string {
	return fmt.Sprintf("%s#%d", date.Format("2006-01-02"), slot)
}
