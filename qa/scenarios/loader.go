// Package scenarios runs declarative YAML solver scenarios end to end.
package scenarios

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rotaplan/rotaplan/core/model"
)

type WindowDef struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

func (w WindowDef) ToModel() (model.AvailabilityWindow, error) {
	start, err := time.Parse("2006-01-02", w.Start)
	if err != nil {
		return model.AvailabilityWindow{}, fmt.Errorf("window start %q: %w", w.Start, err)
	}
	end, err := time.Parse("2006-01-02", w.End)
	if err != nil {
		return model.AvailabilityWindow{}, fmt.Errorf("window end %q: %w", w.End, err)
	}
	return model.AvailabilityWindow{Start: start, End: end}, nil
}

type PersonDef struct {
	ID      string      `yaml:"id"`
	Windows []WindowDef `yaml:"windows"`
}

func (p PersonDef) ToModel() (model.Person, error) {
	out := model.Person{ID: p.ID}
	for _, w := range p.Windows {
		mw, err := w.ToModel()
		if err != nil {
			return model.Person{}, fmt.Errorf("person %s: %w", p.ID, err)
		}
		out.Windows = append(out.Windows, mw)
	}
	return out, nil
}

// Expected describes the outcome the scenario asserts on. Assignees lists
// the expected assignee per day in calendar order; an empty string means
// the day stays unfilled. Error names a structural error instead.
type Expected struct {
	Assignees         []string `yaml:"assignees,omitempty"`
	Unfilled          int      `yaml:"unfilled"`
	SubcontractorUses int      `yaml:"subcontractor_uses"`
	Error             string   `yaml:"error,omitempty"`
}

type Scenario struct {
	Name           string      `yaml:"name"`
	Description    string      `yaml:"description,omitempty"`
	Persons        []PersonDef `yaml:"persons"`
	Days           []string    `yaml:"days"`
	Subcontractors []string    `yaml:"subcontractors,omitempty"`
	PoolPolicy     string      `yaml:"pool_policy,omitempty"`
	Expected       Expected    `yaml:"expected"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

// parseDay reads "2006-01-02" with an optional "#slot" suffix.
func parseDay(s string) (model.Day, error) {
	slot := 0
	if i := strings.IndexByte(s, '#'); i >= 0 {
		n, err := strconv.Atoi(s[i+1:])
		if err != nil {
			return model.Day{}, fmt.Errorf("day %q: bad slot: %w", s, err)
		}
		slot = n
		s = s[:i]
	}
	date, err := time.Parse("2006-01-02", s)
	if err != nil {
		return model.Day{}, fmt.Errorf("day %q: %w", s, err)
	}
	return model.Day{Date: date, Slot: slot}, nil
}
