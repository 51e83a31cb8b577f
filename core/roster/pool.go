package roster

import "fmt"

// PoolPolicy selects how the subcontractor pool is consumed. The policy is
// fixed at configuration time and applies to the whole run.
type PoolPolicy int

const (
	// PolicyFirstUnused hands out each identity once, in pool order.
	// Exhaustion is terminal for the run.
	PolicyFirstUnused PoolPolicy = iota
	// PolicyRoundRobin cycles through the pool in order and only reports
	// exhaustion when the pool is empty.
	PolicyRoundRobin
)

// String returns the configuration name of the policy.
func (p PoolPolicy) String() string {
	switch p {
	case PolicyRoundRobin:
		return "round_robin"
	default:
		return "first_unused"
	}
}

// ParsePoolPolicy converts a configuration string into a PoolPolicy.
func ParsePoolPolicy(s string) (PoolPolicy, error) {
	switch s {
	case "", "first_unused":
		return PolicyFirstUnused, nil
	case "round_robin":
		return PolicyRoundRobin, nil
	default:
		return PolicyFirstUnused, fmt.Errorf("roster: unknown pool policy %q", s)
	}
}

// SubcontractorPool is a stateful cursor over an ordered list of fallback
// identities. The cursor advances monotonically within one solver run and
// cannot be rewound; each run owns its own pool instance.
type SubcontractorPool struct {
	ids    []string
	policy PoolPolicy
	cursor int
}

// NewSubcontractorPool creates a pool over the given identities.
func NewSubcontractorPool(ids []string, policy PoolPolicy) *SubcontractorPool {
	return &SubcontractorPool{ids: ids, policy: policy}
}

// Next returns the next identity in pool order, or false when the pool is
// exhausted. For PolicyFirstUnused the exhausted state is terminal.
func (p *SubcontractorPool) Next() (string, bool) {
	if len(p.ids) == 0 {
		return "", false
	}
	if p.policy == PolicyRoundRobin {
		id := p.ids[p.cursor%len(p.ids)]
		p.cursor++
		return id, true
	}
	if p.cursor >= len(p.ids) {
		return "", false
	}
	id := p.ids[p.cursor]
	p.cursor++
	return id, true
}

// Size returns the number of identities the pool was configured with.
func (p *SubcontractorPool) Size() int { return len(p.ids) }
