package roster

import "github.com/rotaplan/rotaplan/core/model"

// Config defines solver settings loaded from configuration.
type Config struct {
	// PoolPolicy selects subcontractor pool consumption: "first_unused"
	// or "round_robin".
	PoolPolicy string `json:"pool_policy" yaml:"pool_policy"`
	// DefaultRole is applied to days that carry no role tag.
	DefaultRole string `json:"default_role" yaml:"default_role"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.PoolPolicy == "" {
		c.PoolPolicy = PolicyFirstUnused.String()
	}
	if c.DefaultRole == "" {
		c.DefaultRole = model.DefaultRole
	}
}

// Validate checks that the configured values are usable.
func (c Config) Validate() error {
	_, err := ParsePoolPolicy(c.PoolPolicy)
	return err
}
