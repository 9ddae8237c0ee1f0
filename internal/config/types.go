package config

// Config represents ~/.ssh/lazyconn.json.
//
// A nil *Config means no config file exists. Every accessor is nil-safe, so
// callers never need to check presence of the file, the "match" object, or
// the "name" list separately.
type Config struct {
	// Region is used when --region is not given.
	Region string `json:"region,omitempty" mapstructure:"region"`

	// User is the login user used when --user is not given and no rule matched.
	User string `json:"user,omitempty" mapstructure:"user"`

	Match MatchConfig `json:"match" mapstructure:"match"`
}

// MatchConfig groups the automatic matching rules.
type MatchConfig struct {
	// Name rules are checked against instance display names, in order.
	Name []MatchRule `json:"name" mapstructure:"name"`
}

// MatchRule maps a name fragment to a login user.
type MatchRule struct {
	Contains string `json:"contains" mapstructure:"contains"`
	User     string `json:"user" mapstructure:"user"`
}

// Rules returns the name match rules in declared order, or nil when there is
// no config or no rules.
func (c *Config) Rules() []MatchRule {
	if c == nil {
		return nil
	}
	return c.Match.Name
}

// HasRules reports whether at least one match rule is configured.
func (c *Config) HasRules() bool {
	return len(c.Rules()) > 0
}

// DefaultRegion returns the configured region, or "" without a config.
func (c *Config) DefaultRegion() string {
	if c == nil {
		return ""
	}
	return c.Region
}

// DefaultUser returns the configured login user, or "" without a config.
func (c *Config) DefaultUser() string {
	if c == nil {
		return ""
	}
	return c.User
}
