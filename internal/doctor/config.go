package doctor

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rileyhilliard/lazyconn/internal/config"
	"github.com/rileyhilliard/lazyconn/internal/util"
)

// ConfigFileCheck verifies the config file loads and validates.
// A missing file is fine: lazyconn just runs without match rules.
type ConfigFileCheck struct {
	ConfigPath string
}

func (c *ConfigFileCheck) Name() string     { return "config_file" }
func (c *ConfigFileCheck) Category() string { return CategoryConfig }

func (c *ConfigFileCheck) Run(_ context.Context) CheckResult {
	path := c.path()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusPass,
			Message:    fmt.Sprintf("No config file at %s (match rules disabled)", path),
			Suggestion: "Add a rule with: lazyconn rules add <name-fragment> <user>",
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    "Config file is invalid: " + firstLine(err.Error()),
			Suggestion: fmt.Sprintf("Fix %s or move it aside", path),
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Config loaded: %s (%d %s)", path, len(cfg.Rules()), util.Pluralize(len(cfg.Rules()), "match rule", "match rules")),
	}
}

func (c *ConfigFileCheck) Fix() error {
	return nil
}

func (c *ConfigFileCheck) path() string {
	if c.ConfigPath != "" {
		return c.ConfigPath
	}
	return config.DefaultPath()
}

// MatchRulesCheck looks for match rules that can never take effect.
// Rules are scanned in order and the first hit wins, so a rule whose
// "contains" includes an earlier rule's "contains" is unreachable.
type MatchRulesCheck struct {
	Config *config.Config
}

func (c *MatchRulesCheck) Name() string     { return "match_rules" }
func (c *MatchRulesCheck) Category() string { return CategoryConfig }

func (c *MatchRulesCheck) Run(_ context.Context) CheckResult {
	rules := c.Config.Rules()
	if len(rules) == 0 {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: "No match rules configured",
		}
	}

	var problems []string
	for j, rule := range rules {
		if strings.TrimSpace(rule.User) == "" {
			problems = append(problems, fmt.Sprintf("match.name[%d] has no user", j))
		}
		if i, ok := shadowedBy(rules, j); ok {
			problems = append(problems, fmt.Sprintf("match.name[%d] (%q) is shadowed by match.name[%d] (%q)",
				j, rule.Contains, i, rules[i].Contains))
		}
	}

	if len(problems) > 0 {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    strings.Join(problems, "; "),
			Suggestion: "Rules are tried in order; put more specific \"contains\" values first",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("%d %s, none shadowed", len(rules), util.Pluralize(len(rules), "match rule", "match rules")),
	}
}

func (c *MatchRulesCheck) Fix() error {
	return nil
}

// shadowedBy returns the index of the first earlier rule that matches every
// name rule j would match.
func shadowedBy(rules []config.MatchRule, j int) (int, bool) {
	for i := 0; i < j; i++ {
		if strings.Contains(rules[j].Contains, rules[i].Contains) {
			return i, true
		}
	}
	return 0, false
}

func firstLine(s string) string {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "✗"))
	if line, _, ok := strings.Cut(s, "\n"); ok {
		return strings.TrimSpace(line)
	}
	return s
}
