// Package match resolves a name pattern and the configured match rules into
// a single instance and login user.
package match

import (
	"strings"

	"github.com/rileyhilliard/lazyconn/internal/config"
	"github.com/rileyhilliard/lazyconn/internal/inventory"
)

// Selection is the outcome of a match attempt. Instance is nil when nothing
// matched; User is empty when no rule supplied one.
type Selection struct {
	Instance *inventory.Instance
	User     string
}

// Found reports whether an instance was selected.
func (s Selection) Found() bool {
	return s.Instance != nil
}

// Match selects an instance whose display name contains pattern.
//
// A nil pattern means no match was requested and yields an empty Selection.
// Instances without a real Name tag are never candidates.
//
// Legacy behavior:
//   - the selected instance is the LAST candidate in input order;
//   - for each candidate, rules are scanned in declared order and the first
//     rule whose fragment occurs in the name supplies the user, ending the scan;
//   - the user is never reset between candidates, so it comes from the last
//     candidate that matched any rule, which may be an earlier instance than
//     the one selected.
func Match(instances []inventory.Instance, pattern *string, cfg *config.Config) Selection {
	var sel Selection
	if pattern == nil {
		return sel
	}
	p := *pattern
	rules := cfg.Rules()

	for i := range instances {
		candidate := &instances[i]
		name := candidate.Name

		if !candidate.Named || !(strings.Contains(name, p) || name == p) {
			continue
		}

		for _, rule := range rules {
			if !strings.Contains(name, rule.Contains) {
				continue
			}
			sel.User = rule.User
			if strings.Contains(name, p) {
				sel.Instance = candidate
				break
			}
		}

		sel.Instance = candidate
	}

	return sel
}

// Pattern returns a pointer to p when set is true, or nil. It adapts a flag
// value plus its "was given" bit to Match's optional pattern.
func Pattern(p string, set bool) *string {
	if !set {
		return nil
	}
	return &p
}
