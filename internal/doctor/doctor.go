// Package doctor runs local diagnostics for lazyconn: config, required
// binaries, key files, and region resolution. Nothing here talks to EC2.
package doctor

import (
	"github.com/rileyhilliard/lazyconn/internal/config"
	"github.com/rileyhilliard/lazyconn/internal/inventory"
)

// Options configures the standard check set.
type Options struct {
	ConfigPath    string
	Config        *config.Config // nil if absent or invalid
	FlagRegion    string
	Source        inventory.Source
	AWSCLI        VersionSource
	RequireAWSCLI bool
	Runner        inventory.Runner
	KeyDir        string
	SSHConfigPath string
}

// NewChecks returns every check, grouped by category in display order.
func NewChecks(opts Options) []Check {
	runner := opts.Runner
	if runner == nil {
		runner = inventory.ExecRunner{}
	}

	return []Check{
		&ConfigFileCheck{ConfigPath: opts.ConfigPath},
		&MatchRulesCheck{Config: opts.Config},
		&AWSCLICheck{Source: opts.AWSCLI, Required: opts.RequireAWSCLI},
		&SSHClientCheck{Runner: runner},
		&KeyFilesCheck{KeyDir: opts.KeyDir},
		&SSHConfigCheck{ConfigPath: opts.SSHConfigPath},
		&RegionCheck{FlagRegion: opts.FlagRegion, Config: opts.Config, Source: opts.Source},
	}
}

// ByCategory splits results by their check's category. checks and results
// must be parallel slices as returned by RunAll.
func ByCategory(checks []Check, results []CheckResult) map[string][]CheckResult {
	grouped := make(map[string][]CheckResult)
	for i, check := range checks {
		if i >= len(results) {
			break
		}
		grouped[check.Category()] = append(grouped[check.Category()], results[i])
	}
	return grouped
}
