package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// AddMatchRule appends a rule to match.name in the config file at path,
// creating the file (and its directory) if needed. Other settings in the file
// are kept. Adding a rule identical to an existing one does nothing.
func AddMatchRule(path string, rule MatchRule) error {
	if path == "" {
		path = DefaultPath()
	}

	if rule.User != "" {
		if err := validateUser(rule.User); err != nil {
			return fmt.Errorf("invalid rule: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	existing := []MatchRule{}
	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		cfg := &Config{}
		if err := v.Unmarshal(cfg); err != nil {
			return fmt.Errorf("failed to parse config file: %w", err)
		}
		existing = cfg.Match.Name
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access config file: %w", err)
	}

	for _, r := range existing {
		if r == rule {
			return nil
		}
	}
	existing = append(existing, rule)

	v.Set("match.name", rulesToMaps(existing))

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// rulesToMaps converts rules to the generic shape viper serializes.
func rulesToMaps(rules []MatchRule) []map[string]interface{} {
	out := make([]map[string]interface{}, len(rules))
	for i, r := range rules {
		out[i] = map[string]interface{}{
			"contains": r.Contains,
			"user":     r.User,
		}
	}
	return out
}
