// Package sshutil reads OpenSSH client configuration.
package sshutil

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kevinburke/ssh_config"
)

// Config is a parsed ssh client config. The zero value, and a nil *Config,
// behave like an empty file.
type Config struct {
	cfg *ssh_config.Config
}

// DefaultConfigPath returns ~/.ssh/config.
func DefaultConfigPath() string {
	return filepath.Join(homeDir(), ".ssh", "config")
}

// LoadConfig parses the ssh config at path. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	content, _, err := preprocessSSHConfig(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg, err := ssh_config.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	return &Config{cfg: cfg}, nil
}

// Users returns every distinct User value in the config, sorted.
// Users under wildcard Host blocks are included.
func (c *Config) Users() []string {
	if c == nil || c.cfg == nil {
		return nil
	}

	seen := make(map[string]bool)
	var users []string
	for _, host := range c.cfg.Hosts {
		for _, node := range host.Nodes {
			kv, ok := node.(*ssh_config.KV)
			if !ok || !strings.EqualFold(kv.Key, "User") {
				continue
			}
			if kv.Value == "" || seen[kv.Value] {
				continue
			}
			seen[kv.Value] = true
			users = append(users, kv.Value)
		}
	}

	sort.Strings(users)
	return users
}

// UserFor returns the User that ssh would apply when connecting to host,
// or "" if no Host block sets one.
func (c *Config) UserFor(host string) string {
	if c == nil || c.cfg == nil {
		return ""
	}
	user, err := c.cfg.Get(host, "User")
	if err != nil {
		return ""
	}
	return user
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.Getenv("HOME")
	}
	return home
}

// preprocessSSHConfig reads the SSH config and returns content up to the first Match directive.
// Returns the original content if no Match directive is found.
// Also returns the line number where Match was found (0 if not found).
func preprocessSSHConfig(configPath string) ([]byte, int, error) {
	content, err := os.ReadFile(configPath)
	if err != nil {
		return nil, 0, err
	}

	lines := strings.Split(string(content), "\n")
	var result []string
	matchLine := 0

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		// Match directive check (case insensitive)
		if strings.HasPrefix(strings.ToLower(trimmed), "match ") {
			matchLine = i + 1 // 1-indexed line number
			break
		}
		result = append(result, line)
	}

	return []byte(strings.Join(result, "\n")), matchLine, nil
}
