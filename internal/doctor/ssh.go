package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rileyhilliard/lazyconn/internal/config"
	"github.com/rileyhilliard/lazyconn/internal/connect"
	"github.com/rileyhilliard/lazyconn/internal/util"
	"github.com/rileyhilliard/lazyconn/pkg/sshutil"
)

// KeyFilesCheck looks at every *.pem key in the key directory: each must be
// private to the user and parse as an ssh private key.
type KeyFilesCheck struct {
	KeyDir string
}

func (c *KeyFilesCheck) Name() string     { return "key_files" }
func (c *KeyFilesCheck) Category() string { return CategorySSH }

func (c *KeyFilesCheck) Run(_ context.Context) CheckResult {
	dir := c.dir()
	keys, err := pemFiles(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return CheckResult{
				Name:       c.Name(),
				Status:     StatusFail,
				Message:    fmt.Sprintf("Key directory %s does not exist", dir),
				Suggestion: "Save your EC2 key pairs there as <KeyName>.pem",
			}
		}
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Cannot read key directory %s", dir),
			Suggestion: "Check directory permissions",
		}
	}

	if len(keys) == 0 {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("No .pem keys in %s", dir),
			Suggestion: "Save your EC2 key pairs there as <KeyName>.pem",
		}
	}

	var loose, unreadable []string
	for _, path := range keys {
		info, err := connect.Inspect(path)
		if err != nil {
			unreadable = append(unreadable, filepath.Base(path))
			if st, statErr := os.Stat(path); statErr == nil && st.Mode().Perm()&0077 != 0 {
				loose = append(loose, filepath.Base(path))
			}
			continue
		}
		if info.Mode&0077 != 0 {
			loose = append(loose, filepath.Base(path))
		}
	}

	switch {
	case len(loose) > 0:
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Insecure permissions on: %s", strings.Join(loose, ", ")),
			Suggestion: "Fix: chmod 600 " + filepath.Join(dir, "<keyfile>.pem"),
			Fixable:    true,
		}
	case len(unreadable) > 0:
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Not valid private keys: %s", strings.Join(unreadable, ", ")),
			Suggestion: "Re-download the key pair from the EC2 console",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("%d %s in %s, permissions OK", len(keys), util.Pluralize(len(keys), "key", "keys"), dir),
	}
}

// Fix tightens every *.pem key readable by group or others to 0600.
func (c *KeyFilesCheck) Fix() error {
	keys, err := pemFiles(c.dir())
	if err != nil {
		return err
	}
	for _, path := range keys {
		st, err := os.Stat(path)
		if err != nil {
			return err
		}
		if st.Mode().Perm()&0077 == 0 {
			continue
		}
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("chmod %s: %w", path, err)
		}
	}
	return nil
}

func (c *KeyFilesCheck) dir() string {
	if c.KeyDir != "" {
		return c.KeyDir
	}
	return config.ExpandTilde(filepath.Join("~", config.ConfigDir))
}

// pemFiles lists regular *.pem files in dir, sorted.
func pemFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var keys []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".pem") {
			continue
		}
		keys = append(keys, filepath.Join(dir, e.Name()))
	}
	sort.Strings(keys)
	return keys, nil
}

// SSHConfigCheck verifies ~/.ssh/config parses, since user suggestions come from it.
type SSHConfigCheck struct {
	ConfigPath string
}

func (c *SSHConfigCheck) Name() string     { return "ssh_config" }
func (c *SSHConfigCheck) Category() string { return CategorySSH }

func (c *SSHConfigCheck) Run(_ context.Context) CheckResult {
	path := c.ConfigPath
	if path == "" {
		path = sshutil.DefaultConfigPath()
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: "No ssh config (no user suggestions)",
		}
	}

	cfg, err := sshutil.LoadConfig(path)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Cannot parse %s: %v", path, err),
			Suggestion: "User suggestions are disabled until the file parses",
		}
	}

	users := cfg.Users()
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("ssh config parsed (%d %s)", len(users), util.Pluralize(len(users), "user", "users")),
	}
}

func (c *SSHConfigCheck) Fix() error {
	return nil
}
