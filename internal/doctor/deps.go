package doctor

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rileyhilliard/lazyconn/internal/inventory"
)

// VersionSource reports the installed aws CLI version. *inventory.CLISource implements it.
type VersionSource interface {
	Version(ctx context.Context) (inventory.Version, error)
}

// AWSCLICheck verifies the aws CLI runs and reports its version.
// Required is false when inventory comes from the SDK, so a missing CLI is not a problem.
type AWSCLICheck struct {
	Source   VersionSource
	Required bool
}

func (c *AWSCLICheck) Name() string     { return "aws_cli" }
func (c *AWSCLICheck) Category() string { return CategoryDeps }

func (c *AWSCLICheck) Run(ctx context.Context) CheckResult {
	v, err := c.Source.Version(ctx)
	if err != nil {
		if !c.Required {
			return CheckResult{
				Name:    c.Name(),
				Status:  StatusPass,
				Message: "aws CLI not available (not needed with --source sdk)",
			}
		}
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    "aws CLI not usable: " + firstLine(err.Error()),
			Suggestion: "Install AWS CLI v2 (https://aws.amazon.com/cli/) or use --source sdk",
		}
	}

	msg := fmt.Sprintf("aws-cli %s", v)
	if v.Major < 2 {
		msg += " (v1, pager flag not passed)"
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: msg,
	}
}

func (c *AWSCLICheck) Fix() error {
	return nil // System package installation is out of scope
}

// SSHClientCheck verifies the ssh client runs.
type SSHClientCheck struct {
	Runner inventory.Runner
	Binary string
}

func (c *SSHClientCheck) Name() string     { return "ssh_client" }
func (c *SSHClientCheck) Category() string { return CategoryDeps }

func (c *SSHClientCheck) Run(ctx context.Context) CheckResult {
	binary := c.Binary
	if binary == "" {
		binary = "ssh"
	}

	stdout, stderr, code, err := c.Runner.Run(ctx, inventory.Command{Name: binary, Args: []string{"-V"}})
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    binary + " not found",
			Suggestion: "Install an OpenSSH client: brew install openssh (macOS) or apt install openssh-client (Linux)",
		}
	}
	if code != 0 {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("%s -V exited with code %d", binary, code),
			Suggestion: "Check your ssh installation",
		}
	}

	// ssh -V prints to stderr.
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: parseSSHVersion(string(stderr) + string(stdout)),
	}
}

func (c *SSHClientCheck) Fix() error {
	return nil
}

var opensshVersion = regexp.MustCompile(`OpenSSH_([^\s,]+)`)

// parseSSHVersion extracts the version from `ssh -V` output such as
// "OpenSSH_9.6p1 Ubuntu-3ubuntu13, OpenSSL 3.0.13 30 Jan 2024".
func parseSSHVersion(output string) string {
	if m := opensshVersion.FindStringSubmatch(output); len(m) == 2 {
		return "OpenSSH " + m[1]
	}
	line := strings.TrimSpace(strings.Split(strings.TrimSpace(output), "\n")[0])
	if line == "" {
		return "ssh (version unknown)"
	}
	return line
}
