package inventory

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/rileyhilliard/lazyconn/internal/errors"
	"github.com/rileyhilliard/lazyconn/internal/util"
)

// Command is a single external command invocation.
//
// Env holds overrides applied on top of the current process environment for
// this command only; the process environment itself is never modified.
type Command struct {
	Name string
	Args []string
	Env  map[string]string
}

// String renders the command line for logs.
func (c Command) String() string {
	return util.CommandLine(c.Name, c.Args)
}

// Runner executes commands and captures their output.
type Runner interface {
	// Run returns stdout, stderr, and the exit code. err is only set when the
	// command could not be run at all; a non-zero exit is not an error.
	Run(ctx context.Context, cmd Command) (stdout, stderr []byte, exitCode int, err error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, cmd Command) ([]byte, []byte, int, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	if len(cmd.Env) > 0 {
		c.Env = MergeEnv(os.Environ(), cmd.Env)
	}

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	runErr := c.Run()
	if runErr != nil {
		if exitErr, ok := runErr.(*exec.ExitError); ok {
			return stdout.Bytes(), stderr.Bytes(), exitErr.ExitCode(), nil
		}
		return stdout.Bytes(), stderr.Bytes(), -1, errors.WrapWithCode(runErr, errors.ErrInventory,
			"Couldn't run "+cmd.Name,
			"Make sure the AWS CLI is installed and on your PATH, or use --source sdk.")
	}

	return stdout.Bytes(), stderr.Bytes(), 0, nil
}

// MergeEnv returns base with overrides applied (replacing existing keys,
// appending new ones). base is not modified.
func MergeEnv(base []string, overrides map[string]string) []string {
	merged := make([]string, len(base))
	copy(merged, base)

	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		prefix := k + "="
		found := false
		for i := range merged {
			if strings.HasPrefix(merged[i], prefix) {
				merged[i] = prefix + overrides[k]
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, prefix+overrides[k])
		}
	}
	return merged
}
