package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rileyhilliard/lazyconn/internal/errors"
	"github.com/rileyhilliard/lazyconn/internal/logger"
)

// Version is the installed aws CLI version.
type Version struct {
	Major int
	Minor int
	Patch int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// ParseVersion parses `aws --version` output such as
// "aws-cli/2.15.0 Python/3.11.6 Linux/6.5.0 exe/x86_64.ubuntu.22".
func ParseVersion(output string) (Version, error) {
	fields := strings.Fields(output)
	if len(fields) == 0 {
		return Version{}, fmt.Errorf("empty version output")
	}

	_, number, ok := strings.Cut(fields[0], "/")
	if !ok {
		return Version{}, fmt.Errorf("unexpected version output %q", output)
	}

	parts := strings.Split(number, ".")
	if len(parts) < 3 {
		return Version{}, fmt.Errorf("unexpected version number %q", number)
	}

	nums := make([]int, 3)
	for i := range nums {
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return Version{}, fmt.Errorf("unexpected version number %q: %w", number, err)
		}
		nums[i] = n
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// pagerEnv disables the aws CLI output pager. Built fresh per call so no
// caller can share or mutate it.
func pagerEnv() map[string]string {
	return map[string]string{"AWS_PAGER": ""}
}

// CLISource reads inventory by shelling out to the aws CLI.
type CLISource struct {
	binary string
	runner Runner
	log    logger.Logger
}

// NewCLISource creates a source that runs the "aws" binary through runner.
func NewCLISource(runner Runner) *CLISource {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &CLISource{
		binary: "aws",
		runner: runner,
		log:    logger.NewEnvLogger("[aws]"),
	}
}

// WithLogger replaces the source's logger.
func (s *CLISource) WithLogger(l logger.Logger) *CLISource {
	s.log = l
	return s
}

// run executes an aws command. When quiet, failures are swallowed and an
// empty result is returned; otherwise a non-zero exit becomes an ExitError
// carrying the CLI's exit code and stderr.
func (s *CLISource) run(ctx context.Context, cmd Command, quiet bool) (string, string, error) {
	s.log.Debug("running %s", cmd)

	stdout, stderr, code, err := s.runner.Run(ctx, cmd)
	if err != nil {
		if quiet {
			s.log.Debug("ignoring failure of %s: %v", cmd, err)
			return "", "", nil
		}
		return "", "", err
	}

	if code != 0 {
		if quiet {
			s.log.Debug("ignoring exit code %d of %s", code, cmd)
			return "", "", nil
		}
		return "", "", &errors.ExitError{
			Code:   code,
			Output: strings.TrimSpace(string(stderr)),
		}
	}

	return string(stdout), string(stderr), nil
}

// DefaultRegion returns `aws configure get region`, or "" if it fails or is unset.
func (s *CLISource) DefaultRegion(ctx context.Context) string {
	out, _, _ := s.run(ctx, Command{
		Name: s.binary,
		Args: []string{"configure", "get", "region"},
	}, true)
	return normalizeRegion(out)
}

// Version returns the installed CLI version.
func (s *CLISource) Version(ctx context.Context) (Version, error) {
	stdout, stderr, err := s.run(ctx, Command{
		Name: s.binary,
		Args: []string{"--version"},
	}, false)
	if err != nil {
		return Version{}, err
	}

	// aws-cli v1 running on older Pythons prints its version to stderr.
	out := strings.TrimSpace(stdout)
	if out == "" {
		out = strings.TrimSpace(stderr)
	}

	v, err := ParseVersion(out)
	if err != nil {
		return Version{}, errors.WrapWithCode(err, errors.ErrInventory,
			"Couldn't determine the aws CLI version",
			"Check that `aws --version` works in your shell.")
	}
	return v, nil
}

// FetchCommand builds the describe-instances invocation for a CLI version.
func FetchCommand(binary, region string, v Version) Command {
	args := []string{"ec2", "describe-instances", "--output", "json", "--region", region}
	// --no-cli-pager only exists in v2
	if v.Major == 2 {
		args = append(args, "--no-cli-pager")
	}
	return Command{Name: binary, Args: args, Env: pagerEnv()}
}

// Fetch runs describe-instances for region and decodes the result.
func (s *CLISource) Fetch(ctx context.Context, region string) (*Inventory, error) {
	v, err := s.Version(ctx)
	if err != nil {
		return nil, err
	}
	s.log.Debug("aws CLI version %s", v)

	out, _, err := s.run(ctx, FetchCommand(s.binary, region, v), false)
	if err != nil {
		return nil, err
	}

	inv, err := Decode([]byte(out))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrInventory,
			"Couldn't parse describe-instances output",
			"Run `aws ec2 describe-instances --output json` manually to check the output.")
	}
	s.log.Debug("fetched %d instance records in %s", inv.Count(), region)
	return inv, nil
}

// Decode parses describe-instances JSON.
func Decode(data []byte) (*Inventory, error) {
	inv := &Inventory{}
	if err := json.Unmarshal(data, inv); err != nil {
		return nil, err
	}
	return inv, nil
}
