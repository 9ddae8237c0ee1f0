// Package connect opens an interactive ssh session to a selected instance.
package connect

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rileyhilliard/lazyconn/internal/config"
	"github.com/rileyhilliard/lazyconn/internal/errors"
	"github.com/rileyhilliard/lazyconn/internal/inventory"
	"github.com/rileyhilliard/lazyconn/internal/logger"
	"github.com/rileyhilliard/lazyconn/internal/util"
)

// ExitInterrupted is ssh's exit code when the session ended with Ctrl+C.
const ExitInterrupted = 130

// Options control how ssh is invoked.
type Options struct {
	// Binary is the ssh client to run. Defaults to "ssh".
	Binary string

	// KeyDir is where <KeyName>.pem files live. Defaults to ~/.ssh.
	KeyDir string

	// Container adds flags for running inside a container: force a TTY,
	// skip host key checks, and ignore any mounted ssh config.
	Container bool
}

// Connector runs ssh sessions.
type Connector struct {
	opts   Options
	runner SessionRunner
	log    logger.Logger
}

// New creates a Connector. A nil runner uses ExecSession.
func New(opts Options, runner SessionRunner) *Connector {
	if opts.Binary == "" {
		opts.Binary = "ssh"
	}
	if opts.KeyDir == "" {
		opts.KeyDir = config.ExpandTilde("~/.ssh")
	}
	if runner == nil {
		runner = ExecSession{}
	}
	return &Connector{
		opts:   opts,
		runner: runner,
		log:    logger.NewEnvLogger("[ssh]"),
	}
}

// WithLogger replaces the connector's logger.
func (c *Connector) WithLogger(l logger.Logger) *Connector {
	c.log = l
	return c
}

// KeyPath returns the key file path for an instance.
func (c *Connector) KeyPath(inst inventory.Instance) string {
	return filepath.Join(c.opts.KeyDir, inst.KeyName+inventory.KeySuffix)
}

// Args builds the ssh argument list.
func Args(keyPath, user, address string, container bool) []string {
	args := []string{"-i", keyPath, user + "@" + address}
	if container {
		args = append(args,
			"-tt",
			"-o", "StrictHostKeyChecking=no",
			"-F", "none",
		)
	}
	return args
}

// Connect runs ssh against inst as user and blocks until the session ends.
// Exit codes 0 and 130 count as success; anything else is returned as an
// ExitError carrying ssh's exit code.
func (c *Connector) Connect(ctx context.Context, inst inventory.Instance, user string) error {
	keyPath := c.KeyPath(inst)
	if _, err := os.Stat(keyPath); err != nil {
		if os.IsNotExist(err) {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("key file %q not found in %s", inst.Key, c.opts.KeyDir),
				"Download the key pair used by this instance into that directory.")
		}
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Cannot access key file %s", keyPath),
			"Check file permissions")
	}

	c.inspectKey(keyPath)

	args := Args(keyPath, user, inst.Address, c.opts.Container)
	c.log.Debug("running %s", util.CommandLine(c.opts.Binary, args))

	code, err := c.runner.Run(ctx, c.opts.Binary, args)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrSSH,
			"Couldn't start ssh",
			"Make sure an OpenSSH client is installed and on your PATH.")
	}

	if code == 0 || code == ExitInterrupted {
		return nil
	}

	return &errors.ExitError{
		Code:  code,
		Cause: fmt.Errorf("ssh to %s@%s exited with code %d", user, inst.Address, code),
	}
}

// inspectKey logs the key fingerprint. Problems are reported but never fatal:
// ssh itself is the authority on whether the key works.
func (c *Connector) inspectKey(path string) {
	info, err := Inspect(path)
	if err != nil {
		c.log.Debug("could not inspect %s: %v", path, err)
		return
	}
	if info.Encrypted {
		c.log.Debug("%s is passphrase protected", path)
	} else {
		c.log.Debug("using %s key %s", info.Type, info.Fingerprint)
	}
	if info.Mode&0077 != 0 {
		c.log.Warn("%s is accessible by other users (mode %04o); ssh may refuse it", path, info.Mode)
	}
}
