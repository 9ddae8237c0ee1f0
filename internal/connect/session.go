package connect

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"syscall"
)

// SessionRunner runs an interactive command attached to the terminal.
type SessionRunner interface {
	// Run returns the command's exit code. err is only set when the command
	// could not be started.
	Run(ctx context.Context, name string, args []string) (int, error)
}

// ExecSession runs commands with inherited stdin/stdout/stderr.
type ExecSession struct{}

// Run implements SessionRunner. The session is deliberately not bound to ctx:
// Ctrl+C inside a remote shell belongs to the remote side.
func (ExecSession) Run(ctx context.Context, name string, args []string) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, err
	}

	cmd := exec.Command(name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitCode(exitErr), nil
	}
	return -1, err
}

// exitCode maps a signal death to the shell convention 128+signal, so a
// session killed by SIGINT reports 130.
func exitCode(exitErr *exec.ExitError) int {
	if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return 128 + int(status.Signal())
	}
	return exitErr.ExitCode()
}
