package ui

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/rileyhilliard/lazyconn/internal/errors"
	"github.com/rileyhilliard/lazyconn/internal/inventory"
)

// Prompter asks the user to pick an instance and a login user.
type Prompter interface {
	// SelectInstance returns the 1-based index of the chosen instance.
	SelectInstance(ctx context.Context, instances []inventory.Instance) (int, error)
	// User asks for a login user. suggestions may be empty.
	User(ctx context.Context, suggestions []string) (string, error)
}

// LinePrompter reads answers line by line. It works on any reader, so it is
// used for pipes and in tests.
type LinePrompter struct {
	in      *bufio.Reader
	out     io.Writer
	lines   chan lineResult
	pending bool
}

type lineResult struct {
	line string
	err  error
}

// NewLinePrompter creates a prompter reading from in and writing prompts to out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// SelectInstance implements Prompter. Invalid choices print an error and ask again.
func (p *LinePrompter) SelectInstance(ctx context.Context, instances []inventory.Instance) (int, error) {
	for {
		fmt.Fprint(p.out, "\r\n"+ChoicePrompt(len(instances)))
		line, err := p.readLine(ctx)
		if err != nil {
			return 0, err
		}

		choice, err := ParseChoice(line, len(instances))
		if err != nil {
			fmt.Fprintf(p.out, "error: %s\n", err)
			continue
		}
		return choice, nil
	}
}

// User implements Prompter. Blank answers ask again.
func (p *LinePrompter) User(ctx context.Context, _ []string) (string, error) {
	for {
		fmt.Fprint(p.out, UserPrompt)
		line, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}

		user := strings.TrimSpace(line)
		if err := ValidateUser(user); err != nil {
			fmt.Fprintf(p.out, "error: %s\n", err)
			continue
		}
		return user, nil
	}
}

// readLine returns the next line without its newline. EOF and context
// cancellation both end the session with ErrAborted. A final line without a
// trailing newline is still returned.
func (p *LinePrompter) readLine(ctx context.Context) (string, error) {
	if p.lines == nil {
		p.lines = make(chan lineResult, 1)
	}

	// A read abandoned by a cancelled context is still owed to the caller.
	if !p.pending {
		p.pending = true
		go func() {
			line, err := p.in.ReadString('\n')
			p.lines <- lineResult{line: line, err: err}
		}()
	}

	select {
	case <-ctx.Done():
		return "", errors.ErrAborted
	case res := <-p.lines:
		p.pending = false
		if res.err != nil {
			if stderrors.Is(res.err, io.EOF) && res.line != "" {
				return strings.TrimRight(res.line, "\r\n"), nil
			}
			return "", errors.ErrAborted
		}
		return strings.TrimRight(res.line, "\r\n"), nil
	}
}
