package ui

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/rileyhilliard/lazyconn/internal/errors"
	"github.com/rileyhilliard/lazyconn/internal/inventory"
)

// HuhPrompter prompts with Huh forms. It needs a terminal.
type HuhPrompter struct{}

// NewHuhPrompter creates a terminal prompter.
func NewHuhPrompter() *HuhPrompter {
	return &HuhPrompter{}
}

// SelectInstance implements Prompter. The table is printed by the caller, so
// this only asks for the #N choice and validates it inline.
func (p *HuhPrompter) SelectInstance(ctx context.Context, instances []inventory.Instance) (int, error) {
	var input string
	n := len(instances)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(strings.TrimSuffix(ChoicePrompt(n), "> ")).
				Placeholder(fmt.Sprintf("#1-#%d", n)).
				Suggestions(choiceSuggestions(n)).
				Value(&input).
				Validate(func(s string) error {
					_, err := ParseChoice(s, n)
					return err
				}),
		),
	)

	if err := runForm(ctx, form); err != nil {
		return 0, err
	}
	return ParseChoice(input, n)
}

// User implements Prompter.
func (p *HuhPrompter) User(ctx context.Context, suggestions []string) (string, error) {
	var user string

	input := huh.NewInput().
		Title("user").
		Description("Login user for ssh").
		Value(&user).
		Validate(ValidateUser)
	if len(suggestions) > 0 {
		input = input.
			Placeholder(suggestions[0]).
			Suggestions(suggestions)
	}

	if err := runForm(ctx, huh.NewForm(huh.NewGroup(input))); err != nil {
		return "", err
	}
	return strings.TrimSpace(user), nil
}

func runForm(ctx context.Context, form *huh.Form) error {
	// Signals already cancel ctx.
	err := form.WithProgramOptions(tea.WithoutSignalHandler()).RunWithContext(ctx)
	if err == nil {
		return nil
	}
	if isAbort(err) {
		return errors.ErrAborted
	}
	return errors.WrapWithCode(err, errors.ErrInput,
		"Failed to get user input",
		"Check terminal compatibility, or pipe answers on stdin")
}

func isAbort(err error) bool {
	return stderrors.Is(err, huh.ErrUserAborted) ||
		stderrors.Is(err, context.Canceled) ||
		stderrors.Is(err, context.DeadlineExceeded)
}

func choiceSuggestions(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("#%d", i+1)
	}
	return out
}
