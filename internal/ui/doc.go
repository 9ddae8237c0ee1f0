// Package ui renders the instance table and drives the interactive prompts.
//
// Output is styled with Lip Gloss. DisableColors switches everything to plain
// ASCII for --no-color and for non-terminal output.
//
// # Prompts
//
// Two Prompter implementations exist. HuhPrompter uses Huh forms and is used
// when stdin and stdout are terminals. LinePrompter reads plain lines and is
// used everywhere else, including tests:
//
//	p := ui.NewLinePrompter(os.Stdin, os.Stdout)
//	idx, err := p.SelectInstance(instances) // 0-based index
//	user, err := p.User(nil)
//
// Both return errors.ErrAborted when the user hits Ctrl+C or stdin closes.
// Invalid choices are reported and asked again; they are never fatal.
//
// # Spinner
//
//	s := ui.NewSpinner("Fetching instances")
//	s.Start()
//	// ... do work ...
//	s.Success() // or s.Fail()
package ui
