// Package cli implements the lazyconn command-line interface.
//
// The root command fetches the instance inventory once, then loops: show the
// numbered table, let the user pick an instance (or auto-select one with
// --match), resolve the login user, and run ssh. With --match the loop ends
// after one session.
//
// # Command Structure
//
//	lazyconn                      - Pick an instance and connect
//	lazyconn list [-o format]     - Print connectable instances
//	lazyconn rules [list|add]     - Manage name match rules
//	lazyconn doctor [--fix]       - Check config, tools, and key files
//	lazyconn version              - Print version information
//	lazyconn completion <shell>   - Generate shell completions
//
// # Exit Codes
//
// Errors from the aws CLI and ssh carry their exit code through
// errors.ExitError and the process exits with it. Aborted prompts print
// "exiting..." and exit 1, as does every other error.
package cli
