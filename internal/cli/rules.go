package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/lazyconn/internal/config"
	"github.com/rileyhilliard/lazyconn/internal/errors"
	"github.com/rileyhilliard/lazyconn/internal/ui"
)

// rulesCmd groups commands for the name match rules
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show or edit name match rules",
	Long: `Match rules map instance name fragments to login users. With --match,
the first rule whose fragment appears in a matching instance name supplies the
login user.`,
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show configured match rules in order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rulesList(cmd.OutOrStdout(), configFlag)
	},
}

var rulesAddCmd = &cobra.Command{
	Use:   "add <contains> <user>",
	Short: "Append a match rule",
	Long: `Append a match rule to the config file, creating it if needed.

Examples:
  lazyconn rules add ubuntu ubuntu
  lazyconn rules add amzn ec2-user`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return rulesAdd(cmd.OutOrStdout(), configFlag, config.MatchRule{Contains: args[0], User: args[1]})
	},
}

func init() {
	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesAddCmd)
	rootCmd.AddCommand(rulesCmd)
}

func rulesPath(path string) string {
	if path == "" {
		return config.DefaultPath()
	}
	return path
}

func rulesList(w io.Writer, path string) error {
	path = rulesPath(path)
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	if !cfg.HasRules() {
		fmt.Fprintf(w, "No match rules in %s.\n", path)
		fmt.Fprintf(w, "\nAdd one with: %s rules add <contains> <user>\n", rootCmd.Name())
		return nil
	}

	rules := cfg.Rules()
	rows := make([][]string, len(rules))
	for i, r := range rules {
		rows[i] = []string{strconv.Itoa(i + 1), strconv.Quote(r.Contains), r.User}
	}
	fmt.Fprintln(w, ui.RenderSimpleTable([]ui.TableColumn{
		{Title: "#", Width: len(strconv.Itoa(len(rules)))},
		{Title: "Contains", Width: maxWidth("Contains", rows, 1)},
		{Title: "User", Width: maxWidth("User", rows, 2)},
	}, rows))
	return nil
}

func rulesAdd(w io.Writer, path string, rule config.MatchRule) error {
	path = rulesPath(path)
	if err := config.AddMatchRule(path, rule); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't save match rule",
			"Check that "+path+" is valid JSON and writable.")
	}
	fmt.Fprintf(w, "%s Names containing %q log in as %s\n", ui.SymbolSuccess, rule.Contains, rule.User)
	return nil
}

func maxWidth(title string, rows [][]string, col int) int {
	w := len(title)
	for _, r := range rows {
		if len(r[col]) > w {
			w = len(r[col])
		}
	}
	return w
}
