package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/lazyconn/internal/config"
	"github.com/rileyhilliard/lazyconn/internal/doctor"
	"github.com/rileyhilliard/lazyconn/internal/inventory"
	"github.com/rileyhilliard/lazyconn/internal/ui"
)

var (
	doctorJSON bool
	doctorFix  bool
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check config, tools, and key files",
	Long: `Run local diagnostics: config file and match rules, the aws and ssh
binaries, key file permissions in ~/.ssh, and which region would be queried.
Nothing is sent to AWS.

Examples:
  lazyconn doctor
  lazyconn doctor --fix
  lazyconn doctor --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := doctorOptions()
		if err != nil {
			return err
		}
		return runDoctor(cmd.Context(), cmd.OutOrStdout(), doctor.NewChecks(opts), doctorFix, doctorJSON)
	},
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output in JSON format")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "attempt automatic fixes where possible")
	rootCmd.AddCommand(doctorCmd)
}

// DoctorOutput represents the JSON output for doctor command.
type DoctorOutput struct {
	Categories []CategoryOutput `json:"categories"`
	Summary    SummaryOutput    `json:"summary"`
}

// CategoryOutput represents a category of check results.
type CategoryOutput struct {
	Name    string               `json:"name"`
	Results []doctor.CheckResult `json:"results"`
}

// SummaryOutput summarizes the check results.
type SummaryOutput struct {
	Pass     int  `json:"pass"`
	Warn     int  `json:"warn"`
	Fail     int  `json:"fail"`
	Fixable  int  `json:"fixable"`
	AllClear bool `json:"all_clear"`
}

// doctorOptions builds check options from the global flags. Config load
// errors are left for the config check to report.
func doctorOptions() (doctor.Options, error) {
	src, err := newSource(sourceFlag, profileFlag)
	if err != nil {
		return doctor.Options{}, err
	}

	cfg, _ := config.Load(configFlag)

	return doctor.Options{
		ConfigPath:    configFlag,
		Config:        cfg,
		FlagRegion:    regionFlag,
		Source:        src,
		AWSCLI:        inventory.NewCLISource(nil),
		RequireAWSCLI: sourceFlag == SourceCLI,
	}, nil
}

func runDoctor(ctx context.Context, w io.Writer, checks []doctor.Check, fix, asJSON bool) error {
	results := doctor.RunAll(ctx, checks)

	if fix {
		results = attemptFixes(ctx, checks, results)
	}

	if asJSON {
		return outputDoctorJSON(w, checks, results)
	}
	outputDoctorText(w, checks, results, fix)
	return nil
}

// attemptFixes tries to fix issues where possible.
func attemptFixes(ctx context.Context, checks []doctor.Check, results []doctor.CheckResult) []doctor.CheckResult {
	for i, result := range results {
		if !result.Fixable || result.Status == doctor.StatusPass {
			continue
		}
		if err := checks[i].Fix(); err == nil {
			// Re-run the check to see if it's fixed
			results[i] = checks[i].Run(ctx)
		}
	}
	return results
}

func outputDoctorJSON(w io.Writer, checks []doctor.Check, results []doctor.CheckResult) error {
	grouped := doctor.ByCategory(checks, results)

	output := DoctorOutput{Categories: make([]CategoryOutput, 0, len(grouped))}
	for _, cat := range doctor.Categories {
		if len(grouped[cat]) == 0 {
			continue
		}
		output.Categories = append(output.Categories, CategoryOutput{Name: cat, Results: grouped[cat]})
	}

	counts := doctor.CountByStatus(results)
	output.Summary = SummaryOutput{
		Pass:     counts[doctor.StatusPass],
		Warn:     counts[doctor.StatusWarn],
		Fail:     counts[doctor.StatusFail],
		Fixable:  doctor.FixableCount(results),
		AllClear: !doctor.HasIssues(results),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

func outputDoctorText(w io.Writer, checks []doctor.Check, results []doctor.CheckResult, fixed bool) {
	headerStyle := lipgloss.NewStyle().Bold(true)
	grouped := doctor.ByCategory(checks, results)

	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render("lazyconn diagnostic report"))
	fmt.Fprintln(w)

	for _, category := range doctor.Categories {
		if len(grouped[category]) == 0 {
			continue
		}
		fmt.Fprintln(w, headerStyle.Render(category))
		for _, result := range grouped[category] {
			renderCheckResult(w, result)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, strings.Repeat("━", 60))
	fmt.Fprintln(w)

	switch {
	case !doctor.HasIssues(results):
		fmt.Fprintf(w, "%s %s\n", ui.SuccessStyle().Render(ui.SymbolSuccess), doctor.Summary(results))
	case !doctor.HasFailures(results):
		fmt.Fprintf(w, "%s %s\n", ui.WarningStyle().Render(ui.SymbolWarning), doctor.Summary(results))
	default:
		fmt.Fprintf(w, "%s %s\n", ui.ErrorStyle().Render(ui.SymbolFail), doctor.Summary(results))
	}
	if doctor.FixableCount(results) > 0 && !fixed {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  Run with %s to attempt automatic fixes where possible.\n",
			ui.MutedStyle().Render("--fix"))
	}
	fmt.Fprintln(w)
}

func renderCheckResult(w io.Writer, result doctor.CheckResult) {
	symbol, style := ui.SymbolComplete, ui.SuccessStyle()
	switch result.Status {
	case doctor.StatusWarn:
		symbol, style = ui.SymbolWarning, ui.WarningStyle()
	case doctor.StatusFail:
		symbol, style = ui.SymbolFail, ui.ErrorStyle()
	}

	fmt.Fprintf(w, "  %s %s\n", style.Render(symbol), result.Message)

	if result.Suggestion != "" && result.Status != doctor.StatusPass {
		for _, line := range strings.Split(result.Suggestion, "\n") {
			fmt.Fprintf(w, "    %s\n", ui.MutedStyle().Render(line))
		}
	}
}
