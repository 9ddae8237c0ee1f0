package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rileyhilliard/lazyconn/internal/errors"
	"github.com/rileyhilliard/lazyconn/internal/inventory"
	"github.com/rileyhilliard/lazyconn/internal/ui"
)

// Output formats for the list command.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

var listOutputFlag string

// listCmd prints connectable instances without connecting
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List connectable instances",
	Long: `List the instances lazyconn can connect to, in menu order.

Examples:
  lazyconn list
  lazyconn list -r us-west-2 -o json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateOutputFormat(listOutputFlag); err != nil {
			return err
		}
		s, err := newSession(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		// Keep machine-readable output free of progress noise.
		s.Spinner = s.Spinner && listOutputFlag == OutputTable

		instances, region, err := s.LoadInstances(cmd.Context(), regionFlag)
		if err != nil {
			return err
		}
		return writeInstances(cmd.OutOrStdout(), instances, region, listOutputFlag)
	},
}

func init() {
	listCmd.Flags().StringVarP(&listOutputFlag, "output", "o", OutputTable, "output format: table, json, or yaml")
	rootCmd.AddCommand(listCmd)
}

func validateOutputFormat(format string) error {
	switch format {
	case OutputTable, OutputJSON, OutputYAML:
		return nil
	default:
		return errors.New(errors.ErrInput,
			fmt.Sprintf("Unknown output format %q", format),
			"Use -o table, -o json, or -o yaml.")
	}
}

// writeInstances renders instances in the given format. Empty lists are
// written as an empty document for json and yaml.
func writeInstances(w io.Writer, instances []inventory.Instance, region, format string) error {
	if instances == nil {
		instances = []inventory.Instance{}
	}

	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(instances)
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(instances); err != nil {
			return err
		}
		return enc.Close()
	case OutputTable:
		if len(instances) == 0 {
			fmt.Fprintf(w, "No running instances found in %s.\n", region)
			return nil
		}
		fmt.Fprintln(w, ui.RenderInstanceTable(instances))
		return nil
	default:
		return validateOutputFormat(format)
	}
}
