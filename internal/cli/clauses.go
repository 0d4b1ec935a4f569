package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dshills/redline/internal/config"
	"github.com/dshills/redline/internal/review"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var clausesCmd = &cobra.Command{
	Use:   "clauses",
	Short: "Inspect the clause categories used by review",
}

var clausesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the effective clause categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		clauses, ok, err := effectiveClauses(cmd)
		if err != nil || !ok {
			return err
		}
		if len(clauses) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No clauses configured.")
			return nil
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tMISSING RISK\tKEYWORDS")
		for _, c := range clauses {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Name, c.MissingRisk, strings.Join(c.Keywords, ", "))
		}
		return tw.Flush()
	},
}

var clausesShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show one clause definition as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		clauses, ok, err := effectiveClauses(cmd)
		if err != nil || !ok {
			return err
		}
		for _, c := range clauses {
			if !strings.EqualFold(c.Name, args[0]) {
				continue
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(c); err != nil {
				return fmt.Errorf("encoding clause: %w", err)
			}
			return enc.Close()
		}
		return fmt.Errorf("unknown clause: %s", args[0])
	},
}

// effectiveClauses resolves the clause set the review command would use.
// Config errors are returned as usage errors. A clause pack that cannot be
// loaded is reported on stderr, sets ExitRuntimeError and yields ok=false.
func effectiveClauses(cmd *cobra.Command) ([]review.Clause, bool, error) {
	cfg, err := config.Load(buildOverrides())
	if err != nil {
		return nil, false, err
	}
	clauses, err := resolveClauses(cfg.ClausesFile)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return nil, false, nil
	}
	return clauses, true, nil
}

func init() {
	clausesCmd.AddCommand(clausesListCmd)
	clausesCmd.AddCommand(clausesShowCmd)
	addClausesFlag(clausesListCmd)
	addClausesFlag(clausesShowCmd)
}
