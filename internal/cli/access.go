package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jvs-project/helpdesk/internal/accessgate"
)

var accessCmd = &cobra.Command{
	Use:   "access <role> <action>",
	Short: "Check whether a role may perform an action",
	Long: `Check whether a role may perform an action on tickets.

Roles:   admin, guest, manager
Actions: view, edit, delete

Exits with status 1 when the action is denied or the role or action is
unknown.

Examples:
  helpdesk access manager edit
  helpdesk access guest delete --json`,
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completeAccessArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		allowed, message := accessgate.Check(args[0], args[1])
		if jsonOutput {
			if err := outputJSON(cmd.OutOrStdout(), map[string]any{
				"role":    args[0],
				"action":  args[1],
				"allowed": allowed,
				"message": message,
			}); err != nil {
				return err
			}
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), message)
		}
		if !allowed {
			return errDenied
		}
		return nil
	},
}

func completeAccessArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var out []string
	switch len(args) {
	case 0:
		for _, r := range accessgate.Roles() {
			out = append(out, string(r))
		}
	case 1:
		for _, a := range accessgate.Actions() {
			out = append(out, string(a))
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

func init() {
	rootCmd.AddCommand(accessCmd)
}
