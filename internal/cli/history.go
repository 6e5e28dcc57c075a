package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jvs-project/helpdesk/pkg/color"
	"github.com/jvs-project/helpdesk/pkg/model"
)

var historyCmd = &cobra.Command{
	Use:   "history [ticket-id]",
	Short: "Show recorded ticket events",
	Long: `Show the ticket event history and verify its hash chain.

Every ticket creation and status change made from the menu is appended to
the history file (history_file in the config). Each record carries the
hash of the record before it; a mismatch means the file was edited and the
command fails with E_AUDIT_CHAIN_BROKEN.

Examples:
  helpdesk history             # All events
  helpdesk history 3f9a2c1b    # Events for one ticket
  helpdesk history --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		h := openHistory()
		if h == nil {
			fmt.Fprintln(out, "History is disabled (history_file is empty).")
			return nil
		}
		if err := h.Verify(); err != nil {
			return err
		}

		var (
			events []model.TicketEvent
			err    error
		)
		if len(args) == 1 {
			events, err = h.ForTicket(args[0])
		} else {
			events, err = h.Records()
		}
		if err != nil {
			return err
		}

		if jsonOutput {
			if events == nil {
				events = []model.TicketEvent{}
			}
			return outputJSON(out, events)
		}
		if len(events) == 0 {
			fmt.Fprintln(out, "No history recorded.")
			return nil
		}
		for _, e := range events {
			fmt.Fprintf(out, "%s  %s  %s  %s\n",
				color.Dim(e.Timestamp.Format(model.TimeLayout)),
				color.Code(fmt.Sprintf("%-13s", e.EventType)),
				color.TicketID(e.TicketID),
				formatDetails(e.Details))
		}
		fmt.Fprintln(out, color.Success(fmt.Sprintf("%d event(s), chain verified.", len(events))))
		return nil
	},
}

func formatDetails(details map[string]any) string {
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, details[k]))
	}
	return strings.Join(parts, " ")
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
