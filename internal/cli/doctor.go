package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jvs-project/helpdesk/internal/doctor"
	"github.com/jvs-project/helpdesk/internal/store"
	"github.com/jvs-project/helpdesk/pkg/color"
)

var (
	doctorStrict bool
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check ticket file and history health",
	Long: `Check ticket file and history health.

Loads the ticket file, looks for duplicate ticket ids and verifies the
history hash chain. Use --strict to also report history events for tickets
missing from the ticket file.

The *.lock files next to the ticket and history files are advisory lock
sidecars left by every write. They are expected and are not reported.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		var history doctor.History
		if h := openHistory(); h != nil {
			history = h
		}
		result, err := doctor.NewDoctor(store.NewFileStore(settings.TicketsFile), history).Check(doctorStrict)
		if err != nil {
			return fmt.Errorf("doctor: %w", err)
		}

		if jsonOutput {
			if err := outputJSON(out, result); err != nil {
				return err
			}
		} else if len(result.Findings) == 0 {
			fmt.Fprintf(out, "Helpdesk is healthy (%d tickets, %d events).\n", result.Tickets, result.Events)
		} else {
			fmt.Fprintf(out, "Findings (%d):\n", len(result.Findings))
			for _, f := range result.Findings {
				fmt.Fprintf(out, "  [%s] %s: %s\n", severityLabel(f.Severity), f.Category, f.Description)
			}
		}

		if !result.Healthy {
			return errDenied
		}
		return nil
	},
}

func severityLabel(severity string) string {
	if severity == doctor.SeverityWarning {
		return color.Warning(severity)
	}
	return color.Error(severity)
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorStrict, "strict", false, "cross-check history against the ticket file")
	rootCmd.AddCommand(doctorCmd)
}
