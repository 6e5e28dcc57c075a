package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jvs-project/helpdesk/internal/console"
	"github.com/jvs-project/helpdesk/internal/store"
	"github.com/jvs-project/helpdesk/pkg/config"
)

var (
	jsonOutput  bool
	ticketsFile string
	configPath  string
	logLevel    string
	noColor     bool

	rootCmd = &cobra.Command{
		Use:   "helpdesk",
		Short: "Helpdesk - interactive support ticket desk",
		Long: `Helpdesk is a single-operator ticket desk for the terminal.

Run without arguments to open the interactive menu: create tickets, list
them by status or priority, and move them through OPEN, IN_PROGRESS and
CLOSED. Tickets are kept in a CSV file (tickets.csv by default).`,
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  setup,
		PersistentPostRunE: teardown,
		RunE:               runConsole,
	}
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&jsonOutput, "json", false, "output in JSON format (subcommands)")
	flags.StringVarP(&ticketsFile, "file", "f", "", "ticket file (overrides tickets_file in config)")
	flags.StringVar(&configPath, "config", config.DefaultPath, "config file")
	flags.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.BoolVar(&noColor, "no-color", false, "disable colored output")
}

// errDenied marks a command that already reported its failure.
var errDenied = errors.New("denied")

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errDenied) {
			fmtErr("%v", err)
		}
		os.Exit(1)
	}
}

func runConsole(cmd *cobra.Command, args []string) error {
	opts := []console.Option{
		console.WithStore(store.NewFileStore(settings.TicketsFile)),
	}
	if h := openHistory(); h != nil {
		opts = append(opts, console.WithHistory(h))
	}
	return console.New(cmd.InOrStdin(), cmd.OutOrStdout(), opts...).Run()
}

// outputJSON writes v as indented JSON.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
