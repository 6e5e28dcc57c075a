package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jvs-project/helpdesk/internal/audit"
	"github.com/jvs-project/helpdesk/pkg/color"
	"github.com/jvs-project/helpdesk/pkg/config"
	"github.com/jvs-project/helpdesk/pkg/errclass"
	"github.com/jvs-project/helpdesk/pkg/logging"
)

// settings is the effective configuration for the running command.
var settings = config.Default()

var logCloser io.Closer

// setup loads the config file, applies flag overrides and configures
// logging and color.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if ticketsFile != "" {
		cfg.TicketsFile = ticketsFile
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return errclass.ErrConfigInvalid.WithMessage(err.Error())
	}
	logger := logging.NewLogger(level)
	if cfg.Logging.File != "" {
		l, closer, err := logging.Open(cfg.Logging.File, level)
		if err != nil {
			return err
		}
		logger, logCloser = l, closer
	}
	logging.SetGlobal(logger)

	if noColor || !cfg.ColorEnabled() {
		color.Disable()
	} else {
		color.Init(false)
	}

	settings = cfg
	logger.Debug("settings loaded", map[string]any{
		"config":       configPath,
		"tickets_file": cfg.TicketsFile,
		"history_file": cfg.HistoryFile,
	})
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	if logCloser == nil {
		return nil
	}
	err := logCloser.Close()
	logCloser = nil
	return err
}

// openHistory returns the configured history log, or nil when disabled.
func openHistory() *audit.FileAppender {
	if settings.HistoryFile == "" {
		return nil
	}
	return audit.NewFileAppender(settings.HistoryFile)
}

func fmtErr(format string, args ...any) {
	fmt.Fprintf(os.Stderr, color.Error("helpdesk:")+" "+format+"\n", args...)
}
