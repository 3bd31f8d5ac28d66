package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/abhisek/pbi/internal/app"
	"github.com/abhisek/pbi/internal/catalog"
	"github.com/abhisek/pbi/internal/config"
	"github.com/abhisek/pbi/internal/export"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Take the assessment",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	st, cfg, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	logFile, err := openLogFile(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := newLogger(cfg, logFile, "pbi")

	cat := catalog.Default()
	sender := newSender(cfg, logger)
	if !sender.Configured() {
		fmt.Fprintln(os.Stderr, "Export endpoint not configured (export.url / PBI_EXPORT_URL).")
		fmt.Fprintln(os.Stderr, "Results will be saved locally only.")
	}

	return app.Run(cmd.Context(), app.Options{
		Catalog:    cat,
		Counter:    st.CounterRepo(),
		Results:    st.ResultRepo(),
		Dispatcher: export.NewDispatcher(cat, sender, logger.WithPrefix("export"), cfg.Export.Timeout),
		Logger:     logger,
	})
}

// newSender builds the spreadsheet sender from the export settings.
func newSender(cfg *config.Config, logger *log.Logger) *export.AppsScriptSender {
	r := cfg.Export.Retry
	return export.NewAppsScriptSender(cfg.Export.URL,
		export.WithRetry(export.RetryConfig{
			MaxAttempts: r.MaxAttempts,
			InitialWait: r.InitialWait,
			MaxWait:     r.MaxWait,
			Multiplier:  r.Multiplier,
		}),
		export.WithLogger(logger.WithPrefix("export")),
	)
}
