package cli

import (
	"github.com/spf13/cobra"

	"github.com/alexanderramin/estimate/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects  service.ProjectService
	Settings  service.SettingsService
	Templates service.TemplateService
	Export    service.ExportService

	// IsInteractive reports whether prompts can be shown. Nil means never.
	IsInteractive func() bool

	// Init runs before every subcommand, after flags are parsed, so the
	// caller can wire the services above from configuration.
	Init func(cmd *cobra.Command) error
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "estimate" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "estimate",
		Short:         "Build cost estimates from work items and job-type rates",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Init == nil {
				return nil
			}
			return app.Init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.String("store", "", "Storage backend: sqlite, postgres, redis or memory (env ESTIMATE_STORE)")
	flags.String("db", "", "SQLite database path (env ESTIMATE_DB)")
	flags.String("workspace", "", "Keep records in a separate named workspace (env ESTIMATE_WORKSPACE)")
	flags.String("config", "", "Config file (default ./estimate.yaml or ~/.estimate/estimate.yaml)")
	flags.String("log-level", "", "Log level: debug, info, warn, error (env ESTIMATE_LOG_LEVEL)")

	root.AddCommand(
		newProjectCmd(app),
		newJobTypeCmd(app),
		newTemplateCmd(app),
		newSettingsCmd(app),
	)

	return root
}
