package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mrlokans/smartrate/internal/config"
	"github.com/mrlokans/smartrate/internal/entrypoint"
)

// NewRootCmd builds the command tree writing to stdout and stderr.
func NewRootCmd(version string) *cobra.Command {
	return newRootCmd(&App{Out: os.Stdout, Err: os.Stderr}, version)
}

func newRootCmd(app *App, version string) *cobra.Command {
	var envFile, dbPath string

	loadConfig := func() *config.Config {
		config.LoadDotEnv(envFile)
		cfg := config.NewConfig()
		if dbPath != "" {
			cfg.Database.Path = dbPath
		}
		return cfg
	}

	root := &cobra.Command{
		Use:     "smartrate",
		Short:   "Currency conversion with cached exchange rates",
		Version: version,
		Long: `SmartRate converts amounts between currencies using rates from
exchangerate-api.com. Rates are cached for 12 hours and the supported
currency list for 7 days, so most commands work offline.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(app.Format); err != nil {
				return err
			}
			switch cmd.Name() {
			case "serve", "help", "version", "completion":
				return nil
			}

			core, err := entrypoint.NewApp(loadConfig())
			if err != nil {
				return err
			}
			app.Core = core
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.Close()
		},
	}

	root.PersistentFlags().StringVar(&app.Format, "format", FormatText, "Output format: text, json or yaml")
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "Environment file to load (default: .env)")
	root.PersistentFlags().StringVar(&dbPath, "db", "", "Database path (overrides DATABASE_PATH)")

	root.AddCommand(
		newServeCmd(version, loadConfig),
		NewConvertCmd(app),
		NewRatesCmd(app),
		NewCurrenciesCmd(app),
		NewPairCmd(app),
		NewFavoritesCmd(app),
		NewHistoryCmd(app),
		NewSettingsCmd(app),
	)

	return root
}

// Execute runs the root command.
func Execute(version string) error {
	app := &App{Out: os.Stdout, Err: os.Stderr}
	return execute(newRootCmd(app, version), app)
}

// execute runs root and closes the app afterwards. Cobra skips the post-run
// hooks when a command fails, so the close cannot live there alone.
func execute(root *cobra.Command, app *App) error {
	err := root.Execute()
	if closeErr := app.Close(); err == nil {
		err = closeErr
	}
	return err
}

func newServeCmd(version string, loadConfig func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			entrypoint.Run(loadConfig(), version)
		},
	}
}
