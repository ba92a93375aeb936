package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mrlokans/smartrate/internal/converter"
	"github.com/mrlokans/smartrate/internal/entities"
)

func knownKey(key string) error {
	if !entities.IsKnownSettingKey(key) {
		return fmt.Errorf("unknown setting %q (known: %v)", key, entities.KnownSettingKeys)
	}
	return nil
}

// NewSettingsCmd creates the settings command group.
func NewSettingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Read and change user settings",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Show every setting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			values := make(map[string]string, len(entities.KnownSettingKeys))
			for _, key := range entities.KnownSettingKeys {
				values[key] = app.Core.Settings.LoadSetting(cmd.Context(), key, converter.SettingDefault(key))
			}
			return app.render(values, func(w io.Writer) {
				for _, key := range entities.KnownSettingKeys {
					fmt.Fprintf(w, "%s=%s\n", key, values[key])
				}
			})
		},
	}

	get := &cobra.Command{
		Use:   "get <key>",
		Short: "Show one setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if err := knownKey(key); err != nil {
				return err
			}
			value := app.Core.Settings.LoadSetting(cmd.Context(), key, converter.SettingDefault(key))
			return app.render(map[string]string{"key": key, "value": value}, func(w io.Writer) {
				fmt.Fprintln(w, value)
			})
		},
	}

	set := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting",
		Long: `Change one setting. An empty value resets currency defaults and the
API key; decimalPlaces accepts "auto" or 0-8.`,
		Example: "  smartrate settings set userApiKey 0123456789abcdef\n  smartrate settings set decimalPlaces 4",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if err := knownKey(key); err != nil {
				return err
			}
			value, err := converter.NormaliseSetting(key, args[1])
			if err != nil {
				return err
			}
			if err := app.Core.Settings.SaveSetting(cmd.Context(), key, value); err != nil {
				return err
			}
			if key == entities.SettingKeyUserAPIKey {
				app.Core.Rates.Renew()
			}
			fmt.Fprintf(app.Err, "Saved %s\n", key)
			return nil
		},
	}

	reset := &cobra.Command{
		Use:   "reset <key>",
		Short: "Remove a setting so its default applies again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if err := knownKey(key); err != nil {
				return err
			}
			if err := app.Core.Settings.DeleteSetting(cmd.Context(), key); err != nil {
				return err
			}
			if key == entities.SettingKeyUserAPIKey {
				app.Core.Rates.Renew()
			}
			fmt.Fprintf(app.Err, "Reset %s\n", key)
			return nil
		},
	}

	cmd.AddCommand(list, get, set, reset)
	return cmd
}

// NewPairCmd creates the pair command group for the default currency pair.
func NewPairCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pair",
		Short: "Show or change the default currency pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pair := app.Core.Converter.DefaultPair(cmd.Context())
			return app.render(pair, func(w io.Writer) {
				fmt.Fprintln(w, pair)
			})
		},
	}

	set := &cobra.Command{
		Use:   "set <from> <to>",
		Short: "Make from→to the default pair",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pair := entities.FavoritePair{From: args[0], To: args[1]}
			if err := app.Core.Converter.SetPair(cmd.Context(), pair); err != nil {
				return failure(err)
			}
			pair = app.Core.Converter.DefaultPair(cmd.Context())
			return app.render(pair, func(w io.Writer) {
				fmt.Fprintln(w, pair)
			})
		},
	}

	swap := &cobra.Command{
		Use:   "swap",
		Short: "Exchange source and target of the default pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pair, err := app.Core.Converter.Swap(cmd.Context())
			if err != nil {
				return err
			}
			return app.render(pair, func(w io.Writer) {
				fmt.Fprintln(w, pair)
			})
		},
	}

	cmd.AddCommand(set, swap)
	return cmd
}
