package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrlokans/smartrate/internal/rates"
)

// NewRatesCmd creates the rates command.
func NewRatesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rates <base>",
		Short:   "Show the latest rate table for a base currency",
		Example: "  smartrate rates eur --format yaml",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base := strings.ToUpper(strings.TrimSpace(args[0]))
			result := app.Core.Rates.FetchLatestRates(cmd.Context(), base)
			if result.Rates == nil {
				return failure(result.Err)
			}
			if result.Err != nil {
				app.warn(result.Err)
			}

			return app.render(result, func(w io.Writer) {
				updated := time.UnixMilli(result.Timestamp).UTC().Format(time.RFC3339)
				fmt.Fprintf(w, "Base %s, updated %s%s\n", result.Base, updated, freshness(result.FromCache, result.Stale))
				for _, code := range rates.SortedCodes(result.Rates) {
					fmt.Fprintf(w, "%s\t%g\n", code, result.Rates[code])
				}
			})
		},
	}
}

// NewCurrenciesCmd creates the currencies command.
func NewCurrenciesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "currencies",
		Short: "List the supported currencies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result := app.Core.Rates.FetchSupportedCurrencies(cmd.Context())
			if result.Warning != nil {
				fmt.Fprintf(app.Err, "warning: %s: showing built-in list: %v\n", result.MessageKey(), result.Warning)
			}

			return app.render(result.Currencies, func(w io.Writer) {
				for _, c := range result.Currencies {
					fmt.Fprintf(w, "%s\t%s\n", c.Code, c.Name)
				}
			})
		},
	}
}
