package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewConvertCmd creates the convert command.
func NewConvertCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <from> <to> [amount]",
		Short: "Convert an amount between two currencies",
		Long: `Convert an amount between two currencies. Without an amount the
unit rate is shown. Successful conversions are added to the history.`,
		Example: "  smartrate convert usd eur 100",
		Args:    cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount := ""
			if len(args) == 3 {
				amount = args[2]
			}

			conv, err := app.Core.Converter.Convert(cmd.Context(), args[0], args[1], amount)
			if err != nil {
				return failure(err)
			}
			if conv.Rate == nil {
				return failure(conv.Err)
			}
			if conv.Err != nil {
				app.warn(conv.Err)
			}

			return app.render(conv, func(w io.Writer) {
				if conv.Result != nil {
					fmt.Fprintf(w, "%s %s = %s\n", conv.Amount, conv.From, conv.Display)
				}
				fmt.Fprintf(w, "1 %s = %s %s%s\n", conv.From, conv.Rate, conv.To, freshness(conv.FromCache, conv.Stale))
			})
		},
	}
}

func freshness(fromCache, stale bool) string {
	switch {
	case stale:
		return " (stale)"
	case fromCache:
		return " (cached)"
	}
	return ""
}
