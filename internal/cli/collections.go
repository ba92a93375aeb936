package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrlokans/smartrate/internal/entities"
)

func pairArgs(args []string) (entities.FavoritePair, error) {
	pair := entities.FavoritePair{
		From: strings.ToUpper(strings.TrimSpace(args[0])),
		To:   strings.ToUpper(strings.TrimSpace(args[1])),
	}
	return pair, pair.Validate()
}

// NewFavoritesCmd creates the favorites command group.
func NewFavoritesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "Manage favorite currency pairs",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List favorite pairs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pairs, err := app.Core.Favourites.List(cmd.Context())
			if err != nil {
				return err
			}
			if pairs == nil {
				pairs = []entities.FavoritePair{}
			}
			return app.render(pairs, func(w io.Writer) {
				for _, p := range pairs {
					fmt.Fprintln(w, p)
				}
			})
		},
	}

	add := &cobra.Command{
		Use:   "add <from> <to>",
		Short: "Add a favorite pair",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pair, err := pairArgs(args)
			if err != nil {
				return err
			}
			if err := app.Core.Favourites.Add(cmd.Context(), pair); err != nil {
				return err
			}
			fmt.Fprintf(app.Err, "Added %s\n", pair)
			return nil
		},
	}

	remove := &cobra.Command{
		Use:     "remove <from> <to>",
		Aliases: []string{"rm"},
		Short:   "Remove a favorite pair",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pair, err := pairArgs(args)
			if err != nil {
				return err
			}
			if err := app.Core.Favourites.Remove(cmd.Context(), pair); err != nil {
				return err
			}
			fmt.Fprintf(app.Err, "Removed %s\n", pair)
			return nil
		},
	}

	toggle := &cobra.Command{
		Use:   "toggle <from> <to>",
		Short: "Add the pair if it is not a favorite, remove it otherwise",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pair, err := pairArgs(args)
			if err != nil {
				return err
			}
			isFavorite, err := app.Core.Favourites.Toggle(cmd.Context(), pair)
			if err != nil {
				return err
			}
			state := map[string]any{"pair": pair, "isFavorite": isFavorite}
			return app.render(state, func(w io.Writer) {
				if isFavorite {
					fmt.Fprintf(w, "%s is now a favorite\n", pair)
				} else {
					fmt.Fprintf(w, "%s is no longer a favorite\n", pair)
				}
			})
		},
	}

	cmd.AddCommand(list, add, remove, toggle)
	return cmd
}

// NewHistoryCmd creates the history command group.
func NewHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or clear the conversion history",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List recent conversions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Core.History.List(cmd.Context())
			if err != nil {
				return err
			}
			if entries == nil {
				entries = []entities.HistoryEntry{}
			}
			return app.render(entries, func(w io.Writer) {
				for _, e := range entries {
					at := time.UnixMilli(e.Timestamp).Local().Format("2006-01-02 15:04")
					fmt.Fprintf(w, "%s  %g %s = %g %s\n", at, e.Amount, e.From, e.Result, e.To)
				}
			})
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all history entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Core.History.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(app.Err, "History cleared")
			return nil
		},
	}

	cmd.AddCommand(list, clearCmd)
	return cmd
}
