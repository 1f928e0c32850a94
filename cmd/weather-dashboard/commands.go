package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ShakthivelNadar/Advanced-Weather-app/internal/render"
	"github.com/ShakthivelNadar/Advanced-Weather-app/internal/session"
	"github.com/ShakthivelNadar/Advanced-Weather-app/internal/view"
)

// withDeps builds the dependencies for a single command run.
func withDeps(fn func(ctx context.Context, d *deps, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		d, err := build()
		if err != nil {
			return err
		}
		defer d.close()
		return fn(cmd.Context(), d, args)
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// show prints the dashboard for st and turns failed states into errors.
func show(st session.State) error {
	d := view.FromState(st)
	if asJSON {
		if err := printJSON(d); err != nil {
			return err
		}
	} else {
		render.Dashboard(os.Stdout, d)
	}
	switch st.Status {
	case session.StatusNotFound, session.StatusError:
		return errors.New(st.Message)
	}
	return nil
}

// current returns the state for --city when given, else the startup place.
func current(ctx context.Context, d *deps, city string) session.State {
	if city == "" {
		return d.live.Init(ctx)
	}
	st := session.State{DefaultPlace: d.ctrl.DefaultPlace(ctx)}
	return d.ctrl.Search(ctx, st, city)
}

func nowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "now",
		Short: "Show the dashboard for the detected, last or default place",
		RunE: withDeps(func(ctx context.Context, d *deps, args []string) error {
			return show(d.live.Init(ctx))
		}),
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the view model as JSON")
	return cmd
}

func searchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [place]",
		Short: "Show the dashboard for a named place",
		Args:  cobra.MinimumNArgs(1),
		RunE: withDeps(func(ctx context.Context, d *deps, args []string) error {
			return show(current(ctx, d, strings.Join(args, " ")))
		}),
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the view model as JSON")
	return cmd
}

func historyCmd() *cobra.Command {
	var hour, city string
	cmd := &cobra.Command{
		Use:   "history [YYYY-MM-DD]",
		Short: "Show one hour of a past day",
		Args:  cobra.ExactArgs(1),
		RunE: withDeps(func(ctx context.Context, d *deps, args []string) error {
			st := current(ctx, d, city)
			if city != "" && !st.Ready() && st.Status != session.StatusTimedOut {
				return errors.New(st.Message)
			}

			res, err := d.ctrl.Historical(ctx, st, args[0], hour)
			if err != nil {
				return errors.New(session.Message(err))
			}
			h := view.BuildHistorical(res.Place, res.Hour)
			if asJSON {
				return printJSON(h)
			}
			render.Historical(os.Stdout, h)
			return nil
		}),
	}
	cmd.Flags().StringVar(&hour, "hour", "", "Hour of day, HH:MM (default noon)")
	cmd.Flags().StringVar(&city, "city", "", "Place to look up instead of the current one")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the view model as JSON")
	return cmd
}

func favoritesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "List, save and open favorite places",
		RunE: withDeps(func(ctx context.Context, d *deps, args []string) error {
			favs, err := d.live.Favorites()
			if err != nil {
				return err
			}
			render.Favorites(os.Stdout, favs)
			return nil
		}),
	}

	var city string
	add := &cobra.Command{
		Use:   "add",
		Short: "Save the current place (or --city) as a favorite",
		RunE: withDeps(func(ctx context.Context, d *deps, args []string) error {
			st := current(ctx, d, city)
			fav, added, err := d.ctrl.SaveFavorite(st)
			if errors.Is(err, session.ErrNothingToSave) && st.Message != "" {
				return errors.New(st.Message)
			}
			if err != nil {
				return err
			}
			if !added {
				render.Message(os.Stdout, fav.Name+" is already a favorite", false)
				return nil
			}
			render.Message(os.Stdout, fmt.Sprintf("Saved %s to favorites!", fav.Name), false)
			return nil
		}),
	}
	add.Flags().StringVar(&city, "city", "", "Place to save instead of the current one")

	open := &cobra.Command{
		Use:   "open [name]",
		Short: "Show the dashboard for a saved place",
		Args:  cobra.MinimumNArgs(1),
		RunE: withDeps(func(ctx context.Context, d *deps, args []string) error {
			st, err := d.live.SelectFavorite(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			return show(st)
		}),
	}
	open.Flags().BoolVar(&asJSON, "json", false, "Print the view model as JSON")

	cmd.AddCommand(add, open)
	return cmd
}
