package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpapi "github.com/ShakthivelNadar/Advanced-Weather-app/internal/api/http"
	"github.com/ShakthivelNadar/Advanced-Weather-app/internal/scheduler"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard API for one local session",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := build()
			if err != nil {
				return err
			}
			defer d.close()
			return serve(d)
		},
	}
}

func serve(d *deps) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st := d.live.Init(ctx)
	d.log.Info("session initialized", "place", st.Place.Name, "source", st.Source, "status", st.Status)

	// Scheduler that periodically re-renders the current place.
	sched := scheduler.New(scheduler.RefreshFunc(func(ctx context.Context) error {
		return d.live.Refresh(ctx).Err
	}), d.cfg.RefreshInterval, d.cfg.HTTPTimeout*2, d.log)
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	app := httpapi.NewApp(appName, true)
	httpapi.RegisterRoutes(app, d.live)

	go func() {
		d.log.Info("listening", "port", d.cfg.Port)
		if err := app.Listen(":" + d.cfg.Port); err != nil {
			d.log.Error("fiber server stopped", "error", err)
			stop()
		}
	}()

	// Wait for termination signal
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		d.log.Error("error during shutdown", "error", err)
		return err
	}
	return nil
}
