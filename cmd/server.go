package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/tablevoice/internal/auth"
	"github.com/example/tablevoice/internal/bookings"
	"github.com/example/tablevoice/internal/config"
	"github.com/example/tablevoice/internal/db"
	"github.com/example/tablevoice/internal/migrate"
	"github.com/example/tablevoice/internal/refresher"
	"github.com/example/tablevoice/internal/weather"
	"github.com/example/tablevoice/internal/web"
	"github.com/spf13/cobra"
)

func newServerCmd() *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Run the booking API + suggestion refresher",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			d, err := db.Open(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer d.Close()

			if err := d.Ping(ctx); err != nil {
				return fmt.Errorf("db ping: %w", err)
			}

			if migrateUp {
				if err := migrate.Up(ctx, d); err != nil {
					return err
				}
			}

			authStore := auth.NewStore(d, cfg.CookieHashKey, cfg.CookieBlockKey)
			repo := bookings.NewRepo(d)

			var forecast web.ForecastSource
			if cfg.WeatherAPIKey != "" {
				client := weather.NewClient(cfg.WeatherAPIKey)
				forecast = client

				r := &refresher.Refresher{
					Bookings:  repo,
					Weather:   client,
					Policy:    weather.DefaultPolicy,
					Interval:  cfg.RefreshInterval,
					Lookahead: cfg.RefreshLookahead,
				}
				go func() { _ = r.Run(ctx) }()
			}

			ws := &web.Server{
				Auth:     authStore,
				Bookings: repo,
				Weather:  forecast,
				Policy:   weather.DefaultPolicy,
				Loc:      cfg.Location(),
			}
			return web.Start(ctx, cfg.ListenAddr, ws.Routes())
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", true, "run database migrations on startup")

	cmd.Flags().Lookup("migrate").NoOptDefVal = "true"
	return cmd
}
