package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/example/tablevoice/internal/bookings"
	"github.com/example/tablevoice/internal/config"
	"github.com/example/tablevoice/internal/db"
	"github.com/example/tablevoice/internal/intent"
	"github.com/example/tablevoice/internal/migrate"
	"github.com/example/tablevoice/internal/weather"
	"github.com/spf13/cobra"
)

func newBookingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "booking",
		Short: "Manage bookings (non-UI)",
	}
	cmd.AddCommand(newBookingCreateCmd())
	cmd.AddCommand(newBookingListCmd())
	return cmd
}

func newBookingCreateCmd() *cobra.Command {
	var (
		name     string
		guests   string
		date     string
		timeOf   string
		location string
	)

	c := &cobra.Command{
		Use:   "create",
		Short: "Create a booking from spoken-style phrases",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			ctx := context.Background()
			d, err := db.Open(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer d.Close()

			if err := migrate.Up(ctx, d); err != nil {
				return err
			}

			n := intent.DecodeNumber(guests)
			if n < 1 {
				return fmt.Errorf("could not decode --guests %q", guests)
			}

			now := time.Now().In(cfg.Location())
			rd, err := intent.ResolveDate(date, now)
			if err != nil {
				return fmt.Errorf("invalid --date %q", date)
			}
			rc, err := intent.ResolveTime(timeOf, now)
			if err != nil {
				return fmt.Errorf("invalid --time %q", timeOf)
			}
			moment := intent.Compose(rd, rc, cfg.Location())

			decision := weather.DefaultDecision()
			if cfg.WeatherAPIKey != "" && location != "" {
				if obs, err := weather.NewClient(cfg.WeatherAPIKey).Forecast(ctx, moment.UTC(), location); err == nil && obs != nil {
					decision = weather.DefaultPolicy.Decide(*obs)
				}
			}

			b := bookings.Booking{
				CustomerName: name,
				Guests:       n,
				StartsAt:     moment.UTC(),
				LocalDisplay: moment.Display(),
				Location:     location,
				Seating:      decision,
			}
			if err := b.Validate(); err != nil {
				return err
			}

			created, err := bookings.NewRepo(d).Create(ctx, b)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "booked %s for %d guests, confirmation=%s\n%s\n",
				created.LocalDisplay, created.Guests, created.ConfirmationCode, created.Seating.Recommendation)
			return nil
		},
	}

	c.Flags().StringVar(&name, "name", "", "customer name")
	c.Flags().StringVar(&guests, "guests", "", `guest count ("4" or "twenty two")`)
	c.Flags().StringVar(&date, "date", "", `booking date ("2025-12-01", "january 5")`)
	c.Flags().StringVar(&timeOf, "time", "", `booking time ("19:00", "7:30 pm", "evening")`)
	c.Flags().StringVar(&location, "location", "", `restaurant location ("lat,lon" or city) for the forecast`)

	_ = c.MarkFlagRequired("name")
	_ = c.MarkFlagRequired("guests")
	_ = c.MarkFlagRequired("date")
	return c
}

func newBookingListCmd() *cobra.Command {
	var limit int
	c := &cobra.Command{
		Use:   "list",
		Short: "List recent bookings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			ctx := context.Background()
			d, err := db.Open(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer d.Close()

			bs, err := bookings.NewRepo(d).ListRecent(ctx, limit)
			if err != nil {
				return err
			}
			for _, b := range bs {
				fmt.Fprintf(os.Stdout, "id=%d confirmation=%s name=%q guests=%d starts=%s seating=%s\n",
					b.ID, b.ConfirmationCode, b.CustomerName, b.Guests, b.StartsAt.Format(time.RFC3339), b.Seating.Category)
			}
			return nil
		},
	}
	c.Flags().IntVar(&limit, "limit", 20, "max bookings to list")
	return c
}
