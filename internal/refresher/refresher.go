// Package refresher periodically re-evaluates seating suggestions for
// upcoming bookings as forecasts firm up.
package refresher

import (
	"context"
	"log"
	"time"

	"github.com/example/tablevoice/internal/bookings"
	"github.com/example/tablevoice/internal/weather"
)

type BookingStore interface {
	Upcoming(ctx context.Context, from, until time.Time) ([]bookings.Booking, error)
	UpdateSeating(ctx context.Context, id int64, d weather.Decision) error
}

type ForecastSource interface {
	Forecast(ctx context.Context, at time.Time, location string) (*weather.Observation, error)
}

// Refresher polls for bookings inside the lookahead window and refreshes
// their stored seating decision. A failed forecast leaves the stored
// decision untouched; refreshing never marks a booking failed.
type Refresher struct {
	Bookings  BookingStore
	Weather   ForecastSource
	Policy    weather.Policy
	Interval  time.Duration
	Lookahead time.Duration

	// now is overridable in tests; defaults to time.Now.
	now func() time.Time
}

func (r *Refresher) Run(ctx context.Context) error {
	t := time.NewTicker(r.Interval)
	defer t.Stop()

	// kick immediately
	r.Tick(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			r.Tick(ctx)
		}
	}
}

func (r *Refresher) Tick(ctx context.Context) {
	now := time.Now()
	if r.now != nil {
		now = r.now()
	}

	bs, err := r.Bookings.Upcoming(ctx, now, now.Add(r.Lookahead))
	if err != nil {
		log.Printf("refresher: upcoming query failed: %v", err)
		return
	}

	for _, b := range bs {
		if b.Location == "" {
			continue
		}
		obs, err := r.Weather.Forecast(ctx, b.StartsAt, b.Location)
		if err != nil || obs == nil {
			if err != nil {
				log.Printf("refresher: forecast for booking %d failed: %v", b.ID, err)
			}
			continue
		}
		d := r.Policy.Decide(*obs)
		if d == b.Seating {
			continue
		}
		if err := r.Bookings.UpdateSeating(ctx, b.ID, d); err != nil {
			log.Printf("refresher: update booking %d failed: %v", b.ID, err)
		}
	}
}
