package refresher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/tablevoice/internal/bookings"
	"github.com/example/tablevoice/internal/weather"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	upcoming []bookings.Booking
	gotFrom  time.Time
	gotUntil time.Time
	updated  map[int64]weather.Decision
}

func (f *fakeStore) Upcoming(_ context.Context, from, until time.Time) ([]bookings.Booking, error) {
	f.gotFrom, f.gotUntil = from, until
	return f.upcoming, nil
}

func (f *fakeStore) UpdateSeating(_ context.Context, id int64, d weather.Decision) error {
	if f.updated == nil {
		f.updated = map[int64]weather.Decision{}
	}
	f.updated[id] = d
	return nil
}

type fakeForecast struct {
	obs map[string]*weather.Observation
	err error
}

func (f *fakeForecast) Forecast(_ context.Context, _ time.Time, location string) (*weather.Observation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.obs[location], nil
}

func TestTickUpdatesChangedDecisions(t *testing.T) {
	now := time.Date(2025, time.August, 20, 12, 0, 0, 0, time.UTC)

	store := &fakeStore{upcoming: []bookings.Booking{
		{ID: 1, Location: "Lisbon", StartsAt: now.Add(6 * time.Hour),
			Seating: weather.DefaultDecision()},
		{ID: 2, Location: "Lisbon", StartsAt: now.Add(8 * time.Hour),
			Seating: weather.Decision{Category: weather.CategoryBad}},
		{ID: 3, Location: "", StartsAt: now.Add(9 * time.Hour)},
	}}
	fc := &fakeForecast{obs: map[string]*weather.Observation{
		"Lisbon": {Condition: "light rain", PrecipProb: 0.6},
	}}

	r := &Refresher{
		Bookings:  store,
		Weather:   fc,
		Policy:    weather.DefaultPolicy,
		Interval:  time.Minute,
		Lookahead: 48 * time.Hour,
		now:       func() time.Time { return now },
	}
	r.Tick(context.Background())

	assert.Equal(t, now, store.gotFrom)
	assert.Equal(t, now.Add(48*time.Hour), store.gotUntil)

	// booking 1 flips from the default to bad; booking 3 has no location
	require.Contains(t, store.updated, int64(1))
	assert.Equal(t, weather.CategoryBad, store.updated[1].Category)
	assert.False(t, store.updated[1].Defaulted)
	assert.NotContains(t, store.updated, int64(3))
}

func TestTickKeepsStoredDecisionOnForecastFailure(t *testing.T) {
	store := &fakeStore{upcoming: []bookings.Booking{
		{ID: 1, Location: "Lisbon", Seating: weather.DefaultDecision()},
	}}
	r := &Refresher{
		Bookings:  store,
		Weather:   &fakeForecast{err: errors.New("boom")},
		Policy:    weather.DefaultPolicy,
		Interval:  time.Minute,
		Lookahead: time.Hour,
	}
	r.Tick(context.Background())
	assert.Empty(t, store.updated)
}
