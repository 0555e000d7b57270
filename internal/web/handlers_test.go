package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/example/tablevoice/internal/bookings"
	"github.com/example/tablevoice/internal/db"
	"github.com/example/tablevoice/internal/weather"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	created []bookings.Booking
	listErr error
}

func (f *fakeStore) Create(_ context.Context, b bookings.Booking) (bookings.Booking, error) {
	b.ID = int64(len(f.created) + 1)
	b.ConfirmationCode = "test-confirmation"
	f.created = append(f.created, b)
	return b, nil
}

func (f *fakeStore) ListRecent(context.Context, int) ([]bookings.Booking, error) {
	return f.created, f.listErr
}

func (f *fakeStore) GetByConfirmation(_ context.Context, code string) (bookings.Booking, error) {
	for _, b := range f.created {
		if b.ConfirmationCode == code {
			return b, nil
		}
	}
	return bookings.Booking{}, db.ErrNotFound
}

type fakeForecast struct {
	obs *weather.Observation
	err error
}

func (f *fakeForecast) Forecast(context.Context, time.Time, string) (*weather.Observation, error) {
	return f.obs, f.err
}

func newTestServer(store *fakeStore, fc ForecastSource) *Server {
	return &Server{
		Bookings: store,
		Weather:  fc,
		Policy:   weather.DefaultPolicy,
		Loc:      time.UTC,
		Now: func() time.Time {
			return time.Date(2025, time.August, 20, 10, 0, 0, 0, time.UTC)
		},
	}
}

func postBooking(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Routes().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestCreateBooking(t *testing.T) {
	store := &fakeStore{}
	s := newTestServer(store, &fakeForecast{obs: &weather.Observation{Condition: "light rain", PrecipProb: 0.6}})

	w := postBooking(t, s, `{
		"customerName": "Dana",
		"numberOfGuests": "twenty two",
		"bookingDate": "January 5",
		"bookingTime": "evening",
		"location": "Lisbon"
	}`)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	out := decode(t, w)
	assert.Equal(t, "test-confirmation", out["confirmationCode"])
	assert.Equal(t, float64(22), out["guests"])
	// yearless January 5 spoken in August 2025 means next January
	assert.Equal(t, "2026-01-05T18:00:00Z", out["startsAt"])

	seating := out["seating"].(map[string]any)
	assert.Equal(t, weather.CategoryBad, seating["category"])
	assert.Equal(t, false, seating["defaulted"])

	require.Len(t, store.created, 1)
	assert.Equal(t, 22, store.created[0].Guests)
	assert.True(t, store.created[0].StartsAt.Equal(time.Date(2026, time.January, 5, 18, 0, 0, 0, time.UTC)))
}

func TestCreateBookingNumericGuests(t *testing.T) {
	store := &fakeStore{}
	s := newTestServer(store, nil)

	w := postBooking(t, s, `{
		"customerName": "Dana",
		"numberOfGuests": 4,
		"bookingDate": "2025-12-01",
		"bookingTime": "19:00"
	}`)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Len(t, store.created, 1)
	assert.Equal(t, 4, store.created[0].Guests)
	// no forecast source: the default decision is substituted and marked
	assert.True(t, store.created[0].Seating.Defaulted)
	assert.Equal(t, weather.CategoryGood, store.created[0].Seating.Category)
}

func TestCreateBookingMissingFields(t *testing.T) {
	store := &fakeStore{}
	s := newTestServer(store, nil)

	w := postBooking(t, s, `{"customerName": "Dana"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	out := decode(t, w)
	assert.Equal(t, "missing_fields", out["error"])
	assert.ElementsMatch(t, []any{"numberOfGuests", "bookingDate", "bookingTime"}, out["fields"])
	assert.Empty(t, store.created, "rejected requests must not persist anything")
}

func TestCreateBookingRejections(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		reason string
	}{
		{"unparseable date", `{"customerName":"D","numberOfGuests":2,"bookingDate":"next to the window","bookingTime":"19:00"}`, "invalid_date"},
		{"unparseable time", `{"customerName":"D","numberOfGuests":2,"bookingDate":"2025-12-01","bookingTime":"abc123def"}`, "invalid_time"},
		{"undecodable guests", `{"customerName":"D","numberOfGuests":"lots of us","bookingDate":"2025-12-01","bookingTime":"19:00"}`, "invalid_guests"},
		{"fractional guests", `{"customerName":"D","numberOfGuests":2.5,"bookingDate":"2025-12-01","bookingTime":"19:00"}`, "invalid_guests"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			w := postBooking(t, newTestServer(store, nil), tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.reason, decode(t, w)["error"])
			assert.Empty(t, store.created)
		})
	}
}

func TestPreviewDoesNotPersist(t *testing.T) {
	store := &fakeStore{}
	s := newTestServer(store, nil)

	w := postBooking(t, s, `{"preview": true, "bookingDate": "December 1", "bookingTime": "7:30 pm"}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out := decode(t, w)
	assert.Equal(t, "2025-12-01T19:30:00Z", out["startsAt"])
	assert.Empty(t, store.created)
}

func TestCreateBookingForecastFailureDegrades(t *testing.T) {
	store := &fakeStore{}
	s := newTestServer(store, &fakeForecast{err: errors.New("provider down")})

	w := postBooking(t, s, `{
		"customerName": "Dana",
		"numberOfGuests": 2,
		"bookingDate": "2025-12-01",
		"bookingTime": "19:00",
		"location": "Lisbon"
	}`)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Len(t, store.created, 1)
	assert.True(t, store.created[0].Seating.Defaulted)
}

func TestGetBookingByConfirmation(t *testing.T) {
	store := &fakeStore{}
	s := newTestServer(store, nil)
	postBooking(t, s, `{"customerName":"Dana","numberOfGuests":2,"bookingDate":"2025-12-01","bookingTime":"19:00"}`)

	req := httptest.NewRequest(http.MethodGet, "/api/bookings/test-confirmation", nil)
	w := httptest.NewRecorder()
	s.Routes().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Dana", decode(t, w)["customerName"])

	req = httptest.NewRequest(http.MethodGet, "/api/bookings/nope", nil)
	w = httptest.NewRecorder()
	s.Routes().ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListBookingsRequiresSession(t *testing.T) {
	s := newTestServer(&fakeStore{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	w := httptest.NewRecorder()
	s.Routes().ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
