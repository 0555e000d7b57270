package web

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/example/tablevoice/internal/auth"
	"github.com/example/tablevoice/internal/bookings"
	"github.com/example/tablevoice/internal/db"
	"github.com/example/tablevoice/internal/weather"
)

//go:embed static
var staticFiles embed.FS

type BookingStore interface {
	Create(ctx context.Context, b bookings.Booking) (bookings.Booking, error)
	ListRecent(ctx context.Context, limit int) ([]bookings.Booking, error)
	GetByConfirmation(ctx context.Context, code string) (bookings.Booking, error)
}

// ForecastSource is satisfied by *weather.Client. A nil source disables
// forecast lookups; bookings then carry the default seating decision.
type ForecastSource interface {
	Forecast(ctx context.Context, at time.Time, location string) (*weather.Observation, error)
}

type Server struct {
	Auth     *auth.Store
	Bookings BookingStore
	Weather  ForecastSource
	Policy   weather.Policy
	Loc      *time.Location

	// Now is the reference clock for year inference; defaults to time.Now.
	Now func() time.Time
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	mux.Handle("GET /", http.FileServer(http.FS(static)))

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})

	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("POST /api/logout", s.handleLogout)
	mux.HandleFunc("POST /api/bookings", s.handleCreateBooking)
	mux.HandleFunc("GET /api/bookings/{code}", s.handleGetBooking)
	mux.Handle("GET /api/bookings", s.Auth.RequireAuth(http.HandlerFunc(s.handleListBookings)))

	return logging(mux)
}

func logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func (s *Server) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Server) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	b, err := s.Bookings.GetByConfirmation(r.Context(), r.PathValue("code"))
	if err != nil {
		if db.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		log.Printf("get booking: %v", err)
		writeError(w, http.StatusInternalServerError, "internal")
		return
	}
	at := b.StartsAt
	writeJSON(w, http.StatusOK, bookingResponse{
		ConfirmationCode: b.ConfirmationCode,
		CustomerName:     b.CustomerName,
		Guests:           b.Guests,
		StartsAt:         &at,
		LocalDisplay:     b.LocalDisplay,
		Location:         b.Location,
		Seating:          b.Seating,
	})
}

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = n
		}
	}
	bs, err := s.Bookings.ListRecent(r.Context(), limit)
	if err != nil {
		log.Printf("list bookings: %v", err)
		writeError(w, http.StatusInternalServerError, "internal")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookings": bs})
}

func Start(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	fmt.Printf("listening on %s\n", addr)
	return srv.ListenAndServe()
}
