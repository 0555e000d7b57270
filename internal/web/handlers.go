package web

import (
	"encoding/json"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/example/tablevoice/internal/bookings"
	"github.com/example/tablevoice/internal/intent"
	"github.com/example/tablevoice/internal/weather"
)

// Machine-readable rejection reasons.
const (
	reasonMissingFields = "missing_fields"
	reasonInvalidDate   = "invalid_date"
	reasonInvalidTime   = "invalid_time"
	reasonInvalidGuests = "invalid_guests"
)

type createBookingRequest struct {
	CustomerName string `json:"customerName"`
	// NumberOfGuests arrives as a JSON number or as a spoken phrase
	// ("twenty two").
	NumberOfGuests any    `json:"numberOfGuests"`
	BookingDate    string `json:"bookingDate"`
	BookingTime    string `json:"bookingTime"`
	Location       string `json:"location"`
	// Preview resolves the phrases without persisting anything and
	// tolerates missing fields.
	Preview bool `json:"preview"`
}

type bookingResponse struct {
	ConfirmationCode string           `json:"confirmationCode,omitempty"`
	CustomerName     string           `json:"customerName,omitempty"`
	Guests           int              `json:"guests,omitempty"`
	StartsAt         *time.Time       `json:"startsAt,omitempty"`
	LocalDisplay     string           `json:"localDisplay,omitempty"`
	Location         string           `json:"location,omitempty"`
	Seating          weather.Decision `json:"seating"`
	Preview          bool             `json:"preview,omitempty"`
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body")
		return
	}

	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.BookingDate = strings.TrimSpace(req.BookingDate)
	req.BookingTime = strings.TrimSpace(req.BookingTime)
	req.Location = strings.TrimSpace(req.Location)

	if !req.Preview {
		var missing []string
		if req.CustomerName == "" {
			missing = append(missing, "customerName")
		}
		if guestsAbsent(req.NumberOfGuests) {
			missing = append(missing, "numberOfGuests")
		}
		if req.BookingDate == "" {
			missing = append(missing, "bookingDate")
		}
		if req.BookingTime == "" {
			missing = append(missing, "bookingTime")
		}
		if len(missing) > 0 {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":  reasonMissingFields,
				"fields": missing,
			})
			return
		}
	}

	now := s.now().In(s.Loc)

	resp := bookingResponse{
		CustomerName: req.CustomerName,
		Location:     req.Location,
		Preview:      req.Preview,
	}

	if !guestsAbsent(req.NumberOfGuests) {
		guests := resolveGuests(req.NumberOfGuests)
		if guests < 1 {
			writeError(w, http.StatusBadRequest, reasonInvalidGuests)
			return
		}
		resp.Guests = guests
	}

	var moment intent.Moment
	haveMoment := false
	if req.BookingDate != "" {
		d, err := intent.ResolveDate(req.BookingDate, now)
		if err != nil {
			writeError(w, http.StatusBadRequest, reasonInvalidDate)
			return
		}
		c, err := intent.ResolveTime(req.BookingTime, now)
		if err != nil {
			writeError(w, http.StatusBadRequest, reasonInvalidTime)
			return
		}
		moment = intent.Compose(d, c, s.Loc)
		haveMoment = true

		at := moment.UTC()
		resp.StartsAt = &at
		resp.LocalDisplay = moment.Display()
	}

	resp.Seating = s.decideSeating(r, moment, haveMoment, req.Location)

	if req.Preview {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	b := bookings.Booking{
		CustomerName: req.CustomerName,
		Guests:       resp.Guests,
		StartsAt:     moment.UTC(),
		LocalDisplay: moment.Display(),
		Location:     req.Location,
		Seating:      resp.Seating,
	}
	if err := b.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, reasonMissingFields)
		return
	}

	created, err := s.Bookings.Create(r.Context(), b)
	if err != nil {
		log.Printf("create booking: %v", err)
		writeError(w, http.StatusInternalServerError, "internal")
		return
	}
	resp.ConfirmationCode = created.ConfirmationCode
	writeJSON(w, http.StatusCreated, resp)
}

// decideSeating fetches a forecast when possible and otherwise substitutes
// the named default. Forecast errors never fail the booking.
func (s *Server) decideSeating(r *http.Request, m intent.Moment, haveMoment bool, location string) weather.Decision {
	if s.Weather == nil || !haveMoment || location == "" {
		return weather.DefaultDecision()
	}
	obs, err := s.Weather.Forecast(r.Context(), m.UTC(), location)
	if err != nil || obs == nil {
		if err != nil {
			log.Printf("forecast unavailable: %v", err)
		}
		return weather.DefaultDecision()
	}
	return s.Policy.Decide(*obs)
}

func guestsAbsent(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// resolveGuests accepts a JSON number or a string that is either numeric
// ("4") or a spoken phrase ("twenty two"). 0 means it could not be decoded.
// Fractional counts are not guessed at.
func resolveGuests(v any) int {
	switch g := v.(type) {
	case float64:
		if g != math.Trunc(g) {
			return 0
		}
		return int(g)
	case string:
		s := strings.TrimSpace(g)
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
		return intent.DecodeNumber(s)
	default:
		return 0
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body")
		return
	}
	id, err := s.Auth.Authenticate(r.Context(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid_credentials")
		return
	}
	if err := s.Auth.SetSession(w, r, id); err != nil {
		writeError(w, http.StatusInternalServerError, "internal")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.Auth.ClearSession(w)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, reason string) {
	writeJSON(w, status, map[string]string{"error": reason})
}
