package bookings

import (
	"context"
	"fmt"
	"time"

	"github.com/example/tablevoice/internal/db"
	"github.com/example/tablevoice/internal/weather"
	"github.com/google/uuid"
)

type Booking struct {
	ID               int64
	ConfirmationCode string
	CustomerName     string
	Guests           int
	StartsAt         time.Time // absolute instant, UTC
	LocalDisplay     string
	Location         string

	Seating weather.Decision

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (b Booking) Validate() error {
	if b.CustomerName == "" {
		return fmt.Errorf("customer_name required")
	}
	if b.Guests < 1 {
		return fmt.Errorf("guests must be >= 1")
	}
	if b.StartsAt.IsZero() {
		return fmt.Errorf("starts_at required")
	}
	return nil
}

type Repo struct{ db *db.DB }

func NewRepo(d *db.DB) *Repo { return &Repo{db: d} }

const bookingColumns = `id,confirmation_code,customer_name,guests,starts_at,local_display,location,seating_category,seating_recommendation,suggest_outdoor,seating_defaulted,created_at,updated_at`

func (r *Repo) Create(ctx context.Context, b Booking) (Booking, error) {
	b.ConfirmationCode = uuid.NewString()
	err := r.db.QueryRow(ctx, `
INSERT INTO bookings(confirmation_code,customer_name,guests,starts_at,local_display,location,seating_category,seating_recommendation,suggest_outdoor,seating_defaulted)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
RETURNING id, created_at, updated_at`,
		b.ConfirmationCode, b.CustomerName, b.Guests, b.StartsAt, b.LocalDisplay, b.Location,
		b.Seating.Category, b.Seating.Recommendation, b.Seating.SuggestOutdoor, b.Seating.Defaulted,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return Booking{}, db.WrapNotFound(err)
	}
	return b, nil
}

func (r *Repo) ListRecent(ctx context.Context, limit int) ([]Booking, error) {
	rows, err := r.db.Query(ctx, `
SELECT `+bookingColumns+`
FROM bookings
ORDER BY created_at DESC
LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (r *Repo) GetByConfirmation(ctx context.Context, code string) (Booking, error) {
	var b Booking
	err := r.db.QueryRow(ctx, `
SELECT `+bookingColumns+`
FROM bookings
WHERE confirmation_code=$1`, code).
		Scan(&b.ID, &b.ConfirmationCode, &b.CustomerName, &b.Guests, &b.StartsAt, &b.LocalDisplay, &b.Location,
			&b.Seating.Category, &b.Seating.Recommendation, &b.Seating.SuggestOutdoor, &b.Seating.Defaulted,
			&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return Booking{}, db.WrapNotFound(err)
	}
	return b, nil
}

// Upcoming returns bookings starting between from and until, earliest
// first. Used by the suggestion refresher.
func (r *Repo) Upcoming(ctx context.Context, from, until time.Time) ([]Booking, error) {
	rows, err := r.db.Query(ctx, `
SELECT `+bookingColumns+`
FROM bookings
WHERE starts_at >= $1 AND starts_at <= $2
ORDER BY starts_at ASC`, from, until)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (r *Repo) UpdateSeating(ctx context.Context, id int64, d weather.Decision) error {
	return r.db.Exec(ctx, `
UPDATE bookings
SET seating_category=$2, seating_recommendation=$3, suggest_outdoor=$4, seating_defaulted=$5, updated_at=now()
WHERE id=$1`,
		id, d.Category, d.Recommendation, d.SuggestOutdoor, d.Defaulted)
}

func scanBookings(rows db.Rows) ([]Booking, error) {
	var out []Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(&b.ID, &b.ConfirmationCode, &b.CustomerName, &b.Guests, &b.StartsAt, &b.LocalDisplay, &b.Location,
			&b.Seating.Category, &b.Seating.Recommendation, &b.Seating.SuggestOutdoor, &b.Seating.Defaulted,
			&b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
