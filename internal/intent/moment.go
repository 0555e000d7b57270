package intent

import "time"

// DisplayLayout is the local-time form shown back to the guest.
const DisplayLayout = "Monday, January 2, 2006 at 3:04 PM"

// Moment is a booking instant pinned to the reference timezone. The
// absolute and display forms both derive from the same composed value, so
// converting back to the reference zone reproduces the fields it was built
// from.
type Moment struct {
	Local time.Time
}

// Compose builds the wall-clock instant for a resolved date and time in
// the reference timezone. Dates that fall on a DST transition take
// whatever the zone's conversion rules yield.
func Compose(d Date, c Clock, loc *time.Location) Moment {
	return Moment{Local: time.Date(d.Year, d.Month, d.Day, c.Hour, c.Minute, 0, 0, loc)}
}

// UTC returns the absolute instant for storage and comparison.
func (m Moment) UTC() time.Time { return m.Local.UTC() }

// Display returns the local-timezone string shown to the guest.
func (m Moment) Display() string { return m.Local.Format(DisplayLayout) }
