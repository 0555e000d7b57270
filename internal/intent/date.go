// Package intent normalizes loosely-formatted spoken or typed booking
// input (guest counts, dates, times) into unambiguous values anchored to a
// reference timezone. All resolvers are pure: the reference instant is
// passed in, never read from the ambient clock.
package intent

import (
	"errors"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var (
	ErrInvalidDate = errors.New("invalid date")
	ErrInvalidTime = errors.New("invalid time")
)

// Date is a resolved calendar date. Year may have been inferred from the
// reference instant when the phrase carried none.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// dateLayouts are tried in order before falling back to lenient parsing.
// Yearless layouts parse to year 0, which the inference step replaces.
var dateLayouts = []string{
	"2006-01-02",
	"January 2 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"January 2",
	"Jan 2",
	"2 January",
	"2 Jan",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"1-2-2006",
	"1/2",
}

// ResolveDate converts a date phrase ("2025-08-20", "january 5", "5 Jan",
// "9/15") into a calendar date. A missing or implausible year (before 1900,
// or more than ten years before ref) is replaced with ref's year; if the
// result then falls before the start of ref's day, the year advances by one
// so "January 5" spoken in December means next January.
func ResolveDate(text string, ref time.Time) (Date, error) {
	s := collapseSpaces(text)
	if s == "" {
		return Date{}, ErrInvalidDate
	}

	var t time.Time
	matched := false
	for _, layout := range dateLayouts {
		if p, err := time.Parse(layout, s); err == nil {
			t = p
			matched = true
			break
		}
	}
	if !matched {
		p, err := dateparse.ParseAny(s)
		if err != nil {
			return Date{}, ErrInvalidDate
		}
		t = p
	}

	year := t.Year()
	if year < 1900 || year < ref.Year()-10 {
		year = ref.Year()
	}

	d := Date{Year: year, Month: t.Month(), Day: t.Day()}
	if d.before(startOfDay(ref)) {
		d.Year++
	}
	// Year substitution can invalidate the day: "February 29" parses under
	// the yearless layouts (year 0 is a leap year) but the inferred year
	// may not be one.
	if !d.valid() {
		return Date{}, ErrInvalidDate
	}
	return d, nil
}

func (d Date) valid() bool {
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
	return t.Month() == d.Month && t.Day() == d.Day
}

func (d Date) before(t time.Time) bool {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, t.Location()).Before(t)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
