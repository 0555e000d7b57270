package intent

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Clock is a resolved time of day in 24-hour form.
type Clock struct {
	Hour   int
	Minute int
}

// DayPartDefaults maps a day-part hint word to the clock time it implies
// when the phrase carries no digits. The values are tuning choices, not
// correctness requirements.
var DayPartDefaults = map[string]Clock{
	"morning":   {Hour: 9},
	"afternoon": {Hour: 14},
	"evening":   {Hour: 18},
	"night":     {Hour: 18},
}

// FallbackClock applies when a phrase has no digits and no recognized
// day-part hint.
var FallbackClock = Clock{Hour: 18}

var dayPartRe = regexp.MustCompile(`(?i)\b(morning|afternoon|evening|night)\b`)

// timeLayouts are tried in order against the phrase once the day-part hint
// and period punctuation have been stripped.
var timeLayouts = []string{
	"3:04 PM",
	"3:04PM",
	"15:04",
	"3 PM",
	"3PM",
}

// ResolveTime converts a time phrase ("7:30 p.m.", "19:00", "7 pm",
// "evening") into a clock time. A day-part word supplies the default
// when no digits are present; otherwise the structured layouts are tried in
// order, then lenient parsing as a last resort.
func ResolveTime(text string, ref time.Time) (Clock, error) {
	s, hint := splitDayPart(text)
	// strip period punctuation ("p.m.") and uppercase for the meridiem
	// layouts, which match case-sensitively
	s = strings.ToUpper(collapseSpaces(strings.ReplaceAll(s, ".", "")))

	if !strings.ContainsAny(s, "0123456789") {
		if c, ok := DayPartDefaults[hint]; ok {
			return c, nil
		}
		return FallbackClock, nil
	}

	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
		}
	}

	if t, err := dateparse.ParseIn(s, ref.Location()); err == nil {
		return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
	}
	return Clock{}, ErrInvalidTime
}

// splitDayPart removes the first whole-word day-part hint from s and
// returns the remainder plus the lowercased hint ("" when absent).
func splitDayPart(s string) (rest, hint string) {
	match := dayPartRe.FindString(s)
	if match == "" {
		return s, ""
	}
	return strings.Replace(s, match, " ", 1), strings.ToLower(match)
}
