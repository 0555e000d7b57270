package intent

import (
	"strconv"
	"strings"
)

var numberWords = map[string]int{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9,
	"ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
	"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19,
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
}

// DecodeNumber converts a spoken number phrase ("twenty two", "two hundred
// and five") or a mixed numeral/word string into an integer. Decoding is
// best-effort: unrecognized tokens are skipped, and 0 means nothing usable
// was found. Callers that need a positive count must treat 0 as a failure.
func DecodeNumber(text string) int {
	total, current := 0, 0

	fields := strings.Fields(strings.ToLower(strings.ReplaceAll(text, "-", " ")))
	for _, tok := range fields {
		if tok == "and" {
			continue
		}
		if n, err := strconv.Atoi(tok); err == nil {
			current += n
			continue
		}
		if n, ok := numberWords[tok]; ok {
			current += n
			continue
		}
		switch tok {
		case "hundred":
			current *= 100
		case "thousand":
			current *= 1000
			total += current
			current = 0
		}
		// anything else is noise from the transcriber
	}

	return total + current
}
