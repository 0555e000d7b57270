package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeNumber(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"single word", "four", 4},
		{"tens", "twenty", 20},
		{"tens plus unit", "twenty two", 22},
		{"hyphenated", "twenty-two", 22},
		{"hundred", "two hundred", 200},
		{"hundred with and", "one hundred and five", 105},
		{"thousand", "one thousand two hundred", 1200},
		{"teens", "fourteen", 14},
		{"literal digits", "12", 12},
		{"mixed digits and words", "2 hundred", 200},
		{"uppercase", "TWENTY Two", 22},
		{"noise skipped", "about seven people please", 7},
		{"empty", "", 0},
		{"fully unrecognized", "a table for us", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeNumber(tt.text))
		})
	}
}
