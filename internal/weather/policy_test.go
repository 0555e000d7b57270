package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name     string
		obs      Observation
		category string
		outdoor  bool
	}{
		{"clear sky", Observation{Condition: "clear sky", PrecipProb: 0.1}, CategoryGood, true},
		{"sunny overrides precip", Observation{Condition: "sunny intervals", PrecipProb: 0.9}, CategoryGood, true},
		{"low precip overrides clouds", Observation{Condition: "overcast clouds", PrecipProb: 0.1}, CategoryGood, true},
		{"light rain", Observation{Condition: "light rain", PrecipProb: 0.5}, CategoryBad, false},
		{"rain overrides low-ish precip", Observation{Condition: "light rain", PrecipProb: 0.3}, CategoryBad, false},
		{"high precip alone", Observation{Condition: "clouds", PrecipProb: 0.4}, CategoryBad, false},
		{"moderate", Observation{Condition: "clouds", PrecipProb: 0.25}, CategoryModerate, false},
		{"case insensitive", Observation{Condition: "CLEAR SKY", PrecipProb: 0.9}, CategoryGood, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DefaultPolicy.Decide(tt.obs)
			assert.Equal(t, tt.category, got.Category)
			assert.Equal(t, tt.outdoor, got.SuggestOutdoor)
			assert.False(t, got.Defaulted)
			assert.NotEmpty(t, got.Recommendation)
		})
	}
}

func TestDefaultDecision(t *testing.T) {
	d := DefaultDecision()
	assert.Equal(t, CategoryGood, d.Category)
	assert.True(t, d.SuggestOutdoor)
	assert.True(t, d.Defaulted)
}
