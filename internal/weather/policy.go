package weather

import "strings"

// Observation is the slice of a forecast the seating policy cares about.
// PrecipProb is a probability in [0,1].
type Observation struct {
	Condition  string  `json:"condition"`
	PrecipProb float64 `json:"precipitation_probability"`
}

const (
	CategoryGood     = "good"
	CategoryModerate = "moderate"
	CategoryBad      = "bad"
)

// Decision is the seating recommendation derived from an observation.
// Defaulted marks the substituted fallback used when no observation was
// available, so callers can tell a real signal from the default.
type Decision struct {
	Category       string `json:"category"`
	Recommendation string `json:"recommendation"`
	SuggestOutdoor bool   `json:"suggest_outdoor"`
	Defaulted      bool   `json:"defaulted"`
}

// Policy maps observations to seating decisions. The thresholds are tuning
// values with no deeper rationale; adjust them rather than the rules.
type Policy struct {
	// GoodBelow: precipitation probability under this counts as favorable.
	GoodBelow float64
	// BadAtLeast: probability at or above this counts as unfavorable.
	BadAtLeast float64
}

var DefaultPolicy = Policy{GoodBelow: 0.2, BadAtLeast: 0.4}

var (
	favorableWords   = []string{"clear", "sun"}
	unfavorableWords = []string{"rain"}
)

// Decide is a pure function of the observation. First match wins: a
// favorable condition or low precipitation means outdoor, an unfavorable
// condition or high precipitation means indoor, anything else is moderate
// and stays indoors.
func (p Policy) Decide(o Observation) Decision {
	cond := strings.ToLower(o.Condition)
	switch {
	case containsAny(cond, favorableWords) || o.PrecipProb < p.GoodBelow:
		return Decision{
			Category:       CategoryGood,
			Recommendation: "Great weather expected - we suggest a table on the terrace.",
			SuggestOutdoor: true,
		}
	case containsAny(cond, unfavorableWords) || o.PrecipProb >= p.BadAtLeast:
		return Decision{
			Category:       CategoryBad,
			Recommendation: "Rain is likely - an indoor table will be more comfortable.",
			SuggestOutdoor: false,
		}
	default:
		return Decision{
			Category:       CategoryModerate,
			Recommendation: "The forecast is mixed - we recommend an indoor table.",
			SuggestOutdoor: false,
		}
	}
}

// DefaultDecision is substituted when no observation is available (provider
// unreachable, no booking date, or the feature is disabled). Favoring
// outdoor by default is a product decision carried over from the demo.
func DefaultDecision() Decision {
	return Decision{
		Category:       CategoryGood,
		Recommendation: "We suggest a table on the terrace.",
		SuggestOutdoor: true,
		Defaulted:      true,
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
