package predictor

import (
	"regexp"
	"strconv"
)

// Matches an integer or decimal, the first of which is taken as the age.
// Deliberately the same first-match policy the model was validated against;
// multiple numeric mentions are not averaged or ranked.
var agePattern = regexp.MustCompile(`\d+\.?\d*`)

// ParseAge extracts the first numeric token from raw model output. The second
// return value is false when no number is present, which is an expected
// outcome rather than an error since model output is not format-guaranteed.
func ParseAge(raw string) (float64, bool) {
	match := agePattern.FindString(raw)
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
