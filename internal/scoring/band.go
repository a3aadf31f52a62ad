// Package scoring holds the pure score-normalization rules of the product:
// the IELTS band rounding law, the word-count and overtime penalties, and
// the correction highlighter.
package scoring

import "math"

// RoundBand maps a raw score to the nearest reportable IELTS band, a
// multiple of 0.5. The mapping is not round-to-nearest-half: the fractional
// part is first rounded to two decimals, then the exact-match cases below
// are checked before the general quartile ranges. The .20/.30/.70/.80 cases
// are precision-compatibility overrides that behave differently from their
// neighbours (.20 rounds down while .27 rounds up), so the order of the
// checks is load-bearing.
func RoundBand(score float64) float64 {
	whole := math.Trunc(score)
	frac := math.Round((score-whole)*100) / 100

	switch {
	case frac == 0.0 || frac == 0.5:
		return whole + frac
	case frac == 0.25:
		return whole + 0.5
	case frac == 0.75:
		return whole + 1.0
	case frac == 0.2 || frac == 0.3:
		return whole
	case frac == 0.7 || frac == 0.8:
		return whole + 0.5
	case frac < 0.25:
		return whole
	case frac < 0.5:
		return whole + 0.5
	case frac < 0.75:
		return whole + 0.5
	default:
		return whole + 1.0
	}
}

// RoundBandPtr rounds an optional score, treating a missing value as zero.
func RoundBandPtr(score *float64) float64 {
	if score == nil {
		return 0.0
	}
	return RoundBand(*score)
}

// OverallBand returns the rounded arithmetic mean of the given band scores,
// or zero when none are given.
func OverallBand(scores []float64) float64 {
	if len(scores) == 0 {
		return 0.0
	}

	var sum float64
	for _, score := range scores {
		sum += score
	}

	return RoundBand(sum / float64(len(scores)))
}
