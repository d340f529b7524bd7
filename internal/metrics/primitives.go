// Package metrics turns a stat series and a betting line into bounded
// scores in [0, 1].
package metrics

import "math"

// Score is an optional metric value, in the manner of sql.NullFloat64
type Score struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// Some wraps a valid score
func Some(v float64) Score {
	return Score{Value: v, Valid: true}
}

// AvgVsLine maps avg/line onto [0, 1]: half the line or less is 0, the line
// itself 0.5, double the line or more 1, linear in between.
func AvgVsLine(avg, line float64) float64 {
	ratio := safeDiv(avg, line)
	ratio = math.Max(0.5, math.Min(2, ratio))
	if ratio <= 1 {
		return 0.5 * (ratio - 0.5) / 0.5
	}
	return 0.5 + 0.5*(ratio-1)
}

// CoverRate is the share of values strictly above line, 0 for no values
func CoverRate(values []float64, line float64) float64 {
	if len(values) == 0 {
		return 0
	}
	over := 0
	for _, v := range values {
		if v > line {
			over++
		}
	}
	return float64(over) / float64(len(values))
}

// Average is the arithmetic mean, 0 for no values
func Average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Tail returns the trailing n values; n beyond the series returns all of it
func Tail(values []float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if len(values) > n {
		return values[len(values)-n:]
	}
	return values
}

// Round rounds half away from zero to the given decimals
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
