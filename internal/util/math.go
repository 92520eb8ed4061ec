package util

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
	"math"
)

const (
	InterpolationTypeLinear = "linear"
)

// Coerce returns value limited to the inclusive range [min, max]
func Coerce[T constraints.Integer | constraints.Float](value T, min T, max T) T {
	if value > max {
		return max
	}
	if value < min {
		return min
	}
	return value
}

// Avg calculates the average of all values in the given array
func Avg(values []float64) float64 {
	if len(values) <= 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Ratio calculates the ration that target has in comparison to rangeMin and rangeMax
// Make sure that:
// rangeMin <= target <= rangeMax
// rangeMax - rangeMin != 0
func Ratio(target float64, rangeMin float64, rangeMax float64) float64 {
	return (target - rangeMin) / (rangeMax - rangeMin)
}

// CalculateInterpolatedCurveValue creates an interpolated function from the given map of x-values -> y-values
// as specified by the interpolationType and returns the y-value for the given input
func CalculateInterpolatedCurveValue(steps map[int]float64, interpolationType string, input float64) float64 {
	xValues := SortedKeys(steps)
	if len(xValues) <= 0 {
		return 0
	}

	if input <= float64(xValues[0]) {
		// input is below the smallest given step, so
		// we fall back to the value of the smallest step
		return steps[xValues[0]]
	}

	for i := 0; i < len(xValues)-1; i++ {
		currentX := xValues[i]
		nextX := xValues[i+1]

		if input >= float64(nextX) {
			continue
		}

		currentY := steps[currentX]
		nextY := steps[nextX]
		ratio := Ratio(input, float64(currentX), float64(nextX))
		return currentY + ratio*(nextY-currentY)
	}

	// input is above (or equal to) the largest given
	// step, so we fall back to the value of the largest step
	return steps[xValues[len(xValues)-1]]
}

// InterpolateInt is CalculateInterpolatedCurveValue for integer steps, rounding the result
func InterpolateInt(steps map[int]int, input int) int {
	floatSteps := make(map[int]float64, len(steps))
	for k, v := range steps {
		floatSteps[k] = float64(v)
	}
	return int(math.Round(CalculateInterpolatedCurveValue(floatSteps, InterpolationTypeLinear, float64(input))))
}

// MaxInt returns the biggest value of the given values, or fallback if there are none
func MaxInt(values []int, fallback int) int {
	if len(values) <= 0 {
		return fallback
	}
	return slices.Max(values)
}
