package util

import "math"

// ZeroCelsiusInKelvin is the integer offset used for all Celsius <-> Kelvin conversions.
const ZeroCelsiusInKelvin = 273

func CelsiusToKelvin(celsius int) int {
	return celsius + ZeroCelsiusInKelvin
}

func KelvinToCelsius(kelvin int) int {
	return kelvin - ZeroCelsiusInKelvin
}

// MilliCelsiusToKelvin converts a hwmon style milli-degree reading to whole Kelvin
func MilliCelsiusToKelvin(milliCelsius float64) int {
	return CelsiusToKelvin(int(math.Round(milliCelsius / 1000)))
}
