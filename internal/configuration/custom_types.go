package configuration

import (
	"fmt"
	"github.com/markusressel/ecthermal/internal/util"
	"github.com/mitchellh/mapstructure"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Temperature is an absolute temperature in Kelvin, 0 means "not set".
//
// In configuration files it can be written as "85C", "358K" or as a
// bare number, which is interpreted as Celsius. A bare 0 stays 0.
type Temperature int

func (t Temperature) Kelvin() int {
	return int(t)
}

func (t Temperature) Celsius() int {
	return util.KelvinToCelsius(int(t))
}

func (t Temperature) IsSet() bool {
	return t != 0
}

func (t Temperature) String() string {
	if !t.IsSet() {
		return "-"
	}
	return fmt.Sprintf("%dK (%d°C)", t.Kelvin(), t.Celsius())
}

func ParseTemperature(text string) (Temperature, error) {
	text = strings.TrimSpace(text)
	if len(text) <= 0 {
		return 0, nil
	}

	unit := text[len(text)-1]
	switch unit {
	case 'C', 'c':
		value, err := strconv.ParseFloat(strings.TrimSpace(text[:len(text)-1]), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid temperature '%s': %w", text, err)
		}
		return celsiusToTemperature(value), nil
	case 'K', 'k':
		value, err := strconv.ParseFloat(strings.TrimSpace(text[:len(text)-1]), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid temperature '%s': %w", text, err)
		}
		return Temperature(int(math.Round(value))), nil
	default:
		value, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid temperature '%s': %w", text, err)
		}
		if value == 0 {
			return 0, nil
		}
		return celsiusToTemperature(value), nil
	}
}

func celsiusToTemperature(value float64) Temperature {
	return Temperature(util.CelsiusToKelvin(int(math.Round(value))))
}

// TemperatureHookFunc returns a mapstructure decode hook that converts
// strings and bare numbers into a Temperature.
func TemperatureHookFunc() mapstructure.DecodeHookFuncType {
	temperatureType := reflect.TypeOf(Temperature(0))

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != temperatureType {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			return ParseTemperature(v)
		case int:
			if v == 0 {
				return Temperature(0), nil
			}
			return Temperature(util.CelsiusToKelvin(v)), nil
		case int64:
			if v == 0 {
				return Temperature(0), nil
			}
			return Temperature(util.CelsiusToKelvin(int(v))), nil
		case float64:
			if v == 0 {
				return Temperature(0), nil
			}
			return celsiusToTemperature(v), nil
		case Temperature:
			return v, nil
		}

		return data, nil
	}
}
