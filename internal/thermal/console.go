package thermal

import (
	"fmt"
	"github.com/markusressel/ecthermal/internal/configuration"
	"github.com/mgutz/ansi"
	"github.com/tomlazar/table"
	"io"
	"strconv"
	"strings"
)

// ConsoleUnchanged leaves a value untouched in ApplyConsoleSet
const ConsoleUnchanged = -1

// ConsoleSetValues holds the arguments of a console set command in the
// order warn, high, halt, fan_off, fan_max. Negative values leave the
// respective field unchanged.
type ConsoleSetValues [5]int

func NewConsoleSetValues() ConsoleSetValues {
	return ConsoleSetValues{ConsoleUnchanged, ConsoleUnchanged, ConsoleUnchanged, ConsoleUnchanged, ConsoleUnchanged}
}

// ParseConsoleSetArgs parses up to five console values. Bare numbers are
// Kelvin, a C or K suffix selects the unit explicitly and "-1" or "-"
// leaves a value unchanged. Missing trailing values are unchanged too.
func ParseConsoleSetArgs(args []string) (ConsoleSetValues, error) {
	values := NewConsoleSetValues()
	if len(args) > len(values) {
		return values, fmt.Errorf("%w: expected at most %d values, got %d", ErrInvalidParam, len(values), len(args))
	}
	for i, arg := range args {
		arg = strings.TrimSpace(arg)
		if arg == "-" || arg == strconv.Itoa(ConsoleUnchanged) {
			continue
		}
		if kelvin, err := strconv.Atoi(arg); err == nil {
			if kelvin < 0 {
				return values, fmt.Errorf("%w: negative temperature %d", ErrInvalidParam, kelvin)
			}
			values[i] = kelvin
			continue
		}
		temperature, err := configuration.ParseTemperature(arg)
		if err != nil {
			return values, fmt.Errorf("%w: %v", ErrInvalidParam, err)
		}
		values[i] = temperature.Kelvin()
	}
	return values, nil
}

// ApplyConsoleSet updates the trigger limits and the fan range of a
// single sensor. Release values are not touched.
func ApplyConsoleSet(store *ConfigStore, index int, values ConsoleSetValues) (ThresholdConfig, error) {
	cfg, err := store.Get(index)
	if err != nil {
		return cfg, err
	}

	for _, kind := range ThresholdKinds {
		if values[kind] >= 0 {
			cfg.TempHost[kind] = values[kind]
		}
	}
	if values[3] >= 0 {
		cfg.TempFanOff = values[3]
	}
	if values[4] >= 0 {
		cfg.TempFanMax = values[4]
	}

	if err = store.Set(index, cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// WriteThresholdTable prints the threshold configuration of all sensors in Kelvin
func WriteThresholdTable(w io.Writer, names []string, configs []ThresholdConfig, color bool) error {
	var rows [][]string
	for i, cfg := range configs {
		name := ""
		if i < len(names) {
			name = names[i]
		}
		rows = append(rows, []string{
			strconv.Itoa(i),
			strconv.Itoa(cfg.TempHost[ThresholdWarn]),
			strconv.Itoa(cfg.TempHost[ThresholdHigh]),
			strconv.Itoa(cfg.TempHost[ThresholdHalt]),
			strconv.Itoa(cfg.TempFanOff),
			strconv.Itoa(cfg.TempFanMax),
			name,
		})
	}

	tab := table.Table{
		Headers: []string{"sensor", "warn", "high", "halt", "fan_off", "fan_max", "name"},
		Rows:    rows,
	}
	err := tab.WriteTable(w, &table.Config{
		ShowIndex:       false,
		Color:           color,
		AlternateColors: true,
		TitleColorCode:  ansi.ColorCode("white+buf"),
		AltColorCodes: []string{
			ansi.ColorCode("white"),
			ansi.ColorCode("white:236"),
		},
	})
	if err != nil {
		return fmt.Errorf("unable to print threshold table: %w", err)
	}
	return nil
}
