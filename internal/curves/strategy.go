package curves

import (
	"context"
	"errors"
	"fmt"
	"github.com/markusressel/ecthermal/internal/configuration"
	"github.com/markusressel/ecthermal/internal/sources"
	"sync"
)

var ErrUnknownStrategy = errors.New("unknown strategy")

// NoValue marks an Output field that the strategy does not produce
const NoValue = -1

// Snapshot is the consistent view of the sensors taken at the start of a tick
type Snapshot struct {
	// Temps holds the reading in Kelvin per global sensor index
	Temps []int `json:"temps"`
	// Valid marks sensors that were read successfully
	Valid []bool `json:"valid"`
	// Percents holds the ramp percent per sensor, NoValue for faulted
	// sensors and sensors without a fan range
	Percents []int `json:"percents"`
	// MaxPercent is the highest of Percents, 0 if there is none
	MaxPercent int `json:"maxPercent"`
}

// Output is the result of a strategy for a single fan
type Output struct {
	// Level is the table level or winning zone index
	Level int `json:"level"`
	// Percent is the cooling demand
	Percent int `json:"percent"`
	// Rpm is the target rpm, NoValue if it must be derived from Percent
	Rpm int `json:"rpm"`
}

// Strategy computes the cooling output of one fan once per tick
type Strategy interface {
	GetName() string
	Compute(ctx context.Context, snapshot Snapshot) (Output, error)
	// CurrentOutput returns the result of the last Compute call
	CurrentOutput() Output
}

// NewStrategy installs the strategy configured for the given fan.
// sensorIndex maps sensor ids to their global index.
func NewStrategy(
	fanConfig configuration.FanConfig,
	tables []configuration.TableConfig,
	sensorConfigs []configuration.SensorConfig,
) (Strategy, error) {
	sensorIndex := map[string]int{}
	for i, sensorConfig := range sensorConfigs {
		sensorIndex[sensorConfig.ID] = i
	}

	control := fanConfig.Control
	switch control.Strategy {
	case "", configuration.StrategyRamp:
		return NewRampStrategy(), nil
	case configuration.StrategyTable:
		return newTableStrategyFromConfig(fanConfig, tables, sensorIndex)
	case configuration.StrategyZones:
		return newZoneStrategyFromConfig(fanConfig, sensorConfigs, sensorIndex)
	default:
		return nil, fmt.Errorf("fan %s: %w: %s", fanConfig.ID, ErrUnknownStrategy, control.Strategy)
	}
}

func newTableStrategyFromConfig(
	fanConfig configuration.FanConfig,
	tables []configuration.TableConfig,
	sensorIndex map[string]int,
) (Strategy, error) {
	selection := fanConfig.Control.Table
	if selection == nil {
		return nil, fmt.Errorf("fan %s: missing table configuration", fanConfig.ID)
	}

	built := map[string]*Table{}
	build := func(id string) (*Table, error) {
		if table, ok := built[id]; ok {
			return table, nil
		}
		for _, tableConfig := range tables {
			if tableConfig.ID == id {
				table, err := NewTable(tableConfig, sensorIndex)
				if err != nil {
					return nil, err
				}
				built[id] = table
				return table, nil
			}
		}
		return nil, fmt.Errorf("fan %s: no table with id '%s'", fanConfig.ID, id)
	}

	defaultTable, err := build(selection.Default)
	if err != nil {
		return nil, err
	}
	selector := &TableSelector{
		Default: defaultTable,
		Modes:   map[string]*Table{},
	}
	for mode, tableId := range selection.Modes {
		table, err := build(tableId)
		if err != nil {
			return nil, err
		}
		selector.Modes[mode] = table
	}
	if selection.ModeSource != nil {
		source, err := sources.NewValueSource(*selection.ModeSource)
		if err != nil {
			return nil, fmt.Errorf("fan %s: %w", fanConfig.ID, err)
		}
		selector.Source = source
	}

	return NewTableStrategy(selector, selection.Column), nil
}

type outputHolder struct {
	mu     sync.Mutex
	output Output
}

func (h *outputHolder) set(output Output) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.output = output
}

func (h *outputHolder) CurrentOutput() Output {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.output
}
