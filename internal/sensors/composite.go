package sensors

import (
	"context"
	"errors"
	"fmt"
	"github.com/markusressel/ecthermal/internal/configuration"
	"github.com/markusressel/ecthermal/internal/util"
	"golang.org/x/exp/slices"
)

var ErrNoCompositeInput = errors.New("no readable input")

// CompositeSensor combines the values of other sensors. Inputs that fail
// to read are skipped, the read only fails if no input is readable.
type CompositeSensor struct {
	Config configuration.SensorConfig `json:"configuration"`
	Inputs []Sensor                   `json:"-"`
}

func newCompositeSensor(config configuration.SensorConfig, byId map[string]Sensor) (*CompositeSensor, bool) {
	var inputs []Sensor
	for _, id := range config.Composite.Sensors {
		sensor, ok := byId[id]
		if !ok {
			return nil, false
		}
		inputs = append(inputs, sensor)
	}
	return &CompositeSensor{Config: config, Inputs: inputs}, true
}

func (sensor CompositeSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor CompositeSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

func (sensor CompositeSensor) GetValue(ctx context.Context) (float64, error) {
	var values []float64
	for _, input := range sensor.Inputs {
		value, err := input.GetValue(ctx)
		if err != nil {
			continue
		}
		values = append(values, value)
	}
	if len(values) <= 0 {
		return 0, fmt.Errorf("sensor %s: %w", sensor.GetId(), ErrNoCompositeInput)
	}

	switch sensor.Config.Composite.Function {
	case configuration.CompositeMinimum:
		return slices.Min(values), nil
	case configuration.CompositeAverage:
		return util.Avg(values), nil
	default:
		return slices.Max(values), nil
	}
}
