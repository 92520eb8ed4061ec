package sensors

import (
	"context"
	"fmt"
	"github.com/markusressel/ecthermal/internal/configuration"
	"github.com/shirou/gopsutil/v3/host"
)

// HostSensor reads a temperature reported by the operating system
type HostSensor struct {
	Config configuration.SensorConfig `json:"configuration"`
}

func (sensor HostSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor HostSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

func (sensor HostSensor) GetValue(ctx context.Context) (float64, error) {
	// partial results come with a warning error, only fail if the key is missing
	temps, err := host.SensorsTemperaturesWithContext(ctx)
	for _, temp := range temps {
		if temp.SensorKey == sensor.Config.Host.Key {
			return temp.Temperature * 1000, nil
		}
	}
	if err != nil {
		return 0, fmt.Errorf("sensor %s: %w", sensor.GetId(), err)
	}
	return 0, fmt.Errorf("sensor %s: no host sensor with key %s", sensor.GetId(), sensor.Config.Host.Key)
}
