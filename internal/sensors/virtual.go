package sensors

import (
	"context"
	"github.com/markusressel/ecthermal/internal/configuration"
	"github.com/markusressel/ecthermal/internal/util"
	"sync"
)

// VirtualSensor holds a value that is set programmatically
type VirtualSensor struct {
	Config configuration.SensorConfig `json:"configuration"`

	mu    sync.Mutex
	value float64
	err   error
}

func NewVirtualSensor(config configuration.SensorConfig) *VirtualSensor {
	sensor := &VirtualSensor{Config: config}
	if config.Virtual != nil && config.Virtual.Value.IsSet() {
		sensor.value = float64(util.KelvinToCelsius(config.Virtual.Value.Kelvin()) * 1000)
	}
	return sensor
}

func (sensor *VirtualSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor *VirtualSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

func (sensor *VirtualSensor) GetValue(ctx context.Context) (float64, error) {
	sensor.mu.Lock()
	defer sensor.mu.Unlock()
	return sensor.value, sensor.err
}

// SetValue sets the value in milli degree celsius and clears a fault
func (sensor *VirtualSensor) SetValue(milliCelsius float64) {
	sensor.mu.Lock()
	defer sensor.mu.Unlock()
	sensor.value = milliCelsius
	sensor.err = nil
}

// SetKelvin sets the value in Kelvin and clears a fault
func (sensor *VirtualSensor) SetKelvin(kelvin int) {
	sensor.SetValue(float64(util.KelvinToCelsius(kelvin) * 1000))
}

// SetError makes every following read fail with the given error
func (sensor *VirtualSensor) SetError(err error) {
	sensor.mu.Lock()
	defer sensor.mu.Unlock()
	sensor.err = err
}
