package sensors

import (
	"context"
	"errors"
	"fmt"
	"github.com/markusressel/ecthermal/internal/chipset"
	"github.com/markusressel/ecthermal/internal/configuration"
	"github.com/markusressel/ecthermal/internal/hwmon"
	"github.com/markusressel/ecthermal/internal/util"
	cmap "github.com/orcaman/concurrent-map/v2"
)

var (
	SensorMap = cmap.New[Sensor]()

	// ErrNotPowered is returned when a sensor is read outside of the
	// chipset states it is powered in
	ErrNotPowered = errors.New("sensor not powered")
)

type Sensor interface {
	GetId() string

	GetConfig() configuration.SensorConfig

	// GetValue returns the current value of this sensor in milli degree celsius
	GetValue(ctx context.Context) (float64, error)
}

// ReadKelvin reads the given sensor and converts the value to whole Kelvin
func ReadKelvin(ctx context.Context, sensor Sensor) (int, error) {
	value, err := sensor.GetValue(ctx)
	if err != nil {
		return 0, err
	}
	return util.MilliCelsiusToKelvin(value), nil
}

// NewSensor creates a sensor that does not depend on other sensors
func NewSensor(config configuration.SensorConfig, chips []*hwmon.Chip) (Sensor, error) {
	if config.HwMon != nil {
		input := config.HwMon.TempInput
		if len(input) <= 0 {
			resolved, err := hwmon.FindTempInput(chips, config.HwMon.Platform, config.HwMon.Index)
			if err != nil {
				return nil, fmt.Errorf("sensor %s: %w", config.ID, err)
			}
			input = resolved
		}
		return &HwmonSensor{
			Input:  input,
			Config: config,
		}, nil
	}

	if config.File != nil {
		return &FileSensor{
			Config: config,
		}, nil
	}

	if config.Cmd != nil {
		return &CmdSensor{
			Config: config,
		}, nil
	}

	if config.Host != nil {
		return &HostSensor{
			Config: config,
		}, nil
	}

	if config.Virtual != nil {
		return NewVirtualSensor(config), nil
	}

	return nil, fmt.Errorf("no matching sensor type for sensor: %s", config.ID)
}

// NewSensors creates all configured sensors in configuration order.
// Composite sensors are created once all of their inputs exist, the
// configuration must not contain dependency cycles.
func NewSensors(configs []configuration.SensorConfig, chips []*hwmon.Chip, chip chipset.Chipset) ([]Sensor, error) {
	result := make([]Sensor, len(configs))
	byId := map[string]Sensor{}

	for i, config := range configs {
		if config.Composite != nil {
			continue
		}
		sensor, err := NewSensor(config, chips)
		if err != nil {
			return nil, err
		}
		sensor, err = withPowerDomain(config, sensor, chip)
		if err != nil {
			return nil, err
		}
		result[i] = sensor
		byId[config.ID] = sensor
	}

	for pending := countMissing(result); pending > 0; {
		for i, config := range configs {
			if result[i] != nil {
				continue
			}
			composite, ok := newCompositeSensor(config, byId)
			if !ok {
				continue
			}
			sensor, err := withPowerDomain(config, composite, chip)
			if err != nil {
				return nil, err
			}
			result[i] = sensor
			byId[config.ID] = sensor
		}
		remaining := countMissing(result)
		if remaining == pending {
			return nil, fmt.Errorf("unable to resolve inputs of %d composite sensors", remaining)
		}
		pending = remaining
	}

	return result, nil
}

func withPowerDomain(config configuration.SensorConfig, sensor Sensor, chip chipset.Chipset) (Sensor, error) {
	if len(config.PoweredIn) <= 0 || chip == nil {
		return sensor, nil
	}
	mask, err := parsePowerMask(config.PoweredIn)
	if err != nil {
		return nil, fmt.Errorf("sensor %s: %w", config.ID, err)
	}
	return &PoweredSensor{Sensor: sensor, Chipset: chip, PoweredIn: mask}, nil
}

func countMissing(sensors []Sensor) int {
	count := 0
	for _, sensor := range sensors {
		if sensor == nil {
			count++
		}
	}
	return count
}

func parsePowerMask(states []string) (chipset.State, error) {
	var mask chipset.State
	for _, state := range states {
		parsed, err := chipset.ParseState(state)
		if err != nil {
			return 0, err
		}
		mask |= parsed
	}
	return mask, nil
}

// PoweredSensor only reads its sensor while the chipset is in one of the
// given states
type PoweredSensor struct {
	Sensor
	Chipset   chipset.Chipset
	PoweredIn chipset.State
}

func (sensor *PoweredSensor) GetValue(ctx context.Context) (float64, error) {
	if !sensor.Chipset.InState(sensor.PoweredIn) {
		return 0, fmt.Errorf("%w: %s", ErrNotPowered, sensor.GetId())
	}
	return sensor.Sensor.GetValue(ctx)
}

// Source reads sensors by their global index
type Source struct {
	Sensors []Sensor
}

func (s *Source) Count() int {
	return len(s.Sensors)
}

func (s *Source) ReadKelvin(ctx context.Context, index int) (int, error) {
	if index < 0 || index >= len(s.Sensors) {
		return 0, fmt.Errorf("no sensor with index %d", index)
	}
	return ReadKelvin(ctx, s.Sensors[index])
}

// Names returns the display name of every sensor
func (s *Source) Names() []string {
	names := make([]string, len(s.Sensors))
	for i, sensor := range s.Sensors {
		names[i] = sensor.GetConfig().Name
		if len(names[i]) <= 0 {
			names[i] = sensor.GetId()
		}
	}
	return names
}
