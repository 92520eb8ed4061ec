package thermal

import (
	"fmt"
	"github.com/markusressel/ecthermal/internal/configuration"
	"sync"
	"sync/atomic"
)

// ThresholdKind is one of the host visible severity thresholds
type ThresholdKind int

const (
	ThresholdWarn ThresholdKind = iota
	ThresholdHigh
	ThresholdHalt

	ThresholdCount
)

var ThresholdKinds = []ThresholdKind{ThresholdWarn, ThresholdHigh, ThresholdHalt}

func (k ThresholdKind) String() string {
	switch k {
	case ThresholdWarn:
		return "warn"
	case ThresholdHigh:
		return "high"
	case ThresholdHalt:
		return "halt"
	default:
		return fmt.Sprintf("threshold(%d)", int(k))
	}
}

// ThresholdConfig is the thermal configuration of one sensor, all values
// are in Kelvin and 0 disables the respective value.
type ThresholdConfig struct {
	TempHost        [ThresholdCount]int `json:"temp_host"`
	TempHostRelease [ThresholdCount]int `json:"temp_host_release"`
	TempFanOff      int                 `json:"temp_fan_off"`
	TempFanMax      int                 `json:"temp_fan_max"`
}

// Release returns the value a reading must fall below to count as under,
// which is the limit itself when no separate release value is set.
func (c ThresholdConfig) Release(kind ThresholdKind) int {
	if c.TempHostRelease[kind] != 0 {
		return c.TempHostRelease[kind]
	}
	return c.TempHost[kind]
}

// HasFanRange reports whether the sensor contributes a ramp percent
func (c ThresholdConfig) HasFanRange() bool {
	return c.TempFanOff != 0 && c.TempFanMax != 0
}

func NewThresholdConfig(config configuration.ThresholdsConfig) ThresholdConfig {
	return ThresholdConfig{
		TempHost: [ThresholdCount]int{
			config.Warn.Kelvin(), config.High.Kelvin(), config.Halt.Kelvin(),
		},
		TempHostRelease: [ThresholdCount]int{
			config.WarnRelease.Kelvin(), config.HighRelease.Kelvin(), config.HaltRelease.Kelvin(),
		},
		TempFanOff: config.FanOff.Kelvin(),
		TempFanMax: config.FanMax.Kelvin(),
	}
}

// ConfigStore holds the threshold configuration of all sensors. Readers
// always see a complete configuration, a Set replaces the configuration
// of one sensor as a whole and becomes visible to the next tick.
type ConfigStore struct {
	writeMu sync.Mutex
	configs atomic.Pointer[[]ThresholdConfig]
}

func NewConfigStore(configs []ThresholdConfig) *ConfigStore {
	store := &ConfigStore{}
	initial := append([]ThresholdConfig{}, configs...)
	store.configs.Store(&initial)
	return store
}

func NewConfigStoreFromSensors(sensors []configuration.SensorConfig) *ConfigStore {
	var configs []ThresholdConfig
	for _, sensor := range sensors {
		configs = append(configs, NewThresholdConfig(sensor.Thresholds))
	}
	return NewConfigStore(configs)
}

func (s *ConfigStore) Count() int {
	return len(*s.configs.Load())
}

// Get returns the configuration of the given sensor
func (s *ConfigStore) Get(index int) (ThresholdConfig, error) {
	configs := *s.configs.Load()
	if index < 0 || index >= len(configs) {
		return ThresholdConfig{}, fmt.Errorf("%w: sensor index %d", ErrInvalidParam, index)
	}
	return configs[index], nil
}

// Set replaces the configuration of the given sensor
func (s *ConfigStore) Set(index int, config ThresholdConfig) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	current := *s.configs.Load()
	if index < 0 || index >= len(current) {
		return fmt.Errorf("%w: sensor index %d", ErrInvalidParam, index)
	}
	updated := append([]ThresholdConfig{}, current...)
	updated[index] = config
	s.configs.Store(&updated)
	return nil
}

// Snapshot returns the configuration of all sensors, the result must not
// be modified.
func (s *ConfigStore) Snapshot() []ThresholdConfig {
	return *s.configs.Load()
}
