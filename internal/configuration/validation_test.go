package configuration

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func staticChipset() ChipsetConfig {
	return ChipsetConfig{
		State: ValueSourceConfig{Static: ChipsetStateOn},
	}
}

func virtualSensor(id string) SensorConfig {
	return SensorConfig{
		ID:      id,
		Kind:    SensorKindBoard,
		Virtual: &VirtualSensorConfig{Value: 313},
		Thresholds: ThresholdsConfig{
			High:        363,
			HighRelease: 353,
		},
	}
}

func TestValidateValidConfig(t *testing.T) {
	// GIVEN
	config := Configuration{
		Chipset: staticChipset(),
		Sensors: []SensorConfig{virtualSensor("cpu"), virtualSensor("ambient")},
		Tables: []TableConfig{
			{
				ID:      "clamshell",
				Sensors: []string{"cpu", "ambient"},
				Rising:  [][]string{{"cpu", "ambient"}},
				Levels: []LevelConfig{
					{On: []int{50, -1}, Off: []int{45, -1}, Rpm: []int{0}},
					{On: []int{55, 40}, Off: []int{50, 35}, Rpm: []int{3000}},
				},
			},
		},
		Fans: []FanConfig{
			{
				ID:      "fan",
				Virtual: &VirtualFanConfig{},
				RpmMin:  1800,
				RpmMax:  6800,
				Control: FanControlConfig{
					Strategy: StrategyTable,
					Table:    &TableSelectionConfig{Default: "clamshell"},
				},
			},
		},
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.NoError(t, err)
}

func TestValidateChipsetStateMissing(t *testing.T) {
	// GIVEN
	config := Configuration{}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "chipset state: source is missing, use one of: static | file | cmd")
}

func TestValidateChipsetStateUnknown(t *testing.T) {
	// GIVEN
	config := Configuration{
		Chipset: ChipsetConfig{State: ValueSourceConfig{Static: "hibernate"}},
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "chipset: unsupported state 'hibernate', use one of: hard-off | soft-off | suspend | on")
}

func TestValidateDuplicateSensorId(t *testing.T) {
	// GIVEN
	config := Configuration{
		Chipset: staticChipset(),
		Sensors: []SensorConfig{virtualSensor("cpu"), virtualSensor("cpu")},
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "duplicate sensor id detected: cpu")
}

func TestValidateSensorSubConfigIsMissing(t *testing.T) {
	// GIVEN
	config := Configuration{
		Chipset: staticChipset(),
		Sensors: []SensorConfig{{ID: "sensor"}},
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "sensor sensor: sub-configuration for sensor is missing, use one of: hwmon | file | cmd | host | composite | virtual")
}

func TestValidateReleaseAboveTrigger(t *testing.T) {
	// GIVEN
	sensor := virtualSensor("cpu")
	sensor.Thresholds.WarnRelease = 360
	sensor.Thresholds.Warn = 355
	config := Configuration{
		Chipset: staticChipset(),
		Sensors: []SensorConfig{sensor},
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "sensor cpu: warn release (360) must be below warn threshold (355)")
}

func TestValidateReleaseWithoutTrigger(t *testing.T) {
	// GIVEN
	sensor := virtualSensor("cpu")
	sensor.Thresholds.HaltRelease = 360
	config := Configuration{
		Chipset: staticChipset(),
		Sensors: []SensorConfig{sensor},
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "sensor cpu: halt release is set but halt threshold is disabled")
}

func TestValidateFanRange(t *testing.T) {
	// GIVEN
	sensor := virtualSensor("cpu")
	sensor.Thresholds.FanOff = 335
	sensor.Thresholds.FanMax = 313
	config := Configuration{
		Chipset: staticChipset(),
		Sensors: []SensorConfig{sensor},
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "sensor cpu: fanOff (335) must be below fanMax (313)")
}

func TestValidateCompositeSelfReference(t *testing.T) {
	// GIVEN
	config := Configuration{
		Chipset: staticChipset(),
		Sensors: []SensorConfig{
			{
				ID: "combined",
				Composite: &CompositeSensorConfig{
					Function: CompositeMaximum,
					Sensors:  []string{"combined"},
				},
			},
		},
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "sensor combined: a sensor cannot reference itself")
}

func TestValidateCompositeCycle(t *testing.T) {
	// GIVEN
	config := Configuration{
		Chipset: staticChipset(),
		Sensors: []SensorConfig{
			{
				ID: "a",
				Composite: &CompositeSensorConfig{
					Function: CompositeMaximum,
					Sensors:  []string{"b"},
				},
			},
			{
				ID: "b",
				Composite: &CompositeSensorConfig{
					Function: CompositeAverage,
					Sensors:  []string{"a"},
				},
			},
		},
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "sensor dependency cycle")
}

func TestValidateCompositeUnknownFunction(t *testing.T) {
	// GIVEN
	config := Configuration{
		Chipset: staticChipset(),
		Sensors: []SensorConfig{
			virtualSensor("cpu"),
			{
				ID: "combined",
				Composite: &CompositeSensorConfig{
					Function: "median",
					Sensors:  []string{"cpu"},
				},
			},
		},
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "sensor combined: unsupported composite function 'median', use one of: max | min | average")
}

func TestValidateTableOnBelowOff(t *testing.T) {
	// GIVEN
	config := Configuration{
		Chipset: staticChipset(),
		Sensors: []SensorConfig{virtualSensor("cpu")},
		Tables: []TableConfig{
			{
				ID:      "table",
				Sensors: []string{"cpu"},
				Levels: []LevelConfig{
					{On: []int{40}, Off: []int{45}, Rpm: []int{0}},
				},
			},
		},
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "table table: level 0 sensor cpu has on (40) below off (45)")
}

func TestValidateTableUnusedSensorIsNotCompared(t *testing.T) {
	// GIVEN
	config := Configuration{
		Chipset: staticChipset(),
		Sensors: []SensorConfig{virtualSensor("a"), virtualSensor("b")},
		Tables: []TableConfig{
			{
				ID:      "table",
				Sensors: []string{"a", "b"},
				Levels: []LevelConfig{
					{On: []int{52, 99}, Off: []int{50, -1}, Rpm: []int{3000}},
				},
			},
		},
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.NoError(t, err)
}

func TestValidateTableLevelColumnCount(t *testing.T) {
	// GIVEN
	config := Configuration{
		Chipset: staticChipset(),
		Sensors: []SensorConfig{virtualSensor("a"), virtualSensor("b")},
		Tables: []TableConfig{
			{
				ID:      "table",
				Sensors: []string{"a", "b"},
				Levels: []LevelConfig{
					{On: []int{52}, Off: []int{50}, Rpm: []int{3000}},
				},
			},
		},
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "table table: level 0 must define exactly one on and off value per sensor")
}

func TestValidateTableRisingGroupUnknownSensor(t *testing.T) {
	// GIVEN
	config := Configuration{
		Chipset: staticChipset(),
		Sensors: []SensorConfig{virtualSensor("a"), virtualSensor("b")},
		Tables: []TableConfig{
			{
				ID:      "table",
				Sensors: []string{"a"},
				Rising:  [][]string{{"a", "b"}},
				Levels: []LevelConfig{
					{On: []int{52}, Off: []int{50}, Rpm: []int{3000}},
				},
			},
		},
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "table table: rising group references sensor 'b' which is not part of the table")
}

func TestValidateDuplicateFanId(t *testing.T) {
	// GIVEN
	fanId := "fan"
	config := Configuration{
		Chipset: staticChipset(),
		Fans: []FanConfig{
			{
				ID:     fanId,
				File:   &FileFanConfig{Path: "abc"},
				RpmMax: 5000,
			},
			{
				ID:     fanId,
				File:   &FileFanConfig{Path: "abc"},
				RpmMax: 5000,
			},
		},
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, fmt.Sprintf("duplicate fan id detected: %s", fanId))
}

func TestValidateFanSubConfigIsMissing(t *testing.T) {
	// GIVEN
	config := Configuration{
		Chipset: staticChipset(),
		Fans: []FanConfig{
			{ID: "fan"},
		},
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "fan fan: sub-configuration for fan is missing, use one of: hwmon | file | cmd | virtual")
}

func TestValidateFanRpmRange(t *testing.T) {
	// GIVEN
	config := Configuration{
		Chipset: staticChipset(),
		Fans: []FanConfig{
			{
				ID:      "fan",
				Virtual: &VirtualFanConfig{},
				RpmMin:  5000,
				RpmMax:  3000,
			},
		},
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "fan fan: invalid rpm range, requires 0 <= rpmMin <= rpmMax and rpmMax > 0")
}

func TestValidateFanUnknownStrategy(t *testing.T) {
	// GIVEN
	config := Configuration{
		Chipset: staticChipset(),
		Fans: []FanConfig{
			{
				ID:      "fan",
				Virtual: &VirtualFanConfig{},
				RpmMax:  3000,
				Control: FanControlConfig{Strategy: "pid"},
			},
		},
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "fan fan: unsupported strategy 'pid', use one of: ramp | table | zones")
}

func TestValidateFanTableWithIdIsNotDefined(t *testing.T) {
	// GIVEN
	config := Configuration{
		Chipset: staticChipset(),
		Fans: []FanConfig{
			{
				ID:      "fan",
				Virtual: &VirtualFanConfig{},
				RpmMax:  3000,
				Control: FanControlConfig{
					Strategy: StrategyTable,
					Table:    &TableSelectionConfig{Default: "clamshell"},
				},
			},
		},
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "fan fan: no table definition with id 'clamshell' found")
}

func TestValidateFanModeTablesDifferInLength(t *testing.T) {
	// GIVEN
	config := Configuration{
		Chipset: staticChipset(),
		Sensors: []SensorConfig{virtualSensor("cpu")},
		Tables: []TableConfig{
			{
				ID:      "clamshell",
				Sensors: []string{"cpu"},
				Levels: []LevelConfig{
					{On: []int{50}, Off: []int{45}, Rpm: []int{0}},
					{On: []int{55}, Off: []int{50}, Rpm: []int{3000}},
				},
			},
			{
				ID:      "tablet",
				Sensors: []string{"cpu"},
				Levels: []LevelConfig{
					{On: []int{50}, Off: []int{45}, Rpm: []int{0}},
				},
			},
		},
		Fans: []FanConfig{
			{
				ID:      "fan",
				Virtual: &VirtualFanConfig{},
				RpmMax:  3000,
				Control: FanControlConfig{
					Strategy: StrategyTable,
					Table: &TableSelectionConfig{
						Default:    "clamshell",
						Modes:      map[string]string{"tablet": "tablet"},
						ModeSource: &ValueSourceConfig{Static: "tablet"},
					},
				},
			},
		},
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "fan fan: all selectable tables must have the same number of levels")
}

func TestValidateFanZonesUnknownSensor(t *testing.T) {
	// GIVEN
	config := Configuration{
		Chipset: staticChipset(),
		Fans: []FanConfig{
			{
				ID:      "fan",
				Virtual: &VirtualFanConfig{},
				RpmMax:  3000,
				Control: FanControlConfig{
					Strategy: StrategyZones,
					Zones: []ZoneConfig{
						{Kind: SensorKindCharger, Sensors: []string{"charger"}, Steps: map[int]int{0: 0, 100: 3000}},
					},
				},
			},
		},
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "fan fan: zone 0 references unknown sensor 'charger'")
}
