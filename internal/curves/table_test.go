package curves

import (
	"github.com/markusressel/ecthermal/internal/configuration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestNewTable_ConvertsCelsiusToKelvin(t *testing.T) {
	// GIVEN
	config := configuration.TableConfig{
		ID:      "clamshell",
		Sensors: []string{"cpu", "ambient"},
		Levels: []configuration.LevelConfig{
			{On: []int{50, -1}, Off: []int{45, -1}, Rpm: []int{0, 0}},
			{On: []int{55, 40}, Off: []int{50, 35}, Rpm: []int{3000, 2800}},
		},
	}
	sensorIndex := map[string]int{"ambient": 0, "cpu": 1}

	// WHEN
	table, err := NewTable(config, sensorIndex)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, table.Sensors)
	assert.Equal(t, []int{323, Unused}, table.Levels[0].On)
	assert.Equal(t, []int{318, Unused}, table.Levels[0].Off)
	assert.Equal(t, []int{328, 313}, table.Levels[1].On)
	assert.Equal(t, [][]int{{0, 1}}, table.Rising)
	assert.Equal(t, DirectionAny, table.Direction)
	assert.Equal(t, 2800, table.Rpm(1, 1))
}

func TestNewTable_KelvinUnit(t *testing.T) {
	// GIVEN
	config := configuration.TableConfig{
		ID:        "kelvin",
		Unit:      configuration.UnitKelvin,
		Sensors:   []string{"cpu"},
		Direction: configuration.DirectionAll,
		Rising:    [][]string{{"cpu"}},
		Filter:    &configuration.FilterConfig{Sensor: "cpu", Window: 60},
		Levels: []configuration.LevelConfig{
			{On: []int{323}, Off: []int{318}, Rpm: []int{0}},
		},
	}

	// WHEN
	table, err := NewTable(config, map[string]int{"cpu": 0})

	// THEN
	require.NoError(t, err)
	assert.Equal(t, []int{323}, table.Levels[0].On)
	assert.Equal(t, DirectionAll, table.Direction)
	assert.Equal(t, &Filter{Column: 0, Window: 60}, table.Filter)
}

func TestNewTable_UnknownSensor(t *testing.T) {
	// GIVEN
	config := configuration.TableConfig{
		ID:      "table",
		Sensors: []string{"missing"},
		Levels: []configuration.LevelConfig{
			{On: []int{50}, Off: []int{45}, Rpm: []int{0}},
		},
	}

	// WHEN
	_, err := NewTable(config, map[string]int{})

	// THEN
	assert.EqualError(t, err, "table table: unknown sensor 'missing'")
}

func TestTable_Validate_OnBelowOff(t *testing.T) {
	// GIVEN
	table := singleSensorTable()
	table.Levels[1].Off = []int{56}

	// WHEN
	err := table.Validate()

	// THEN
	assert.EqualError(t, err, "table single: level 1 column 0 has on (55) below off (56)")
}

func TestTable_IsMonotonic(t *testing.T) {
	// GIVEN
	monotonic := singleSensorTable()
	broken := singleSensorTable()
	broken.Levels[2].Rpm = []int{2000}

	// WHEN
	resultMonotonic := monotonic.IsMonotonic()
	resultBroken := broken.IsMonotonic()

	// THEN
	assert.True(t, resultMonotonic)
	assert.False(t, resultBroken)
}

func TestTable_RpmOutOfRange(t *testing.T) {
	// GIVEN
	table := singleSensorTable()

	// WHEN
	above := table.Rpm(5, 0)
	missingColumn := table.Rpm(1, 3)

	// THEN
	assert.Equal(t, 4000, above)
	assert.Equal(t, 0, missingColumn)
}
