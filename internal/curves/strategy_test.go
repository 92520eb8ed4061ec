package curves

import (
	"context"
	"errors"
	"github.com/markusressel/ecthermal/internal/configuration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

type mockModeSource struct {
	value string
	err   error
}

func (m *mockModeSource) GetValue(ctx context.Context) (string, error) {
	return m.value, m.err
}

func testSensorConfigs() []configuration.SensorConfig {
	return []configuration.SensorConfig{
		{ID: "cpu", Kind: configuration.SensorKindCpu},
		{ID: "charger", Kind: configuration.SensorKindCharger},
	}
}

func testTableConfigs() []configuration.TableConfig {
	return []configuration.TableConfig{
		{
			ID:      "clamshell",
			Sensors: []string{"cpu"},
			Levels: []configuration.LevelConfig{
				{On: []int{50}, Off: []int{45}, Rpm: []int{0}},
				{On: []int{55}, Off: []int{50}, Rpm: []int{3000}},
			},
		},
		{
			ID:      "tablet",
			Sensors: []string{"cpu"},
			Levels: []configuration.LevelConfig{
				{On: []int{45}, Off: []int{40}, Rpm: []int{0}},
				{On: []int{50}, Off: []int{45}, Rpm: []int{2500}},
			},
		},
	}
}

func TestNewStrategy_DefaultsToRamp(t *testing.T) {
	// GIVEN
	fan := configuration.FanConfig{ID: "fan"}

	// WHEN
	strategy, err := NewStrategy(fan, nil, testSensorConfigs())

	// THEN
	require.NoError(t, err)
	assert.Equal(t, "ramp", strategy.GetName())

	output, err := strategy.Compute(context.Background(), Snapshot{MaxPercent: 42})
	assert.NoError(t, err)
	assert.Equal(t, Output{Level: NoValue, Percent: 42, Rpm: NoValue}, output)
}

func TestNewStrategy_Unknown(t *testing.T) {
	// GIVEN
	fan := configuration.FanConfig{ID: "fan", Control: configuration.FanControlConfig{Strategy: "pid"}}

	// WHEN
	_, err := NewStrategy(fan, nil, testSensorConfigs())

	// THEN
	assert.True(t, errors.Is(err, ErrUnknownStrategy))
}

func TestNewStrategy_Zones(t *testing.T) {
	// GIVEN
	fan := configuration.FanConfig{
		ID: "fan",
		Control: configuration.FanControlConfig{
			Strategy: configuration.StrategyZones,
			Zones: []configuration.ZoneConfig{
				{Sensors: []string{"cpu"}, Steps: map[int]int{0: 0, 100: 4000}},
				{Sensors: []string{"charger"}, Steps: map[int]int{0: 0, 100: 5000}},
			},
		},
	}

	// WHEN
	strategy, err := NewStrategy(fan, nil, testSensorConfigs())

	// THEN
	require.NoError(t, err)
	zones := strategy.(*ZoneStrategy).Zones()
	assert.Equal(t, configuration.SensorKindCharger, zones[0].Kind)
	assert.Equal(t, []int{1}, zones[0].Sensors)
}

func TestTableStrategy_ModeSelectsTable(t *testing.T) {
	// GIVEN
	fan := configuration.FanConfig{
		ID: "fan",
		Control: configuration.FanControlConfig{
			Strategy: configuration.StrategyTable,
			Table: &configuration.TableSelectionConfig{
				Default: "clamshell",
				Modes:   map[string]string{"tablet": "tablet"},
			},
		},
	}
	strategy, err := NewStrategy(fan, testTableConfigs(), testSensorConfigs())
	require.NoError(t, err)
	tableStrategy := strategy.(*TableStrategy)
	mode := &mockModeSource{value: "clamshell"}
	tableStrategy.selector.Source = mode
	// 48°C
	snapshot := Snapshot{Temps: []int{321, 0}, Valid: []bool{true, false}}

	// WHEN
	clamshell, err := strategy.Compute(context.Background(), snapshot)
	require.NoError(t, err)
	mode.value = "tablet"
	// 51°C
	snapshot.Temps[0] = 324
	tablet, err := strategy.Compute(context.Background(), snapshot)
	require.NoError(t, err)

	// THEN
	assert.Equal(t, 0, clamshell.Level)
	assert.Equal(t, 1, tablet.Level)
	assert.Equal(t, 2500, tablet.Rpm)
	assert.Equal(t, "tablet", tableStrategy.ActiveTable())
}

func TestTableSelector_ModeErrorUsesDefault(t *testing.T) {
	// GIVEN
	table := singleSensorTable()
	selector := &TableSelector{
		Default: table,
		Modes:   map[string]*Table{"tablet": {ID: "tablet"}},
		Source:  &mockModeSource{err: errors.New("unreadable")},
	}

	// WHEN
	result, mode := selector.Resolve(context.Background())

	// THEN
	assert.Equal(t, table, result)
	assert.Equal(t, "", mode)
}
