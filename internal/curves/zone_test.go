package curves

import (
	"context"
	"github.com/markusressel/ecthermal/internal/configuration"
	"github.com/stretchr/testify/assert"
	"testing"
)

func testZones() []Zone {
	return []Zone{
		{Kind: configuration.SensorKindAmbient, Sensors: []int{3}, Steps: map[int]int{0: 0, 100: 2000}},
		{Kind: configuration.SensorKindDdr, Sensors: []int{2}, Steps: map[int]int{0: 0, 100: 3000}},
		{Kind: configuration.SensorKindSoc, Sensors: []int{1}, Steps: map[int]int{0: 0, 100: 4000}},
		{Kind: configuration.SensorKindCharger, Sensors: []int{0}, Steps: map[int]int{0: 0, 50: 3000, 100: 5000}},
	}
}

func TestNewZoneStrategy_SortsByPriority(t *testing.T) {
	// WHEN
	strategy := NewZoneStrategy(testZones())

	// THEN
	var kinds []string
	for _, zone := range strategy.Zones() {
		kinds = append(kinds, zone.Kind)
	}
	assert.Equal(t, []string{"charger", "soc", "ddr", "ambient"}, kinds)
}

func TestZoneStrategy_HighestPriorityZoneWins(t *testing.T) {
	// GIVEN
	strategy := NewZoneStrategy(testZones())
	snapshot := Snapshot{
		Percents: []int{25, 90, 10, 100},
	}

	// WHEN
	output, err := strategy.Compute(context.Background(), snapshot)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 0, output.Level)
	assert.Equal(t, 25, output.Percent)
	assert.Equal(t, 1500, output.Rpm)
}

func TestZoneStrategy_FallsThroughIdleZones(t *testing.T) {
	// GIVEN
	strategy := NewZoneStrategy(testZones())
	snapshot := Snapshot{
		Percents: []int{0, NoValue, 50, 100},
	}

	// WHEN
	output, err := strategy.Compute(context.Background(), snapshot)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 2, output.Level)
	assert.Equal(t, 1500, output.Rpm)
	assert.Equal(t, output, strategy.CurrentOutput())
}

func TestZoneStrategy_NoDemand(t *testing.T) {
	// GIVEN
	strategy := NewZoneStrategy(testZones())

	// WHEN
	output, err := strategy.Compute(context.Background(), Snapshot{Percents: []int{0, 0, 0, 0}})

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, Output{Level: NoValue, Percent: 0, Rpm: 0}, output)
}
