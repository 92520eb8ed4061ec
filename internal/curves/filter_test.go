package curves

import (
	"context"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestMovingAverage_PartialWindow(t *testing.T) {
	// GIVEN
	filter := NewMovingAverage(60)

	// WHEN
	first := filter.Apply(320)
	second := filter.Apply(330)

	// THEN
	assert.Equal(t, 320, first)
	assert.Equal(t, 325, second)
}

func TestMovingAverage_FullWindow(t *testing.T) {
	// GIVEN
	filter := NewMovingAverage(3)
	filter.Apply(300)
	filter.Apply(310)
	filter.Apply(320)

	// WHEN
	result := filter.Apply(330)

	// THEN
	assert.Equal(t, 320, result)
}

func TestTableStrategy_FilterSmoothsSpike(t *testing.T) {
	// GIVEN
	table := singleSensorTable()
	table.Filter = &Filter{Column: 0, Window: 4}
	strategy := NewTableStrategy(&TableSelector{Default: table}, 0)

	// WHEN
	var outputs []Output
	for _, temp := range []int{40, 40, 40, 80} {
		output, err := strategy.Compute(context.Background(), Snapshot{Temps: []int{temp}, Valid: []bool{true}})
		assert.NoError(t, err)
		outputs = append(outputs, output)
	}

	// THEN
	// the average of 40, 40, 40 and 80 is 50, which does not exceed level 0
	assert.Equal(t, 0, outputs[3].Level)
	assert.Equal(t, []int{50}, strategy.State().Previous)
}
