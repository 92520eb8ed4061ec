package thermal

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestFanPercent_Boundaries(t *testing.T) {
	// GIVEN
	low := 100
	high := 200

	// WHEN
	atLow := FanPercent(low, high, 100)
	atHigh := FanPercent(low, high, 200)
	middle := FanPercent(low, high, 150)
	below := FanPercent(low, high, 50)
	above := FanPercent(low, high, 300)

	// THEN
	assert.Equal(t, 0, atLow)
	assert.Equal(t, 100, atHigh)
	assert.Equal(t, 50, middle)
	assert.Equal(t, 0, below)
	assert.Equal(t, 100, above)
}

func TestFanPercent_IsMonotonic(t *testing.T) {
	// GIVEN
	low := 313
	high := 348

	// WHEN
	last := 0
	for cur := 300; cur <= 360; cur++ {
		percent := FanPercent(low, high, cur)

		// THEN
		assert.GreaterOrEqual(t, percent, last)
		assert.GreaterOrEqual(t, percent, 0)
		assert.LessOrEqual(t, percent, 100)
		last = percent
	}
}

func TestFanPercent_TruncatesTowardsZero(t *testing.T) {
	// GIVEN
	low := 0
	high := 3

	// WHEN
	result := FanPercent(low, high, 1)

	// THEN
	assert.Equal(t, 33, result)
}
