package chipset

import (
	"context"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestThrottler_HardThrottleReachesChipset(t *testing.T) {
	// GIVEN
	chipset := NewVirtual(StateOn)
	throttler := NewThrottler(chipset)

	// WHEN
	throttler.Throttle(context.Background(), true, ThrottleHard, SourceThermal)

	// THEN
	assert.True(t, chipset.Throttled)
	assert.False(t, chipset.HostThrottled)
	assert.Equal(t, SourceThermal, throttler.Requests(ThrottleHard))
}

func TestThrottler_ReleasedOnlyWhenAllSourcesRelease(t *testing.T) {
	// GIVEN
	chipset := NewVirtual(StateOn)
	throttler := NewThrottler(chipset)
	ctx := context.Background()

	// WHEN
	throttler.Throttle(ctx, true, ThrottleSoft, SourceThermal)
	throttler.Throttle(ctx, true, ThrottleSoft, SourcePower)
	throttler.Throttle(ctx, false, ThrottleSoft, SourceThermal)
	stillThrottled := chipset.HostThrottled
	throttler.Throttle(ctx, false, ThrottleSoft, SourcePower)

	// THEN
	assert.True(t, stillThrottled)
	assert.False(t, chipset.HostThrottled)
	assert.Equal(t, 2, chipset.HostThrottleCalls)
}

func TestParseState(t *testing.T) {
	// WHEN
	state, err := ParseState(" Suspend\n")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, StateSuspend, state)
	assert.False(t, state&StateAnyOff != 0)
	assert.Equal(t, "hard-off|soft-off", StateAnyOff.String())
}

func TestParseState_Unknown(t *testing.T) {
	// WHEN
	_, err := ParseState("hibernate")

	// THEN
	assert.Error(t, err)
}
