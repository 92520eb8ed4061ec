package thermal

import (
	"github.com/markusressel/ecthermal/internal/configuration"
	"github.com/stretchr/testify/assert"
	"sync"
	"testing"
)

func TestNewThresholdConfig(t *testing.T) {
	// GIVEN
	config := configuration.ThresholdsConfig{
		High:        configuration.Temperature(358),
		HighRelease: configuration.Temperature(353),
		Halt:        configuration.Temperature(368),
		FanOff:      configuration.Temperature(313),
		FanMax:      configuration.Temperature(348),
	}

	// WHEN
	result := NewThresholdConfig(config)

	// THEN
	assert.Equal(t, [ThresholdCount]int{0, 358, 368}, result.TempHost)
	assert.Equal(t, [ThresholdCount]int{0, 353, 0}, result.TempHostRelease)
	assert.Equal(t, 368, result.Release(ThresholdHalt))
	assert.Equal(t, 353, result.Release(ThresholdHigh))
	assert.True(t, result.HasFanRange())
}

func TestConfigStore_SnapshotIsNotAffectedBySet(t *testing.T) {
	// GIVEN
	store := NewConfigStore([]ThresholdConfig{{TempFanOff: 300}, {TempFanOff: 310}})
	before := store.Snapshot()

	// WHEN
	err := store.Set(0, ThresholdConfig{TempFanOff: 320})

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 300, before[0].TempFanOff)
	assert.Equal(t, 320, store.Snapshot()[0].TempFanOff)
	assert.Equal(t, 310, store.Snapshot()[1].TempFanOff)
	assert.Equal(t, 2, store.Count())
}

func TestConfigStore_ConcurrentSetsAreNotLost(t *testing.T) {
	// GIVEN
	count := 16
	store := NewConfigStore(make([]ThresholdConfig, count))

	// WHEN
	var wg sync.WaitGroup
	for i := 0; i < count; i++ {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			_ = store.Set(index, ThresholdConfig{TempFanOff: 300 + index, TempFanMax: 400 + index})
		}(i)
	}
	wg.Wait()

	// THEN
	for i, cfg := range store.Snapshot() {
		assert.Equal(t, 300+i, cfg.TempFanOff)
		assert.Equal(t, 400+i, cfg.TempFanMax)
	}
}
