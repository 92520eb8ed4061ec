package thermal

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestHostCommands_GetAndSet(t *testing.T) {
	// GIVEN
	commands := HostCommands{Store: NewConfigStore([]ThresholdConfig{{}, {}})}
	cfg := ThresholdConfig{TempFanOff: 313, TempFanMax: 348}
	cfg.TempHost[ThresholdHalt] = 378

	// WHEN
	err := commands.SetThreshold(CommandVersion1, SetThresholdRequest{SensorNum: 1, Config: cfg})
	result, getErr := commands.GetThreshold(CommandVersion1, GetThresholdRequest{SensorNum: 1})

	// THEN
	assert.NoError(t, err)
	assert.NoError(t, getErr)
	assert.Equal(t, cfg, result)
}

func TestHostCommands_InvalidIndex(t *testing.T) {
	// GIVEN
	commands := HostCommands{Store: NewConfigStore([]ThresholdConfig{{}})}

	// WHEN
	_, getErr := commands.GetThreshold(CommandVersion1, GetThresholdRequest{SensorNum: 1})
	setErr := commands.SetThreshold(CommandVersion1, SetThresholdRequest{SensorNum: -1})

	// THEN
	assert.ErrorIs(t, getErr, ErrInvalidParam)
	assert.ErrorIs(t, setErr, ErrInvalidParam)
}

func TestHostCommands_UnsupportedVersion(t *testing.T) {
	// GIVEN
	store := NewConfigStore([]ThresholdConfig{{TempFanOff: 300}})
	commands := HostCommands{Store: store}

	// WHEN
	_, getErr := commands.GetThreshold(CommandVersion0, GetThresholdRequest{SensorNum: 0})
	setErr := commands.SetThreshold(CommandVersion0, SetThresholdRequest{SensorNum: 0})

	// THEN
	assert.ErrorIs(t, getErr, ErrInvalidVersion)
	assert.ErrorIs(t, setErr, ErrInvalidVersion)
	current, _ := store.Get(0)
	assert.Equal(t, 300, current.TempFanOff)
}

func TestHostCommands_SetDoesNotValidateValues(t *testing.T) {
	// GIVEN
	commands := HostCommands{Store: NewConfigStore([]ThresholdConfig{{}})}
	cfg := ThresholdConfig{TempFanOff: 400, TempFanMax: 300}

	// WHEN
	err := commands.SetThreshold(CommandVersion1, SetThresholdRequest{SensorNum: 0, Config: cfg})

	// THEN
	assert.NoError(t, err)
}
