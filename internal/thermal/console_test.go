package thermal

import (
	"bytes"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestApplyConsoleSet_NegativeKeepsValue(t *testing.T) {
	// GIVEN
	initial := ThresholdConfig{TempFanOff: 313, TempFanMax: 348}
	initial.TempHost = [ThresholdCount]int{0, 358, 368}
	initial.TempHostRelease[ThresholdHigh] = 353
	store := NewConfigStore([]ThresholdConfig{initial})

	values := NewConsoleSetValues()
	values[ThresholdWarn] = 350
	values[4] = 355

	// WHEN
	result, err := ApplyConsoleSet(store, 0, values)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, [ThresholdCount]int{350, 358, 368}, result.TempHost)
	assert.Equal(t, 353, result.TempHostRelease[ThresholdHigh])
	assert.Equal(t, 313, result.TempFanOff)
	assert.Equal(t, 355, result.TempFanMax)
	stored, _ := store.Get(0)
	assert.Equal(t, result, stored)
}

func TestApplyConsoleSet_ZeroDisables(t *testing.T) {
	// GIVEN
	initial := ThresholdConfig{}
	initial.TempHost[ThresholdHalt] = 368
	store := NewConfigStore([]ThresholdConfig{initial})
	values := NewConsoleSetValues()
	values[ThresholdHalt] = 0

	// WHEN
	result, err := ApplyConsoleSet(store, 0, values)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 0, result.TempHost[ThresholdHalt])
}

func TestApplyConsoleSet_InvalidSensor(t *testing.T) {
	// GIVEN
	store := NewConfigStore([]ThresholdConfig{{}})

	// WHEN
	_, err := ApplyConsoleSet(store, 3, NewConsoleSetValues())

	// THEN
	assert.ErrorIs(t, err, ErrInvalidParam)
}

func TestWriteThresholdTable(t *testing.T) {
	// GIVEN
	cfg := ThresholdConfig{TempFanOff: 313, TempFanMax: 348}
	cfg.TempHost[ThresholdHalt] = 378
	var buf bytes.Buffer

	// WHEN
	err := WriteThresholdTable(&buf, []string{"cpu"}, []ThresholdConfig{cfg}, false)

	// THEN
	assert.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, "fan_max")
	assert.Contains(t, output, "378")
	assert.Contains(t, output, "cpu")
}

func TestParseConsoleSetArgs(t *testing.T) {
	// GIVEN
	args := []string{"358", "-1", "95C", "-"}

	// WHEN
	values, err := ParseConsoleSetArgs(args)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, ConsoleSetValues{358, ConsoleUnchanged, 368, ConsoleUnchanged, ConsoleUnchanged}, values)
}

func TestParseConsoleSetArgs_Invalid(t *testing.T) {
	// GIVEN
	tooMany := []string{"1", "2", "3", "4", "5", "6"}

	// WHEN
	_, errTooMany := ParseConsoleSetArgs(tooMany)
	_, errNegative := ParseConsoleSetArgs([]string{"-5"})
	_, errText := ParseConsoleSetArgs([]string{"hot"})

	// THEN
	assert.ErrorIs(t, errTooMany, ErrInvalidParam)
	assert.ErrorIs(t, errNegative, ErrInvalidParam)
	assert.ErrorIs(t, errText, ErrInvalidParam)
}
