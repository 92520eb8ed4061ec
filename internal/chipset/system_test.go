package chipset

import (
	"context"
	"github.com/markusressel/ecthermal/internal/configuration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

func TestSystem_PollReadsStateFromFile(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "state")
	require.NoError(t, os.WriteFile(path, []byte("soft-off\n"), 0644))
	system, err := NewSystem(configuration.ChipsetConfig{
		State: configuration.ValueSourceConfig{File: &configuration.FileSourceConfig{Path: path}},
	})
	require.NoError(t, err)

	// WHEN
	err = system.Poll(context.Background())

	// THEN
	assert.NoError(t, err)
	assert.True(t, system.InState(StateAnyOff))
	assert.False(t, system.InState(StateHardOff))
}

func TestSystem_PollKeepsStateOnError(t *testing.T) {
	// GIVEN
	system, err := NewSystem(configuration.ChipsetConfig{
		State: configuration.ValueSourceConfig{Static: "sleeping"},
	})
	require.NoError(t, err)

	// WHEN
	err = system.Poll(context.Background())

	// THEN
	assert.Error(t, err)
	assert.Equal(t, StateOn, system.State())
}
