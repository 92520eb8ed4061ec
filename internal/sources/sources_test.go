package sources

import (
	"context"
	"github.com/markusressel/ecthermal/internal/configuration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

func TestNewValueSource_Static(t *testing.T) {
	// GIVEN
	config := configuration.ValueSourceConfig{Static: "tablet"}

	// WHEN
	source, err := NewValueSource(config)

	// THEN
	require.NoError(t, err)
	value, err := source.GetValue(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "tablet", value)
}

func TestNewValueSource_File(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "mode")
	require.NoError(t, os.WriteFile(path, []byte("stand\n"), 0644))
	config := configuration.ValueSourceConfig{File: &configuration.FileSourceConfig{Path: path}}

	// WHEN
	source, err := NewValueSource(config)

	// THEN
	require.NoError(t, err)
	value, err := source.GetValue(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "stand", value)
}

func TestNewValueSource_Missing(t *testing.T) {
	// WHEN
	_, err := NewValueSource(configuration.ValueSourceConfig{})

	// THEN
	assert.Error(t, err)
}
