package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[grid]
nx = 256
ny = 128

[source]
x = 10
freq = 0.08

[sim]
steps_per_frame = 8
`), 0o644))

	cfg := defaultConfig2D()
	require.NoError(t, cfg.applyFile(path))
	cfg.resolveSource()

	assert.Equal(t, 256, cfg.nx)
	assert.Equal(t, 128, cfg.ny)
	assert.Equal(t, 10, cfg.sourceX)
	assert.Equal(t, 64, cfg.sourceY, "unset source coordinate defaults to center")
	assert.Equal(t, float32(0.08), cfg.sourceFreq)
	assert.Equal(t, float32(defaultSourceAmp), cfg.sourceAmp)
	assert.Equal(t, 8, cfg.stepsPerFrame)
	assert.Equal(t, float32(defaultFieldScale), cfg.fieldScale)
}

func TestConfigFileMissing(t *testing.T) {
	cfg := defaultConfig2D()
	assert.Error(t, cfg.applyFile("/nonexistent/sim.toml"))
}

func TestResolveSourceClamps(t *testing.T) {
	cfg := defaultConfig2D()
	cfg.sourceX = 10000
	cfg.resolveSource()
	assert.Equal(t, cfg.nx-1, cfg.sourceX)
}
