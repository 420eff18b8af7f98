package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSweepFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sweep.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSweep(t *testing.T) {
	path := writeSweepFile(t, `
# cores rows concentration topology logsize clock
16 4 4 Mesh_XY
64 4 1 Ring 20 2GHz

32
`)
	opts := testOptions(t, "-f", path)

	configs, err := loadSweep(path, opts)
	require.NoError(t, err)
	require.Len(t, configs, 3)

	assert.Equal(t, 16, configs[0].Cores)
	assert.Equal(t, topologyMeshXY, configs[0].Topology)

	assert.Equal(t, 64, configs[1].Cores)
	assert.Equal(t, topologyRing, configs[1].Topology)
	assert.True(t, configs[1].EscapeVC)
	assert.Equal(t, "2GHz", configs[1].Clock)

	// defaults fill the trailing fields
	assert.Equal(t, 4, configs[2].Rows)
	assert.Equal(t, "1GHz", configs[2].Clock)
}

func TestLoadSweepBadLine(t *testing.T) {
	path := writeSweepFile(t, "16 4 4 Mesh_XY\nnope 4\n")
	opts := testOptions(t, "-f", path)

	_, err := loadSweep(path, opts)
	assert.ErrorContains(t, err, ":2:")
}

func TestLoadSweepEmpty(t *testing.T) {
	path := writeSweepFile(t, "# nothing here\n")
	opts := testOptions(t, "-f", path)

	_, err := loadSweep(path, opts)
	assert.ErrorContains(t, err, "no configurations")
}
