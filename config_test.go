package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions(t *testing.T, args ...string) *Options {
	t.Helper()

	opts, err := loadOptions(args)
	require.NoError(t, err)
	return opts
}

func TestBuildConfigDefaults(t *testing.T) {
	opts := testOptions(t, "16")

	c, err := buildConfig(opts.positional(), opts)
	require.NoError(t, err)

	assert.Equal(t, 16, c.Cores)
	assert.Equal(t, 4, c.Rows)
	assert.Equal(t, 4, c.Concentration)
	assert.Equal(t, topologyMeshXY, c.Topology)
	assert.Equal(t, 18, c.LogSize)
	assert.Equal(t, "1GHz", c.Clock)
}

func TestBuildConfigDerivation(t *testing.T) {
	opts := testOptions(t, "16", "4", "4", "Mesh_XY")

	c, err := buildConfig(opts.positional(), opts)
	require.NoError(t, err)

	assert.Equal(t, 4, c.Dirs)
	assert.Equal(t, 1, c.Cols)
	assert.False(t, c.EscapeVC)
}

func TestBuildConfigEscapeVC(t *testing.T) {
	for _, tc := range []struct {
		topology string
		escapeVC bool
	}{
		{"Ring", true},
		{"Mesh_XY", false},
		{"Torus", false},
		{"Crossbar", false},
	} {
		opts := testOptions(t, "16", "4", "4", tc.topology)

		c, err := buildConfig(opts.positional(), opts)
		require.NoError(t, err)
		assert.Equal(t, tc.escapeVC, c.EscapeVC, tc.topology)
	}
}

func TestBuildConfigHierarchicalRingCoreLimit(t *testing.T) {
	opts := testOptions(t, "200", "4", "4", "HierarchicalRing")

	_, err := buildConfig(opts.positional(), opts)
	assert.Error(t, err)
}

func TestBuildConfigHierarchicalRingDirsFollowRows(t *testing.T) {
	opts := testOptions(t, "128", "8", "2", "HierarchicalRing")

	c, err := buildConfig(opts.positional(), opts)
	require.NoError(t, err)

	assert.Equal(t, 8, c.Dirs)
	assert.Equal(t, 8, c.Cols)
}

func TestBuildConfigDirsClamp(t *testing.T) {
	opts := testOptions(t, "2048", "32", "1", "Mesh_XY")

	c, err := buildConfig(opts.positional(), opts)
	require.NoError(t, err)

	assert.Equal(t, 256, c.Dirs)
	assert.Equal(t, 64, c.Cols)
}

func TestBuildConfigColumnCountWithoutConcentration(t *testing.T) {
	opts := testOptions(t, "16", "4", "1", "Mesh_XY")

	c, err := buildConfig(opts.positional(), opts)
	require.NoError(t, err)

	assert.Equal(t, 4, c.Cols)
	assert.Equal(t, 16, c.Dirs)
}

func TestBuildConfigUnknownTopology(t *testing.T) {
	opts := testOptions(t, "16", "4", "4", "Butterfly")

	_, err := buildConfig(opts.positional(), opts)
	assert.ErrorContains(t, err, "unknown topology")
}

func TestBuildConfigTooFewCores(t *testing.T) {
	opts := testOptions(t, "4", "4", "4", "Mesh_XY")

	// 4 cores cannot fill 4 rows at concentration 4
	_, err := buildConfig(opts.positional(), opts)
	assert.Error(t, err)
}

func TestConfigName(t *testing.T) {
	opts := testOptions(t, "64", "4", "4", "Mesh_XY", "18", "1GHz")

	c, err := buildConfig(opts.positional(), opts)
	require.NoError(t, err)
	assert.Equal(t, "FFT18_Mesh_XY_64c_4x4_cf4_1GHz", c.name())

	opts = testOptions(t, "16", "4", "1", "Ring", "20", "2GHz")
	c, err = buildConfig(opts.positional(), opts)
	require.NoError(t, err)
	assert.Equal(t, "FFT20_Ring_16c_4x4_2GHz", c.name())
}
