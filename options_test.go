package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOptionsMissingCores(t *testing.T) {
	_, err := loadOptions(nil)
	assert.ErrorIs(t, err, errUsage)
}

func TestLoadOptionsNonNumericCores(t *testing.T) {
	_, err := loadOptions([]string{"sixteen"})
	assert.ErrorIs(t, err, errUsage)
}

func TestLoadOptionsPositionals(t *testing.T) {
	opts, err := loadOptions([]string{"64", "8", "2", "Ring", "20", "2GHz"})
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"64", "8", "2", "Ring", "20", "2GHz"},
		opts.positional())
}

func TestLoadOptionsFlagDefaults(t *testing.T) {
	opts, err := loadOptions([]string{"16"})
	require.NoError(t, err)

	assert.Equal(t, 0, opts.Routing)
	assert.Equal(t, 4, opts.VCsPerVnet)
	assert.Equal(t, 4, opts.BuffersPerVC)
	assert.Equal(t, 128, opts.LinkWidthBits)
	assert.Equal(t, 50000, opts.DeadlockThreshold)
	assert.Equal(t, ".", opts.OutputRoot)
	assert.Equal(t, 1, opts.Workers)
	assert.False(t, opts.ShowStdout)
	assert.False(t, opts.ShowStderr)
}

func TestLoadOptionsSweepNeedsNoCores(t *testing.T) {
	opts, err := loadOptions([]string{"-f", "sweep.txt"})
	require.NoError(t, err)
	assert.Equal(t, "sweep.txt", opts.SweepFile)
}
