package main

import (
	"fmt"
	"strconv"
)

const (
	defaultRows          = 4
	defaultConcentration = 4
	defaultTopology      = "Mesh_XY"
	defaultLogSize       = 18
	defaultClock         = "1GHz"

	// Ruby caps the number of directory controllers a system can carry.
	maxDirs = 256

	// HierarchicalRing configurations above this core count are not wired up
	// in the topology script.
	maxHierRingCores = 128
)

type topology int

const (
	topologyMeshXY topology = iota
	topologyRing
	topologyHierarchicalRing
	topologyTorus
	topologyCrossbar
)

var topologyNames = map[string]topology{
	"Mesh_XY":          topologyMeshXY,
	"Ring":             topologyRing,
	"HierarchicalRing": topologyHierarchicalRing,
	"Torus":            topologyTorus,
	"Crossbar":         topologyCrossbar,
}

func parseTopology(name string) (topology, error) {
	t, ok := topologyNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown topology '%s'", name)
	}
	return t, nil
}

func (t topology) String() string {
	for name, v := range topologyNames {
		if v == t {
			return name
		}
	}
	return "unknown"
}

// config is one fully derived simulation configuration.
type config struct {
	Cores         int
	Rows          int
	Cols          int
	Concentration int
	Topology      topology
	LogSize       int
	Clock         string

	Dirs     int
	EscapeVC bool

	Routing           int
	VCsPerVnet        int
	BuffersPerVC      int
	LinkWidthBits     int
	DeadlockThreshold int
}

// buildConfig derives a config from positional arguments. Unset trailing
// arguments fall back to the fixed defaults; secondary network knobs come
// from the option flags.
func buildConfig(args []string, opts *Options) (*config, error) {
	cores, err := intArg(args, 0, 0)
	if err != nil || cores <= 0 {
		return nil, fmt.Errorf("core count must be a positive integer")
	}

	rows, err := intArg(args, 1, defaultRows)
	if err != nil || rows <= 0 {
		return nil, fmt.Errorf("row count must be a positive integer")
	}

	concentration, err := intArg(args, 2, defaultConcentration)
	if err != nil || concentration <= 0 {
		return nil, fmt.Errorf("concentration factor must be a positive integer")
	}

	topo, err := parseTopology(strArg(args, 3, defaultTopology))
	if err != nil {
		return nil, err
	}

	logSize, err := intArg(args, 4, defaultLogSize)
	if err != nil || logSize <= 0 {
		return nil, fmt.Errorf("problem size exponent must be a positive integer")
	}

	c := &config{
		Cores:             cores,
		Rows:              rows,
		Concentration:     concentration,
		Topology:          topo,
		LogSize:           logSize,
		Clock:             strArg(args, 5, defaultClock),
		Routing:           opts.Routing,
		VCsPerVnet:        opts.VCsPerVnet,
		BuffersPerVC:      opts.BuffersPerVC,
		LinkWidthBits:     opts.LinkWidthBits,
		DeadlockThreshold: opts.DeadlockThreshold,
	}

	if err := c.derive(); err != nil {
		return nil, err
	}
	return c, nil
}

// derive fills in the dependent parameters and enforces the topology limits.
func (c *config) derive() error {
	c.Dirs = c.Cores / c.Concentration
	if c.Dirs > maxDirs {
		c.Dirs = maxDirs
	}

	switch c.Topology {
	case topologyHierarchicalRing:
		if c.Cores > maxHierRingCores {
			return fmt.Errorf("HierarchicalRing supports at most %d cores, got %d",
				maxHierRingCores, c.Cores)
		}
		if c.Rows > 4 {
			c.Dirs = c.Rows
		}
	case topologyRing:
		c.EscapeVC = true
	}

	// a directory controller per core is the upper bound Ruby accepts
	if c.Dirs > c.Cores {
		c.Dirs = c.Cores
	}
	if c.Dirs < 1 {
		c.Dirs = 1
	}

	if c.Concentration > 1 {
		c.Cols = c.Cores / c.Rows / c.Concentration
	} else {
		c.Cols = c.Cores / c.Rows
	}
	if c.Cols < 1 {
		return fmt.Errorf("%d cores cannot fill a %d-row grid at concentration %d",
			c.Cores, c.Rows, c.Concentration)
	}

	return nil
}

// name identifies the configuration in logs and output paths:
// FFT18_Mesh_XY_64c_4x4_cf4_1GHz
func (c *config) name() string {
	s := fmt.Sprintf("FFT%d_%s_%dc_%dx%d",
		c.LogSize, c.Topology, c.Cores, c.Rows, c.Cols)
	if c.Concentration > 1 {
		s += fmt.Sprintf("_cf%d", c.Concentration)
	}
	return s + "_" + c.Clock
}

func strArg(args []string, i int, fallback string) string {
	if i < len(args) && args[i] != "" {
		return args[i]
	}
	return fallback
}

func intArg(args []string, i, fallback int) (int, error) {
	if i >= len(args) || args[i] == "" {
		return fallback, nil
	}
	return strconv.Atoi(args[i])
}
