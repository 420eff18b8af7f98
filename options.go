package main

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

// errUsage means the command line could not be understood; the help text has
// already been printed and the caller must stop without side effects.
var errUsage = errors.New("invalid arguments")

type Options struct {
	Routing           int           `short:"a" long:"routing" description:"Garnet routing algorithm id" default:"0"`
	VCsPerVnet        int           `long:"vcs" description:"Virtual channels per virtual network" default:"4"`
	BuffersPerVC      int           `long:"buffers" description:"Buffers per data virtual channel" default:"4"`
	LinkWidthBits     int           `long:"link-width" description:"Network link width in bits" default:"128"`
	DeadlockThreshold int           `long:"deadlock-threshold" description:"Garnet deadlock detection threshold in cycles" default:"50000"`
	OutputRoot        string        `short:"o" long:"output-root" description:"Parent directory for simulation output" default:"."`
	Database          string        `short:"D" long:"database" description:"Record finished runs into this SQLite database"`
	SweepFile         string        `short:"f" long:"sweep" description:"Run every configuration listed in this file"`
	Workers           int           `short:"c" long:"workers" description:"Number of concurrent sweep runs" default:"1"`
	LaunchInterval    time.Duration `short:"i" long:"launch-interval" description:"Minimum delay between sweep launches" default:"0s"`
	SampleInterval    time.Duration `short:"S" long:"sample-interval" description:"Log simulator CPU/memory usage every interval (0s = disable)" default:"0s"`
	ShowStdout        bool          `long:"show-stdout" description:"Stream simulator stdout to the terminal"`
	ShowStderr        bool          `long:"show-stderr" description:"Stream simulator stderr to the terminal"`

	Args struct {
		Cores         string `positional-arg-name:"cores" description:"Number of simulated cores (required)"`
		Rows          string `positional-arg-name:"rows" description:"Mesh/ring rows (default: 4)"`
		Concentration string `positional-arg-name:"concentration" description:"Cores per router (default: 4)"`
		Topology      string `positional-arg-name:"topology" description:"Interconnect topology (default: Mesh_XY)"`
		LogSize       string `positional-arg-name:"logsize" description:"FFT problem size exponent (default: 18)"`
		Clock         string `positional-arg-name:"clock" description:"Core/network clock (default: 1GHz)"`
	} `positional-args:"yes"`
}

func loadOptions(args []string) (*Options, error) {
	var opts Options

	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Usage = "[OPTIONS] cores [rows] [concentration] [topology] [logsize] [clock]"

	if _, err := parser.ParseArgs(args); err != nil {
		if fe, ok := err.(*flags.Error); ok && fe.Type == flags.ErrHelp {
			parser.WriteHelp(os.Stdout)
			os.Exit(0)
		}
		return nil, err
	}

	// cores must be a plain decimal literal; anything else means the caller
	// needs the usage text, not a diagnostic.
	if opts.SweepFile == "" {
		n, err := strconv.Atoi(opts.Args.Cores)
		if err != nil || n < 0 {
			parser.WriteHelp(os.Stderr)
			return nil, errUsage
		}
	}

	return &opts, nil
}

// positional returns the positional arguments as one slice, trailing empties
// included, in the same order a sweep file line uses.
func (o *Options) positional() []string {
	return []string{
		o.Args.Cores,
		o.Args.Rows,
		o.Args.Concentration,
		o.Args.Topology,
		o.Args.LogSize,
		o.Args.Clock,
	}
}

// paths locates the gem5 installation and the helper scripts. Every entry can
// be overridden through the environment, optionally seeded from a .env file.
type paths struct {
	Gem5Bin       string
	ConfigScript  string
	BenchmarkBin  string
	ExtractScript string
	RenderScript  string
	PowerScript   string
}

func loadPaths() paths {
	godotenv.Load()

	return paths{
		Gem5Bin:       envOr("GEM5_BIN", "build/X86/gem5.opt"),
		ConfigScript:  envOr("GEM5_CONFIG", "configs/example/se.py"),
		BenchmarkBin:  envOr("FFT_BIN", "benchmarks/fft/fft"),
		ExtractScript: envOr("EXTRACT_SCRIPT", "scripts/extract_network_stats.py"),
		RenderScript:  envOr("RENDER_SCRIPT", "scripts/tex2png.sh"),
		PowerScript:   envOr("POWER_SCRIPT", "scripts/dsent_power.py"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
