package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"
)

// launcher runs the gem5 binary for one configuration at a time.
type launcher struct {
	paths      paths
	showStdout bool
	showStderr bool
	sample     time.Duration
}

func newLauncher(p paths, opts *Options) *launcher {
	return &launcher{
		paths:      p,
		showStdout: opts.ShowStdout,
		showStderr: opts.ShowStderr,
		sample:     opts.SampleInterval,
	}
}

// result holds the outcome of a single simulation attempt.
type result struct {
	outdir   string
	exitCode int
	elapsed  time.Duration
	stats    *netStats
}

// commandLine assembles the full gem5 argument list for a configuration.
func (l *launcher) commandLine(c *config, outdir string) []string {
	args := []string{
		"-d", outdir,
		l.paths.ConfigScript,
		"--cmd=" + l.paths.BenchmarkBin,
		fmt.Sprintf("--options=-p%d -m%d -t", c.Cores, c.LogSize),
		fmt.Sprintf("--num-cpus=%d", c.Cores),
		fmt.Sprintf("--num-dirs=%d", c.Dirs),
		"--ruby",
		"--caches",
		"--l1d_size=32kB",
		"--l1i_size=32kB",
		"--l1d_assoc=2",
		"--l1i_assoc=2",
		"--l2cache",
		"--l2_size=512kB",
		"--l2_assoc=8",
		fmt.Sprintf("--num-l2caches=%d", c.Cores),
		"--mem-size=4GB",
		"--network=garnet",
		"--topology=" + c.Topology.String(),
		fmt.Sprintf("--mesh-rows=%d", c.Rows),
		fmt.Sprintf("--routing-algorithm=%d", c.Routing),
		fmt.Sprintf("--vcs-per-vnet=%d", c.VCsPerVnet),
		fmt.Sprintf("--buffers-per-data-vc=%d", c.BuffersPerVC),
		fmt.Sprintf("--link-width-bits=%d", c.LinkWidthBits),
		fmt.Sprintf("--garnet-deadlock-threshold=%d", c.DeadlockThreshold),
		"--sys-clock=" + c.Clock,
		"--cpu-clock=" + c.Clock,
		"--ruby-clock=" + c.Clock,
	}

	if c.Concentration > 1 {
		args = append(args, fmt.Sprintf("--concentration-factor=%d", c.Concentration))
	}
	if c.EscapeVC {
		args = append(args, "--escape-vc")
	}

	return args
}

// Run launches gem5 in the foreground and waits for it to finish. A non-nil
// error means the simulator could not be started at all; a failed simulation
// is reported through the exit code instead.
func (l *launcher) Run(ctx context.Context, c *config, outdir string) (*result, error) {
	cmd := exec.CommandContext(ctx, l.paths.Gem5Bin, l.commandLine(c, outdir)...)
	cmd.Env = append(os.Environ(), "SIM_TYPE=FFT")

	cmd.Stdout = io.Discard
	if l.showStdout {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = io.Discard
	if l.showStderr {
		cmd.Stderr = os.Stderr
	}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting %s: %w", l.paths.Gem5Bin, err)
	}

	if l.sample > 0 {
		monCtx, monCancel := context.WithCancel(ctx)
		defer monCancel()
		go monitorProcess(monCtx, cmd.Process.Pid, l.sample)
	}

	res := &result{outdir: outdir}
	err := cmd.Wait()
	res.elapsed = time.Since(start)

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, err
		}
		res.exitCode = exitErr.ExitCode()
	}

	return res, nil
}
