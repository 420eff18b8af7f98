package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
)

// netStats holds the metrics pulled out of gem5's stats.txt.
type netStats struct {
	SimTicks         uint64
	SimSeconds       float64
	PacketsInjected  uint64
	PacketsReceived  uint64
	AvgPacketLatency float64
	AvgHops          float64
}

func parseStatsFile(outdir string) (*netStats, error) {
	file, err := os.Open(filepath.Join(outdir, "stats.txt"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return parseStats(file)
}

// parseStats extracts the network metrics from a gem5 stats dump. Lines are
// `name value [# description]`; both the old and the renamed top-level stat
// names are recognized.
func parseStats(r io.Reader) (*netStats, error) {
	s := &netStats{}
	found := false

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "-") {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}
		name, value := parts[0], parts[1]

		switch {
		case name == "sim_ticks" || name == "simTicks":
			s.SimTicks, _ = strconv.ParseUint(value, 10, 64)
			found = true
		case name == "sim_seconds" || name == "simSeconds":
			s.SimSeconds, _ = strconv.ParseFloat(value, 64)
			found = true
		case statIs(name, "packets_injected"):
			s.PacketsInjected, _ = strconv.ParseUint(value, 10, 64)
			found = true
		case statIs(name, "packets_received"):
			s.PacketsReceived, _ = strconv.ParseUint(value, 10, 64)
			found = true
		case statIs(name, "average_packet_latency"):
			s.AvgPacketLatency, _ = strconv.ParseFloat(value, 64)
			found = true
		case statIs(name, "average_hops"):
			s.AvgHops, _ = strconv.ParseFloat(value, 64)
			found = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if !found {
		return nil, fmt.Errorf("no recognized statistics found")
	}
	return s, nil
}

// statIs matches a ruby network stat, with or without a ::total suffix.
func statIs(name, stat string) bool {
	const prefix = "system.ruby.network."
	if !strings.HasPrefix(name, prefix) {
		return false
	}
	rest := strings.TrimPrefix(name, prefix)
	return rest == stat || rest == stat+"::total"
}

// Overall renders the run summary the way the realtime log renders progress.
func (s *netStats) Overall(c *config, res *result) string {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 8, 0, '\t', 0)

	fmt.Fprintln(w, "\nStatistics")
	fmt.Fprintf(w, "  Configuration:\t%s\n", c.name())
	fmt.Fprintf(w, "  Wall time:\t%10.1f sec\n", res.elapsed.Seconds())
	fmt.Fprintf(w, "  Simulated ticks:\t%10d\n", s.SimTicks)
	fmt.Fprintf(w, "  Simulated time:\t%10.6f sec\n", s.SimSeconds)
	fmt.Fprintf(w, "  Packets injected:\t%10d pkts\n", s.PacketsInjected)
	fmt.Fprintf(w, "  Packets received:\t%10d pkts\n", s.PacketsReceived)
	if s.PacketsInjected > 0 {
		delivered := 100 * float64(s.PacketsReceived) / float64(s.PacketsInjected)
		fmt.Fprintf(w, "  Delivered:\t%10.1f %%\n", delivered)
	}
	fmt.Fprintf(w, "  Latency(avg):\t%10.2f cycles\n", s.AvgPacketLatency)
	fmt.Fprintf(w, "  Hops(avg):\t%10.2f\n", s.AvgHops)

	w.Flush()
	return buf.String()
}
