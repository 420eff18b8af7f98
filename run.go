package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"
)

// runOne drives one simulation attempt end to end: claim an output
// directory, launch gem5, then either post-process the results or discard
// the directory. Returns the simulator's exit code.
func runOne(ctx context.Context, l *launcher, rec *recorder, c *config, root string) (int, error) {
	outdir, err := claimOutputDir(root, c)
	if err != nil {
		return 1, err
	}

	log.Printf("Launching gem5 for %s", c.name())
	log.Printf("Topology=%s  Cores=%d  Grid=%dx%d  Dirs=%d  Clock=%s",
		c.Topology, c.Cores, c.Rows, c.Cols, c.Dirs, c.Clock)

	started := time.Now()
	res, err := l.Run(ctx, c, outdir)
	if err != nil {
		os.RemoveAll(outdir)
		return 1, err
	}

	if res.exitCode != 0 {
		// discard the partial output; nothing downstream can use it
		if rmErr := os.RemoveAll(outdir); rmErr != nil {
			log.Printf("Could not remove %s: %v", outdir, rmErr)
		}
		log.Printf("Simulation failed (exit %d), output discarded", res.exitCode)

		if rec != nil {
			rec.Record(runRecord{
				StartedAt: started,
				Config:    c,
				ExitCode:  res.exitCode,
				Elapsed:   res.elapsed,
			})
		}
		return res.exitCode, nil
	}

	res.stats, err = parseStatsFile(outdir)
	if err != nil {
		log.Printf("Could not parse %s/stats.txt: %v", outdir, err)
	}

	l.postProcess(ctx, outdir)

	if rec != nil {
		rec.Record(runRecord{
			StartedAt: started,
			Config:    c,
			OutputDir: outdir,
			ExitCode:  0,
			Elapsed:   res.elapsed,
			Stats:     res.stats,
		})
	}

	log.Printf("Simulation completed in %s, output in %s", res.elapsed.Round(time.Second), outdir)
	if res.stats != nil {
		fmt.Println(res.stats.Overall(c, res))
	}

	return 0, nil
}
