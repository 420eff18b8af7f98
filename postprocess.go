package main

import (
	"context"
	"log"
	"os/exec"
)

// postProcess runs the helper scripts against a finished output directory:
// stats extraction first, then diagram rendering. Helper failures do not fail
// the run. The DSENT power/area model shares the same contract but stays off
// until its technology files are bundled.
func (l *launcher) postProcess(ctx context.Context, outdir string) {
	steps := []struct {
		name    string
		script  string
		enabled bool
	}{
		{"stats extraction", l.paths.ExtractScript, true},
		{"diagram rendering", l.paths.RenderScript, true},
		{"power model", l.paths.PowerScript, false},
	}

	for _, step := range steps {
		if !step.enabled || step.script == "" {
			continue
		}

		cmd := exec.CommandContext(ctx, step.script, outdir)
		if out, err := cmd.CombinedOutput(); err != nil {
			log.Printf("%s failed: %v: %s", step.name, err, out)
		}
	}
}
