package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// loadSweep reads a sweep file: one configuration per line, fields in the
// positional-argument order. Blank lines and #-comments are skipped.
func loadSweep(path string, opts *Options) ([]*config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var configs []*config
	scanner := bufio.NewScanner(file)
	for lineno := 1; scanner.Scan(); lineno++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		c, err := buildConfig(strings.Fields(line), opts)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineno, err)
		}
		configs = append(configs, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(configs) == 0 {
		return nil, fmt.Errorf("%s: no configurations", path)
	}
	return configs, nil
}

// runSweep runs every configuration through the single-run pipeline with a
// bounded worker pool. Launch starts are spaced out by the rate limiter so
// concurrent gem5 processes do not hammer the machine all at once.
func runSweep(ctx context.Context, l *launcher, rec *recorder, opts *Options) int {
	configs, err := loadSweep(opts.SweepFile, opts)
	if err != nil {
		log.Printf("Sweep aborted: %v", err)
		return 1
	}

	log.Printf("Sweep of %d configurations  Workers=%d", len(configs), opts.Workers)

	limit := rate.Inf
	if opts.LaunchInterval > 0 {
		limit = rate.Every(opts.LaunchInterval)
	}
	limiter := rate.NewLimiter(limit, 1)

	jobCh := make(chan *config)

	var mu sync.Mutex
	var passed, failed int
	start := time.Now()

	// worker
	var wg sync.WaitGroup
	for i := 0; i < opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for c := range jobCh {
				code, err := runOne(ctx, l, rec, c, opts.OutputRoot)
				if err != nil {
					log.Printf("%s: %v", c.name(), err)
				}

				mu.Lock()
				if code == 0 && err == nil {
					passed++
				} else {
					failed++
				}
				mu.Unlock()
			}
		}()
	}

	// feeder
	go func() {
		defer close(jobCh)

		for _, c := range configs {
			if err := limiter.Wait(ctx); err != nil {
				return
			}

			select {
			case <-ctx.Done():
				return
			case jobCh <- c:
			}
		}
	}()

	wg.Wait()
	log.Printf("Sweep completed in %s  OK=%d  Failed=%d",
		time.Since(start).Round(time.Second), passed, failed)

	if failed > 0 {
		return 1
	}
	return 0
}
