package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/tebeka/atexit"
)

func main() {
	atexit.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := loadOptions(args)
	if err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err.Error())
		}
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// signal
	go func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

		<-sigs
		cancel()
	}()

	l := newLauncher(loadPaths(), opts)

	var rec *recorder
	if opts.Database != "" {
		rec, err = newRecorder(opts.Database)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			return 1
		}
		defer rec.Close()
	}

	if opts.SweepFile != "" {
		return runSweep(ctx, l, rec, opts)
	}

	c, err := buildConfig(opts.positional(), opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}

	code, err := runOne(ctx, l, rec, c, opts.OutputRoot)
	if err != nil {
		log.Printf("%v", err)
	}
	return code
}
