package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"medex/cmd"
	"medex/internal/adapters/in/console"

	"github.com/labstack/gommon/log"
)

func main() {
	flags := flag.NewFlagSet("medex-tracker", flag.ExitOnError)
	flags.Usage = func() {
		fmt.Fprintln(flags.Output(), "usage: medex-tracker <tracking-token>")
		flags.PrintDefaults()
	}
	if err := flags.Parse(os.Args[1:]); err != nil {
		log.Fatalf("Failed to parse flags: %v", err)
	}
	if flags.NArg() != 1 {
		flags.Usage()
		os.Exit(2)
	}

	configs := cmd.LoadConfig()
	logger := cmd.NewLogger(configs)

	root := cmd.NewConsoleRoot(configs, logger)
	job, err := root.CreateTrackingPollJob(flags.Arg(0), console.NewTrackerPrinter(os.Stdout))
	if err != nil {
		log.Fatalf("Failed to create tracking poll: %v", err)
	}
	if err = job.Start(); err != nil {
		log.Fatalf("Failed to start tracking poll: %v", err)
	}
	defer job.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
	case <-job.Done():
	}
}
