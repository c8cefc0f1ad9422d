package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/flighttracker/config"
	"github.com/Domenick1991/flighttracker/internal/gateway"
	"github.com/Domenick1991/flighttracker/internal/logger"
	"github.com/Domenick1991/flighttracker/internal/shell"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: tracker-cli <API_BASE_URL>")
		fmt.Fprintln(os.Stderr, "Example: tracker-cli http://localhost:8080")
		os.Exit(1)
	}

	cfg, err := config.LoadClientConfig(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "tracker-cli: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(os.Stderr, cfg.LogFormat, cfg.LogLevel)
	client := gateway.NewClient(cfg.BaseAddress, gateway.WithLogger(log))

	fmt.Println("=========================================")
	fmt.Println("  Welcome to Flight Tracker CLI Client!  ")
	fmt.Println("=========================================")
	fmt.Println("Connecting to API at: " + client.BaseAddress())
	fmt.Println("-----------------------------------------")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A pending stdin read cannot be interrupted, so the shell runs aside and
	// a signal ends main directly.
	done := make(chan error, 1)
	go func() { done <- shell.New(client, os.Stdin, os.Stdout).Run(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			log.Error("reading input", slog.Any("error", err))
			os.Exit(1)
		}
	case <-ctx.Done():
		fmt.Println()
		log.Info("interrupted")
	}
}
