package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flighttracker/config"
	"github.com/Domenick1991/flighttracker/internal/kafka"
	"github.com/Domenick1991/flighttracker/internal/logger"
)

func main() {
	cfg, err := config.LoadConfig(config.Path())
	if err != nil {
		slog.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	log := logger.ForEnv(os.Stdout, cfg.Env)

	if len(cfg.Kafka.Brokers) == 0 {
		log.Error("kafka.brokers is empty, nothing to consume")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.AuditTopic, log)
	defer consumer.Close()

	tally := kafka.NewTally()

	go func() {
		err := consumer.ConsumeQueryEvents(ctx, tally.Record)
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Error("consumer stopped", slog.Any("error", err))
			stop()
		}
	}()

	summaryTicker := time.NewTicker(cfg.Worker.SummaryInterval())
	defer summaryTicker.Stop()

	log.Info("audit worker started", slog.String("topic", cfg.Kafka.AuditTopic))

	for {
		select {
		case <-summaryTicker.C:
			logSummary(log, tally.Flush())
		case <-ctx.Done():
			logSummary(log, tally.Flush())
			log.Info("shutting down")
			return
		}
	}
}

func logSummary(log *slog.Logger, counts []kafka.RouteCount) {
	if len(counts) == 0 {
		return
	}
	for _, rc := range counts {
		log.Info("route summary",
			slog.String("route", rc.Route),
			slog.Int("requests", rc.Requests),
			slog.Int("failures", rc.Failures),
		)
	}
}
