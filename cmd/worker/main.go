package main

import (
	"context"
	"os/signal"
	"syscall"

	"time"

	"github.com/caremate/caremate-api/internal/config"
	"github.com/caremate/caremate-api/internal/email"
	"github.com/caremate/caremate-api/internal/repository/postgres"
	internalworker "github.com/caremate/caremate-api/internal/worker"
	"github.com/caremate/caremate-api/pkg/logger"
	"github.com/caremate/caremate-api/pkg/metrics"
	"github.com/caremate/caremate-api/pkg/worker"
)

// The worker drains the email outbox: it polls for pending rows,
// delivers them over SMTP and marks the outcome.
func main() {
	log := logger.NewLogger(nil)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err, "failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	outboxRepo := postgres.NewOutboxRepository(db)

	dispatcher := worker.NewEmailDispatcher(
		outboxRepo,
		email.NewSMTPSender(cfg.SMTP),
		worker.EmailDispatcherConfig{
			BatchSize:     cfg.Outbox.BatchSize,
			PollInterval:  cfg.Outbox.PollInterval,
			RetryAttempts: cfg.Outbox.RetryAttempts,
			RetryDelay:    cfg.Outbox.RetryDelay,
		},
		log,
		metrics.NewMetrics("caremate_worker"),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cleanup := internalworker.NewOutboxCleanupWorker(outboxRepo, cfg.Outbox.RetentionDays, time.Hour, log)
	go cleanup.Start(ctx)

	log.Info("starting email dispatcher",
		"batch_size", cfg.Outbox.BatchSize,
		"poll_interval", cfg.Outbox.PollInterval.String(),
	)
	dispatcher.Start(ctx)
	log.Info("email dispatcher stopped")
}
