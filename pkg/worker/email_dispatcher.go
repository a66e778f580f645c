package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/caremate/caremate-api/internal/email"
	"github.com/caremate/caremate-api/internal/model"
	"github.com/caremate/caremate-api/internal/repository"
	"github.com/caremate/caremate-api/pkg/logger"
	"github.com/caremate/caremate-api/pkg/metrics"
)

type EmailDispatcherConfig struct {
	BatchSize     int
	PollInterval  time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
}

// EmailDispatcher polls the outbox and delivers pending emails over
// SMTP. A message that still fails after RetryAttempts is marked
// failed and never retried.
type EmailDispatcher struct {
	repo    repository.OutboxRepository
	sender  email.Sender
	config  EmailDispatcherConfig
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewEmailDispatcher(
	repo repository.OutboxRepository,
	sender email.Sender,
	config EmailDispatcherConfig,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *EmailDispatcher {
	if config.BatchSize <= 0 {
		panic("BatchSize must be greater than 0")
	}
	if config.PollInterval <= 0 {
		panic("PollInterval must be greater than 0")
	}
	if config.RetryAttempts <= 0 {
		panic("RetryAttempts must be greater than 0")
	}
	if config.RetryDelay <= 0 {
		panic("RetryDelay must be greater than 0")
	}

	return &EmailDispatcher{
		repo:    repo,
		sender:  sender,
		config:  config,
		logger:  logger,
		metrics: metrics,
	}
}

func (d *EmailDispatcher) Start(ctx context.Context) {
	ticker := time.NewTicker(d.config.PollInterval)
	defer ticker.Stop()

	d.logger.Info("Starting email dispatcher")

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("Shutting down email dispatcher")
			return
		case <-ticker.C:
			if err := d.dispatchBatch(ctx); err != nil {
				d.logger.Error(err, "Failed to dispatch email batch")
			}
		}
	}
}

func (d *EmailDispatcher) dispatchBatch(ctx context.Context) error {
	timer := prometheus.NewTimer(d.metrics.EmailDispatchLatency)
	defer timer.ObserveDuration()

	messages, err := d.repo.GetPendingWithLock(ctx, d.config.BatchSize)
	if err != nil {
		return fmt.Errorf("failed to get pending emails: %w", err)
	}

	for _, msg := range messages {
		if err := d.dispatch(ctx, msg); err != nil {
			d.logger.Error(err, "Failed to dispatch email",
				"message_id", msg.ID.String(),
				"recipient", msg.Recipient)
		}
	}

	return nil
}

func (d *EmailDispatcher) dispatch(ctx context.Context, msg *model.EmailMessage) error {
	err := retry(d.config.RetryAttempts, d.config.RetryDelay, func() error {
		return d.sender.Send(msg)
	})

	if err != nil {
		d.metrics.EmailsFailed.Inc()
		if markErr := d.repo.MarkFailed(ctx, msg.ID, d.config.RetryAttempts, err.Error()); markErr != nil {
			d.logger.Error(markErr, "Failed to mark email failed", "message_id", msg.ID.String())
		}
		return err
	}

	d.metrics.EmailsDelivered.Inc()
	if err := d.repo.MarkProcessed(ctx, msg.ID); err != nil {
		return fmt.Errorf("failed to mark email processed: %w", err)
	}
	return nil
}

func retry(attempts int, delay time.Duration, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i < attempts-1 {
			time.Sleep(delay)
		}
	}
	return err
}
