package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/caremate/caremate-api/internal/model"
)

const insertOutboxQuery = `
	INSERT INTO email_outbox (
		id, recipient, subject, body, status, attempts,
		last_error, processed_at, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`

func (r *outboxRepository) Create(ctx context.Context, msg *model.EmailMessage) error {
	msg.ID = uuid.New()
	msg.Status = model.OutboxStatusPending
	msg.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, insertOutboxQuery,
		msg.ID, msg.Recipient, msg.Subject, msg.Body, msg.Status,
		msg.Attempts, msg.LastError, msg.ProcessedAt, msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue email: %w", err)
	}
	return nil
}

func (r *outboxRepository) CreateTx(ctx context.Context, tx *sqlx.Tx, msg *model.EmailMessage) error {
	msg.ID = uuid.New()
	msg.Status = model.OutboxStatusPending
	msg.CreatedAt = time.Now()

	_, err := tx.ExecContext(ctx, insertOutboxQuery,
		msg.ID, msg.Recipient, msg.Subject, msg.Body, msg.Status,
		msg.Attempts, msg.LastError, msg.ProcessedAt, msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue email: %w", err)
	}
	return nil
}

// GetPendingWithLock claims up to limit pending messages with
// FOR UPDATE SKIP LOCKED so concurrent worker instances never pick the
// same row.
func (r *outboxRepository) GetPendingWithLock(ctx context.Context, limit int) ([]*model.EmailMessage, error) {
	query := `
		SELECT id, recipient, subject, body, status, attempts,
			   last_error, processed_at, created_at
		FROM email_outbox
		WHERE status = 'pending'
		ORDER BY created_at ASC
		LIMIT $1
		FOR UPDATE SKIP LOCKED
	`
	messages := []*model.EmailMessage{}
	if err := r.db.SelectContext(ctx, &messages, query, limit); err != nil {
		return nil, fmt.Errorf("failed to fetch pending emails: %w", err)
	}
	return messages, nil
}

func (r *outboxRepository) MarkProcessed(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE email_outbox
		SET status = 'processed', processed_at = $1
		WHERE id = $2
	`
	if _, err := r.db.ExecContext(ctx, query, time.Now(), id); err != nil {
		return fmt.Errorf("failed to mark email processed: %w", err)
	}
	return nil
}

func (r *outboxRepository) MarkFailed(ctx context.Context, id uuid.UUID, attempts int, lastError string) error {
	query := `
		UPDATE email_outbox
		SET status = 'failed', attempts = $1, last_error = $2
		WHERE id = $3
	`
	if _, err := r.db.ExecContext(ctx, query, attempts, lastError, id); err != nil {
		return fmt.Errorf("failed to mark email failed: %w", err)
	}
	return nil
}

func (r *outboxRepository) DeleteProcessedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		DELETE FROM email_outbox
		WHERE status = 'processed' AND processed_at < $1
	`
	result, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete processed emails: %w", err)
	}
	return result.RowsAffected()
}
